// Package router wires handlers and middleware onto an Echo instance.
package router

import (
	"database/sql"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur-booking/internal/config"
	"github.com/iliyamo/fyyur-booking/internal/handler"
	"github.com/iliyamo/fyyur-booking/internal/metrics"
	"github.com/iliyamo/fyyur-booking/internal/middleware"
	"github.com/iliyamo/fyyur-booking/internal/service"
)

// Deps collects what the HTTP layer needs.  Redis may be nil, in which case
// caching and rate limiting are disabled.  An empty EditorSecret leaves the
// write routes open.
type Deps struct {
	Dir            *service.Directory
	DB             *sql.DB
	Redis          *redis.Client
	Cache          config.CacheConfig
	RateLimit      config.RateLimitConfig
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	Log            *zap.Logger
	EditorSecret   string
	RequestTimeout time.Duration
}

// New builds the Echo instance with the global middleware chain and every
// route registered.
func New(d Deps) *echo.Echo {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(RequestLogger(d.Log))
	if d.RequestTimeout > 0 {
		e.Use(echomw.ContextTimeoutWithConfig(echomw.ContextTimeoutConfig{Timeout: d.RequestTimeout}))
	}

	RegisterRoutes(e, d.DB, d.Gatherer)

	v1 := e.Group("/v1",
		middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Metrics, d.Log),
		middleware.NewRedisCache(d.Cache, d.Redis, d.Metrics, d.Log),
	)
	RegisterPublic(v1, d.Dir)
	RegisterEditor(v1, d.Dir, d.EditorSecret,
		middleware.NewCachePurge(d.Cache, d.Redis, d.Metrics, d.Log),
	)
	return e
}

// RegisterRoutes registers the operational endpoints: liveness, readiness
// and the Prometheus exposition.
func RegisterRoutes(e *echo.Echo, db *sql.DB, g prometheus.Gatherer) {
	e.GET("/healthz", handler.Health)
	if db != nil {
		e.GET("/readyz", handler.Ready(db))
	}
	if g != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
	}
}

// RequestLogger logs one zap line per request.
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				log.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}
