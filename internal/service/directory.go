// Package service implements the booking directory operations on top of
// the repositories: validation, past/upcoming partitioning, typed errors,
// event publishing and mutation metrics.
package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur-booking/internal/metrics"
	"github.com/iliyamo/fyyur-booking/internal/queue"
	"github.com/iliyamo/fyyur-booking/internal/repository"
)

// EventPublisher delivers directory events after a mutation commits.
// *queue.Publisher satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.DirectoryEvent) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, queue.DirectoryEvent) error { return nil }

// Directory is the entry point for every listing, detail, search and
// mutation operation.  It holds no per-request state and is safe for
// concurrent use.
type Directory struct {
	venues  *repository.VenueRepo
	artists *repository.ArtistRepo
	shows   *repository.ShowRepo

	validate       *validator.Validate
	events         EventPublisher
	publishTimeout time.Duration
	metrics        *metrics.Metrics
	log            *zap.Logger
	now            func() time.Time
}

// Option customises a Directory.
type Option func(*Directory)

// WithClock replaces time.Now as the source of "now" for past/upcoming
// splits.
func WithClock(now func() time.Time) Option {
	return func(d *Directory) { d.now = now }
}

// WithPublisher sets the event publisher.  Without it events are dropped.
func WithPublisher(p EventPublisher) Option {
	return func(d *Directory) {
		if p != nil {
			d.events = p
		}
	}
}

// WithMetrics records mutation outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Directory) { d.metrics = m }
}

// WithLogger sets the logger used for failures and publish errors.
func WithLogger(l *zap.Logger) Option {
	return func(d *Directory) {
		if l != nil {
			d.log = l
		}
	}
}

// NewDirectory builds a Directory over db.
func NewDirectory(db *sql.DB, opts ...Option) *Directory {
	if db == nil {
		panic("nil db passed to NewDirectory")
	}
	d := &Directory{
		venues:         repository.NewVenueRepo(db),
		artists:        repository.NewArtistRepo(db),
		shows:          repository.NewShowRepo(db),
		validate:       newValidator(),
		events:         nopPublisher{},
		publishTimeout: 3 * time.Second,
		log:            zap.NewNop(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// classify converts a repository error into the typed taxonomy.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrVenueNotFound),
		errors.Is(err, repository.ErrArtistNotFound),
		errors.Is(err, repository.ErrShowNotFound):
		return notFound(op, err)
	default:
		return persistence(op, err)
	}
}

// readFailed classifies a read error and logs storage failures.
func (d *Directory) readFailed(op string, err error) error {
	out := classify(op, err)
	if IsPersistence(out) {
		d.log.Error("read failed", zap.String("op", op), zap.Error(err))
	}
	return out
}

// mutation wraps a write: it times the call, classifies its error, logs
// failures and records the outcome.
func (d *Directory) mutation(op string, fn func() error, fields ...zap.Field) error {
	start := time.Now()
	err := fn()
	outcome := "ok"
	if err != nil {
		var typed *Error
		if !errors.As(err, &typed) {
			err = classify(op, err)
			errors.As(err, &typed)
		}
		outcome = typed.Kind.String()
		lvl := zap.WarnLevel
		if typed.Kind == KindPersistence {
			lvl = zap.ErrorLevel
		}
		if ce := d.log.Check(lvl, "mutation failed"); ce != nil {
			ce.Write(append(fields, zap.String("op", op), zap.String("kind", outcome), zap.Error(err))...)
		}
	}
	d.metrics.ObserveMutation(op, outcome, time.Since(start))
	return err
}

// publish sends ev without failing the caller.  It detaches from the
// request context so a finished request does not cancel the publish.
func (d *Directory) publish(ctx context.Context, ev queue.DirectoryEvent) {
	ev.OccurredAt = d.now().UTC()
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.publishTimeout)
	defer cancel()
	if err := d.events.Publish(ctx, ev); err != nil {
		d.log.Warn("event publish failed", zap.String("type", ev.Type), zap.Uint64("id", ev.EntityID), zap.Error(err))
	}
}

// SearchResult is the response of a name search.
type SearchResult struct {
	Count   int                  `json:"count"`
	Results []repository.Summary `json:"results"`
}

func newSearchResult(rows []repository.Summary) SearchResult {
	if rows == nil {
		rows = []repository.Summary{}
	}
	return SearchResult{Count: len(rows), Results: rows}
}
