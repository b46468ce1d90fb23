package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur-booking/internal/config"
)

const activityLogName = "activity.log"

// Consumer reads DirectoryEvents from the queue and appends one line per
// event to <LogDir>/activity.log.
type Consumer struct {
	cfg config.QueueConfig
	log *zap.Logger
}

// NewConsumer returns a Consumer for cfg.
func NewConsumer(cfg config.QueueConfig, log *zap.Logger) *Consumer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Consumer{cfg: cfg, log: log}
}

// Run connects to RabbitMQ and consumes until ctx is cancelled.  Lost
// connections are re-dialled with exponential backoff capped at 30s.
// Messages that cannot be handled are rejected without requeue so a bad
// payload never loops.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, err := amqp.Dial(c.cfg.URL)
		if err != nil {
			c.log.Warn("activity consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("activity consumer: consume loop ended; reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn("activity consumer: set QoS failed", zap.Error(err))
	}
	if err := declare(ch, c.cfg.Queue); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(c.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.Handle(d.Body); err != nil {
				c.log.Warn("activity consumer: handle message failed", zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Handle decodes one message body and appends it to the activity log.
func (c *Consumer) Handle(body []byte) error {
	var ev DirectoryEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type == "" {
		return errors.New("event without type")
	}
	if err := os.MkdirAll(c.cfg.LogDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", c.cfg.LogDir, err)
	}
	f, err := os.OpenFile(filepath.Join(c.cfg.LogDir, activityLogName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatActivity(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatActivity renders ev as a single newline-terminated log line.
func FormatActivity(ev DirectoryEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s | id=%d", ev.OccurredAt.UTC().Format(time.RFC3339), ev.Type, ev.EntityID)
	if ev.Name != "" {
		fmt.Fprintf(&b, " | name=%q", ev.Name)
	}
	if ev.VenueID != 0 {
		fmt.Fprintf(&b, " | venue_id=%d", ev.VenueID)
	}
	if ev.ArtistID != 0 {
		fmt.Fprintf(&b, " | artist_id=%d", ev.ArtistID)
	}
	if ev.StartTime != nil {
		fmt.Fprintf(&b, " | start_time=%s", ev.StartTime.UTC().Format(time.RFC3339))
	}
	b.WriteByte('\n')
	return b.String()
}

// sleep waits for d or until ctx is done.  It reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
