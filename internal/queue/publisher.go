package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur-booking/internal/config"
)

// ErrBacklogFull is returned by Publish when the send buffer is full,
// typically because the broker has been unreachable for a while.
var ErrBacklogFull = errors.New("event backlog full")

const (
	defaultBacklog = 256
	sendTimeout    = 3 * time.Second
)

// Publisher sends DirectoryEvents to a durable RabbitMQ queue.  Publish
// only enqueues; Run owns the broker connection and delivers events in
// order, so a slow or absent broker never delays the caller.
type Publisher struct {
	url    string
	queue  string
	dial   time.Duration
	log    *zap.Logger
	events chan DirectoryEvent

	// Owned by Run.
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher returns a Publisher for cfg.  It does not connect.
func NewPublisher(cfg config.QueueConfig, log *zap.Logger) *Publisher {
	return newPublisher(cfg, log, defaultBacklog)
}

func newPublisher(cfg config.QueueConfig, log *zap.Logger, backlog int) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{
		url:    cfg.URL,
		queue:  cfg.Queue,
		dial:   2 * time.Second,
		log:    log,
		events: make(chan DirectoryEvent, backlog),
	}
}

// Publish queues ev for delivery.  It never blocks; when the backlog is
// full the event is dropped and ErrBacklogFull returned.
func (p *Publisher) Publish(_ context.Context, ev DirectoryEvent) error {
	select {
	case p.events <- ev:
		return nil
	default:
		return ErrBacklogFull
	}
}

// Run delivers queued events until ctx is cancelled.  The connection is
// opened lazily and reused; after a failure it is dropped and re-dialled
// for the next event.  Events still queued at shutdown are discarded.
func (p *Publisher) Run(ctx context.Context) error {
	defer p.reset()
	for {
		select {
		case <-ctx.Done():
			if n := len(p.events); n > 0 {
				p.log.Warn("rabbitmq publisher stopped with queued events", zap.Int("dropped", n))
			}
			return ctx.Err()
		case ev := <-p.events:
			if err := p.send(ctx, ev); err != nil {
				p.log.Warn("rabbitmq publish failed", zap.String("type", ev.Type), zap.Uint64("id", ev.EntityID), zap.Error(err))
			}
		}
	}
}

// send publishes ev, retrying once on a fresh connection when the cached
// channel turns out to be dead.
func (p *Publisher) send(ctx context.Context, ev DirectoryEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         ev.Type,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	reused := p.ch != nil
	for {
		if err := p.connect(); err != nil {
			return err
		}
		sctx, cancel := context.WithTimeout(ctx, sendTimeout)
		err := p.ch.PublishWithContext(sctx,
			"",      // default exchange
			p.queue, // routing key = queue name
			false,   // mandatory
			false,   // immediate
			pub,
		)
		cancel()
		if err == nil {
			return nil
		}
		p.reset()
		if !reused {
			return err
		}
		reused = false
	}
}

func (p *Publisher) connect() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.reset()
	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.dial)})
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("channel open: %w", err)
	}
	// Durable so messages survive broker restarts.
	if err := declare(ch, p.queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("queue declare %s: %w", p.queue, err)
	}
	p.conn, p.ch = conn, ch
	return nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func declare(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,  // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	return err
}
