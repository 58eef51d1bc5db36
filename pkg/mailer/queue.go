package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

var ErrInvalidJob = errors.New("email job needs a recipient and a template or subject with body")

// Queue carries EmailJob messages over a durable RabbitMQ queue on the
// default exchange. The API publishes; cmd/email_worker consumes.
type Queue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	Name string
}

func DialQueue(url, name string) (*Queue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", name, err)
	}
	return &Queue{conn: conn, ch: ch, Name: name}, nil
}

func (q *Queue) Close() {
	if q == nil {
		return
	}
	if q.ch != nil {
		_ = q.ch.Close()
	}
	if q.conn != nil {
		_ = q.conn.Close()
	}
}

// Publish enqueues job as a persistent JSON message.
func (q *Queue) Publish(ctx context.Context, job EmailJob) error {
	if !job.Valid() {
		return ErrInvalidJob
	}
	b, err := json.Marshal(job)
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return q.ch.PublishWithContext(c, "", q.Name, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         b,
	})
}

// HandlerFunc processes one message body.
type HandlerFunc func(ctx context.Context, body []byte) error

// Consume feeds deliveries to handle until ctx is done or the channel closes.
// Each message gets at most timeout to finish.
func (q *Queue) Consume(ctx context.Context, prefetch int, timeout time.Duration, handle HandlerFunc, logger *logrus.Logger) error {
	if err := q.ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}
	msgs, err := q.ch.ConsumeWithContext(ctx, q.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			c, cancel := context.WithTimeout(ctx, timeout)
			err := handle(c, msg.Body)
			cancel()
			settle(msg, err, logger)
		}
	}
}

type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// settle acks on success, drops permanent failures and requeues the rest.
func settle(d acknowledger, err error, logger *logrus.Logger) {
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, ErrPermanent):
		if logger != nil {
			logger.WithError(err).Error("dropping email job")
		}
		_ = d.Nack(false, false)
	default:
		if logger != nil {
			logger.WithError(err).Warn("email job failed, requeueing")
		}
		_ = d.Nack(false, true)
	}
}
