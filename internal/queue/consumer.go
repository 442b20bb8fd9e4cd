// Package queue consumes asynchronous prediction requests from AMQP.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/streadway/amqp"

	"careerfit-workers/internal/common/logger"
	"careerfit-workers/internal/common/metrics"
	"careerfit-workers/internal/common/validation"
	"careerfit-workers/internal/models"
	"careerfit-workers/internal/predictor"
)

// Dispositions recorded on metrics.QueueMessages.
const (
	DispositionAcked    = "acked"
	DispositionDropped  = "dropped"
	DispositionRejected = "rejected"
	DispositionRequeued = "requeued"
)

// Predictor is the part of predictor.Service the consumer drives.
type Predictor interface {
	Predict(ctx context.Context, userID, source string) (*predictor.Result, error)
	PredictFromData(ctx context.Context, userID string, data models.UserData, source string) *predictor.Result
}

type Config struct {
	URL         string
	Queue       string
	Prefetch    int
	ConsumerTag string
}

// Request is the message body published by producers.
type Request struct {
	UserID   models.UserID    `json:"userId"`
	UserData *models.UserData `json:"userData,omitempty"`
}

// Processor turns one delivery into a prediction and settles it.
type Processor struct {
	svc    Predictor
	logger logger.Logger
}

func NewProcessor(svc Predictor, log logger.Logger) *Processor {
	return &Processor{
		svc:    svc,
		logger: log.WithFields(map[string]interface{}{"component": "queue"}),
	}
}

// Handle processes d and acks, rejects or requeues it. The returned
// disposition is also counted on metrics.QueueMessages.
func (p *Processor) Handle(ctx context.Context, d amqp.Delivery) string {
	disposition, err := p.settle(d, p.process(ctx, d))
	if err != nil {
		p.logger.Error("Failed to settle delivery", map[string]interface{}{
			"deliveryTag": d.DeliveryTag,
			"error":       err.Error(),
		})
	}
	metrics.QueueMessages.WithLabelValues(disposition).Inc()
	return disposition
}

func (p *Processor) process(ctx context.Context, d amqp.Delivery) string {
	req, err := decode(d.Body)
	if err != nil {
		p.logger.Warn("Dropping malformed prediction request", map[string]interface{}{
			"deliveryTag": d.DeliveryTag,
			"error":       err.Error(),
		})
		return DispositionDropped
	}

	userID := req.UserID.String()
	if req.UserData != nil {
		p.svc.PredictFromData(ctx, userID, *req.UserData, metrics.SourceQueue)
		return DispositionAcked
	}

	if _, err := p.svc.Predict(ctx, userID, metrics.SourceQueue); err != nil {
		stdErr := predictor.Classify(userID, err)
		fields := map[string]interface{}{
			"userId":      userID,
			"errorCode":   string(stdErr.Code),
			"redelivered": d.Redelivered,
		}
		// A retryable failure gets one more attempt before it is rejected.
		if stdErr.Retryable && !d.Redelivered {
			p.logger.Warn("Prediction failed, requeueing", fields)
			return DispositionRequeued
		}
		p.logger.Error("Prediction failed, rejecting", fields)
		return DispositionRejected
	}
	return DispositionAcked
}

func (p *Processor) settle(d amqp.Delivery, disposition string) (string, error) {
	switch disposition {
	case DispositionRequeued:
		return disposition, d.Nack(false, true)
	case DispositionRejected:
		return disposition, d.Reject(false)
	default:
		return disposition, d.Ack(false)
	}
}

func decode(body []byte) (*Request, error) {
	result, err := validation.PredictRequest.ValidateJSON(body)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, errors.New(result.Summary())
	}
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	return &req, nil
}

// ==========================
// Consumer
// ==========================

// Consumer owns the AMQP connection and feeds deliveries to a Processor.
type Consumer struct {
	cfg       Config
	conn      *amqp.Connection
	ch        *amqp.Channel
	processor *Processor
	logger    logger.Logger
}

// Dial connects, declares the durable queue and applies the prefetch limit.
func Dial(cfg Config, processor *Processor, log logger.Logger) (*Consumer, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error opening rabbitmq channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		cfg.Queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", cfg.Queue, err)
	}
	if cfg.Prefetch > 0 {
		if err := ch.Qos(cfg.Prefetch, 0, false); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to set prefetch: %w", err)
		}
	}

	return &Consumer{
		cfg:       cfg,
		conn:      conn,
		ch:        ch,
		processor: processor,
		logger:    log.WithFields(map[string]interface{}{"queue": cfg.Queue}),
	}, nil
}

// Run consumes until ctx is cancelled or the broker closes the channel.
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.Consume(
		c.cfg.Queue,
		c.cfg.ConsumerTag,
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("error consuming from %s: %w", c.cfg.Queue, err)
	}
	c.logger.Info("Consumer started", map[string]interface{}{"prefetch": c.cfg.Prefetch})

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed by broker")
			}
			c.processor.Handle(ctx, d)
		}
	}
}

// Name and Ping let the consumer take part in readiness checks.
func (c *Consumer) Name() string { return "rabbitmq" }

func (c *Consumer) Ping(context.Context) error {
	if c.conn.IsClosed() {
		return amqp.ErrClosed
	}
	return nil
}

func (c *Consumer) Close() error {
	if c.ch != nil {
		_ = c.ch.Cancel(c.cfg.ConsumerTag, false)
		c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
