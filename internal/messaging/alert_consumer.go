package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/AinaRoxane/Wallet/internal/config"
	"github.com/AinaRoxane/Wallet/internal/models"
	"github.com/AinaRoxane/Wallet/internal/repositories"
)

// AlertMessage is the payload published by the market monitoring jobs
// when a price threshold is crossed.
type AlertMessage struct {
	Email   string    `json:"email"`
	Crypto  string    `json:"crypto"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

// AlertConsumer turns queued price alerts into notification documents.
type AlertConsumer struct {
	cfg           config.RabbitMQConfig
	notifications repositories.NotificationRepository
	users         repositories.UserRepository

	conn    *amqp.Connection
	channel *amqp.Channel
	done    chan struct{}
}

func NewAlertConsumer(cfg config.RabbitMQConfig, notifications repositories.NotificationRepository, users repositories.UserRepository) *AlertConsumer {
	return &AlertConsumer{
		cfg:           cfg,
		notifications: notifications,
		users:         users,
		done:          make(chan struct{}),
	}
}

// Start connects and consumes until the context is cancelled, redialing
// after connection loss.
func (c *AlertConsumer) Start(ctx context.Context) error {
	if err := c.connect(); err != nil {
		return err
	}

	go c.consumeLoop(ctx)
	return nil
}

func (c *AlertConsumer) connect() error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	if err := channel.Qos(c.cfg.PrefetchCount, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	if _, err := channel.QueueDeclare(
		c.cfg.AlertQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("failed to declare queue %s: %w", c.cfg.AlertQueue, err)
	}

	c.conn = conn
	c.channel = channel

	logrus.WithField("queue", c.cfg.AlertQueue).Info("Connected to RabbitMQ")
	return nil
}

func (c *AlertConsumer) consumeLoop(ctx context.Context) {
	defer close(c.done)

	for {
		deliveries, err := c.channel.Consume(
			c.cfg.AlertQueue,
			"wallet-api",
			false, // autoAck
			false, // exclusive
			false, // noLocal
			false, // noWait
			nil,
		)
		if err != nil {
			logrus.WithError(err).Error("Failed to start consuming")
			if !c.redial(ctx) {
				return
			}
			continue
		}

		if !c.drain(ctx, deliveries) {
			return
		}
		if !c.redial(ctx) {
			return
		}
	}
}

// drain processes deliveries until the channel closes or the context is
// cancelled. It returns false when the consumer should stop for good.
func (c *AlertConsumer) drain(ctx context.Context, deliveries <-chan amqp.Delivery) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case delivery, ok := <-deliveries:
			if !ok {
				logrus.Warn("RabbitMQ delivery channel closed")
				return true
			}
			c.handle(ctx, delivery)
		}
	}
}

func (c *AlertConsumer) handle(ctx context.Context, delivery amqp.Delivery) {
	var alert AlertMessage
	if err := json.Unmarshal(delivery.Body, &alert); err != nil {
		logrus.WithError(err).Error("Failed to decode alert message")
		delivery.Nack(false, false) // malformed, do not requeue
		return
	}

	if alert.Email == "" || alert.Message == "" {
		logrus.Warn("Alert message missing email or message, discarding")
		delivery.Nack(false, false)
		return
	}

	// Respect the account-level notification switch.
	user, err := c.users.GetByEmail(ctx, alert.Email)
	if err == nil && !user.NotificationsEnabled {
		delivery.Ack(false)
		return
	}

	date := alert.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	notification := &models.Notification{
		Email:   alert.Email,
		Message: alert.Message,
		Crypto:  alert.Crypto,
		Date:    date,
	}

	if err := c.notifications.Create(ctx, notification); err != nil {
		logrus.WithError(err).Error("Failed to store notification")
		delivery.Nack(false, true) // transient, requeue
		return
	}

	delivery.Ack(false)
	logrus.WithFields(logrus.Fields{
		"email":  alert.Email,
		"crypto": alert.Crypto,
	}).Debug("Alert stored as notification")
}

func (c *AlertConsumer) redial(ctx context.Context) bool {
	c.closeConnection()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(c.cfg.ReconnectWait):
		}

		if err := c.connect(); err != nil {
			logrus.WithError(err).Warn("RabbitMQ reconnect failed")
			continue
		}
		return true
	}
}

// Stop closes the connection and waits for the consume loop to exit.
func (c *AlertConsumer) Stop() {
	c.closeConnection()
	<-c.done
}

func (c *AlertConsumer) closeConnection() {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
