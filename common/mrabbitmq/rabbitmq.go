package mrabbitmq

import (
	"context"

	"github.com/r-o-main/bulk-transfer-api/common/mlog"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQConnection is a hub which deal with rabbitmq connections.
type RabbitMQConnection struct {
	ConnectionStringSource string
	Consumer               string
	Producer               string
	conn                   *amqp.Connection
	Channel                *amqp.Channel
	Connected              bool
	Logger                 mlog.Logger
}

// Connect keeps a singleton connection with rabbitmq.
func (rc *RabbitMQConnection) Connect(ctx context.Context) error {
	rc.Logger.Info("Connecting on rabbitmq...")

	conn, err := amqp.Dial(rc.ConnectionStringSource)
	if err != nil {
		rc.Logger.Errorf("failed to connect on rabbitmq: %v", err)
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		rc.Logger.Errorf("failed to open channel on rabbitmq: %v", err)
		return err
	}

	rc.conn = conn
	rc.Channel = ch

	if !rc.healthCheck() {
		rc.Connected = false
		return errNotConnected
	}

	rc.Logger.Info("Connected on rabbitmq")

	rc.Connected = true

	return nil
}

// GetChannel returns a pointer to the rabbitmq channel, connecting if necessary.
func (rc *RabbitMQConnection) GetChannel(ctx context.Context) (*amqp.Channel, error) {
	if !rc.Connected {
		if err := rc.Connect(ctx); err != nil {
			rc.Logger.Infof("rabbitmq connect error: %v", err)
			return nil, err
		}
	}

	return rc.Channel, nil
}

// Close tears down the channel and connection.
func (rc *RabbitMQConnection) Close() error {
	if rc.Channel != nil {
		_ = rc.Channel.Close()
	}

	if rc.conn != nil {
		return rc.conn.Close()
	}

	return nil
}

// healthCheck declares a non-durable, auto-delete probe queue to confirm the
// channel is live.
func (rc *RabbitMQConnection) healthCheck() bool {
	_, err := rc.Channel.QueueDeclare(
		"health_check_queue",
		false,
		true,
		false,
		false,
		nil,
	)
	if err != nil {
		rc.Logger.Errorf("rabbitmq health check failed: %v", err)
		return false
	}

	return true
}

var errNotConnected = errConnection("can't connect rabbitmq")

type errConnection string

func (e errConnection) Error() string { return string(e) }
