package rabbitmq

import (
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"storefront-service/config"
	"storefront-service/datalayer"
)

// Forwarder publishes every data layer record to the tag-management
// exchange. It implements datalayer.Sink so it can be fanned out next
// to the in-process queue.
type Forwarder struct {
	Conn    *amqp.Connection
	Channel *amqp.Channel
	Cfg     *config.Config
}

func NewForwarder(cfg *config.Config) (*Forwarder, error) {
	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		err := conn.Close()
		if err != nil {
			return nil, err
		}
		return nil, err
	}

	return &Forwarder{
		Conn:    conn,
		Channel: ch,
		Cfg:     cfg,
	}, nil
}

func (f *Forwarder) SetupQueues() error {
	// Dead letter exchange and queue for records the consumer rejects.
	if err := f.Channel.ExchangeDeclare(
		f.Cfg.DeadLetterQueue+"_exchange",
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	_, err := f.Channel.QueueDeclare(
		f.Cfg.DeadLetterQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		amqp.Table{
			"x-queue-type": "classic",
		},
	)
	if err != nil {
		return err
	}

	if err := f.Channel.QueueBind(
		f.Cfg.DeadLetterQueue,
		"",
		f.Cfg.DeadLetterQueue+"_exchange",
		false,
		nil,
	); err != nil {
		return err
	}

	// The analytics exchange fans records out to whatever tag-management
	// consumers are bound; push order must be preserved, so a single
	// queue carries the full sequence.
	if err := f.Channel.ExchangeDeclare(
		f.Cfg.AnalyticsExchange,
		"fanout",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	_, err = f.Channel.QueueDeclare(
		f.Cfg.AnalyticsQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		amqp.Table{
			"x-dead-letter-exchange":    f.Cfg.DeadLetterQueue + "_exchange",
			"x-dead-letter-routing-key": f.Cfg.DeadLetterQueue,
		},
	)
	if err != nil {
		return err
	}

	return f.Channel.QueueBind(
		f.Cfg.AnalyticsQueue,
		"",
		f.Cfg.AnalyticsExchange,
		false,
		nil,
	)
}

// Push forwards one record. Forwarding failures are logged and
// swallowed; the storefront action must never depend on the broker.
func (f *Forwarder) Push(record datalayer.Record) {
	body, err := json.Marshal(record)
	if err != nil {
		log.Printf("Failed to encode data layer record: %v", err)
		return
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		ContentType:  "application/json",
		Body:         body,
	}

	if err := f.Channel.Publish(
		f.Cfg.AnalyticsExchange,
		"",
		false, // mandatory
		false, // immediate
		msg,
	); err != nil {
		log.Printf("Failed to forward data layer record: %v", err)
	}
}

func (f *Forwarder) Close() {
	if f.Channel != nil {
		err := f.Channel.Close()
		if err != nil {
			return
		}
	}
	if f.Conn != nil {
		err := f.Conn.Close()
		if err != nil {
			return
		}
	}
}

var _ datalayer.Sink = (*Forwarder)(nil)
