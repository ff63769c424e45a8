package broker

import (
	"encoding/json"
	"fmt"
	"sync"

	"ingest/pkg/api"
	"ingest/pkg/events"
	"ingest/pkg/util/context"

	"github.com/pkg/errors"
	"github.com/streadway/amqp"
)

const (
	// RabbitMQType Broker type RabbitMQ
	RabbitMQType Type = "rabbitmq"

	defaultExchange = "ingest.ex.pipelines"
)

func init() {
	f := func(ctx context.Context, c interface{}) (Broker, error) {
		asRabbitMQConf, isRabbitMQConf := c.(*RabbitMQConfig)
		if !isRabbitMQConf {
			return nil, errors.Errorf("given configuration struct is not type %T", RabbitMQConfig{})
		}
		return NewRabbitMQBroker(ctx, *asRabbitMQConf)
	}
	register(RabbitMQType, f, func() interface{} {
		return &RabbitMQConfig{Exchange: defaultExchange}
	})
}

type rabbitmq struct {
	mutex  sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	config RabbitMQConfig
}

// RabbitMQConfig is configuration for rabbitmq broker implementation
type RabbitMQConfig struct {
	User     string `mapstructure:"user" env:"BROKER_RABBITMQ_USER"`
	Password string `mapstructure:"password" env:"BROKER_RABBITMQ_PASSWORD"`
	URI      string `mapstructure:"uri" env:"BROKER_RABBITMQ_URI"`
	Exchange string `mapstructure:"exchange" env:"BROKER_RABBITMQ_EXCHANGE"`
}

// URL returns the amqp url, password excluded when redacted is true.
func (conf RabbitMQConfig) URL(redacted bool) string {
	password := conf.Password
	if redacted && password != "" {
		password = "xxxxx"
	}
	return fmt.Sprintf("amqp://%s:%s@%s", conf.User, password, conf.URI)
}

// NewRabbitMQBroker returns a Broker implementation based on RabbitMQ.
// Events are published to a durable topic exchange, declared if missing.
func NewRabbitMQBroker(ctx context.Context, conf RabbitMQConfig) (Broker, error) {
	if conf.Exchange == "" {
		conf.Exchange = defaultExchange
	}
	ctx.Logger().Infof("connecting to rabbitmq with url '%s'", conf.URL(true))
	conn, err := amqp.Dial(conf.URL(false))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot connect to rabbitmq with url '%s'", conf.URL(true))
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "cannot open channel to rabbitmq")
	}
	err = ch.ExchangeDeclare(
		conf.Exchange, // name
		"topic",       // type
		true,          // durable
		false,         // auto-deleted
		false,         // internal
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		conn.Close()
		return nil, errors.Wrapf(err, "cannot declare exchange %s", conf.Exchange)
	}
	return &rabbitmq{
		conn:   conn,
		ch:     ch,
		config: conf,
	}, nil
}

func (q *rabbitmq) Publish(ctx context.Context, evt events.Event) error {
	ctx.Logger().Tracef("publishing event %s to exchange %s", evt, q.config.Exchange)
	body, err := json.Marshal(evt)
	if err != nil {
		return errors.Wrapf(err, "cannot marshal event %s", evt)
	}

	q.mutex.Lock()
	defer q.mutex.Unlock()
	err = q.ch.Publish(
		q.config.Exchange, // exchange
		evt.RoutingKey(),  // routing key
		false,             // mandatory
		false,             // immediate
		publishing(evt, body),
	)
	if err != nil {
		return errors.Wrapf(err, "cannot publish event %s", evt)
	}
	return nil
}

func (q *rabbitmq) Close() error {
	if err := q.ch.Close(); err != nil {
		return err
	}
	if err := q.conn.Close(); err != nil {
		return err
	}
	return nil
}

func publishing(evt events.Event, body []byte) amqp.Publishing {
	return amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
		Timestamp:   evt.Time,
		Headers: amqp.Table{
			api.HeaderRequestID:    evt.RequestID,
			api.HeaderPipelineName: evt.Pipeline,
			api.HeaderEventType:    string(evt.Type),
		},
	}
}
