package broker

import (
	"os"
	"strings"
	"sync"

	"ingest/pkg/events"
	"ingest/pkg/util/config"
	"ingest/pkg/util/context"

	"github.com/pkg/errors"
)

const (
	envBrokerType = "BROKER_TYPE"
)

var (
	factories = make(map[Type]func(context.Context, interface{}) (Broker, error))
	configs   = make(map[Type]func() interface{})
	mutex     = &sync.Mutex{}
)

func register(t Type, f func(context.Context, interface{}) (Broker, error), c func() interface{}) {
	mutex.Lock()
	defer mutex.Unlock()
	factories[t] = f
	configs[t] = c
}

// Type is a string designing the implementation of Broker interface
type Type string

// Broker publishes pipeline change events.
type Broker interface {
	// Publish publishes the given event.
	Publish(ctx context.Context, evt events.Event) error

	// Close closes all connections.
	Close() error
}

// NewFromConfig returns a new instance of Broker based on configuration from config file and/or env variables.
// Without any configured type, events are discarded.
func NewFromConfig(ctx context.Context, configKey string) (Broker, error) {
	configTypeKey := "type"
	if configKey != "" {
		configTypeKey = configKey + ".type"
	}
	// Get broker type
	t, err := config.GetString(configTypeKey)
	if err != nil {
		return nil, err
	}
	if env := os.Getenv(envBrokerType); env != "" {
		t = env
	}
	if t == "" {
		t = string(NoneType)
	}

	typ := Type(strings.ToLower(t))
	mutex.Lock()
	newConf, ok := configs[typ]
	mutex.Unlock()
	if !ok {
		return nil, errors.Errorf("unknown broker type %s", typ)
	}
	v := newConf()
	if err := config.Unmarshal(configKey, v); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal broker config")
	}

	return New(ctx, typ, v)
}

// New returns a new instance of Broker based on given configuration struct
func New(ctx context.Context, t Type, c interface{}) (Broker, error) {
	mutex.Lock()
	f, ok := factories[t]
	mutex.Unlock()
	if !ok {
		return nil, errors.Errorf("unknown broker type %s", t)
	}

	return f(ctx, c)
}
