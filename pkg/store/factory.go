package store

import (
	"os"
	"strings"
	"sync"

	"ingest/pkg/util/config"

	"github.com/pkg/errors"
)

const (
	envStoreType = "STORE_TYPE"
)

var (
	factories = make(map[Type]func(interface{}) (Store, error))
	configs   = make(map[Type]func() interface{})
	mutex     = &sync.Mutex{}
)

func register(t Type, f func(interface{}) (Store, error), c func() interface{}) {
	mutex.Lock()
	defer mutex.Unlock()
	factories[t] = f
	configs[t] = c
}

// Type is a string designing the implementation of Store interface
type Type string

// NewFromConfig returns a new instance of Store based on configuration from config file and/or env variables.
// The store type defaults to elasticsearch.
func NewFromConfig(configKey string) (Store, error) {
	configTypeKey := "type"
	if configKey != "" {
		configTypeKey = configKey + ".type"
	}
	t, err := config.GetString(configTypeKey)
	if err != nil {
		return nil, err
	}
	if env := os.Getenv(envStoreType); env != "" {
		t = env
	}
	if t == "" {
		t = string(ElasticsearchType)
	}

	typ := Type(strings.ToLower(t))
	mutex.Lock()
	newConf, ok := configs[typ]
	mutex.Unlock()
	if !ok {
		return nil, errors.Errorf("unknown store type %s", typ)
	}
	v := newConf()
	if err := config.Unmarshal(configKey, v); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal store config")
	}

	return New(typ, v)
}

// New returns a new instance of Store based on given configuration struct
func New(t Type, c interface{}) (Store, error) {
	mutex.Lock()
	f, ok := factories[t]
	mutex.Unlock()
	if !ok {
		return nil, errors.Errorf("unknown store type %s", t)
	}
	return f(c)
}
