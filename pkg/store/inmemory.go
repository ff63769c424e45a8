package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

const (
	// InMemoryType Store type InMemory
	InMemoryType Type = "inmemory"
)

var acknowledged = json.RawMessage(`{"acknowledged":true}`)

func init() {
	f := func(c interface{}) (Store, error) {
		asConf, isConf := c.(*InMemoryConfig)
		if !isConf {
			return nil, errors.Errorf("given configuration struct is not type %T", InMemoryConfig{})
		}
		return NewInMemoryStore(*asConf)
	}
	register(InMemoryType, f, func() interface{} {
		return &InMemoryConfig{LicenseType: "basic"}
	})
}

// InMemoryConfig is configuration for the in memory store implementation
type InMemoryConfig struct {
	LicenseType string `mapstructure:"licenseType" env:"STORE_INMEMORY_LICENSE_TYPE"`
}

// NewInMemoryStore returns a new InMemory store.
// Definitions are kept as the store received them, each call copies them.
func NewInMemoryStore(conf InMemoryConfig) (Store, error) {
	return &inMemory{
		pipelines: make(map[string]json.RawMessage),
		license: License{
			Status: "active",
			Type:   conf.LicenseType,
		},
	}, nil
}

type inMemory struct {
	mutex     sync.RWMutex
	pipelines map[string]json.RawMessage
	license   License
}

func (s *inMemory) GetPipeline(ctx context.Context, id string) (json.RawMessage, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	p, exists := s.pipelines[id]
	if !exists {
		return nil, NotFoundError("pipeline [" + id + "]")
	}
	return copyRaw(p), nil
}

func (s *inMemory) PutPipeline(ctx context.Context, id string, body interface{}) (json.RawMessage, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot encode pipeline %s", id)
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.pipelines[id] = b
	return copyRaw(acknowledged), nil
}

func (s *inMemory) DeletePipeline(ctx context.Context, id string) (json.RawMessage, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, exists := s.pipelines[id]; !exists {
		return nil, NotFoundError("pipeline [" + id + "]")
	}
	delete(s.pipelines, id)
	return copyRaw(acknowledged), nil
}

func (s *inMemory) ListPipelines(ctx context.Context) (map[string]json.RawMessage, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	res := make(map[string]json.RawMessage, len(s.pipelines))
	for k, v := range s.pipelines {
		res[k] = copyRaw(v)
	}
	return res, nil
}

func (s *inMemory) License(ctx context.Context) (License, error) {
	return s.license, nil
}

func copyRaw(r json.RawMessage) json.RawMessage {
	c := make(json.RawMessage, len(r))
	copy(c, r)
	return c
}
