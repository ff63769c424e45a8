package license

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"ingest/pkg/store"
	"ingest/pkg/util/context"

	"github.com/pkg/errors"
)

// levels ranks license types, trial grants every feature.
var levels = map[string]int{
	"basic":      0,
	"standard":   1,
	"gold":       2,
	"platinum":   3,
	"enterprise": 4,
	"trial":      5,
}

// Config is the configuration of the license check.
type Config struct {
	Enabled  bool          `mapstructure:"enabled" env:"LICENSE_CHECK_ENABLED"`
	Minimum  string        `mapstructure:"minimum" env:"LICENSE_MINIMUM"`
	CacheTTL time.Duration `mapstructure:"cacheTTL" env:"LICENSE_CACHE_TTL"`
}

// DefaultConfig returns a config requiring at least a basic license, checked every 30 seconds.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		Minimum:  "basic",
		CacheTTL: 30 * time.Second,
	}
}

// Status is the result of a license check.
type Status struct {
	Valid   bool
	Message string
}

// Checker checks that the license of the store allows pipeline management.
type Checker struct {
	s        store.Store
	conf     Config
	minLevel int
	now      func() time.Time

	mutex   sync.Mutex
	cached  *store.License
	expires time.Time
}

// NewChecker returns a new license Checker.
func NewChecker(s store.Store, conf Config) (*Checker, error) {
	lvl, ok := levels[strings.ToLower(conf.Minimum)]
	if !ok {
		return nil, errors.Errorf("unknown license type %s", conf.Minimum)
	}
	return &Checker{
		s:        s,
		conf:     conf,
		minLevel: lvl,
		now:      time.Now,
	}, nil
}

// Check returns the license status.
// Failures to retrieve the license are returned as is, so store errors keep their classification.
func (c *Checker) Check(ctx context.Context) (Status, error) {
	if !c.conf.Enabled {
		return Status{Valid: true}, nil
	}
	l, err := c.license(ctx)
	if err != nil {
		return Status{}, err
	}
	if !l.Active() {
		return Status{
			Message: fmt.Sprintf("You cannot use ingest pipelines because your %s license has expired.", l.Type),
		}, nil
	}
	lvl, known := levels[strings.ToLower(l.Type)]
	if !known || lvl < c.minLevel {
		return Status{
			Message: fmt.Sprintf("Your %s license does not support ingest pipelines. Please upgrade your license.", l.Type),
		}, nil
	}
	return Status{Valid: true}, nil
}

func (c *Checker) license(ctx context.Context) (store.License, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.cached != nil && c.now().Before(c.expires) {
		return *c.cached, nil
	}
	l, err := c.s.License(ctx)
	if err != nil {
		return store.License{}, errors.Wrap(err, "cannot get license")
	}
	ctx.Logger().Debugf("license %s is %s", l.Type, l.Status)
	c.cached = &l
	c.expires = c.now().Add(c.conf.CacheTTL)
	return l, nil
}
