package context

import (
	gocontext "context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// FormatText prints log lines as key=value text.
	FormatText = "text"
	// FormatJSON prints log lines as JSON objects.
	FormatJSON = "json"
)

var (
	logger = newLogger(os.Stderr)
	mutex  = &sync.RWMutex{}
)

// Context extends the regular golang context.Context interface with functionnalities such as access to logger
// and request scoped identifiers.
type Context interface {
	gocontext.Context
	Logger() *logrus.Entry
	RequestID() string
	PipelineName() string
}

// Background returns a non-nil, empty Context.
func Background() Context {
	return ctx{
		Context: gocontext.Background(),
	}
}

// FromContext returns a new context from the given go context.
// If the given context already is a Context, it is returned as is.
func FromContext(c gocontext.Context) Context {
	if asCtx, ok := c.(Context); ok {
		return asCtx
	}
	return ctx{
		Context: c,
	}
}

// WithRequestID returns a copy of the context with a requestID.
func WithRequestID(c Context, requestID string) Context {
	return ctx{
		c,
		requestID,
		c.PipelineName(),
	}
}

// WithPipelineName returns a copy of the context with a pipeline name.
func WithPipelineName(c Context, name string) Context {
	return ctx{
		c,
		c.RequestID(),
		name,
	}
}

// ConfigureLogger sets level and format of the logger shared by all contexts.
func ConfigureLogger(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %s", level)
	}
	var formatter logrus.Formatter
	switch strings.ToLower(format) {
	case "", FormatText:
		formatter = textFormatter()
	case FormatJSON:
		formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg: "message",
			},
		}
	default:
		return errors.Errorf("unknown log format %s", format)
	}

	mutex.Lock()
	defer mutex.Unlock()
	logger.SetLevel(lvl)
	logger.SetFormatter(formatter)
	return nil
}

// SetOutput sets the output of the logger shared by all contexts.
func SetOutput(out io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	logger.SetOutput(out)
}

type ctx struct {
	gocontext.Context
	requestID    string
	pipelineName string
}

func (c ctx) Logger() *logrus.Entry {
	mutex.RLock()
	e := logrus.NewEntry(logger)
	mutex.RUnlock()
	if c.RequestID() != "" {
		e = e.WithField("request_id", c.RequestID())
	}
	if c.PipelineName() != "" {
		e = e.WithField("pipeline", c.PipelineName())
	}
	return e
}

func (c ctx) RequestID() string {
	return c.requestID
}

func (c ctx) PipelineName() string {
	return c.pipelineName
}

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(textFormatter())
	return l
}

func textFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyMsg: "message",
		},
	}
}
