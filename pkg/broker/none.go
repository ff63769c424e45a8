package broker

import (
	"ingest/pkg/events"
	"ingest/pkg/util/context"
)

const (
	// NoneType Broker type discarding every event
	NoneType Type = "none"
)

func init() {
	f := func(ctx context.Context, c interface{}) (Broker, error) {
		return NewNoneBroker(), nil
	}
	register(NoneType, f, func() interface{} { return &struct{}{} })
}

// NewNoneBroker returns a Broker discarding every event.
func NewNoneBroker() Broker {
	return none{}
}

type none struct{}

func (none) Publish(ctx context.Context, evt events.Event) error {
	ctx.Logger().Tracef("discarding event %s", evt)
	return nil
}

func (none) Close() error {
	return nil
}
