package service

import (
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
)

type options struct {
	now      func() time.Time
	loc      *time.Location
	observer UseCaseObserver
}

// Option configures a service.
type Option func(*options)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLocation sets the zone that defines a calendar day.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithObserver reports use-case events to obs.
func WithObserver(obs UseCaseObserver) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		now:      time.Now,
		loc:      time.Local,
		observer: NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) today() string {
	return domain.DateOf(o.now(), o.loc)
}
