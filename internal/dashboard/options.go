package dashboard

import "time"

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the controller's time source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}
