package watchdog

// Config holds the controller configuration.
type Config struct {
	// Period is the requested timeout period in seconds. 0 selects the
	// coarsest supported step (8 s).
	Period uint

	// Logger is used for logging operations (optional)
	Logger Logger

	// CycleCallback is called as sleep/wait sequences progress (optional)
	CycleCallback CycleCallback
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{}
}

// Option is a functional option for configuring the Watchdog.
type Option func(*Config)

// WithPeriod sets the requested timeout period in seconds. The period is
// quantized to the largest supported step not exceeding it; 0 (the
// default) selects the coarsest step.
//
// Example:
//
//	w := watchdog.New(device, watchdog.WithPeriod(4))
func WithPeriod(seconds uint) Option {
	return func(c *Config) {
		c.Period = seconds
	}
}

// WithLogger sets a logger for controller operations.
//
// Example:
//
//	w := watchdog.New(device, watchdog.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithCycleCallback sets a callback to track sleep/wait cycle progress.
//
// Example:
//
//	w := watchdog.New(device,
//	    watchdog.WithCycleCallback(func(e watchdog.CycleEvent) {
//	        fmt.Printf("[%s] cycle %d/%d\n", e.Phase, e.Cycle, e.Total)
//	    }),
//	)
func WithCycleCallback(callback CycleCallback) Option {
	return func(c *Config) {
		c.CycleCallback = callback
	}
}
