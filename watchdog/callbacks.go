package watchdog

import "github.com/moffa90/go-wdt/wdt"

// CycleEvent describes progress of a multi-step sleep or wait sequence.
// Passed to CycleCallback as the sequence advances.
type CycleEvent struct {
	// Phase describes what just happened:
	//   "armed"    - a sleep or wait sequence was armed
	//   "cycle"    - one timeout step elapsed
	//   "complete" - the sequence finished and reset supervision is restored
	Phase string

	// Cycle is the number of elapsed timeout steps so far
	Cycle uint64

	// Total is the number of steps the sequence needs; 0 for a blocking
	// sleep, which is bounded by the foreground loop instead of a target
	Total uint64

	// Step is the hardware timeout step driving the sequence
	Step wdt.Step
}

// CycleCallback is called as a sleep or wait sequence progresses.
// The "complete" event for a wait sequence fires from the timeout
// interrupt handler, so implementations must return quickly and must
// not block.
type CycleCallback func(CycleEvent)

// Logger is an optional logging interface that can be provided to the
// controller. This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	w := watchdog.New(device, watchdog.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
