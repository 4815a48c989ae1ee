// Package watchdog implements a low-power timing controller on top of a
// device's hardware watchdog timer.
//
// # Overview
//
// The hardware watchdog serves double duty here:
//   - as the usual reset safety net (a hung program gets reset), and
//   - as a periodic wake/interrupt source used to build sleep and
//     non-blocking wait primitives whose duration can exceed the
//     hardware's maximum single timeout of 8 seconds.
//
// A requested duration in seconds is quantized to one of the discrete
// hardware timeout steps and decomposed into a whole number of steps.
// The timeout interrupt handler counts elapsed steps and re-arms the
// watchdog between them; when the sequence finishes, the watchdog is
// returned to reset mode so the safety net is armed again.
//
// # Basic Usage
//
// Construct a controller over a hardware device and use the four
// operations:
//
//	dev := sim.NewDevice() // or an avr.Device on real hardware
//	w := watchdog.New(dev, watchdog.WithPeriod(8))
//
//	w.Sleep(16) // blocking: two 8 s deep-sleep cycles
//	w.Wait(20)  // non-blocking: arms floor(20/8) = 2 cycles
//	w.Reset(0)  // pet the dog / cancel a pending wait
//
// # Blocking Sleep
//
// Sleep powers down non-essential peripherals, enters the deepest
// low-power state, and lets the watchdog interrupt wake the core once
// per timeout step. The calling goroutine is occupied for the full
// duration; the only concurrent activity is the timeout handler.
//
// # Non-blocking Wait
//
// Wait arms the countdown and returns immediately. The timeout handler
// drives progress; poll Waiting (or Cycles/Target) to detect
// completion:
//
//	w.Wait(20)
//	for w.Waiting() {
//	    // do other work
//	}
//
// # Reset Supervision
//
// Reset with a non-zero period re-quantizes the timeout step and
// reprograms plain reset supervision. Reset always cancels an in-flight
// wait. Calling Reset periodically from the main loop is the standard
// "pet the dog" pattern:
//
//	w.Reset(8)
//	for {
//	    doWork()
//	    w.Reset(0)
//	}
//
// # Rounding
//
// Durations are decomposed with truncating division: Sleep(20) with an
// 8 s step sleeps 2 cycles (16 s). Pass multiples of the current step
// for exact durations. A Wait shorter than one step rounds up to one
// cycle so the sequence always terminates; a Sleep shorter than one
// step rounds to zero cycles and returns immediately.
//
// # Progress Tracking and Logging
//
// Track cycle progress with a callback, and plug in any logging
// framework via the Logger interface:
//
//	w := watchdog.New(dev,
//	    watchdog.WithCycleCallback(func(e watchdog.CycleEvent) {
//	        fmt.Printf("[%s] cycle %d/%d\n", e.Phase, e.Cycle, e.Total)
//	    }),
//	    watchdog.WithLogger(myLogger),
//	)
//
// # Hardware Independence
//
// This package does NOT touch hardware registers directly. The Device
// interface is the full hardware boundary; the sim package provides a
// host-side simulation for tests and development, and the avr package
// provides the register implementation for AVR targets.
//
// # Error Handling
//
// There is no recoverable-error taxonomy: quantization is total and
// register writes cannot fail. The one enforced safety property is
// fail-safe behavior: hardware clears the interrupt-enable bit after
// each timeout interrupt, so if the handler is never re-armed the next
// expiry resets the device instead of hanging it.
package watchdog
