// Package sim provides a simulated watchdog device for host-side
// development and testing.
//
// # Overview
//
// Device implements watchdog.Device entirely in memory. It reproduces
// the hardware behaviors the controller depends on:
//
//   - the WDTCSR timed unlock window (a control write changing WDE or
//     the prescaler outside the window is dropped)
//   - hardware clearing WDIE on each timeout interrupt, so an
//     un-re-armed watchdog falls through to a reset on the next expiry
//   - the power-down sleep state, woken only by an injected expiry, with
//     the bound handler running before sleep returns
//
// Time does not pass on its own: tests and tools inject expiries with
// Expire, which makes multi-cycle sequences fully deterministic.
//
// # Basic Usage
//
//	dev := sim.NewDevice()
//	w := watchdog.New(dev)
//
//	w.Wait(20)     // 2 cycles at the default 8 s step
//	dev.Expire()   // cycle 1: handler re-arms
//	dev.Expire()   // cycle 2: sequence completes, reset mode restored
//
//	fmt.Println(dev.Mode())   // reset
//	fmt.Println(w.Waiting())  // false
//
// # Scripted Scenarios
//
// Scenario runs a YAML-scripted timeline of operations, expiries, and
// assertions:
//
//	name: wait two cycles
//	period: 0
//	actions:
//	  - op: wait
//	    seconds: 20
//	  - op: expire
//	    count: 2
//	  - op: assert
//	    mode: reset
//	    cycles: 2
//	    waiting: false
//
// Load it and run it against a device/controller pair:
//
//	sc, err := sim.Load("wait20.yaml")
//	...
//	dev := sim.NewDevice()
//	w := watchdog.New(dev, watchdog.WithPeriod(sc.Period))
//	err = sc.Run(dev, w)
//
// # Inspection
//
// The device records what a test usually wants to assert: the
// programmed mode and step, pet and reset counts, sleep iterations, and
// whether any unlock sequence was started with interrupts still enabled
// (UnsafeWrites).
package sim
