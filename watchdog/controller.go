package watchdog

import (
	"sync/atomic"

	"github.com/moffa90/go-wdt/wdt"
)

// Cycle phase names passed to CycleCallback.
const (
	// PhaseArmed is reported when a sleep or wait sequence is armed
	PhaseArmed = "armed"

	// PhaseCycle is reported after each elapsed timeout step
	PhaseCycle = "cycle"

	// PhaseComplete is reported when a sequence finishes
	PhaseComplete = "complete"
)

// Watchdog drives a device's hardware watchdog timer, both as a reset
// safety net and as a periodic wake source for multi-step sleep and wait
// sequences longer than the hardware's maximum single timeout.
//
// There is exactly one logical watchdog timer per device; create one
// Watchdog per Device and reuse it.
type Watchdog struct {
	device Device
	config Config

	// step is the timeout step presently programmed into hardware.
	// Replaced wholesale by Reset; never mutated concurrently with an
	// in-flight sleep or wait sequence.
	step wdt.Step

	// cycles counts elapsed timeout events in the current sequence.
	// Incremented only by the timeout handler.
	cycles atomic.Uint64

	// target is the cycle count that completes the in-progress wait
	// sequence; 0 means no wait is pending.
	target atomic.Uint64
}

// New creates a watchdog controller bound to the given device.
// Construction disables the hardware watchdog, quantizes the optional
// requested period (see WithPeriod), and binds the timeout interrupt
// handler. The watchdog stays disabled until the first Configure, Sleep,
// Wait, or Reset call.
//
// Example:
//
//	dev := sim.NewDevice()
//	w := watchdog.New(dev, watchdog.WithPeriod(8))
func New(device Device, opts ...Option) *Watchdog {
	if device == nil {
		panic("device cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	w := &Watchdog{
		device: device,
		config: cfg,
		step:   wdt.DeterminePeriod(cfg.Period),
	}

	device.SetTimeoutHandler(w.handleTimeout)
	w.disable()

	return w
}

// Step returns the timeout step presently programmed into hardware.
func (w *Watchdog) Step() wdt.Step {
	return w.step
}

// Cycles returns the number of timeout events elapsed in the current
// sleep or wait sequence.
func (w *Watchdog) Cycles() uint64 {
	return w.cycles.Load()
}

// Target returns the cycle count that completes the in-progress wait
// sequence, or 0 if no wait is pending.
func (w *Watchdog) Target() uint64 {
	return w.target.Load()
}

// Waiting reports whether a non-blocking wait sequence is in progress.
// Foreground code may poll this to detect completion.
func (w *Watchdog) Waiting() bool {
	return w.target.Load() != 0
}

// Configure programs the watchdog with the current timeout step.
// sleepOrWait false (the default behavior) selects reset mode, where a
// timeout resets the device; true selects interrupt mode, where a timeout
// raises the interrupt so a multi-step sequence can resume execution.
//
// The register write runs the timed unlock sequence with interrupts
// disabled, clears a stale watchdog reset flag so a future genuine
// watchdog reset stays detectable, and restarts the freshly programmed
// timer so no fraction of a previous period carries over.
func (w *Watchdog) Configure(sleepOrWait bool) {
	mode := wdt.ResetOnly
	if sleepOrWait {
		mode = wdt.InterruptAndResume
	}
	w.program(wdt.ControlBits(w.step, mode))
}

// Sleep puts the device into deep sleep for the requested number of
// seconds, blocking the caller for the full duration. The request is
// decomposed into floor(periodInSeconds / step) timeout steps; requests
// smaller than one step floor to zero cycles and return immediately.
// Pass a multiple of the current step for an exact duration.
//
// Non-essential peripherals are powered down for the duration. On each
// timeout the interrupt handler re-arms the watchdog and execution
// resumes just long enough to re-enter sleep. Before returning, Sleep
// restores the peripherals and returns the watchdog to reset mode, so
// the safety net is armed again by the time the caller regains control.
func (w *Watchdog) Sleep(periodInSeconds uint) {
	ncycles := w.cyclesFor(periodInSeconds)

	w.logDebug("entering deep sleep",
		"seconds", periodInSeconds,
		"step", w.step.String(),
		"cycles", ncycles,
	)

	w.resetProgress(0)
	w.Configure(true)
	w.device.DisablePeripherals()

	for w.cycles.Load() < ncycles {
		// Execution halts here until the timeout interrupt fires.
		w.device.SleepPowerDown()

		// The handler already re-armed interrupt mode, but the wake may
		// have come from another interrupt source; arm again so the next
		// step starts from a full period.
		w.Configure(true)

		w.reportCycle(CycleEvent{
			Phase: PhaseCycle,
			Cycle: w.cycles.Load(),
			Step:  w.step,
		})
	}

	w.device.EnablePeripherals()
	w.Configure(false)

	w.reportCycle(CycleEvent{
		Phase: PhaseComplete,
		Cycle: w.cycles.Load(),
		Step:  w.step,
	})

	w.logInfo("deep sleep complete", "cycles", ncycles)
}

// Wait arms a non-blocking countdown of the requested number of seconds
// and returns immediately. The request is decomposed into
// floor(periodInSeconds / step) timeout steps, with a minimum of one so
// the sequence always terminates back in reset mode. Progress is driven
// entirely by the timeout interrupt handler; once the target is reached
// the watchdog returns to reset mode automatically and Waiting reports
// false.
func (w *Watchdog) Wait(periodInSeconds uint) {
	ncycles := w.cyclesFor(periodInSeconds)
	if ncycles == 0 {
		// A wait shorter than one step still needs a terminating expiry.
		ncycles = 1
	}

	w.resetProgress(ncycles)
	w.Configure(true)

	w.logDebug("wait armed",
		"seconds", periodInSeconds,
		"step", w.step.String(),
		"cycles", ncycles,
	)

	w.reportCycle(CycleEvent{
		Phase: PhaseArmed,
		Total: ncycles,
		Step:  w.step,
	})
}

// Reset pets, cancels, or reprograms the watchdog. If a reset-capable
// countdown is pending (WDE set, or a watchdog reset recorded in the
// status register), the timer is restarted immediately to head off an
// imminent reset. A non-zero periodInSeconds re-quantizes the timeout
// step. In both cases any in-flight wait sequence is cancelled and the
// watchdog is reprogrammed in reset mode: Reset always supersedes Wait,
// returning the device to plain reset supervision.
//
// Reset is not interrupt-safe against a simultaneously firing timeout
// handler; call it at startup or between sequences.
func (w *Watchdog) Reset(periodInSeconds uint) {
	if w.device.ReadControl()&wdt.BitWDE != 0 || w.device.ReadStatus()&wdt.BitWDRF != 0 {
		w.device.ResetTimer()
	}

	if periodInSeconds != 0 {
		w.step = wdt.DeterminePeriod(periodInSeconds)
		w.target.Store(0)
		w.Configure(false)
		w.logInfo("watchdog reprogrammed", "step", w.step.String())
		return
	}

	if w.target.Load() != 0 {
		w.target.Store(0)
		w.Configure(false)
		w.logInfo("pending wait cancelled")
	}
}

// handleTimeout runs on every watchdog timeout interrupt while in
// interrupt mode. It advances the cycle counter and either re-arms the
// next step or finalizes the sequence into reset mode. Only counter
// arithmetic and at most one register-programming call happen here; the
// handler never blocks.
func (w *Watchdog) handleTimeout() {
	count := w.cycles.Add(1)
	target := w.target.Load()

	switch {
	case target == 0:
		// Blocking sleep path: no target, the foreground loop decides
		// when to stop. Keep re-arming so it wakes once per step.
		w.Configure(true)

	case count < target:
		w.Configure(true)

	case count == target:
		// Sequence complete: restore the reset safety net and clear the
		// target so Waiting reports false.
		w.target.Store(0)
		w.Configure(false)
		w.reportCycle(CycleEvent{
			Phase: PhaseComplete,
			Cycle: count,
			Total: target,
			Step:  w.step,
		})
	}
}

// program performs the register-level two-stage unlock-then-write
// sequence with interrupts disabled, then restarts the timer.
func (w *Watchdog) program(bits uint8) {
	state := w.device.DisableInterrupts()

	// A stale WDRF would mask detection of the next genuine
	// watchdog-triggered reset, and hardware keeps WDE forced on while
	// WDRF is set.
	w.device.WriteStatus(w.device.ReadStatus() &^ wdt.BitWDRF)

	// Setting WDCE and WDE together opens the unlock window; the real
	// configuration write must land within it.
	w.device.WriteControl(wdt.UnlockBits)
	w.device.WriteControl(bits)

	w.device.RestoreInterrupts(state)

	w.device.ResetTimer()
}

// disable turns the watchdog fully off. Used at construction so the
// hardware is in a known safe state until first use.
func (w *Watchdog) disable() {
	state := w.device.DisableInterrupts()

	w.device.ResetTimer()
	w.device.WriteStatus(w.device.ReadStatus() &^ wdt.BitWDRF)
	w.device.WriteControl(wdt.UnlockBits)
	w.device.WriteControl(0)

	w.device.RestoreInterrupts(state)
}

// cyclesFor converts a requested duration into a whole number of timeout
// steps using truncating division.
func (w *Watchdog) cyclesFor(periodInSeconds uint) uint64 {
	stepSeconds := w.step.Seconds()
	if stepSeconds == 0 {
		stepSeconds = 1
	}
	return uint64(periodInSeconds / stepSeconds)
}

// resetProgress clears the cycle counter and sets the wait target as one
// unit. Both fields are shared with the timeout handler, so the
// multi-field update runs with interrupts disabled to keep a concurrent
// increment from observing a half-reset sequence.
func (w *Watchdog) resetProgress(target uint64) {
	state := w.device.DisableInterrupts()
	w.cycles.Store(0)
	w.target.Store(target)
	w.device.RestoreInterrupts(state)
}

// reportCycle calls the cycle callback if configured.
func (w *Watchdog) reportCycle(event CycleEvent) {
	if w.config.CycleCallback != nil {
		w.config.CycleCallback(event)
	}
}

// logDebug logs a debug message if a logger is configured.
func (w *Watchdog) logDebug(msg string, keysAndValues ...interface{}) {
	if w.config.Logger != nil {
		w.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (w *Watchdog) logInfo(msg string, keysAndValues ...interface{}) {
	if w.config.Logger != nil {
		w.config.Logger.Info(msg, keysAndValues...)
	}
}
