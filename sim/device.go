package sim

import (
	"sync"

	"github.com/moffa90/go-wdt/watchdog"
	"github.com/moffa90/go-wdt/wdt"
)

// sregInterruptBit mirrors the AVR SREG global interrupt enable bit.
const sregInterruptBit = 1 << 7

// Device is an in-memory watchdog peripheral. It models the WDTCSR timed
// unlock window, the hardware clearing of WDIE on each timeout interrupt,
// and the power-down sleep state, so controller behavior can be exercised
// deterministically on the host.
//
// Timeouts do not elapse on their own: call Expire to inject one. In
// interrupt mode an expiry runs the bound timeout handler and wakes a
// goroutine blocked in SleepPowerDown; in reset mode it records a device
// reset instead.
//
// Device is safe for concurrent use by one foreground goroutine and one
// goroutine injecting expiries, matching the single-interrupt-source
// model of the real hardware.
type Device struct {
	mu   sync.Mutex
	cond *sync.Cond

	control      uint8
	status       uint8
	unlockWindow int
	intEnabled   bool

	handler func()

	pets          int
	resets        int
	unsafeWrites  int
	sleepCount    int
	lastAwait     int
	sleeping      bool
	peripheralsOn bool

	wake chan struct{}
}

var _ watchdog.Device = (*Device)(nil)

// NewDevice creates a simulated device in its power-on state: watchdog
// disabled, interrupts enabled, peripherals powered.
func NewDevice() *Device {
	d := &Device{
		intEnabled:    true,
		peripheralsOn: true,
		wake:          make(chan struct{}, 1),
	}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// ReadControl returns the simulated WDTCSR value.
func (d *Device) ReadControl() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.control
}

// WriteControl writes the simulated WDTCSR, enforcing the hardware's
// timed unlock discipline: a write with WDCE and WDE set opens the
// unlock window and the next write is accepted in full; outside the
// window only WDIE is writable and changes to WDE or the prescaler are
// dropped, as real hardware drops them.
//
// Opening the window with interrupts enabled is accepted (timing cannot
// be simulated) but counted; see UnsafeWrites.
func (d *Device) WriteControl(bits uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.unlockWindow > 0 {
		d.control = bits
		d.unlockWindow = 0
		return
	}

	if bits&wdt.BitWDCE != 0 && bits&wdt.BitWDE != 0 {
		if d.intEnabled {
			d.unsafeWrites++
		}
		d.control = bits
		d.unlockWindow = 1
		return
	}

	// Outside the unlock window only WDIE takes effect.
	d.control = (d.control &^ wdt.BitWDIE) | (bits & wdt.BitWDIE)
}

// ReadStatus returns the simulated MCUSR value.
func (d *Device) ReadStatus() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// WriteStatus writes the simulated MCUSR.
func (d *Device) WriteStatus(bits uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = bits
}

// SetStatus seeds MCUSR directly, e.g. to simulate booting after a
// watchdog-triggered reset (WDRF set).
func (d *Device) SetStatus(bits uint8) {
	d.WriteStatus(bits)
}

// ResetTimer restarts the simulated countdown ("wdr").
func (d *Device) ResetTimer() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pets++
}

// DisableInterrupts clears the simulated global interrupt enable bit and
// returns the prior SREG-like state.
func (d *Device) DisableInterrupts() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()

	var state uint8
	if d.intEnabled {
		state = sregInterruptBit
	}
	d.intEnabled = false
	return state
}

// RestoreInterrupts restores the state returned by DisableInterrupts.
func (d *Device) RestoreInterrupts(state uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.intEnabled = state&sregInterruptBit != 0
}

// SleepPowerDown blocks until an injected expiry wakes the core. The
// bound timeout handler has already run by the time this returns,
// matching the hardware ordering of ISR before resumed execution.
func (d *Device) SleepPowerDown() {
	d.mu.Lock()
	d.sleeping = true
	d.sleepCount++
	d.cond.Broadcast()
	d.mu.Unlock()

	<-d.wake

	d.mu.Lock()
	d.sleeping = false
	d.mu.Unlock()
}

// AwaitSleep blocks until a goroutine enters a sleep iteration not yet
// observed by a previous AwaitSleep call. Expiry drivers use it to pace
// injections one sleep iteration at a time.
func (d *Device) AwaitSleep() {
	d.mu.Lock()
	for !d.sleeping || d.sleepCount <= d.lastAwait {
		d.cond.Wait()
	}
	d.lastAwait = d.sleepCount
	d.mu.Unlock()
}

// DisablePeripherals powers down the simulated peripherals.
func (d *Device) DisablePeripherals() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.peripheralsOn = false
}

// EnablePeripherals powers the simulated peripherals back up.
func (d *Device) EnablePeripherals() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.peripheralsOn = true
}

// SetTimeoutHandler binds the function invoked on expiry in interrupt mode.
func (d *Device) SetTimeoutHandler(handler func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handler = handler
}

// Expire injects one hardware timeout. With WDIE set, hardware clears
// WDIE, the bound handler runs with interrupts masked, and a sleeping
// goroutine is woken. With only WDE set, a device reset is recorded and
// WDRF is latched in the status register. A fully disabled watchdog
// ignores the expiry.
func (d *Device) Expire() {
	d.mu.Lock()

	switch {
	case d.control&wdt.BitWDIE != 0:
		// Hardware clears WDIE after the interrupt fires, so a second
		// unhandled expiry falls through to a reset.
		d.control &^= wdt.BitWDIE
		handler := d.handler
		prevInt := d.intEnabled
		d.intEnabled = false
		d.mu.Unlock()

		if handler != nil {
			handler()
		}

		d.mu.Lock()
		d.intEnabled = prevInt
		d.mu.Unlock()

		select {
		case d.wake <- struct{}{}:
		default:
		}

	case d.control&wdt.BitWDE != 0:
		d.resets++
		d.status |= wdt.BitWDRF
		d.mu.Unlock()

	default:
		d.mu.Unlock()
	}
}

// Mode returns the operating mode currently programmed.
func (d *Device) Mode() wdt.Mode {
	return wdt.ModeFromControl(d.ReadControl())
}

// Step returns the timeout step currently programmed.
func (d *Device) Step() wdt.Step {
	return wdt.StepFromControl(d.ReadControl())
}

// Enabled reports whether the watchdog is armed at all.
func (d *Device) Enabled() bool {
	return d.ReadControl()&(wdt.BitWDE|wdt.BitWDIE) != 0
}

// Pets returns how many times the countdown was restarted.
func (d *Device) Pets() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pets
}

// Resets returns how many watchdog-triggered device resets occurred.
func (d *Device) Resets() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resets
}

// UnsafeWrites returns how many unlock sequences were started with
// interrupts still enabled. A correct caller keeps this at zero.
func (d *Device) UnsafeWrites() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.unsafeWrites
}

// SleepCount returns how many times SleepPowerDown was entered.
func (d *Device) SleepCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sleepCount
}

// PeripheralsEnabled reports whether the simulated peripherals are powered.
func (d *Device) PeripheralsEnabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.peripheralsOn
}
