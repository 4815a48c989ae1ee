package watchdog

// Device is the narrow hardware capability set the controller needs.
// It models the watchdog-related registers of an AVR-class MCU plus the
// sleep and power-management operations used during a deep-sleep cycle.
//
// Implementations are expected to behave like the real hardware:
// register writes cannot fail, and a control write that changes WDE or
// the prescaler bits only takes effect inside the timed unlock window
// opened by writing wdt.UnlockBits (see the wdt package docs).
//
// The library ships a host-side simulation in the sim package and an
// AVR register implementation in the avr package; any other backend
// (test double, remote bridge, emulator) just needs these operations.
type Device interface {
	// ReadControl returns the current WDTCSR value.
	ReadControl() uint8

	// WriteControl writes WDTCSR. Callers changing WDE or the prescaler
	// must perform the timed unlock sequence with interrupts disabled.
	WriteControl(bits uint8)

	// ReadStatus returns the current MCUSR value.
	ReadStatus() uint8

	// WriteStatus writes MCUSR, typically to clear a stale reset flag.
	WriteStatus(bits uint8)

	// ResetTimer restarts the watchdog countdown (the "wdr" instruction,
	// also known as petting the dog).
	ResetTimer()

	// DisableInterrupts masks interrupts and returns the prior state so
	// it can be handed back to RestoreInterrupts.
	DisableInterrupts() uint8

	// RestoreInterrupts restores the interrupt-enable state returned by
	// a matching DisableInterrupts call.
	RestoreInterrupts(state uint8)

	// SleepPowerDown enters the deepest low-power sleep state. Execution
	// halts until an interrupt wakes the core; the bound timeout handler
	// has already run by the time this returns.
	SleepPowerDown()

	// DisablePeripherals powers down non-essential peripherals to
	// minimize draw while sleeping.
	DisablePeripherals()

	// EnablePeripherals powers the peripherals back up.
	EnablePeripherals()

	// SetTimeoutHandler binds the function invoked on every watchdog
	// timeout interrupt. There is exactly one handler per device.
	SetTimeoutHandler(handler func())
}
