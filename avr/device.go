//go:build avrwdt

package avr

import (
	avrdev "device/avr"
	"runtime/interrupt"
)

// timeoutHandler is the bound watchdog timeout handler. The interrupt
// vector is static on AVR, so there is exactly one per program.
var timeoutHandler func()

func init() {
	interrupt.New(avrdev.IRQ_WDT, func(interrupt.Interrupt) {
		if timeoutHandler != nil {
			timeoutHandler()
		}
	})
}

// Device exposes the ATmega328P watchdog registers through the
// watchdog.Device capability set.
type Device struct{}

// NewDevice returns the register-backed device. All instances address
// the same hardware; there is one watchdog per MCU.
func NewDevice() *Device {
	return &Device{}
}

// ReadControl returns WDTCSR.
func (d *Device) ReadControl() uint8 {
	return avrdev.WDTCSR.Get()
}

// WriteControl writes WDTCSR. The timed unlock discipline is the
// caller's responsibility, as on real hardware.
func (d *Device) WriteControl(bits uint8) {
	avrdev.WDTCSR.Set(bits)
}

// ReadStatus returns MCUSR.
func (d *Device) ReadStatus() uint8 {
	return avrdev.MCUSR.Get()
}

// WriteStatus writes MCUSR.
func (d *Device) WriteStatus(bits uint8) {
	avrdev.MCUSR.Set(bits)
}

// ResetTimer issues the wdr instruction.
func (d *Device) ResetTimer() {
	avrdev.Asm("wdr")
}

// DisableInterrupts masks global interrupts and returns the prior state.
func (d *Device) DisableInterrupts() uint8 {
	return uint8(interrupt.Disable())
}

// RestoreInterrupts restores the state from DisableInterrupts.
func (d *Device) RestoreInterrupts(state uint8) {
	interrupt.Restore(interrupt.State(state))
}

// SleepPowerDown enters SLEEP_MODE_PWR_DOWN until an interrupt wakes the
// core, then clears the sleep enable bit.
func (d *Device) SleepPowerDown() {
	avrdev.SMCR.Set(avrdev.SMCR_SM_PWDN<<1 | avrdev.SMCR_SE)
	avrdev.Asm("sleep")
	avrdev.SMCR.Set(0)
}

// DisablePeripherals gates the clocks of all peripherals in the power
// reduction register.
func (d *Device) DisablePeripherals() {
	avrdev.PRR.Set(0xFF)
}

// EnablePeripherals restores the peripheral clocks.
func (d *Device) EnablePeripherals() {
	avrdev.PRR.Set(0x00)
}

// SetTimeoutHandler binds the watchdog timeout interrupt handler.
func (d *Device) SetTimeoutHandler(handler func()) {
	timeoutHandler = handler
}
