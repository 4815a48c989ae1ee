package sim

import (
	"testing"

	"github.com/moffa90/go-wdt/wdt"
)

func TestWriteControlRequiresUnlock(t *testing.T) {
	d := NewDevice()

	// A direct configuration write without the unlock sequence must not
	// change WDE or the prescaler.
	d.WriteControl(wdt.ControlBits(wdt.Step8s, wdt.ResetOnly))

	if got := d.ReadControl(); got&wdt.BitWDE != 0 {
		t.Errorf("WDE changed without unlock: control = 0b%08b", got)
	}
	if got := d.ReadControl(); got&wdt.PrescalerMask != 0 {
		t.Errorf("prescaler changed without unlock: control = 0b%08b", got)
	}
}

func TestWriteControlUnlockSequence(t *testing.T) {
	d := NewDevice()
	want := wdt.ControlBits(wdt.Step2s, wdt.InterruptAndResume)

	state := d.DisableInterrupts()
	d.WriteControl(wdt.UnlockBits)
	d.WriteControl(want)
	d.RestoreInterrupts(state)

	if got := d.ReadControl(); got != want {
		t.Errorf("control = 0b%08b, want 0b%08b", got, want)
	}
	if n := d.UnsafeWrites(); n != 0 {
		t.Errorf("UnsafeWrites() = %d, want 0", n)
	}
}

func TestWriteControlWindowClosesAfterOneWrite(t *testing.T) {
	d := NewDevice()

	state := d.DisableInterrupts()
	d.WriteControl(wdt.UnlockBits)
	d.WriteControl(wdt.ControlBits(wdt.Step1s, wdt.ResetOnly))
	// Window consumed: this write must be dropped.
	d.WriteControl(wdt.ControlBits(wdt.Step8s, wdt.ResetOnly))
	d.RestoreInterrupts(state)

	if got := d.Step(); got != wdt.Step1s {
		t.Errorf("step after closed window = %v, want %v", got, wdt.Step1s)
	}
}

func TestWriteControlWDIEWritableOutsideWindow(t *testing.T) {
	d := NewDevice()

	state := d.DisableInterrupts()
	d.WriteControl(wdt.UnlockBits)
	d.WriteControl(wdt.ControlBits(wdt.Step8s, wdt.ResetOnly))
	d.RestoreInterrupts(state)

	// WDIE can be set without a new unlock, like on real hardware.
	d.WriteControl(d.ReadControl() | wdt.BitWDIE)

	if got := d.Mode(); got != wdt.InterruptAndResume {
		t.Errorf("mode = %v, want InterruptAndResume", got)
	}
	if got := d.Step(); got != wdt.Step8s {
		t.Errorf("step = %v, want Step8s", got)
	}
}

func TestUnsafeWriteDetection(t *testing.T) {
	d := NewDevice()

	// Unlock with interrupts still enabled.
	d.WriteControl(wdt.UnlockBits)
	d.WriteControl(wdt.ControlBits(wdt.Step8s, wdt.ResetOnly))

	if n := d.UnsafeWrites(); n != 1 {
		t.Errorf("UnsafeWrites() = %d, want 1", n)
	}
}

func TestExpireInterruptMode(t *testing.T) {
	d := NewDevice()

	fired := 0
	d.SetTimeoutHandler(func() { fired++ })

	state := d.DisableInterrupts()
	d.WriteControl(wdt.UnlockBits)
	d.WriteControl(wdt.ControlBits(wdt.Step8s, wdt.InterruptAndResume))
	d.RestoreInterrupts(state)

	d.Expire()

	if fired != 1 {
		t.Fatalf("handler fired %d times, want 1", fired)
	}
	if got := d.Mode(); got != wdt.ResetOnly {
		t.Errorf("mode after interrupt = %v, want ResetOnly (hardware clears WDIE)", got)
	}
	if d.Resets() != 0 {
		t.Errorf("Resets() = %d, want 0", d.Resets())
	}
}

func TestExpireResetMode(t *testing.T) {
	d := NewDevice()
	d.SetTimeoutHandler(func() { t.Error("handler must not fire in reset mode") })

	state := d.DisableInterrupts()
	d.WriteControl(wdt.UnlockBits)
	d.WriteControl(wdt.ControlBits(wdt.Step8s, wdt.ResetOnly))
	d.RestoreInterrupts(state)

	d.Expire()

	if d.Resets() != 1 {
		t.Errorf("Resets() = %d, want 1", d.Resets())
	}
	if d.ReadStatus()&wdt.BitWDRF == 0 {
		t.Error("WDRF not latched after watchdog reset")
	}
}

func TestExpireDisabledWatchdog(t *testing.T) {
	d := NewDevice()
	d.SetTimeoutHandler(func() { t.Error("handler must not fire while disabled") })

	d.Expire()

	if d.Resets() != 0 {
		t.Errorf("Resets() = %d, want 0", d.Resets())
	}
}

func TestInterruptStateNesting(t *testing.T) {
	d := NewDevice()

	outer := d.DisableInterrupts()
	inner := d.DisableInterrupts()

	if inner != 0 {
		t.Errorf("nested DisableInterrupts() = 0x%02X, want 0 (already disabled)", inner)
	}

	d.RestoreInterrupts(inner)
	d.RestoreInterrupts(outer)

	// Interrupts enabled again: an unlock write now counts as unsafe.
	d.WriteControl(wdt.UnlockBits)
	if n := d.UnsafeWrites(); n != 1 {
		t.Errorf("UnsafeWrites() = %d, want 1 after restore", n)
	}
}

func TestPeripheralPower(t *testing.T) {
	d := NewDevice()

	if !d.PeripheralsEnabled() {
		t.Fatal("peripherals must start powered")
	}

	d.DisablePeripherals()
	if d.PeripheralsEnabled() {
		t.Error("peripherals still on after DisablePeripherals")
	}

	d.EnablePeripherals()
	if !d.PeripheralsEnabled() {
		t.Error("peripherals still off after EnablePeripherals")
	}
}
