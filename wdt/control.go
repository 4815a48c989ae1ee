package wdt

// Mode selects what a watchdog timeout does.
type Mode uint8

const (
	// ResetOnly configures a timeout to trigger a full device reset.
	// This is the safety-net behavior.
	ResetOnly Mode = iota

	// InterruptAndResume configures a timeout to raise an interrupt so
	// program execution resumes. The interrupt must re-arm the watchdog;
	// hardware clears WDIE after firing, so a second unhandled expiry
	// falls through to a reset.
	InterruptAndResume
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ResetOnly:
		return "reset"
	case InterruptAndResume:
		return "interrupt"
	default:
		return "unknown"
	}
}

// ControlBits encodes a timeout step and operating mode into the WDTCSR
// configuration value. WDE is always set so the reset safety net stays
// armed; WDIE is added for InterruptAndResume so the first expiry raises
// the interrupt instead of resetting.
//
// The returned value is the second write of the timed unlock sequence;
// it does not include WDCE.
func ControlBits(step Step, mode Mode) uint8 {
	var bits uint8
	if step&0x08 != 0 {
		bits |= BitWDP3
	}
	if step&0x04 != 0 {
		bits |= BitWDP2
	}
	if step&0x02 != 0 {
		bits |= BitWDP1
	}
	if step&0x01 != 0 {
		bits |= BitWDP0
	}

	bits |= BitWDE
	if mode == InterruptAndResume {
		bits |= BitWDIE
	}

	return bits
}

// StepFromControl decodes the prescaler bits of a WDTCSR value back into
// a timeout step.
func StepFromControl(bits uint8) Step {
	var step Step
	if bits&BitWDP3 != 0 {
		step |= 0x08
	}
	if bits&BitWDP2 != 0 {
		step |= 0x04
	}
	if bits&BitWDP1 != 0 {
		step |= 0x02
	}
	if bits&BitWDP0 != 0 {
		step |= 0x01
	}
	return step
}

// ModeFromControl decodes the operating mode of a WDTCSR value.
// WDIE set means a timeout raises the interrupt first; otherwise a
// timeout resets the device.
func ModeFromControl(bits uint8) Mode {
	if bits&BitWDIE != 0 {
		return InterruptAndResume
	}
	return ResetOnly
}
