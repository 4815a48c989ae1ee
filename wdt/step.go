package wdt

// Step is one hardware-supported discrete watchdog timeout duration.
// Values match the avr-libc WDTO_* encoding: the low three bits map onto
// WDP2..WDP0 and bit 3 maps onto WDP3.
type Step uint8

// Supported timeout steps, shortest to longest.
const (
	// Step16ms is the 2K cycle timeout (nominal 16 ms)
	Step16ms Step = 0

	// Step32ms is the 4K cycle timeout (nominal 32 ms)
	Step32ms Step = 1

	// Step64ms is the 8K cycle timeout (nominal 64 ms)
	Step64ms Step = 2

	// Step125ms is the 16K cycle timeout (nominal 125 ms)
	Step125ms Step = 3

	// Step250ms is the 32K cycle timeout (nominal 250 ms)
	Step250ms Step = 4

	// Step500ms is the 64K cycle timeout (nominal 500 ms)
	Step500ms Step = 5

	// Step1s is the 128K cycle timeout (nominal 1 s)
	Step1s Step = 6

	// Step2s is the 256K cycle timeout (nominal 2 s)
	Step2s Step = 7

	// Step4s is the 512K cycle timeout (nominal 4 s)
	Step4s Step = 8

	// Step8s is the 1024K cycle timeout (nominal 8 s)
	Step8s Step = 9
)

// MaxStep is the coarsest supported timeout step.
const MaxStep = Step8s

// stepMillis holds the nominal timeout of each step in milliseconds.
var stepMillis = [...]uint{16, 32, 64, 125, 250, 500, 1000, 2000, 4000, 8000}

// Valid reports whether s is a hardware-supported step value.
func (s Step) Valid() bool {
	return s <= MaxStep
}

// Millis returns the nominal step duration in milliseconds.
// Returns 0 for invalid steps.
func (s Step) Millis() uint {
	if !s.Valid() {
		return 0
	}
	return stepMillis[s]
}

// Seconds returns the nominal step duration in whole seconds.
// Sub-second steps return 0.
func (s Step) Seconds() uint {
	return s.Millis() / 1000
}

// String returns a human-readable step name such as "8s" or "125ms".
func (s Step) String() string {
	switch s {
	case Step16ms:
		return "16ms"
	case Step32ms:
		return "32ms"
	case Step64ms:
		return "64ms"
	case Step125ms:
		return "125ms"
	case Step250ms:
		return "250ms"
	case Step500ms:
		return "500ms"
	case Step1s:
		return "1s"
	case Step2s:
		return "2s"
	case Step4s:
		return "4s"
	case Step8s:
		return "8s"
	default:
		return "invalid"
	}
}

// DeterminePeriod quantizes a requested duration in seconds to the largest
// supported step not exceeding it. A request of exactly 0 selects the
// coarsest step (8 s); requests below 2 s select the 1 s step. The function
// is total: every input maps to a valid step.
func DeterminePeriod(periodInSeconds uint) Step {
	step := Step1s

	// The order of these cases from highest to lowest matters: control flow
	// cascades down to the right step based on its position in the range of
	// discrete timeouts.
	switch {
	case periodInSeconds >= 8 || periodInSeconds == 0:
		step = Step8s
	case periodInSeconds >= 4:
		step = Step4s
	case periodInSeconds >= 2:
		step = Step2s
	}

	return step
}
