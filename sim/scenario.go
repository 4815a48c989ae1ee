package sim

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/moffa90/go-wdt/watchdog"
)

// Action op names accepted in a scenario script.
const (
	// OpWait arms a non-blocking wait for Seconds
	OpWait = "wait"

	// OpExpire injects Count hardware timeouts (default 1)
	OpExpire = "expire"

	// OpPet performs Reset(0): pet the dog, cancel a pending wait
	OpPet = "pet"

	// OpReset performs Reset(Seconds) with a non-zero period
	OpReset = "reset"

	// OpAssert checks controller and device state
	OpAssert = "assert"
)

// Scenario is a scripted timeline of controller operations, injected
// expiries, and state assertions, loaded from YAML. Scenarios drive the
// simulated device through multi-cycle sequences without real time
// passing.
type Scenario struct {
	// Name identifies the scenario in output.
	Name string `yaml:"name"`

	// Period is the requested watchdog period in seconds passed at
	// construction; 0 selects the coarsest step.
	Period uint `yaml:"period"`

	// Actions is the ordered script.
	Actions []Action `yaml:"actions"`
}

// Action is one step of a scenario script.
type Action struct {
	// Op selects the action: wait, expire, pet, reset, or assert.
	Op string `yaml:"op"`

	// Seconds is the duration for wait and reset ops.
	Seconds uint `yaml:"seconds"`

	// Count is the number of expiries for an expire op (default 1).
	Count int `yaml:"count"`

	// Mode is the expected operating mode for an assert op:
	// "reset" or "interrupt".
	Mode string `yaml:"mode"`

	// Cycles is the expected cycle counter for an assert op.
	Cycles *uint64 `yaml:"cycles"`

	// Waiting is the expected Waiting() state for an assert op.
	Waiting *bool `yaml:"waiting"`

	// Step is the expected timeout step name for an assert op,
	// e.g. "8s" or "500ms".
	Step string `yaml:"step"`
}

// Load parses a scenario script from the given file path.
//
// Example:
//
//	sc, err := sim.Load("scenarios/wait20.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadReader(f)
}

// LoadReader parses a scenario script from any io.Reader.
// This is useful for testing and for embedded scripts.
func LoadReader(r io.Reader) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	if err := sc.validate(); err != nil {
		return nil, err
	}
	sc.normalize()

	return &sc, nil
}

// validate checks the script before it can run. Every action must name a
// known op and carry the fields that op needs.
func (s *Scenario) validate() error {
	if len(s.Actions) == 0 {
		return &ActionError{Index: -1, Reason: "scenario has no actions"}
	}

	for i, a := range s.Actions {
		switch a.Op {
		case OpWait:
			if a.Seconds == 0 {
				return &ActionError{Index: i, Op: a.Op, Reason: "wait requires seconds > 0"}
			}
		case OpExpire:
			if a.Count < 0 {
				return &ActionError{Index: i, Op: a.Op, Reason: "expire count must not be negative"}
			}
		case OpPet:
			// no fields
		case OpReset:
			if a.Seconds == 0 {
				return &ActionError{Index: i, Op: a.Op, Reason: "reset requires seconds > 0; use pet for Reset(0)"}
			}
		case OpAssert:
			if a.Mode == "" && a.Cycles == nil && a.Waiting == nil && a.Step == "" {
				return &ActionError{Index: i, Op: a.Op, Reason: "assert has nothing to check"}
			}
			if a.Mode != "" && a.Mode != "reset" && a.Mode != "interrupt" {
				return &ActionError{Index: i, Op: a.Op, Reason: fmt.Sprintf("unknown mode %q", a.Mode)}
			}
		case "":
			return &ActionError{Index: i, Reason: "missing op"}
		default:
			return &ActionError{Index: i, Op: a.Op, Reason: "unknown op"}
		}
	}

	return nil
}

// normalize fills in defaults after validation.
func (s *Scenario) normalize() {
	for i := range s.Actions {
		if s.Actions[i].Op == OpExpire && s.Actions[i].Count == 0 {
			s.Actions[i].Count = 1
		}
	}
}

// Run executes the script against a device and its controller. The
// controller must have been constructed over the device; use the
// scenario's Period at construction so step assertions line up.
// Execution stops at the first failed assertion.
//
// Example:
//
//	dev := sim.NewDevice()
//	w := watchdog.New(dev, watchdog.WithPeriod(sc.Period))
//	if err := sc.Run(dev, w); err != nil {
//	    log.Fatal(err)
//	}
func (s *Scenario) Run(dev *Device, w *watchdog.Watchdog) error {
	for i, a := range s.Actions {
		switch a.Op {
		case OpWait:
			w.Wait(a.Seconds)
		case OpExpire:
			for n := 0; n < a.Count; n++ {
				dev.Expire()
			}
		case OpPet:
			w.Reset(0)
		case OpReset:
			w.Reset(a.Seconds)
		case OpAssert:
			if err := s.check(i, a, dev, w); err != nil {
				return err
			}
		}
	}
	return nil
}

// check evaluates one assert action.
func (s *Scenario) check(index int, a Action, dev *Device, w *watchdog.Watchdog) error {
	if a.Mode != "" {
		if got := dev.Mode().String(); got != a.Mode {
			return &AssertionError{Index: index, Field: "mode", Want: a.Mode, Got: got}
		}
	}
	if a.Cycles != nil {
		if got := w.Cycles(); got != *a.Cycles {
			return &AssertionError{
				Index: index,
				Field: "cycles",
				Want:  strconv.FormatUint(*a.Cycles, 10),
				Got:   strconv.FormatUint(got, 10),
			}
		}
	}
	if a.Waiting != nil {
		if got := w.Waiting(); got != *a.Waiting {
			return &AssertionError{
				Index: index,
				Field: "waiting",
				Want:  strconv.FormatBool(*a.Waiting),
				Got:   strconv.FormatBool(got),
			}
		}
	}
	if a.Step != "" {
		if got := w.Step().String(); got != a.Step {
			return &AssertionError{Index: index, Field: "step", Want: a.Step, Got: got}
		}
	}
	return nil
}
