package sim

import (
	"errors"
	"strings"
	"testing"

	"github.com/moffa90/go-wdt/watchdog"
)

const waitScenario = `
name: wait two cycles
period: 0
actions:
  - op: wait
    seconds: 20
  - op: assert
    mode: interrupt
    waiting: true
    step: 8s
  - op: expire
    count: 2
  - op: assert
    mode: reset
    cycles: 2
    waiting: false
`

func TestLoadReader(t *testing.T) {
	sc, err := LoadReader(strings.NewReader(waitScenario))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sc.Name != "wait two cycles" {
		t.Errorf("Name = %q", sc.Name)
	}
	if sc.Period != 0 {
		t.Errorf("Period = %d, want 0", sc.Period)
	}
	if len(sc.Actions) != 4 {
		t.Fatalf("len(Actions) = %d, want 4", len(sc.Actions))
	}
	if sc.Actions[2].Count != 2 {
		t.Errorf("expire count = %d, want 2", sc.Actions[2].Count)
	}
}

func TestLoadReaderDefaultsExpireCount(t *testing.T) {
	sc, err := LoadReader(strings.NewReader(`
actions:
  - op: expire
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Actions[0].Count != 1 {
		t.Errorf("expire count = %d, want default 1", sc.Actions[0].Count)
	}
}

func TestLoadReaderErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		reason string
	}{
		{
			name:   "empty scenario",
			script: "name: empty\n",
			reason: "no actions",
		},
		{
			name: "unknown op",
			script: `
actions:
  - op: explode
`,
			reason: "unknown op",
		},
		{
			name: "missing op",
			script: `
actions:
  - seconds: 8
`,
			reason: "missing op",
		},
		{
			name: "wait without seconds",
			script: `
actions:
  - op: wait
`,
			reason: "seconds > 0",
		},
		{
			name: "reset without seconds",
			script: `
actions:
  - op: reset
`,
			reason: "use pet",
		},
		{
			name: "assert without checks",
			script: `
actions:
  - op: assert
`,
			reason: "nothing to check",
		},
		{
			name: "assert with bogus mode",
			script: `
actions:
  - op: assert
    mode: sideways
`,
			reason: "unknown mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadReader(strings.NewReader(tt.script))
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var actionErr *ActionError
			if !errors.As(err, &actionErr) {
				t.Fatalf("error type = %T, want *ActionError", err)
			}
			if !strings.Contains(err.Error(), tt.reason) {
				t.Errorf("error = %v, want substring %q", err, tt.reason)
			}
		})
	}
}

func TestScenarioRun(t *testing.T) {
	sc, err := LoadReader(strings.NewReader(waitScenario))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dev := NewDevice()
	w := watchdog.New(dev, watchdog.WithPeriod(sc.Period))

	if err := sc.Run(dev, w); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}

func TestScenarioRunPetCancelsWait(t *testing.T) {
	sc, err := LoadReader(strings.NewReader(`
name: pet cancels wait
actions:
  - op: wait
    seconds: 16
  - op: pet
  - op: assert
    mode: reset
    waiting: false
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dev := NewDevice()
	w := watchdog.New(dev)

	if err := sc.Run(dev, w); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}

func TestScenarioRunReprogram(t *testing.T) {
	sc, err := LoadReader(strings.NewReader(`
name: reprogram to 2s
actions:
  - op: reset
    seconds: 3
  - op: assert
    step: 2s
    mode: reset
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dev := NewDevice()
	w := watchdog.New(dev)

	if err := sc.Run(dev, w); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}

func TestScenarioRunAssertionFailure(t *testing.T) {
	sc, err := LoadReader(strings.NewReader(`
actions:
  - op: wait
    seconds: 20
  - op: assert
    mode: reset
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dev := NewDevice()
	w := watchdog.New(dev)

	runErr := sc.Run(dev, w)
	if runErr == nil {
		t.Fatal("expected assertion failure, got nil")
	}

	var assertErr *AssertionError
	if !errors.As(runErr, &assertErr) {
		t.Fatalf("error type = %T, want *AssertionError", runErr)
	}
	if assertErr.Field != "mode" {
		t.Errorf("Field = %q, want %q", assertErr.Field, "mode")
	}
	if assertErr.Got != "interrupt" {
		t.Errorf("Got = %q, want %q", assertErr.Got, "interrupt")
	}
}
