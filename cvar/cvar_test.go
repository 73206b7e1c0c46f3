package cvar

import (
	"strings"
	"testing"

	"goquake2/cmd"
)

func argv(parts ...string) cmd.Arguments {
	return cmd.NewArguments(strings.Join(parts, " "))
}

func TestRegisterAndGet(t *testing.T) {
	cv, err := Register("cvartest_basic", "1", ARCHIVE)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !cv.Archive() {
		t.Errorf("expected ARCHIVE flag set")
	}
	got, ok := Get("cvartest_basic")
	if !ok || got != cv {
		t.Errorf("expected Get to return the same *Cvar")
	}
}

func TestRegisterDuplicateErrors(t *testing.T) {
	if _, err := Register("cvartest_dup", "0", NONE); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := Register("cvartest_dup", "0", NONE); err == nil {
		t.Errorf("expected duplicate registration to error")
	}
}

func TestSetByStringUpdatesValueAndString(t *testing.T) {
	cv, _ := Register("cvartest_setval", "0", NONE)
	cv.SetByString("3.5")
	if cv.String() != "3.5" {
		t.Errorf("expected string value 3.5, got %q", cv.String())
	}
	if cv.Value() != 3.5 {
		t.Errorf("expected float value 3.5, got %v", cv.Value())
	}
}

func TestSetByStringReadOnlyIsNoop(t *testing.T) {
	cv, _ := Register("cvartest_rom", "1", ROM)
	cv.SetByString("2")
	if cv.String() != "1" {
		t.Errorf("expected ROM cvar to ignore SetByString, got %q", cv.String())
	}
}

func TestLatchedValueDefersUntilApply(t *testing.T) {
	cv, _ := Register("cvartest_latch", "0", LATCH)
	cv.SetByString("1")
	if cv.String() != "0" {
		t.Errorf("expected latched cvar to keep its old value until ApplyLatched, got %q", cv.String())
	}
	cv.ApplyLatched()
	if cv.String() != "1" {
		t.Errorf("expected ApplyLatched to commit the pending value, got %q", cv.String())
	}
}

func TestToggle(t *testing.T) {
	cv, _ := Register("cvartest_toggle", "0", NONE)
	cv.Toggle()
	if !cv.Bool() {
		t.Errorf("expected toggle from 0 to produce a truthy value")
	}
	cv.Toggle()
	if cv.Bool() {
		t.Errorf("expected toggle from 1 to produce a falsy value")
	}
}

func TestReset(t *testing.T) {
	cv, _ := Register("cvartest_reset", "5", NONE)
	cv.SetByString("10")
	cv.Reset()
	if cv.String() != "5" {
		t.Errorf("expected Reset to restore the default, got %q", cv.String())
	}
}

func TestSetValueFormatsIntegersWithoutDecimal(t *testing.T) {
	cv, _ := Register("cvartest_setvalue_int", "0", NONE)
	cv.SetValue(7)
	if cv.String() != "7" {
		t.Errorf("expected integral SetValue to format without a decimal point, got %q", cv.String())
	}
}

func TestCallbackFiresOnChange(t *testing.T) {
	cv, _ := Register("cvartest_callback", "0", NONE)
	fired := false
	cv.SetCallback(func(c *Cvar) { fired = true })
	cv.SetByString("1")
	if !fired {
		t.Errorf("expected SetCallback's function to fire on SetByString")
	}
}

func TestExecuteWithOneArgPrintsValue(t *testing.T) {
	_, _ = Register("cvartest_exec_print", "9", NONE)
	handled, err := Execute(argv("cvartest_exec_print"))
	if err != nil || !handled {
		t.Errorf("expected Execute to report handled for an existing cvar, handled=%v err=%v", handled, err)
	}
}

func TestExecuteWithTwoArgsSetsValue(t *testing.T) {
	cv, _ := Register("cvartest_exec_set", "0", NONE)
	handled, err := Execute(argv("cvartest_exec_set", "42"))
	if err != nil || !handled {
		t.Fatalf("Execute: handled=%v err=%v", handled, err)
	}
	if cv.String() != "42" {
		t.Errorf("expected Execute to set the value, got %q", cv.String())
	}
}

func TestExecuteUnknownCvarIsUnhandled(t *testing.T) {
	handled, err := Execute(argv("cvartest_does_not_exist"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if handled {
		t.Errorf("expected an unknown cvar name to report unhandled")
	}
}
