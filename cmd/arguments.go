// Package cmd provides the narrow command-registration surface that the
// cvar package needs to expose set/seta/toggle/cvarlist. The rest of the
// console/command subsystem (history, autocomplete, key bindings) is an
// external collaborator per the engine's scope boundary.
package cmd

import (
	"strconv"
	"strings"
)

// QArg is a single whitespace-delimited command argument.
type QArg struct {
	a string
}

func NewArg(s string) QArg {
	return QArg{a: s}
}

func (a QArg) String() string {
	return a.a
}

func (a QArg) Int() int {
	r, err := strconv.ParseInt(a.a, 10, 0)
	if err != nil {
		return 0
	}
	return int(r)
}

func (a QArg) Float32() float32 {
	r, err := strconv.ParseFloat(a.a, 32)
	if err != nil {
		return 0
	}
	return float32(r)
}

func (a QArg) Bool() bool {
	switch a.a {
	case "1", "t", "T", "true", "TRUE", "True", "on", "On", "ON":
		return true
	default:
		return false
	}
}

// Arguments is a parsed command line: the individual tokens plus the
// raw concatenation of everything after the command name.
type Arguments struct {
	args []QArg
	full string
}

func NewArguments(line string) Arguments {
	fields := strings.Fields(line)
	args := make([]QArg, len(fields))
	for i, f := range fields {
		args[i] = QArg{a: f}
	}
	full := ""
	if len(fields) > 1 {
		idx := strings.Index(line, fields[1])
		if idx >= 0 {
			full = line[idx:]
		}
	}
	return Arguments{args: args, full: full}
}

func (a Arguments) Args() []QArg {
	return a.args
}

func (a Arguments) Full() string {
	return a.full
}
