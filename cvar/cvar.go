// Package cvar implements the keyed configuration store backing
// component L. Each value has a name, default, flag bitfield, and
// takes effect immediately, on callback, or is latched for the next
// map load depending on how the owning package reacts to SetCallback.
package cvar

import (
	"fmt"
	"strconv"

	"goquake2/cmd"
	"goquake2/conlog"
)

var (
	cvarArray  []*Cvar
	cvarByName = make(map[string]*Cvar)
)

type Flag uint32

const (
	NONE       Flag = 0
	ARCHIVE    Flag = 1 << 0 // persisted to config on exit
	NOTIFY     Flag = 1 << 1 // announced to other clients on change
	SERVERINFO Flag = 1 << 2 // mirrored into the serverinfo string
	USERINFO   Flag = 1 << 3 // mirrored into the userinfo string
	LATCH      Flag = 1 << 4 // change applies on next map load
	ROM        Flag = 1 << 5 // read-only, SetByString is a no-op
	CALLBACK   Flag = 1 << 6
)

type CallbackFunc func(cv *Cvar)

// Cvar is one named value. stringValue is the truth; value is derived
// from it on every write so both representations stay consistent.
type Cvar struct {
	archive    bool
	notify     bool
	serverinfo bool
	userinfo   bool
	latch      bool
	rom        bool

	callback CallbackFunc
	name     string

	stringValue  string
	pendingValue string // set by SetByString when latch is true
	value        float32
	defaultValue string
	id           int
}

func All() []*Cvar {
	return cvarArray
}

func (cv *Cvar) Archive() bool     { return cv.archive }
func (cv *Cvar) Notify() bool      { return cv.notify }
func (cv *Cvar) ServerInfo() bool  { return cv.serverinfo }
func (cv *Cvar) UserInfo() bool    { return cv.userinfo }
func (cv *Cvar) Latched() bool     { return cv.latch }
func (cv *Cvar) ReadOnly() bool    { return cv.rom }
func (cv *Cvar) Name() string      { return cv.name }
func (cv *Cvar) String() string    { return cv.stringValue }
func (cv *Cvar) Value() float32    { return cv.value }
func (cv *Cvar) ID() int           { return cv.id }

func (cv *Cvar) SetCallback(cb CallbackFunc) {
	cv.callback = cb
}

// SetByString applies a new value immediately, unless the cvar is
// LATCH-flagged, in which case it is recorded and ApplyLatched must be
// called (normally at map load) before it takes effect.
func (cv *Cvar) SetByString(s string) {
	if cv.rom {
		return
	}
	if cv.latch {
		cv.pendingValue = s
		return
	}
	cv.apply(s)
}

func (cv *Cvar) apply(s string) {
	cv.stringValue = s
	f, _ := strconv.ParseFloat(s, 32)
	cv.value = float32(f)
	if cv.callback != nil {
		cv.callback(cv)
	}
}

// ApplyLatched commits a pending latched value; a no-op if nothing is
// pending. Called by the host at map-load boundaries.
func (cv *Cvar) ApplyLatched() {
	if cv.pendingValue == "" || cv.pendingValue == cv.stringValue {
		return
	}
	cv.apply(cv.pendingValue)
	cv.pendingValue = ""
}

func (cv *Cvar) Reset() {
	cv.SetByString(cv.defaultValue)
}

func (cv *Cvar) SetValue(v float32) {
	if float32(int(v)) == v {
		cv.SetByString(strconv.FormatInt(int64(v), 10))
	} else {
		cv.SetByString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
}

func (cv *Cvar) Toggle() {
	if cv.Bool() {
		cv.SetByString("0")
	} else {
		cv.SetByString("1")
	}
}

func (cv *Cvar) Bool() bool {
	return cv.stringValue != "0" && cv.stringValue != ""
}

func Get(name string) (*Cvar, bool) {
	cv, ok := cvarByName[name]
	return cv, ok
}

func create(name, value string) *Cvar {
	cv := &Cvar{name: name, defaultValue: value}
	cv.apply(value)
	cv.id = len(cvarArray)
	cvarArray = append(cvarArray, cv)
	cvarByName[name] = cv
	return cv
}

func Register(name, value string, flags Flag) (*Cvar, error) {
	if _, ok := cvarByName[name]; ok {
		return nil, fmt.Errorf("cvar: %s already defined", name)
	}
	cv := create(name, value)
	cv.archive = flags&ARCHIVE != 0
	cv.notify = flags&NOTIFY != 0
	cv.serverinfo = flags&SERVERINFO != 0
	cv.userinfo = flags&USERINFO != 0
	cv.latch = flags&LATCH != 0
	cv.rom = flags&ROM != 0
	return cv, nil
}

// MustRegister panics on a duplicate name; used at package init time
// where a collision is a programming error, not a runtime condition.
func MustRegister(name, value string, flags Flag) *Cvar {
	cv, err := Register(name, value, flags)
	if err != nil {
		panic(err.Error())
	}
	return cv
}

func Execute(a cmd.Arguments) (bool, error) {
	args := a.Args()
	if len(args) == 0 {
		return false, nil
	}
	cv, ok := Get(args[0].String())
	if !ok {
		return false, nil
	}
	if len(args) == 1 {
		conlog.Printf("\"%s\" is \"%s\"\n", cv.Name(), cv.String())
		return true, nil
	}
	cv.SetByString(args[1].String())
	return true, nil
}

func init() {
	cmd.Must(cmd.AddCommand("set", set))
	cmd.Must(cmd.AddCommand("seta", seta))
	cmd.Must(cmd.AddCommand("toggle", toggle))
	cmd.Must(cmd.AddCommand("reset", reset))
	cmd.Must(cmd.AddCommand("resetall", resetAll))
	cmd.Must(cmd.AddCommand("cvarlist", list))
}

func set(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) < 2 {
		conlog.Printf("set <cvar> <value>\n")
		return nil
	}
	if cv, ok := cvarByName[args[0].String()]; ok {
		cv.SetByString(args[1].String())
	} else {
		create(args[0].String(), args[1].String())
	}
	return nil
}

func seta(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) < 2 {
		conlog.Printf("seta <cvar> <value>\n")
		return nil
	}
	var cv *Cvar
	if c, ok := cvarByName[args[0].String()]; ok {
		cv = c
	} else {
		cv = create(args[0].String(), args[1].String())
	}
	cv.archive = true
	cv.SetByString(args[1].String())
	return nil
}

func toggle(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		conlog.Printf("toggle <cvar>\n")
		return nil
	}
	if cv, ok := Get(args[0].String()); ok {
		cv.Toggle()
	} else {
		conlog.Printf("toggle: variable %v not found\n", args[0].String())
	}
	return nil
}

func reset(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		conlog.Printf("reset <cvar>\n")
		return nil
	}
	if cv, ok := Get(args[0].String()); ok {
		cv.Reset()
	} else {
		conlog.Printf("reset: variable %v not found\n", args[0].String())
	}
	return nil
}

func resetAll(_ cmd.Arguments) error {
	for _, cv := range All() {
		cv.Reset()
	}
	return nil
}

func list(_ cmd.Arguments) error {
	for _, cv := range All() {
		archive := " "
		if cv.Archive() {
			archive = "*"
		}
		conlog.SafePrintf("%s %s \"%s\"\n", archive, cv.Name(), cv.String())
	}
	conlog.SafePrintf("%d cvars\n", len(All()))
	return nil
}
