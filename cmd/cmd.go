package cmd

import (
	"fmt"
	"sort"
	"strings"
)

type QFunc func(args Arguments) error

type Commands map[string]QFunc

func New() *Commands {
	c := make(Commands)
	return &c
}

func (c *Commands) Add(name string, f QFunc) error {
	ln := strings.ToLower(name)
	if _, ok := (*c)[ln]; ok {
		return fmt.Errorf("cmd: %s already defined", ln)
	}
	(*c)[ln] = f
	return nil
}

func (c *Commands) Exists(name string) bool {
	_, ok := (*c)[strings.ToLower(name)]
	return ok
}

func (c *Commands) List() []string {
	cmds := make([]string, 0, len(*c))
	for name := range *c {
		cmds = append(cmds, name)
	}
	sort.Strings(cmds)
	return cmds
}

func (c *Commands) Execute(a Arguments) (bool, error) {
	args := a.Args()
	if len(args) == 0 {
		return false, nil
	}
	name := strings.ToLower(args[0].String())
	if f, ok := (*c)[name]; ok {
		if err := f(a); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

var commands = make(Commands)

func Must(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func AddCommand(name string, f QFunc) error {
	return commands.Add(name, f)
}

func Exists(name string) bool {
	return commands.Exists(name)
}

func Execute(a Arguments) (bool, error) {
	return commands.Execute(a)
}

func List() []string {
	return commands.List()
}
