package main

import (
	"fmt"
	"os"
	"strings"
)

// autoSwitch is the value of the --color and --ui flags: forced on, forced
// off, or on when the stream is a terminal.
type autoSwitch uint8

const (
	switchAuto autoSwitch = iota
	switchOn
	switchOff
)

var switchValues = map[string]autoSwitch{"": switchAuto, "auto": switchAuto, "on": switchOn, "off": switchOff}

// parseSwitch reads the value of --<flag>.
func parseSwitch(flag, value string) (autoSwitch, error) {
	s, ok := switchValues[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return switchAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
	return s, nil
}

// on reports whether the feature is enabled for output going to f.
func (s autoSwitch) on(f *os.File) bool {
	switch s {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	return f != nil && isTerminal(f)
}
