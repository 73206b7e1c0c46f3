// Package conlog is the single seam every other package uses to write
// human-visible diagnostics. It forwards to whatever the host installs
// (normally the console overlay's Print, see the console package), so
// the engine core never imports log directly outside main.
package conlog

import "log"

var (
	p  = func(format string, v ...interface{}) { log.Printf(format, v...) }
	sp = func(format string, v ...interface{}) { log.Printf(format, v...) }
)

// SetPrintf installs the function backing Printf, typically the
// console's line-buffered writer.
func SetPrintf(f func(string, ...interface{})) {
	p = f
}

// SetSavePrintf installs the function backing SafePrintf, used for
// output that must not be dropped even mid-frame (e.g. cvarlist).
func SetSavePrintf(f func(string, ...interface{})) {
	sp = f
}

func Printf(format string, v ...interface{}) {
	p(format, v...)
}

func SafePrintf(format string, v ...interface{}) {
	sp(format, v...)
}
