package conlog

import "testing"

func TestSetPrintfRedirectsOutput(t *testing.T) {
	defer SetPrintf(func(format string, v ...interface{}) {})

	var got string
	SetPrintf(func(format string, v ...interface{}) {
		got = format
	})
	Printf("hello %s", "world")
	if got != "hello %s" {
		t.Errorf("expected the installed function to receive the format string, got %q", got)
	}
}

func TestSetSavePrintfRedirectsOutput(t *testing.T) {
	defer SetSavePrintf(func(format string, v ...interface{}) {})

	var calls int
	SetSavePrintf(func(format string, v ...interface{}) {
		calls++
	})
	SafePrintf("%d cvars\n", 3)
	if calls != 1 {
		t.Errorf("expected SafePrintf to invoke the installed function once, got %d", calls)
	}
}

func TestPrintfAndSafePrintfAreIndependentSeams(t *testing.T) {
	defer SetPrintf(func(format string, v ...interface{}) {})
	defer SetSavePrintf(func(format string, v ...interface{}) {})

	var pCalls, spCalls int
	SetPrintf(func(format string, v ...interface{}) { pCalls++ })
	SetSavePrintf(func(format string, v ...interface{}) { spCalls++ })

	Printf("a")
	if pCalls != 1 || spCalls != 0 {
		t.Errorf("expected Printf to only drive the Printf seam, got pCalls=%d spCalls=%d", pCalls, spCalls)
	}

	SafePrintf("b")
	if pCalls != 1 || spCalls != 1 {
		t.Errorf("expected SafePrintf to only drive the SafePrintf seam, got pCalls=%d spCalls=%d", pCalls, spCalls)
	}
}
