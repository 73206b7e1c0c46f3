// Package enginectx carries the tagged error kinds of the engine's
// error handling design. Every subsystem propagates a *Fault instead of
// deciding retry/fallback/abort itself; only the renderer driver (the
// render package) makes that call.
package enginectx

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a Fault per the error handling design.
type Kind int

const (
	// InitializationFailure is fatal: device lost at startup, or an
	// incompatible mode was requested. The process exits after the
	// diagnostic is printed.
	InitializationFailure Kind = iota
	// MalformedAsset is non-fatal for anything but the worldmodel: bad
	// BSP/MD2/image headers substitute a placeholder and continue.
	MalformedAsset
	// UnsupportedVersion is a MalformedAsset variant for a header with
	// a recognizable magic but an unhandled version field.
	UnsupportedVersion
	// DeviceLost is a runtime GPU device loss; it triggers a
	// swapchain+pipeline rebuild.
	DeviceLost
	// OutOfMemory signals a failed GPU allocation after eviction and a
	// single retry have both failed.
	OutOfMemory
	// AtlasFull signals the image atlas had no room left for a pic.
	AtlasFull
	// IOFailure signals a filesystem operation outside asset loading
	// failed: directory creation, screenshot write, and the like.
	IOFailure
)

func (k Kind) String() string {
	switch k {
	case InitializationFailure:
		return "InitializationFailure"
	case MalformedAsset:
		return "MalformedAsset"
	case UnsupportedVersion:
		return "UnsupportedVersion"
	case DeviceLost:
		return "DeviceLost"
	case OutOfMemory:
		return "OutOfMemory"
	case AtlasFull:
		return "AtlasFull"
	case IOFailure:
		return "IOFailure"
	default:
		return "Unknown"
	}
}

// Fault is the tagged error every component returns on failure.
type Fault struct {
	Kind  Kind
	Asset string
	cause error
}

func (f *Fault) Error() string {
	if f.Asset != "" {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Asset, f.cause)
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.cause)
}

func (f *Fault) Unwrap() error {
	return f.cause
}

// Wrap tags cause with kind and, optionally, the asset name that
// triggered it.
func Wrap(kind Kind, asset string, cause error) *Fault {
	return &Fault{Kind: kind, Asset: asset, cause: errors.WithStack(cause)}
}

// Wrapf is Wrap with a formatted cause, mirroring errors.Wrapf.
func Wrapf(kind Kind, asset string, format string, args ...interface{}) *Fault {
	return &Fault{Kind: kind, Asset: asset, cause: errors.Errorf(format, args...)}
}

// As reports whether err is a *Fault of the given kind.
func As(err error, kind Kind) bool {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind == kind
	}
	return false
}
