package ansiterm

import (
	"errors"

	"github.com/kpumuk/docweave"
)

// errFailDoc is returned from FailDoc, matching the root package's sentinel
// so callers can errors.Is against docweave.ErrFailDoc regardless of sink.
var errFailDoc = docweave.ErrFailDoc

// errUnbalancedPop reports a PopAnnotation with no matching push; the
// engine itself never produces this (render.go only pops what it pushed),
// so this only fires if ColoredSink is driven directly by test code.
var errUnbalancedPop = errors.New("ansiterm: PopAnnotation without a matching PushAnnotation")
