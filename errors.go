package organya

import (
	"fmt"
)

// ResourceError is returned when a wavetable or a drum patch
// can't be loaded.
//
// These are fatal for the sound bank: playing a song with some
// channels silently missing would desync it from the intended mix.
type ResourceError struct {
	Resource string

	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Resource, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// AllocationError is returned when a beat block can't be sized.
type AllocationError struct {
	SamplesPerBeat int
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("can't allocate a beat block of %d samples", e.SamplesPerBeat)
}
