package orgfile

// eventArena hands out event slices from one shared allocation.
//
// All event counts are known after the header is parsed,
// so a song needs exactly one backing array for its events.
type eventArena struct {
	data []Event
	used int
}

func newEventArena(n int) eventArena {
	if n == 0 {
		return eventArena{}
	}
	return eventArena{data: make([]Event, n)}
}

func (a *eventArena) ElemsAvailable() int {
	return len(a.data) - a.used
}

// MakeSlice returns a slice of n events.
// A zero-length request allocates nothing and returns nil.
func (a *eventArena) MakeSlice(n int) []Event {
	if n == 0 {
		return nil
	}
	if a.ElemsAvailable() < n {
		// Never happens for a properly sized arena.
		return make([]Event, n)
	}
	// The capacity is capped to make appends copy the data
	// instead of clobbering the next instrument events.
	slice := a.data[a.used : a.used+n : a.used+n]
	a.used += n
	return slice
}
