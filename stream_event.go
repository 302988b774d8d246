package organya

import (
	"math"
)

// StreamEventKind is an event tag that should be used to differentiate between different event types.
// See StreamEvent docs for more info.
//
// Experimental: the events handling API may change significantly in the future.
type StreamEventKind int

const (
	// EventUnknown is a sentinel value.
	// You should never receive an event of this kind.
	EventUnknown StreamEventKind = iota

	// EventNote is emitted every time a channel starts to play some note.
	// A note that is too short to be heard still triggers this event.
	//
	// Use StreamEvent.NoteEventData to get the event data.
	//
	// Experimental: the events handling API may change significantly in the future.
	EventNote

	// EventSync tells the application to update their time counter to the specified value.
	//
	// As any other event, the sync event has a Time field that you should use as a
	// description of when the counter should be updated.
	// A loop jump back to the loop start produces a sync event with Time
	// set to the loop end moment and data argument set to the loop start moment.
	//
	// Use StreamEvent.SyncEventData to get the event data.
	//
	// Experimental: the events handling API may change significantly in the future.
	EventSync
)

// StreamEvent holds a single Stream event data.
// This object is an argument to the Stream.SetEventHandler function.
//
// To handle the event correctly, you must first check its kind.
// For an event of kind EventNote there is a NoteEventData method that
// will return the associated data. For EventSync there is a SyncEventData.
//
// Every event has a Time value. This is a moment when this event happened in
// relation to the song start (in seconds). The user application needs
// to calculate the time deltas on its own and handle these events in the right moment.
//
// Experimental: the events handling API may change significantly in the future.
type StreamEvent struct {
	Kind StreamEventKind

	// Channel is an event channel ID, [0, 15].
	// Channels 8-15 are percussion channels.
	//
	// Some events may be channel-independent.
	Channel int

	// Time represents the playback offset in seconds.
	// Time=2.5 means that this event happened somewhere around 2.5 seconds.
	Time float64

	value uint64
}

// NoteEventData returns the event data if e.Kind=EventNote.
// The return values are: note, wave (the channel wave or drum number), volume.
func (e StreamEvent) NoteEventData() (note, wave int, vol float32) {
	noteBits := e.value & 0xff
	waveBits := (e.value >> 8) & 0xff
	volBits := e.value >> 16
	return int(noteBits), int(waveBits), math.Float32frombits(uint32(volBits))
}

// SyncEventData returns the event data if e.Kind=EventSync.
// The return values are: a time to synchronize to.
func (e StreamEvent) SyncEventData() (t float64) {
	return math.Float64frombits(e.value)
}
