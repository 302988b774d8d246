package orgfile

import (
	"encoding/binary"
	"fmt"
	"strings"
)

type ParserConfig struct {
	// AllowUnknownSignature disables the file magic check.
	// By default, only Org-01, Org-02 and Org-03 files are accepted.
	AllowUnknownSignature bool
}

type Parser struct {
	// Data holds the input data bytes.
	data []byte

	// Offset is our current position inside the data.
	offset int

	// Song holds the results of parsing.
	song *Song

	eventCounts [NumInstruments]int

	config ParserConfig

	// These fields below are needed for better error reporting.
	stage         string
	stageIndex    int
	subStage      string
	subStageIndex int
}

func NewParser(config ParserConfig) *Parser {
	return &Parser{config: config}
}

// ParseFromBytes decodes the song from data.
//
// The returned song doesn't reference data,
// so it's safe to reuse that slice afterwards.
// No partially decoded song is ever returned: the result is either
// a complete song or a nil song with a non-nil error.
//
// A non-nil error is a *ParseError object.
func (p *Parser) ParseFromBytes(data []byte) (*Song, error) {
	p.data = data
	p.offset = 0
	p.song = &Song{}
	p.eventCounts = [NumInstruments]int{}
	err := p.parse()
	song := p.song
	p.song = nil
	p.data = nil
	if err != nil {
		return nil, err
	}
	return song, nil
}

func (p *Parser) startStage(name string) {
	p.stage = name
	p.stageIndex = -1
	p.subStage = ""
	p.subStageIndex = -1
}

func (p *Parser) startSubStage(name string) {
	p.subStage = name
	p.subStageIndex = -1
}

func (p *Parser) formatStage() string {
	var b strings.Builder
	b.Grow(len(p.stage) + len(p.subStage) + 16)
	b.WriteString(p.stage)
	if p.stageIndex >= 0 {
		fmt.Fprintf(&b, "[%d]", p.stageIndex)
	}
	if p.subStage != "" {
		b.WriteByte('.')
		b.WriteString(p.subStage)
		if p.subStageIndex >= 0 {
			fmt.Fprintf(&b, "[%d]", p.subStageIndex)
		}
	}
	return b.String()
}

func (p *Parser) errorf(format string, args ...any) *ParseError {
	text := fmt.Sprintf(format, args...)
	tag := p.formatStage()
	if tag != "" {
		text = tag + ": " + text
	}
	e := &ParseError{
		Message: text,
		Offset:  p.offset,
	}
	return e
}

func (p *Parser) dataBytesRemaining() int {
	return len(p.data) - p.offset
}

func (p *Parser) sliceData(l int) []byte {
	return p.data[p.offset : p.offset+l]
}

func (p *Parser) read(l int, what string) []byte {
	if p.dataBytesRemaining() < l {
		panic(p.errorf("unexpected EOF while reading %s", what))
	}
	b := p.sliceData(l)
	p.offset += l
	return b
}

func (p *Parser) readDword(what string) uint32 {
	if p.dataBytesRemaining() < 4 {
		panic(p.errorf("unexpected EOF while reading %s", what))
	}
	v := binary.LittleEndian.Uint32(p.sliceData(4))
	p.offset += 4
	return v
}

func (p *Parser) readWord(what string) uint16 {
	if p.dataBytesRemaining() < 2 {
		panic(p.errorf("unexpected EOF while reading %s", what))
	}
	v := binary.LittleEndian.Uint16(p.sliceData(2))
	p.offset += 2
	return v
}

func (p *Parser) readByte(what string) uint8 {
	if p.dataBytesRemaining() < 1 {
		panic(p.errorf("unexpected EOF while reading %s", what))
	}
	b := p.data[p.offset]
	p.offset++
	return b
}

func (p *Parser) parse() (err error) {
	defer func() {
		rv := recover()
		if rv != nil {
			if panicErr, ok := rv.(*ParseError); ok {
				err = panicErr
			} else {
				panic(rv)
			}
		}
	}()

	p.parseSong()

	return err // See the deferred call above
}

func (p *Parser) parseSong() {
	p.startStage("header")
	p.parseHeader()

	p.startStage("instrument")
	for i := range p.song.Instruments {
		p.stageIndex = i
		p.parseInstrument(i, &p.song.Instruments[i])
	}

	arena := newEventArena(totalEvents(&p.eventCounts))
	p.startStage("events")
	for i := range p.song.Instruments {
		p.stageIndex = i
		inst := &p.song.Instruments[i]
		inst.Events = arena.MakeSlice(p.eventCounts[i])
		p.parseEvents(inst.Events)
	}
}

func (p *Parser) parseHeader() {
	copy(p.song.Signature[:], p.read(6, "signature"))
	if !p.config.AllowUnknownSignature && !isKnownSignature(p.song.Signature) {
		p.offset = 0
		panic(p.errorf("unexpected signature: %q", p.song.Signature[:]))
	}

	p.song.BeatDuration = int(p.readWord("beat duration"))
	p.song.StepsPerBar = p.readByte("steps per bar")
	p.song.BeatsPerStep = p.readByte("beats per step")
	p.song.LoopStart = p.readDword("loop start")
	p.song.LoopEnd = p.readDword("loop end")
}

func (p *Parser) parseInstrument(i int, inst *Instrument) {
	inst.Tuning = p.readWord("tuning")
	inst.Wave = p.readByte("wave")
	inst.PercussiveFlag = p.readByte("percussive flag")
	p.eventCounts[i] = int(p.readWord("number of events"))
}

func (p *Parser) parseEvents(events []Event) {
	if len(events) == 0 {
		return
	}

	// The events are stored column-major:
	// all beats, then all notes, and so on.

	p.startSubStage("beat")
	for i := range events {
		p.subStageIndex = i
		events[i].Beat = p.readDword("event beat")
	}
	p.startSubStage("note")
	for i := range events {
		p.subStageIndex = i
		events[i].Note = p.readByte("event note")
	}
	p.startSubStage("length")
	for i := range events {
		p.subStageIndex = i
		events[i].Length = p.readByte("event length")
	}
	p.startSubStage("volume")
	for i := range events {
		p.subStageIndex = i
		events[i].Volume = p.readByte("event volume")
	}
	p.startSubStage("panning")
	for i := range events {
		p.subStageIndex = i
		events[i].Panning = p.readByte("event panning")
	}
	p.subStage = ""
}
