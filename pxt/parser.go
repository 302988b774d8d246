package pxt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

type ParserConfig struct {
	// Strict makes a missing value an error.
	//
	// PixTone reads a missing value (end of input) as 0,
	// so a truncated patch silently turns into a quiet one.
	// This is a lenient default for compatibility with existing files;
	// enable Strict to catch damaged patches instead.
	Strict bool
}

type Parser struct {
	config ParserConfig

	r    *bufio.Reader
	line int
	eof  bool
}

func NewParser(config ParserConfig) *Parser {
	return &Parser{config: config}
}

// Parse reads a PXT patch with a default parser config.
//
// A non-nil error is either a *ParseError or an I/O error.
func Parse(r io.Reader) (*Patch, error) {
	return NewParser(ParserConfig{}).Parse(r)
}

// Parse decodes a textual patch description.
//
// The format is a sequence of numeric values, one per line.
// A value follows the first colon of the line (the whole line is used
// if there is no colon); blank lines are skipped.
// The values are consumed in a fixed order: for every channel
// the enabled flag and the length, three waves (waveform, pitch, level, offset)
// and an envelope (initial value and three time/value pairs).
func (p *Parser) Parse(r io.Reader) (*Patch, error) {
	p.r = bufio.NewReader(r)
	p.line = 0
	p.eof = false

	var patch Patch
	for i := range patch.Channels {
		if err := p.parseChannel(i, &patch.Channels[i]); err != nil {
			return nil, err
		}
	}
	return &patch, nil
}

func (p *Parser) parseChannel(index int, c *Channel) error {
	prefix := fmt.Sprintf("channel[%d]", index)

	enabled, err := p.nextInt(prefix + ".enabled")
	if err != nil {
		return err
	}
	c.Enabled = enabled != 0

	c.Length, err = p.nextInt(prefix + ".length")
	if err != nil {
		return err
	}
	if c.Length < 0 {
		return p.errorf("%s.length: negative value %d", prefix, c.Length)
	}
	if c.Length > MaxLength {
		return p.errorf("%s.length: value %d is too big", prefix, c.Length)
	}

	waves := [...]struct {
		name string
		dst  *Wave
	}{
		{"carrier", &c.Carrier},
		{"frequency", &c.Frequency},
		{"amplitude", &c.Amplitude},
	}
	for _, w := range waves {
		if err := p.parseWave(prefix+"."+w.name, w.dst); err != nil {
			return err
		}
	}

	c.Envelope.Initial, err = p.nextInt(prefix + ".envelope.initial")
	if err != nil {
		return err
	}
	for i := range c.Envelope.Points {
		pt := &c.Envelope.Points[i]
		if pt.Time, err = p.nextInt(fmt.Sprintf("%s.envelope[%d].time", prefix, i)); err != nil {
			return err
		}
		if pt.Value, err = p.nextInt(fmt.Sprintf("%s.envelope[%d].value", prefix, i)); err != nil {
			return err
		}
	}

	return nil
}

func (p *Parser) parseWave(what string, w *Wave) error {
	waveform, err := p.nextInt(what + ".waveform")
	if err != nil {
		return err
	}
	if waveform < 0 {
		return p.errorf("%s.waveform: negative index %d", what, waveform)
	}
	w.Waveform = waveform % NumWaveforms

	if w.Pitch, err = p.next(what + ".pitch"); err != nil {
		return err
	}
	if w.Level, err = p.nextInt(what + ".level"); err != nil {
		return err
	}
	if w.Offset, err = p.nextInt(what + ".offset"); err != nil {
		return err
	}
	return nil
}

func (p *Parser) errorf(format string, args ...any) *ParseError {
	line := p.line
	if p.eof {
		line = 0
	}
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    line,
	}
}

func (p *Parser) nextInt(what string) (int, error) {
	v, err := p.next(what)
	// Out of range float to int conversions are platform-dependent.
	switch {
	case v >= math.MaxInt:
		return math.MaxInt, err
	case v <= math.MinInt:
		return math.MinInt, err
	}
	return int(v), err
}

// next returns the next non-blank line value.
func (p *Parser) next(what string) (float64, error) {
	for {
		if p.eof {
			if p.config.Strict {
				return 0, p.errorf("%s: unexpected EOF", what)
			}
			return 0, nil
		}

		s, err := p.r.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return 0, fmt.Errorf("read %s: %w", what, err)
			}
			p.eof = true
			if s == "" {
				continue
			}
		}
		p.line++

		if s == "" || s[0] == '\r' || s[0] == '\n' {
			continue
		}

		if i := strings.IndexByte(s, ':'); i != -1 {
			s = s[i+1:]
		}
		v, ok := parseLeadingFloat(s)
		if !ok && p.config.Strict {
			return 0, p.errorf("%s: no numeric value found", what)
		}
		return v, nil
	}
}

// parseLeadingFloat parses the longest numeric prefix of s,
// ignoring the leading whitespace and the trailing garbage.
func parseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\r\n\v\f")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && isDigit(s[end]) {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && isDigit(s[end]) {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		expEnd := end + 1
		if expEnd < len(s) && (s[expEnd] == '+' || s[expEnd] == '-') {
			expEnd++
		}
		expDigits := 0
		for expEnd < len(s) && isDigit(s[expEnd]) {
			expEnd++
			expDigits++
		}
		if expDigits != 0 {
			end = expEnd
		}
	}

	// Only a range error is possible here and ParseFloat
	// returns a saturated value for it.
	v, _ := strconv.ParseFloat(s[:end], 64)
	return v, true
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
