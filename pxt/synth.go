package pxt

// Synth renders the channel into a sequence of c.Length samples.
//
// A disabled channel produces nil; that is silence, not an error.
// The channel length is expected to be valid, see Patch.Validate.
//
// The arithmetic follows the PixTone 32-bit integer evaluation order,
// so the result is bit-exact with the sounds authored in PixTone.
// Don't reorder the expressions below.
func (c *Channel) Synth() []int32 {
	if !c.Enabled || c.Length <= 0 {
		return nil
	}

	result := make([]int32, c.Length)
	n := float64(c.Length)

	carrier := basisWaveform(c.Carrier.Waveform)
	freq := basisWaveform(c.Frequency.Waveform)
	amp := basisWaveform(c.Amplitude.Waveform)

	mainPos := float64(c.Carrier.Offset)
	mainDelta := 256 * c.Carrier.Pitch / n
	for i := range result {
		fi := float64(i)
		progress := func(pitch float64) float64 {
			return 256 * pitch * fi / n
		}

		freqValue := int32(freq[0xff&int(float64(c.Frequency.Offset)+progress(c.Frequency.Pitch))]) * int32(c.Frequency.Level)
		ampValue := int32(amp[0xff&int(float64(c.Amplitude.Offset)+progress(c.Amplitude.Pitch))]) * int32(c.Amplitude.Level)
		mainValue := int32(carrier[0xff&int(mainPos)]) * int32(c.Carrier.Level)

		env := int32(c.Envelope.Evaluate(int(progress(1))))
		result[i] = mainValue * (ampValue + 4096) / 4096 * env / 4096

		// Negative and positive modulator excursions are scaled differently.
		if freqValue < 0 {
			mainPos += mainDelta * (1 + float64(freqValue)/8192)
		} else {
			mainPos += mainDelta * (1 + float64(freqValue)/2048)
		}
	}

	return result
}

// Render synthesizes all enabled channels and mixes them down.
//
// The mix is as long as the longest channel.
// Samples are accumulated into 16-bit cells that wrap around on overflow,
// the way the PixTone drum buffers do.
func (p *Patch) Render() []int16 {
	var mix []int16
	for i := range p.Channels {
		buf := p.Channels[i].Synth()
		if len(buf) > len(mix) {
			grown := make([]int16, len(buf))
			copy(grown, mix)
			mix = grown
		}
		for j, v := range buf {
			mix[j] = int16(int32(mix[j]) + v)
		}
	}
	return mix
}

func basisWaveform(i int) *Waveform {
	i %= NumWaveforms
	if i < 0 {
		i += NumWaveforms
	}
	return &basisWaveforms[i]
}
