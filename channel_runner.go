package organya

// render mixes the channel output into the interleaved stereo block.
//
// The channel plays up to samplesPerBeat samples, fewer if its note
// ends earlier. An idle channel leaves the block untouched.
func (ch *streamChannel) render(block []float32, samplesPerBeat int) {
	n := min(samplesPerBeat, ch.remain)
	if n <= 0 {
		return
	}

	left, right := panGains(ch.pan, ch.volume)
	for p := 0; p < n; p++ {
		sample := resample(&ch.source, ch.phase, ch.phaseInc)
		// The mix is accumulated with float64 precision per sample,
		// but stored as float32 after every channel.
		block[p*2+0] = float32(float64(block[p*2+0]) + sample*left)
		block[p*2+1] = float32(float64(block[p*2+1]) + sample*right)
		ch.phase += ch.phaseInc
	}
	ch.remain -= n
}
