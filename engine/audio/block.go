package audio

// Block is a channel-major view of N channels × M frames.
// It borrows the caller's memory; copying a Block copies only the view.
type Block struct {
	data   [][]float64
	frames int
}

// NewBlock allocates a zeroed block. Call it outside the audio thread.
func NewBlock(channels, frames int) Block {
	if channels < 0 {
		channels = 0
	}

	if frames < 0 {
		frames = 0
	}

	backing := make([]float64, channels*frames)
	data := make([][]float64, channels)

	for ch := range data {
		data[ch] = backing[ch*frames : (ch+1)*frames : (ch+1)*frames]
	}

	return Block{data: data, frames: frames}
}

// WrapBlock borrows data without copying. The frame count is taken from the
// first channel; Validate reports ragged input.
func WrapBlock(data [][]float64) Block {
	frames := 0
	if len(data) > 0 {
		frames = len(data[0])
	}

	return Block{data: data, frames: frames}
}

// Channels returns the channel count.
func (b Block) Channels() int {
	return len(b.data)
}

// Frames returns the number of frames visible in every channel.
func (b Block) Frames() int {
	return b.frames
}

// Channel returns the samples of channel ch limited to Frames().
func (b Block) Channel(ch int) []float64 {
	return b.data[ch][:b.frames]
}

// Truncate returns a view of the first frames frames. It never allocates.
func (b Block) Truncate(frames int) Block {
	if frames < 0 {
		frames = 0
	}

	if frames > b.frames {
		frames = b.frames
	}

	return Block{data: b.data, frames: frames}
}

// Clear zeroes every visible sample.
func (b Block) Clear() {
	for ch := range b.data {
		clear(b.data[ch][:b.frames])
	}
}

// CopyFrom copies src into b channel by channel and returns the number of
// frames copied. Channels missing on either side are left untouched.
func (b Block) CopyFrom(src Block) int {
	n := min(b.frames, src.frames)
	for ch := range min(len(b.data), len(src.data)) {
		copy(b.data[ch][:n], src.data[ch][:n])
	}

	return n
}

// Validate checks the shape invariants a process call depends on.
// maxFrames <= 0 disables the length check.
func (b Block) Validate(maxFrames int) error {
	for ch := range b.data {
		if len(b.data[ch]) != len(b.data[0]) || len(b.data[ch]) < b.frames {
			return ErrRaggedBlock
		}
	}

	if maxFrames > 0 && b.frames > maxFrames {
		return ErrBlockTooLarge
	}

	return nil
}
