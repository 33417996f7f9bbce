package audio

// ProcessContext carries per-call information into every node.
// SampleRate and MaxBlockSize mirror the negotiated BufferConfig; SampleTime is
// the host's monotonically increasing position of the first frame in the block.
type ProcessContext struct {
	SampleRate   float64
	MaxBlockSize int
	SampleTime   int64
}
