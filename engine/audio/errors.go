package audio

import "errors"

var (
	// ErrInvalidBufferConfig reports a zero block size or a non-positive sample rate.
	ErrInvalidBufferConfig = errors.New("audio: invalid buffer config")
	// ErrInvalidLayout reports a channel layout the engine cannot drive.
	ErrInvalidLayout = errors.New("audio: invalid channel layout")
	// ErrRaggedBlock reports channels of unequal length inside one block.
	ErrRaggedBlock = errors.New("audio: block channels differ in length")
	// ErrBlockTooLarge reports a block longer than the negotiated maximum.
	ErrBlockTooLarge = errors.New("audio: block exceeds max block size")
	// ErrChannelCount reports a block whose width differs from the negotiated layout.
	ErrChannelCount = errors.New("audio: block channel count differs from layout")
)
