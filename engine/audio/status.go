package audio

// StatusKind orders process outcomes by precedence: a higher kind wins when
// statuses are merged.
type StatusKind int

const (
	// StatusNormal means the block was processed and nothing more is pending.
	StatusNormal StatusKind = iota
	// StatusTail means output keeps ringing for TailSamples after the input stops.
	StatusTail
	// StatusKeepAlive asks the host to keep calling process regardless of input.
	StatusKeepAlive
	// StatusError reports a failure; Err holds the reason.
	StatusError
)

// String returns the kind name.
func (k StatusKind) String() string {
	switch k {
	case StatusNormal:
		return "normal"
	case StatusTail:
		return "tail"
	case StatusKeepAlive:
		return "keep-alive"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Status is returned by every process call instead of panicking.
// Err should be a pre-allocated sentinel so that reporting never allocates.
type Status struct {
	Kind        StatusKind
	TailSamples int
	Err         error
}

// Normal returns a plain success status.
func Normal() Status {
	return Status{Kind: StatusNormal}
}

// Tail returns a status announcing n more samples of output.
func Tail(n int) Status {
	return Status{Kind: StatusTail, TailSamples: n}
}

// KeepAlive returns a status asking the host to keep processing.
func KeepAlive() Status {
	return Status{Kind: StatusKeepAlive}
}

// Fail returns an error status carrying err.
func Fail(err error) Status {
	return Status{Kind: StatusError, Err: err}
}

// IsError reports whether s carries a failure.
func (s Status) IsError() bool {
	return s.Kind == StatusError
}

// Merge combines two statuses with the precedence Error > KeepAlive > Tail > Normal.
// Between two errors the first one wins; between two tails the longer one wins.
func Merge(a, b Status) Status {
	switch {
	case a.Kind > b.Kind:
		return a
	case b.Kind > a.Kind:
		return b
	case a.Kind == StatusTail && b.TailSamples > a.TailSamples:
		return b
	default:
		return a
	}
}
