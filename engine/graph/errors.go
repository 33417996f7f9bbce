package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrChannelMismatch reports adjacent nodes, or a node and the session
	// layout, that disagree on the channel count.
	ErrChannelMismatch = errors.New("graph: channel mismatch")
	// ErrDuplicateParameter reports two nodes exposing the same parameter id.
	ErrDuplicateParameter = errors.New("graph: duplicate parameter id")
	// ErrTopologyLocked is returned when editing a graph after Initialize.
	ErrTopologyLocked = errors.New("graph: topology is locked")
	// ErrNotInitialized is reported by Process before a successful Initialize.
	ErrNotInitialized = errors.New("graph: not initialized")
	// ErrUnknownNodeType is returned when a chain names an unregistered type.
	ErrUnknownNodeType = errors.New("graph: unknown node type")
	// ErrNilNode is returned when appending a nil node.
	ErrNilNode = errors.New("graph: nil node")
)

// ConfigError is returned by Initialize. Node is the index of the offending
// node, or -1 when the problem is not tied to a single node.
type ConfigError struct {
	Node int
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Node < 0 {
		return "graph: config: " + e.Err.Error()
	}

	return fmt.Sprintf("graph: config: node %d: %v", e.Node, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErr(node int, err error) error {
	return &ConfigError{Node: node, Err: err}
}
