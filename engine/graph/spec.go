package graph

import (
	"encoding/json"
	"fmt"
)

// NodeSpec is one entry of a JSON chain description.
type NodeSpec struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Bypassed bool           `json:"bypassed,omitempty"`
	Params   map[string]any `json:"params,omitempty"`
}

// Spec is the JSON description of a serial chain:
//
//	{"nodes": [{"id": "osc", "type": "sine", "params": {"frequency": 440}}]}
//
// Nodes run in the order they are listed.
type Spec struct {
	Nodes []NodeSpec `json:"nodes"`
}

// ParseSpec decodes a chain description. Entries without a type are
// rejected; an entry without an id takes its type as id.
func ParseSpec(raw []byte) (Spec, error) {
	var spec Spec

	if err := json.Unmarshal(raw, &spec); err != nil {
		return Spec{}, fmt.Errorf("graph: invalid chain json: %w", err)
	}

	for i := range spec.Nodes {
		n := &spec.Nodes[i]
		if n.Type == "" {
			return Spec{}, fmt.Errorf("graph: node %d: missing type", i)
		}

		if n.ID == "" {
			n.ID = n.Type
		}
	}

	return spec, nil
}

// params converts the raw JSON settings of n.
func (n NodeSpec) params() Params {
	num, str := parseNodeParams(n.Params)

	return Params{ID: n.ID, Type: n.Type, Num: num, Str: str}
}

// parseNodeParams splits raw JSON settings into numeric and string maps.
// Booleans become 0 or 1; other types are ignored.
func parseNodeParams(raw map[string]any) (map[string]float64, map[string]string) {
	num := map[string]float64{}
	str := map[string]string{}

	for k, v := range raw {
		switch t := v.(type) {
		case float64:
			num[k] = t
		case int:
			num[k] = float64(t)
		case string:
			str[k] = t
		case bool:
			if t {
				num[k] = 1
			} else {
				num[k] = 0
			}
		}
	}

	return num, str
}
