package graph

import "math"

// Params holds the parsed settings of one node in a Spec.
type Params struct {
	ID   string
	Type string
	Num  map[string]float64
	Str  map[string]string
}

// GetNum returns a numeric setting, or def if it is missing or not finite.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// HasNum reports whether a finite numeric setting is present.
func (p Params) HasNum(key string) bool {
	v, ok := p.Num[key]
	return ok && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// GetStr returns a string setting, or def if it is missing.
func (p Params) GetStr(key, def string) string {
	if v, ok := p.Str[key]; ok {
		return v
	}

	return def
}
