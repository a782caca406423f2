package xcm

import (
	"encoding/json"
	"fmt"
)

// MaxJunctions is the longest interior path XCM can express.
const MaxJunctions = 8

// Junctions is the interior of a location: Here, X1..X8, or Unsupported for
// shapes that were received but could not be recognised.
type Junctions interface {
	// Items returns the junctions in order; nil for Here and Unsupported.
	Items() []Junction
	interiorType() string
}

// Here is the empty interior.
type Here struct{}

type (
	X1 [1]Junction
	X2 [2]Junction
	X3 [3]Junction
	X4 [4]Junction
	X5 [5]Junction
	X6 [6]Junction
	X7 [7]Junction
	X8 [8]Junction
)

// Unsupported keeps an interior shape that failed to decode.
type Unsupported struct {
	Type  string
	Value json.RawMessage
}

func (Here) Items() []Junction        { return nil }
func (x X1) Items() []Junction        { return x[:] }
func (x X2) Items() []Junction        { return x[:] }
func (x X3) Items() []Junction        { return x[:] }
func (x X4) Items() []Junction        { return x[:] }
func (x X5) Items() []Junction        { return x[:] }
func (x X6) Items() []Junction        { return x[:] }
func (x X7) Items() []Junction        { return x[:] }
func (x X8) Items() []Junction        { return x[:] }
func (Unsupported) Items() []Junction { return nil }

func (Here) interiorType() string          { return "Here" }
func (X1) interiorType() string            { return "X1" }
func (X2) interiorType() string            { return "X2" }
func (X3) interiorType() string            { return "X3" }
func (X4) interiorType() string            { return "X4" }
func (X5) interiorType() string            { return "X5" }
func (X6) interiorType() string            { return "X6" }
func (X7) interiorType() string            { return "X7" }
func (X8) interiorType() string            { return "X8" }
func (u Unsupported) interiorType() string { return u.Type }

// InteriorType returns the tag of the interior ("Here", "X1".."X8" or the raw
// tag of an unsupported shape).
func InteriorType(j Junctions) string {
	if j == nil {
		return ""
	}
	return j.interiorType()
}

// NewJunctions builds the interior variant matching the number of junctions.
func NewJunctions(items ...Junction) (Junctions, error) {
	switch len(items) {
	case 0:
		return Here{}, nil
	case 1:
		return X1{items[0]}, nil
	case 2:
		return X2{items[0], items[1]}, nil
	case 3:
		return X3{items[0], items[1], items[2]}, nil
	case 4:
		return X4{items[0], items[1], items[2], items[3]}, nil
	case 5:
		return X5{items[0], items[1], items[2], items[3], items[4]}, nil
	case 6:
		return X6{items[0], items[1], items[2], items[3], items[4], items[5]}, nil
	case 7:
		return X7{items[0], items[1], items[2], items[3], items[4], items[5], items[6]}, nil
	case 8:
		return X8{items[0], items[1], items[2], items[3], items[4], items[5], items[6], items[7]}, nil
	}
	return nil, fmt.Errorf("interior of %d junctions exceeds %d", len(items), MaxJunctions)
}
