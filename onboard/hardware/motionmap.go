package hardware

import (
	"strings"

	deviceerrors "github.com/CodedInternet/golinebot/onboard/errors"
)

// MotionEntry binds a motion to its routine and the name used by command dispatch.
type MotionEntry struct {
	Motion Motion
	Name   string
	Action func(m *MotionController)
}

// MotionTable is ordered by Motion value; position i holds Motion(i).
type MotionTable []MotionEntry

// MotionMap is the dispatch table consumed by the command layer. Its ordering is
// part of the wire contract: clients may address motions by index.
var MotionMap = MotionTable{
	{Stop, "stop", (*MotionController).Stop},
	{Forward, "forward", (*MotionController).Forward},
	{Backward, "backward", (*MotionController).Backward},
	{Left, "left", (*MotionController).Left},
	{Right, "right", (*MotionController).Right},
}

func (t MotionTable) ByIndex(i int) (MotionEntry, bool) {
	if i < 0 || i >= len(t) {
		return MotionEntry{}, false
	}
	return t[i], true
}

func (t MotionTable) ByMotion(m Motion) (MotionEntry, bool) {
	return t.ByIndex(int(m))
}

// Lookup finds an entry by its case insensitive name.
func (t MotionTable) Lookup(name string) (MotionEntry, error) {
	name = strings.ToLower(name)
	for _, e := range t {
		if e.Name == name {
			return e, nil
		}
	}
	return MotionEntry{}, deviceerrors.UnknownMotionError{Name: name}
}

func (t MotionTable) Names() []string {
	names := make([]string, len(t))
	for i, e := range t {
		names[i] = e.Name
	}
	return names
}

func (m Motion) String() string {
	if e, ok := MotionMap.ByMotion(m); ok {
		return e.Name
	}
	return "unknown"
}
