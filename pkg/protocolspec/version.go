// Package protocolspec defines the Buttplug protocol's versioning enum.
package protocolspec

import "fmt"

// ProtocolSpec identifies one of the four revisions of the Buttplug message
// protocol this core understands. It is totally ordered: v0 < v1 < v2 < v3.
type ProtocolSpec int

const (
	V0 ProtocolSpec = iota
	V1
	V2
	V3
)

// First is the oldest protocol revision this core supports.
const First = V0

// Last is the newest protocol revision this core supports, and the default
// a client negotiates for unless told otherwise.
const Last = V3

func (v ProtocolSpec) String() string {
	switch v {
	case V0:
		return "v0"
	case V1:
		return "v1"
	case V2:
		return "v2"
	case V3:
		return "v3"
	default:
		return fmt.Sprintf("ProtocolSpec(%d)", int(v))
	}
}

// Valid reports whether v is one of the known protocol revisions.
func (v ProtocolSpec) Valid() bool {
	return v >= V0 && v <= V3
}
