// Package message defines the Buttplug wire message catalog: the Go types
// for every message the client can send or receive, across protocol
// revisions v0-v3, plus the JSON codec that moves between them and the
// wire's PascalCase-framed arrays.
package message

// Outgoing is implemented by every message the client sends to the server.
// Its id is assigned by the session from the shared id.Allocator when the
// message is queued for sending.
type Outgoing interface {
	ID() uint32
	SetID(id uint32)
	WireName() string
}

// Incoming is implemented by every message the server can send to the
// client. An id of 0 means the message is server-initiated (an event);
// any other id correlates it to a pending Outgoing request.
type Incoming interface {
	ID() uint32
	WireName() string
}

// OutgoingBase carries the id field shared by every Outgoing message.
type OutgoingBase struct {
	Id uint32 `json:"id"`
}

func (b *OutgoingBase) ID() uint32     { return b.Id }
func (b *OutgoingBase) SetID(id uint32) { b.Id = id }

// IncomingBase carries the id field shared by every Incoming message.
type IncomingBase struct {
	Id uint32 `json:"id"`
}

func (b IncomingBase) ID() uint32 { return b.Id }

// Field is a marker for the nested value types that appear inside messages
// (Speed, Vector, Rotation, Scalar, device descriptors, ...); those types do
// not embed it. They use the same PascalCase wire convention as top-level
// messages but are never wrapped in a {Name: ...} envelope of their own.
type Field struct{}
