package message

// Ok acknowledges a client request with no further data. Defined in v0,
// unchanged since.
type Ok struct {
	IncomingBase
}

func (Ok) WireName() string { return "Ok" }

// Error reports that a client request (or, with Id 0, the connection
// itself) failed. Defined in v0, unchanged since.
type Error struct {
	IncomingBase
	ErrorMessage string    `json:"error_message"`
	ErrorCode    ErrorCode `json:"error_code"`
}

func (Error) WireName() string { return "Error" }

// Ping is sent by the client to keep the connection alive. Defined in v0,
// unchanged since.
type Ping struct {
	OutgoingBase
}

func (Ping) WireName() string { return "Ping" }
