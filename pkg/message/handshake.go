package message

import "github.com/m0rjc/buttplug-go/pkg/protocolspec"

// RequestServerInfo starts the handshake. In v0 it carries only the client
// name; from v1 on it also announces the negotiated MessageVersion. The
// MessageVersion field is omitted entirely for v0 (§4.6, §6).
type RequestServerInfo struct {
	OutgoingBase
	ClientName     string                    `json:"client_name"`
	MessageVersion *protocolspec.ProtocolSpec `json:"message_version,omitempty"`
}

func (*RequestServerInfo) WireName() string { return "RequestServerInfo" }

// ServerInfoV0 is the v0 handshake response, carrying the server's own
// major/minor/build version triple alongside the negotiated MessageVersion.
type ServerInfoV0 struct {
	IncomingBase
	ServerName     string                   `json:"server_name"`
	MajorVersion   int                      `json:"major_version"`
	MinorVersion   int                      `json:"minor_version"`
	BuildVersion   int                      `json:"build_version"`
	MessageVersion protocolspec.ProtocolSpec `json:"message_version"`
	MaxPingTime    int                      `json:"max_ping_time"`
}

func (ServerInfoV0) WireName() string { return "ServerInfo" }

// ServerInfo is the v2+ handshake response: the major/minor/build triple is
// dropped, leaving just the server name, negotiated version and ping
// interval (§3 data model). v1 still resolves to ServerInfoV0 by fallback,
// since the server-info payload was not redefined until v2.
type ServerInfo struct {
	IncomingBase
	ServerName     string                   `json:"server_name"`
	MessageVersion protocolspec.ProtocolSpec `json:"message_version"`
	MaxPingTime    int                      `json:"max_ping_time"`
}

func (ServerInfo) WireName() string { return "ServerInfo" }
