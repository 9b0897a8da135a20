package container

const (
	// DefaultMessageType is the message type of a container with no explicit routing.
	DefaultMessageType = "data_container"
	// DefaultVersion is the protocol version stamped on new containers.
	DefaultVersion = "1.0.0.0"
	// DefaultMaxValues is the value ceiling of a container created without options.
	DefaultMaxValues = 10_000
	// AbsoluteMaxValues is the hard ceiling; larger requests are clamped to it.
	AbsoluteMaxValues = 100_000
)

// Header holds the routing metadata of a container.
type Header struct {
	SourceID    string
	SourceSubID string
	TargetID    string
	TargetSubID string
	MessageType string
	Version     string
}

// DefaultHeader returns a header with empty routing fields and default type and version.
func DefaultHeader() Header {
	return Header{
		MessageType: DefaultMessageType,
		Version:     DefaultVersion,
	}
}

// Swapped returns h with source and target exchanged.
func (h Header) Swapped() Header {
	h.SourceID, h.TargetID = h.TargetID, h.SourceID
	h.SourceSubID, h.TargetSubID = h.TargetSubID, h.SourceSubID

	return h
}

// HasRouting reports whether the header carries routing that text encoders should emit.
//
// A container still using DefaultMessageType is treated as unrouted even if
// ids were set.
func (h Header) HasRouting() bool {
	return h.MessageType != DefaultMessageType
}

func clampMaxValues(n int) int {
	switch {
	case n < 0:
		return 0
	case n > AbsoluteMaxValues:
		return AbsoluteMaxValues
	default:
		return n
	}
}
