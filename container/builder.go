package container

// Builder assembles a ValueContainer through chained calls.
//
//	c := container.NewBuilder().
//		Source("client", "session").
//		Target("server", "handler").
//		MessageType("user_data").
//		MaxValues(1000).
//		Build()
type Builder struct {
	header    Header
	maxValues int
}

// NewBuilder returns a builder holding the default header and ceiling.
func NewBuilder() *Builder {
	return &Builder{
		header:    DefaultHeader(),
		maxValues: DefaultMaxValues,
	}
}

// Source sets the sender id pair.
func (b *Builder) Source(id, subID string) *Builder {
	b.header.SourceID = id
	b.header.SourceSubID = subID

	return b
}

// Target sets the receiver id pair.
func (b *Builder) Target(id, subID string) *Builder {
	b.header.TargetID = id
	b.header.TargetSubID = subID

	return b
}

// MessageType sets the message type.
func (b *Builder) MessageType(messageType string) *Builder {
	b.header.MessageType = messageType
	return b
}

// Version sets the protocol version string.
func (b *Builder) Version(version string) *Builder {
	b.header.Version = version
	return b
}

// MaxValues sets the ceiling; it is clamped to [0, AbsoluteMaxValues].
func (b *Builder) MaxValues(n int) *Builder {
	b.maxValues = clampMaxValues(n)
	return b
}

// Build creates the container. The builder can be reused afterwards.
func (b *Builder) Build() *ValueContainer {
	return newContainer(b.header, b.maxValues)
}
