package container

import (
	"fmt"

	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/internal/options"
)

// Option configures a ValueContainer at construction time.
type Option = options.Option[*ValueContainer]

// WithSource sets the source id and sub id.
func WithSource(id, subID string) Option {
	return options.NoError(func(c *ValueContainer) {
		c.header.SourceID = id
		c.header.SourceSubID = subID
	})
}

// WithTarget sets the target id and sub id.
func WithTarget(id, subID string) Option {
	return options.NoError(func(c *ValueContainer) {
		c.header.TargetID = id
		c.header.TargetSubID = subID
	})
}

// WithMessageType sets the message type.
func WithMessageType(messageType string) Option {
	return options.NoError(func(c *ValueContainer) {
		c.header.MessageType = messageType
	})
}

// WithVersion sets the protocol version string.
func WithVersion(version string) Option {
	return options.NoError(func(c *ValueContainer) {
		c.header.Version = version
	})
}

// WithHeader replaces the whole header.
func WithHeader(h Header) Option {
	return options.NoError(func(c *ValueContainer) {
		c.header = h
	})
}

// WithMaxValues sets the value ceiling.
//
// Values above AbsoluteMaxValues are clamped and negative values are rejected.
// Zero yields a container that refuses every value.
func WithMaxValues(n int) Option {
	return options.New(func(c *ValueContainer) error {
		if n < 0 {
			return fmt.Errorf("%w: max values must not be negative, got %d", errs.ErrInvalidDataFormat, n)
		}
		c.maxValues = clampMaxValues(n)

		return nil
	})
}
