// Package container implements ValueContainer, the routed message that carries
// an ordered, name-indexed collection of values.
//
// A container keeps its values twice: in insertion order and in a name index
// of per-name buckets. Both structures are guarded by a single RWMutex, so
// readers never observe one updated without the other.
//
// # Basic Usage
//
//	c, err := container.New(
//		container.WithSource("client", "session"),
//		container.WithTarget("server", "handler"),
//		container.WithMessageType("user_data"),
//	)
//	if err != nil {
//		return err
//	}
//	_ = c.AddValue(value.NewInt("count", 42))
//	_ = c.AddValue(value.NewString("name", "Alice"))
//
//	v, err := c.GetValue("count")
//
// # Thread Safety
//
// All methods are safe for concurrent use. Values are immutable, so the
// values returned by lookups can be shared freely.
package container

import (
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/internal/options"
	"github.com/arloliu/valuecontainer/value"
)

var errNilValue = fmt.Errorf("%w: nil value", errs.ErrInvalidDataFormat)

// entry pairs a value with the sequence number it was inserted under.
// The sequence number is the identity used by RemoveValue.
type entry struct {
	seq uint64
	val *value.Value
}

// ValueContainer is a thread-safe, capacity-limited collection of named values
// with routing metadata.
type ValueContainer struct {
	mu        sync.RWMutex
	header    Header
	entries   []entry
	index     map[string][]entry
	maxValues int
	nextSeq   uint64
}

// New creates a container with default header and capacity, then applies opts.
//
// Returns:
//   - *ValueContainer: The configured container
//   - error: The first error returned by an option
func New(opts ...Option) (*ValueContainer, error) {
	c := newContainer(DefaultHeader(), DefaultMaxValues)
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// NewWithMaxValues creates a container with the given ceiling, clamped to AbsoluteMaxValues.
func NewWithMaxValues(n int) *ValueContainer {
	return newContainer(DefaultHeader(), clampMaxValues(n))
}

func newContainer(h Header, maxValues int) *ValueContainer {
	return &ValueContainer{
		header:    h,
		index:     make(map[string][]entry),
		maxValues: maxValues,
	}
}

// SetSource sets the source id and sub id.
func (c *ValueContainer) SetSource(id, subID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.header.SourceID = id
	c.header.SourceSubID = subID
}

// SetTarget sets the target id and sub id.
func (c *ValueContainer) SetTarget(id, subID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.header.TargetID = id
	c.header.TargetSubID = subID
}

// SetMessageType sets the message type.
func (c *ValueContainer) SetMessageType(messageType string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.header.MessageType = messageType
}

// SetVersion sets the protocol version string.
func (c *ValueContainer) SetVersion(version string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.header.Version = version
}

// SetHeader replaces the whole header.
func (c *ValueContainer) SetHeader(h Header) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.header = h
}

// SwapHeader exchanges source and target, turning a request into a response.
func (c *ValueContainer) SwapHeader() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.header = c.header.Swapped()
}

// Header returns a snapshot of the header.
func (c *ValueContainer) Header() Header {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.header
}

// SourceID returns the sender id.
func (c *ValueContainer) SourceID() string { return c.Header().SourceID }

// SourceSubID returns the sender sub-id.
func (c *ValueContainer) SourceSubID() string { return c.Header().SourceSubID }

// TargetID returns the receiver id.
func (c *ValueContainer) TargetID() string { return c.Header().TargetID }

// TargetSubID returns the receiver sub-id.
func (c *ValueContainer) TargetSubID() string { return c.Header().TargetSubID }

// MessageType returns the message type.
func (c *ValueContainer) MessageType() string { return c.Header().MessageType }

// Version returns the protocol version string.
func (c *ValueContainer) Version() string { return c.Header().Version }

// MaxValues returns the value ceiling.
func (c *ValueContainer) MaxValues() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.maxValues
}

// AddValue appends v.
//
// Returns:
//   - error: errs.ErrCapacityExceeded (also matching errs.ErrInvalidDataFormat)
//     when the container is full, in which case nothing changes
func (c *ValueContainer) AddValue(v *value.Value) error {
	if v == nil {
		return errNilValue
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxValues {
		return errs.CapacityExceeded(c.maxValues)
	}
	c.appendLocked(v)

	return nil
}

// TryAddValue appends v and reports whether it was accepted.
func (c *ValueContainer) TryAddValue(v *value.Value) bool {
	return c.AddValue(v) == nil
}

// AddValues appends all of vs, or none of them if they do not all fit.
func (c *ValueContainer) AddValues(vs ...*value.Value) error {
	for _, v := range vs {
		if v == nil {
			return errNilValue
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries)+len(vs) > c.maxValues {
		return errs.CapacityExceeded(c.maxValues)
	}
	for _, v := range vs {
		c.appendLocked(v)
	}

	return nil
}

func (c *ValueContainer) appendLocked(v *value.Value) {
	e := entry{seq: c.nextSeq, val: v}
	c.nextSeq++

	c.entries = append(c.entries, e)
	c.index[v.Name()] = append(c.index[v.Name()], e)
}

// GetValue returns the first value named name.
func (c *ValueContainer) GetValue(name string) (*value.Value, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	bucket := c.index[name]
	if len(bucket) == 0 {
		return nil, errs.NotFound(name)
	}

	return bucket[0].val, nil
}

// Contains reports whether at least one value is named name.
func (c *ValueContainer) Contains(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.index[name]) > 0
}

// GetValueArray returns every value named name in insertion order.
// The result is empty, not nil-with-error, when nothing matches.
func (c *ValueContainer) GetValueArray(name string) []*value.Value {
	c.mu.RLock()
	defer c.mu.RUnlock()

	bucket := c.index[name]
	out := make([]*value.Value, len(bucket))
	for i, e := range bucket {
		out[i] = e.val
	}

	return out
}

// Values returns a snapshot of all values in insertion order.
func (c *ValueContainer) Values() []*value.Value {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.valuesLocked()
}

func (c *ValueContainer) valuesLocked() []*value.Value {
	out := make([]*value.Value, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.val
	}

	return out
}

// All iterates over a snapshot of the values in insertion order.
// The container may be modified during iteration.
func (c *ValueContainer) All() iter.Seq2[int, *value.Value] {
	snapshot := c.Values()

	return func(yield func(int, *value.Value) bool) {
		for i, v := range snapshot {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Names returns the distinct value names in order of first insertion.
func (c *ValueContainer) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{}, len(c.index))
	out := make([]string, 0, len(c.index))
	for _, e := range c.entries {
		if _, ok := seen[e.val.Name()]; ok {
			continue
		}
		seen[e.val.Name()] = struct{}{}
		out = append(out, e.val.Name())
	}

	return out
}

// RemoveValue removes every value named name and reports whether any existed.
//
// Removal drops the name bucket from the index, then filters the ordered
// sequence by the sequence numbers found in that bucket.
func (c *ValueContainer) RemoveValue(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	bucket, ok := c.index[name]
	if !ok {
		return false
	}
	delete(c.index, name)

	doomed := make(map[uint64]struct{}, len(bucket))
	for _, e := range bucket {
		doomed[e.seq] = struct{}{}
	}
	c.entries = slices.DeleteFunc(c.entries, func(e entry) bool {
		_, hit := doomed[e.seq]
		return hit
	})

	return len(bucket) > 0
}

// ClearValues removes all values and keeps the header and ceiling.
func (c *ValueContainer) ClearValues() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = nil
	c.index = make(map[string][]entry)
}

// ValueCount returns the number of values.
func (c *ValueContainer) ValueCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// IsEmpty reports whether the container holds no values.
func (c *ValueContainer) IsEmpty() bool {
	return c.ValueCount() == 0
}

// Copy returns a new container with the same header and ceiling.
//
// With includingValues, every value is deep-cloned and both the sequence and
// the name index are rebuilt from the clones, so the copy shares no storage
// with c. Without it the copy is empty.
func (c *ValueContainer) Copy(includingValues bool) *ValueContainer {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := newContainer(c.header, c.maxValues)
	if !includingValues {
		return out
	}

	out.entries = make([]entry, 0, len(c.entries))
	for _, e := range c.entries {
		out.appendLocked(e.val.Clone())
	}

	return out
}

// Snapshot returns the header and values under a single read lock.
// Encoders use it so the header and values they write belong together.
func (c *ValueContainer) Snapshot() (Header, []*value.Value) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.header, c.valuesLocked()
}
