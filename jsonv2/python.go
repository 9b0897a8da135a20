package jsonv2

import (
	"encoding/json"
	"fmt"

	"github.com/arloliu/valuecontainer/container"
	"github.com/arloliu/valuecontainer/errs"
)

type flatDocument struct {
	MessageType string     `json:"message_type"`
	Version     string     `json:"version"`
	SourceID    string     `json:"source_id"`
	SourceSubID string     `json:"source_sub_id"`
	TargetID    string     `json:"target_id"`
	TargetSubID string     `json:"target_sub_id"`
	Values      []*v2Value `json:"values"`
}

type rawFlatDocument struct {
	MessageType *string         `json:"message_type"`
	Version     *string         `json:"version"`
	SourceID    *string         `json:"source_id"`
	SourceSubID *string         `json:"source_sub_id"`
	TargetID    *string         `json:"target_id"`
	TargetSubID *string         `json:"target_sub_id"`
	Values      json.RawMessage `json:"values"`
}

// ToPythonJSON encodes c in the flat schema: the six header fields at top
// level and a "values" array of v2 value objects.
func (a *Adapter) ToPythonJSON(c *container.ValueContainer) (string, error) {
	h, values := c.Snapshot()

	items, err := v2Values(values)
	if err != nil {
		return "", err
	}

	compact, err := encodeJSON(flatDocument{
		MessageType: h.MessageType,
		Version:     h.Version,
		SourceID:    h.SourceID,
		SourceSubID: h.SourceSubID,
		TargetID:    h.TargetID,
		TargetSubID: h.TargetSubID,
		Values:      items,
	})
	if err != nil {
		return "", err
	}

	return a.finish(compact)
}

// FromPythonJSON decodes the flat schema. Header fields it omits take the
// container defaults.
func (a *Adapter) FromPythonJSON(text string) (*container.ValueContainer, error) {
	data, err := a.jsonInput(text)
	if err != nil {
		return nil, err
	}

	var doc rawFlatDocument
	if err := decodeJSON(data, &doc); err != nil {
		return nil, err
	}
	if doc.MessageType == nil && len(doc.Values) == 0 {
		return nil, fmt.Errorf("%w: neither \"message_type\" nor \"values\" present", errs.ErrInvalidDataFormat)
	}

	h := container.DefaultHeader()
	setString(&h.MessageType, doc.MessageType)
	setString(&h.Version, doc.Version)
	setString(&h.SourceID, doc.SourceID)
	setString(&h.SourceSubID, doc.SourceSubID)
	setString(&h.TargetID, doc.TargetID)
	setString(&h.TargetSubID, doc.TargetSubID)

	values, err := decodeV2Values(doc.Values, 0)
	if err != nil {
		return nil, err
	}

	return a.build(h, values)
}
