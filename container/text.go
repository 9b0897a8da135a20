package container

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/value"
)

// ToXML renders the container as an XML document with a header section and
// one <value name="..." type="..."> element per value.
func (c *ValueContainer) ToXML() (string, error) {
	h, values := c.Snapshot()

	var sb strings.Builder
	sb.Grow(200 + len(values)*100)

	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString("<container>\n  <header>\n")
	writeXMLField(&sb, "source_id", h.SourceID)
	writeXMLField(&sb, "source_sub_id", h.SourceSubID)
	writeXMLField(&sb, "target_id", h.TargetID)
	writeXMLField(&sb, "target_sub_id", h.TargetSubID)
	writeXMLField(&sb, "message_type", h.MessageType)
	writeXMLField(&sb, "version", h.Version)
	sb.WriteString("  </header>\n  <values>\n")

	for _, v := range values {
		inner, err := v.ToXML()
		if err != nil {
			return "", err
		}
		tag := v.Type().ShortName()
		open := "<" + tag + ">"
		if v.Type().IsNested() {
			open = fmt.Sprintf(`<%s count="%d">`, tag, v.ChildCount())
		}

		// Only the element content goes inside <value>.
		var content string
		if !v.IsNull() {
			content = strings.TrimSuffix(strings.TrimPrefix(inner, open), "</"+tag+">")
		}

		fmt.Fprintf(&sb, "    <value name=\"%s\" type=\"%s\">%s</value>\n", value.EscapeXML(v.Name()), tag, content)
	}

	sb.WriteString("  </values>\n</container>\n")

	return sb.String(), nil
}

func writeXMLField(sb *strings.Builder, tag, text string) {
	fmt.Fprintf(sb, "    <%s>%s</%s>\n", tag, value.EscapeXML(text), tag)
}

type containerJSON struct {
	SourceID    string            `json:"source_id"`
	SourceSubID string            `json:"source_sub_id"`
	TargetID    string            `json:"target_id"`
	TargetSubID string            `json:"target_sub_id"`
	MessageType string            `json:"message_type"`
	Version     string            `json:"version"`
	MaxValues   int               `json:"max_values,omitempty"`
	Values      []json.RawMessage `json:"values"`
}

// ToJSON renders the container as a flat JSON object: the six header fields,
// max_values, and a values array of {"name","type","value"} envelopes.
//
// The result is read back only by FromJSON. It is not one of the interchange
// formats of the jsonv2 package: its shape resembles the flat Python schema,
// so jsonv2.DetectFormat may report it as such, but its envelopes carry
// "value" rather than "data" and jsonv2 decoding rejects them. Use jsonv2 for
// documents exchanged with other implementations.
func (c *ValueContainer) ToJSON() (string, error) {
	c.mu.RLock()
	doc := containerJSON{
		SourceID:    c.header.SourceID,
		SourceSubID: c.header.SourceSubID,
		TargetID:    c.header.TargetID,
		TargetSubID: c.header.TargetSubID,
		MessageType: c.header.MessageType,
		Version:     c.header.Version,
		MaxValues:   c.maxValues,
	}
	values := c.valuesLocked()
	c.mu.RUnlock()

	doc.Values = make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		env, err := v.ToNamedJSON()
		if err != nil {
			return "", err
		}
		doc.Values = append(doc.Values, json.RawMessage(env))
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errs.ErrSerialization, err)
	}

	return string(out), nil
}

// FromJSON parses a document produced by ToJSON.
func FromJSON(data []byte) (*ValueContainer, error) {
	var doc containerJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidDataFormat, err)
	}

	maxValues := doc.MaxValues
	if maxValues == 0 {
		maxValues = DefaultMaxValues
	}
	c := newContainer(Header{
		SourceID:    doc.SourceID,
		SourceSubID: doc.SourceSubID,
		TargetID:    doc.TargetID,
		TargetSubID: doc.TargetSubID,
		MessageType: doc.MessageType,
		Version:     doc.Version,
	}, clampMaxValues(maxValues))

	if len(doc.Values) > c.maxValues {
		return nil, errs.CapacityExceeded(c.maxValues)
	}
	for _, raw := range doc.Values {
		v, err := value.FromNamedJSON(raw)
		if err != nil {
			return nil, err
		}
		c.appendLocked(v)
	}

	return c, nil
}
