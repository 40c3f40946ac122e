package models

import (
	"encoding/json"
	"strings"
)

// GlobalField pseudo field holding form wide messages
const GlobalField = "global"

// FieldMessage a message attached to a form field
type FieldMessage struct {
	Type    MessageType `json:"type"`
	Summary string      `json:"summary"`
}

// UnmarshalJSON accepts either a bare string, which is an error, or an object
func (fm *FieldMessage) UnmarshalJSON(data []byte) error {
	var summary string
	if err := json.Unmarshal(data, &summary); err == nil {
		fm.Type = MessageError
		fm.Summary = summary
		return nil
	}
	type plain FieldMessage
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Type == "" {
		p.Type = MessageError
	}
	*fm = FieldMessage(p)
	return nil
}

// MessagesPerField messages keyed by form field name, computed by the identity server
type MessagesPerField map[string][]FieldMessage

// ExistsError reports whether any of the fields carries an error
func (m MessagesPerField) ExistsError(fields ...string) bool {
	for _, field := range fields {
		for _, msg := range m[field] {
			if msg.Type == MessageError {
				return true
			}
		}
	}
	return false
}

// GetFirstError returns the first error of the first field that has one
func (m MessagesPerField) GetFirstError(fields ...string) string {
	for _, field := range fields {
		for _, msg := range m[field] {
			if msg.Type == MessageError {
				return msg.Summary
			}
		}
	}
	return ""
}

// Exists reports whether the field carries any message
func (m MessagesPerField) Exists(field string) bool {
	return len(m[field]) > 0
}

// Get returns all messages of the field joined by ", "
func (m MessagesPerField) Get(field string) string {
	msgs := m[field]
	if len(msgs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		parts = append(parts, msg.Summary)
	}
	return strings.Join(parts, ", ")
}
