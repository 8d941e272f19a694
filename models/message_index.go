// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
)

// MessageIndex is the plaintext index of a mutation: a JSON array whose first
// element names the action or setting and whose trailing elements identify
// the target (chat, contact, message, label...).
type MessageIndex []string

// ParseMessageIndex decodes the JSON array form of an index.
func ParseMessageIndex(raw []byte) (MessageIndex, error) {
	var idx MessageIndex
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("parse message index: %w", err)
	}
	return idx, nil
}

// Bytes returns the JSON array form that is MACed and encrypted.
func (m MessageIndex) Bytes() []byte {
	if m == nil {
		m = MessageIndex{}
	}
	// a slice of strings always marshals
	b, _ := json.Marshal([]string(m))
	return b
}

// Kind returns the first element of the index.
func (m MessageIndex) Kind() string {
	return m.at(0)
}

// TargetID returns the chat or contact identifier, usually a JID.
func (m MessageIndex) TargetID() string {
	return m.at(1)
}

// MessageID returns the message identifier for message-scoped actions.
func (m MessageIndex) MessageID() string {
	return m.at(2)
}

// FromMe reports whether the indexed message was sent by this account.
func (m MessageIndex) FromMe() bool {
	return m.at(3) == "1"
}

// Participant returns the group participant of the indexed message.
func (m MessageIndex) Participant() string {
	return m.at(4)
}

func (m MessageIndex) at(i int) string {
	if i < len(m) {
		return m[i]
	}
	return ""
}

func boolIndex(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
