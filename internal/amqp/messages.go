package amqp

import (
	"encoding/json"
	"time"
)

// Sync message operations.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// SettingsSyncMessage tells the worker that an owner's target settings
// changed. Only the owner is carried, the worker fetches the current
// settings from the store when mirroring.
type SettingsSyncMessage struct {
	Owner     string    `json:"owner"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSettingsSyncMessage creates an upsert notification for an owner
func NewSettingsSyncMessage(owner string) *SettingsSyncMessage {
	return &SettingsSyncMessage{
		Owner:     owner,
		Op:        OpUpsert,
		Timestamp: time.Now(),
	}
}

// NewSettingsDeleteMessage creates a delete notification for an owner
func NewSettingsDeleteMessage(owner string) *SettingsSyncMessage {
	return &SettingsSyncMessage{
		Owner:     owner,
		Op:        OpDelete,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SettingsSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SettingsSyncMessageFromJSON creates a message from JSON bytes
func SettingsSyncMessageFromJSON(data []byte) (*SettingsSyncMessage, error) {
	var msg SettingsSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
