package amqp

import (
	"encoding/json"
	"time"

	"messbook/internal/storage"
)

// RecordSyncMessage tells the export worker that one deposit or expense
// needs to be pushed to the backup sheet. It carries only the kind and id;
// the worker fetches the full record from SQLite.
type RecordSyncMessage struct {
	Kind      storage.RecordKind `json:"kind"`
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
}

// NewRecordSyncMessage builds a sync message for one record.
func NewRecordSyncMessage(kind storage.RecordKind, id string) *RecordSyncMessage {
	return &RecordSyncMessage{
		Kind:      kind,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordSyncMessageFromJSON parses a message from JSON bytes.
func RecordSyncMessageFromJSON(data []byte) (*RecordSyncMessage, error) {
	var msg RecordSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
