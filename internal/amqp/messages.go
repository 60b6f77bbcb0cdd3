package amqp

import (
	"encoding/json"
	"time"

	"moneytracker/internal/core"
)

// TransactionEvent announces a committed change. Deleted events carry only
// the ID and user.
type TransactionEvent struct {
	Action    core.Action `json:"action"`
	ID        int64       `json:"id"`
	UserID    string      `json:"user_id"`
	Amount    string      `json:"amount,omitempty"`
	Type      string      `json:"type,omitempty"`
	Category  string      `json:"category,omitempty"`
	Date      string      `json:"date,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewTransactionEvent builds the event for action applied to t.
func NewTransactionEvent(action core.Action, t core.Transaction, at time.Time) *TransactionEvent {
	ev := &TransactionEvent{
		Action:    action,
		ID:        t.ID,
		UserID:    t.Owner,
		Timestamp: at.UTC(),
	}
	if action != core.ActionDeleted {
		ev.Amount = t.Amount.String()
		ev.Type = t.Kind.String()
		ev.Category = t.Category
		ev.Date = t.Date
	}
	return ev
}

// ToJSON converts the message to JSON bytes
func (m *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionEventFromJSON decodes a message body
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var msg TransactionEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
