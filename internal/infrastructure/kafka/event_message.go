package kafka

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/halvora/transaction-service/internal/domain"
)

// EventEnvelope is the wire shape of a queued transaction event. The payload
// stays opaque to consumers that only route on the event code.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	TransactionID string          `json:"transaction_id"`
	EventCode     string          `json:"event_code"`
	CreationDate  time.Time       `json:"creation_date"`
	Payload       json.RawMessage `json:"payload,omitempty"`
}

// buildMessage wraps the event into a kafka message. TTL and the
// visibility delay travel as headers: consumers drop expired messages and
// postpone processing until the not-visible-before instant.
func buildMessage(msg domain.QueueMessage) (kafka.Message, error) {
	payload, err := json.Marshal(msg.Event.Data)
	if err != nil {
		return kafka.Message{}, err
	}

	envelope := EventEnvelope{
		EventID:       msg.Event.ID,
		TransactionID: msg.Event.TransactionID,
		EventCode:     string(msg.Event.Code),
		CreationDate:  msg.Event.CreationDate,
		Payload:       payload,
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(msg.Event.TransactionID),
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "ttl-seconds", Value: []byte(strconv.Itoa(int(msg.TTL.Seconds())))},
			{Key: "not-visible-before", Value: []byte(time.Now().Add(msg.VisibilityDelay).Format(time.RFC3339))},
		},
	}, nil
}
