package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/halvora/transaction-service/internal/domain"
)

// TransactionEventPublisher hands appended events to the downstream topic.
// Messages are keyed by transaction id so one transaction's events stay on
// one partition. Delivery is attempted once; failures go back to the caller.
type TransactionEventPublisher struct {
	writer *kafka.Writer
}

func NewTransactionEventPublisher(brokers []string, topic string) *TransactionEventPublisher {
	return &TransactionEventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *TransactionEventPublisher) SendWithResponse(ctx context.Context, msg domain.QueueMessage) (*domain.DeliveryReceipt, error) {
	km, err := buildMessage(msg)
	if err != nil {
		return nil, err
	}

	if err := p.writer.WriteMessages(ctx, km); err != nil {
		return nil, err
	}

	return &domain.DeliveryReceipt{
		MessageID: msg.Event.ID,
		SentAt:    time.Now(),
	}, nil
}

func (p *TransactionEventPublisher) Close() error {
	return p.writer.Close()
}
