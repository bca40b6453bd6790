package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
	portssvc "github.com/fchandiac/flow-store-sub001/internal/core/ports/services"
)

const (
	topicTransactionCreated   = "flowstore.transaction.created"
	topicTransactionCancelled = "flowstore.transaction.cancelled"
)

// transactionEvent is the wire shape of both transaction topics.
type transactionEvent struct {
	TransactionID         string          `json:"transactionID"`
	CompanyID             string          `json:"companyID"`
	DocumentNumber        string          `json:"documentNumber"`
	Type                  string          `json:"type"`
	Total                 decimal.Decimal `json:"total"`
	ReversalTransactionID string          `json:"reversalTransactionID,omitempty"`
	ReversalDocument      string          `json:"reversalDocument,omitempty"`
	OccurredAt            time.Time       `json:"occurredAt"`
}

// Publisher notifies downstream consumers about recorded and cancelled
// transactions. It is best effort by contract: callers log failures and
// never fail the write that triggered the event.
type Publisher struct {
	createdWriter   *kafka.Writer
	cancelledWriter *kafka.Writer
}

// NewPublisher creates a publisher writing to the transaction topics on the
// given brokers.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		createdWriter: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topicTransactionCreated,
			Balancer: &kafka.LeastBytes{},
		},
		cancelledWriter: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topicTransactionCancelled,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

var _ portssvc.TransactionEventPublisher = (*Publisher)(nil)

// PublishTransactionCreated emits one message per recorded transaction.
func (p *Publisher) PublishTransactionCreated(ctx context.Context, txn domain.Transaction) error {
	return publish(ctx, p.createdWriter, txn.TransactionID, transactionEvent{
		TransactionID:  txn.TransactionID,
		CompanyID:      txn.CompanyID,
		DocumentNumber: txn.DocumentNumber,
		Type:           string(txn.Type),
		Total:          txn.Total,
		OccurredAt:     txn.CreatedAt,
	})
}

// PublishTransactionCancelled emits one message per cancellation, carrying
// both the original and the reversal references.
func (p *Publisher) PublishTransactionCancelled(ctx context.Context, original domain.Transaction, reversal domain.Transaction) error {
	return publish(ctx, p.cancelledWriter, original.TransactionID, transactionEvent{
		TransactionID:         original.TransactionID,
		CompanyID:             original.CompanyID,
		DocumentNumber:        original.DocumentNumber,
		Type:                  string(original.Type),
		Total:                 original.Total,
		ReversalTransactionID: reversal.TransactionID,
		ReversalDocument:      reversal.DocumentNumber,
		OccurredAt:            reversal.CreatedAt,
	})
}

// Close flushes and closes the underlying writers.
func (p *Publisher) Close() error {
	if err := p.createdWriter.Close(); err != nil {
		return err
	}
	return p.cancelledWriter.Close()
}

func publish(ctx context.Context, writer *kafka.Writer, key string, event transactionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	})
}
