package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

func TestMessage_RoundTrip(t *testing.T) {
	msg := Message{
		ID:        "m1",
		Type:      MessageTypeExecutionPending,
		Payload:   ExecutionPendingPayload{ExecutionID: "e1", PipelineID: "pl1"},
		Timestamp: time.Now().UTC(),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Message
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// Payload после декодирования — map, парсится типизированно.
	payload, err := ParsePayload[ExecutionPendingPayload](&decoded)
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if payload.ExecutionID != "e1" || payload.PipelineID != "pl1" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestParsePayload_Mismatch(t *testing.T) {
	msg := &Message{Payload: "not-a-record"}
	_, err := ParsePayload[ExecutionCompletedPayload](msg)
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}

// fakeAcker фиксирует подтверждение одной доставки.
type fakeAcker struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcker) Ack(_ uint64, _ bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcker) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func (f *fakeAcker) Reject(_ uint64, requeue bool) error {
	return f.Nack(0, false, requeue)
}

func envelope(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(Message{ID: "m1", Type: MessageTypeExecutionPending})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return body
}

// Политика подтверждений: временные ошибки возвращают сообщение
// в очередь, непарсящиеся payload'ы и конверты уходят в DLQ.
func TestConsumer_AckPolicy(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name        string
		body        []byte
		handlerErr  error
		wantAck     bool
		wantRequeue bool
	}{
		{
			name:    "success is acked",
			body:    envelope(t),
			wantAck: true,
		},
		{
			name:        "transient handler error is requeued",
			body:        envelope(t),
			handlerErr:  errors.New("platform unavailable"),
			wantRequeue: true,
		},
		{
			name:       "malformed payload is not requeued",
			body:       envelope(t),
			handlerErr: fmt.Errorf("parse payload: %w", ErrMalformedPayload),
		},
		{
			name: "malformed envelope is not requeued",
			body: []byte("{not json"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			consumer := NewConsumer(nil, logger, ConsumerConfig{
				Queue: QueueExecutionsPending,
				Handler: func(_ context.Context, _ *Delivery) error {
					return tt.handlerErr
				},
			})

			acker := &fakeAcker{}
			consumer.handle(context.Background(), amqp.Delivery{
				Acknowledger: acker,
				Body:         tt.body,
			})

			if acker.acked != tt.wantAck {
				t.Fatalf("acked = %v, want %v", acker.acked, tt.wantAck)
			}
			if !tt.wantAck && !acker.nacked {
				t.Fatal("expected nack")
			}
			if acker.nacked && acker.requeue != tt.wantRequeue {
				t.Fatalf("requeue = %v, want %v", acker.requeue, tt.wantRequeue)
			}
		})
	}
}
