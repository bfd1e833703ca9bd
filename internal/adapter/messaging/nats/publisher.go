package nats

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
)

// Publisher emits listing lifecycle events as JSON payloads on NATS
// subjects. Delivery is fire-and-forget: the usecase layer logs a failed
// publish and carries on, so a broker outage never blocks a write.
type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn}, nil
}

// Publish marshals the payload and hands it to the broker. The context is
// accepted for interface symmetry; core NATS publishes are non-blocking.
func (p *Publisher) Publish(_ context.Context, subject string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return p.conn.Publish(subject, jsonData)
}

func (p *Publisher) Close() {
	p.conn.Close()
}
