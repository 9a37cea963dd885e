package dashboard

import (
	"sync"

	"webnotas/cmd/internal/infrastructure/webnotas"
)

// Notifier surfaces a message the user has to acknowledge.
type Notifier interface {
	Alert(message string)
}

// AlertBox queues alerts until the page that shows them drains the box.
type AlertBox struct {
	mu      sync.Mutex
	pending []string
}

func NewAlertBox() *AlertBox {
	return &AlertBox{}
}

func (b *AlertBox) Alert(message string) {
	b.mu.Lock()
	b.pending = append(b.pending, message)
	b.mu.Unlock()
}

// Drain returns the pending alerts and acknowledges them.
func (b *AlertBox) Drain() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	pending := b.pending
	b.pending = nil
	return pending
}

// Message extracts the human readable part of err. Upstream failures carry
// the server supplied message, anything else falls back to err.Error().
func Message(err error) string {
	if reqErr, ok := webnotas.AsRequestError(err); ok {
		return reqErr.Message
	}
	return err.Error()
}
