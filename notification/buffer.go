// Package notification implements the display sink the surface reads
// its modals from. Rendering is the host's concern; the sink only keeps
// the messages in order and remembers whether acknowledging the latest
// one should close the surface.
package notification

import (
	"context"
	"sync"

	"boxoffice/entity"
	"boxoffice/pkg/log"
)

const defaultCapacity = 32

// Buffer is a bounded, append-only display sink. The surface polls it
// and pops messages as it shows them.
type Buffer struct {
	mu       sync.Mutex
	items    []entity.Notification
	capacity int
}

func NewBuffer() *Buffer {
	return &Buffer{capacity: defaultCapacity}
}

func (b *Buffer) Display(ctx context.Context, n entity.Notification) error {
	log.FromContext(ctx).
		WithField("title", n.Title).
		WithField("is_error", n.IsError).
		WithField("close_surface", n.CloseSurface).
		Info("Displaying notification")

	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = append(b.items, n)
	if len(b.items) > b.capacity {
		b.items = b.items[len(b.items)-b.capacity:]
	}
	return nil
}

// Pending returns the queued notifications without consuming them.
func (b *Buffer) Pending() []entity.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := make([]entity.Notification, len(b.items))
	copy(items, b.items)
	return items
}

// Drain returns the queued notifications and clears the buffer.
func (b *Buffer) Drain() []entity.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := b.items
	b.items = nil
	return items
}
