package broadcast

import (
	"context"
	"sync"

	"github.com/nutrileaf/nutrileaf-client/internal/app/model"
	"github.com/nutrileaf/nutrileaf-client/pkg/logger"
)

// Handler receives a ChangeNotification. Handlers displaying an aggregate
// must recompute it from the delivered payload or a fresh store read,
// never from state captured at subscription time.
type Handler func(model.ChangeNotification)

// Signal carries "something of this kind changed" to sibling gateway
// processes sharing the same storage. It transports the kind only; there
// is no ordering or delivery guarantee, so receivers re-read.
type Signal interface {
	Announce(ctx context.Context, kind model.ChangeKind) error
}

type subscription struct {
	kind    model.ChangeKind
	handler Handler
}

// Broadcaster fans ChangeNotifications out to every subscribed surface.
// Same-process delivery is synchronous and in registration order; other
// processes get an eventual kind-only signal.
type Broadcaster struct {
	mu     sync.Mutex
	subs   []*subscription
	signal Signal
}

// New creates a broadcaster. The cross-process signal is optional; a nil
// signal limits delivery to the current process.
func New(signal Signal) *Broadcaster {
	return &Broadcaster{signal: signal}
}

// Subscribe registers the handler for same-process notifications of the
// given kind and returns a disposer. Callers must invoke the disposer on
// teardown or the handler leaks.
func (b *Broadcaster) Subscribe(kind model.ChangeKind, handler Handler) func() {
	sub := &subscription{kind: kind, handler: handler}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for idx, s := range b.subs {
			if s == sub {
				b.subs = append(b.subs[:idx], b.subs[idx+1:]...)
				return
			}
		}
	}
}

// Publish delivers the notification to every matching same-process
// subscriber synchronously, then announces the kind to sibling processes.
// A failed announcement is logged and swallowed: cross-process delivery is
// best-effort by contract.
func (b *Broadcaster) Publish(ctx context.Context, notification model.ChangeNotification) {
	b.dispatch(notification)

	if b.signal == nil {
		return
	}
	if err := b.signal.Announce(ctx, notification.Kind); err != nil {
		logger.Warn("Cross-process change signal failed", map[string]interface{}{
			"kind":  notification.Kind,
			"error": err.Error(),
		})
	}
}

// DeliverRemote hands a kind announced by another process to the local
// subscribers. The payload is deliberately absent: the other process's
// snapshot may already be stale, so subscribers re-read.
func (b *Broadcaster) DeliverRemote(kind model.ChangeKind) {
	b.dispatch(model.ChangeNotification{Kind: kind})
}

func (b *Broadcaster) dispatch(notification model.ChangeNotification) {
	b.mu.Lock()
	matching := make([]Handler, 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.kind == notification.Kind {
			matching = append(matching, sub.handler)
		}
	}
	b.mu.Unlock()

	// Handlers run outside the lock so they may subscribe or unsubscribe.
	for _, handler := range matching {
		handler(notification)
	}
}
