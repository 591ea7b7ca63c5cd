package store

import "sync"

// collectionHub fans change notifications for one collection out to every
// live watcher. Notifications coalesce: a watcher that is still rendering
// sees one pending signal, not one per write.
type collectionHub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newCollectionHub() *collectionHub {
	return &collectionHub{subs: map[chan struct{}]struct{}{}}
}

func (h *collectionHub) subscribe() (ch chan struct{}, cancel func()) {
	ch = make(chan struct{}, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
}

func (h *collectionHub) broadcast() {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()
}

type broadcaster struct {
	mu   sync.Mutex
	hubs map[string]*collectionHub
}

func newBroadcaster() *broadcaster {
	return &broadcaster{hubs: map[string]*collectionHub{}}
}

func (b *broadcaster) hubFor(collection string) *collectionHub {
	b.mu.Lock()
	defer b.mu.Unlock()
	h := b.hubs[collection]
	if h == nil {
		h = newCollectionHub()
		b.hubs[collection] = h
	}
	return h
}

func (b *broadcaster) notify(collection string) {
	b.hubFor(collection).broadcast()
}
