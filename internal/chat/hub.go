package chat

import (
	"log"
	"sync"
)

// Hub is the process-wide channel registry: it maps channels to live
// subscriber connections and fans published payloads out to them.
//
// Delivery is best effort. A subscriber whose outbound buffer is full is
// evicted rather than retried, so a slow consumer can never block the
// publisher. Within a channel, payloads are delivered in publish order;
// no ordering holds between channels.
//
// Hub is safe for concurrent use by multiple goroutines.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[Channel]map[*Client]struct{}
	channels    map[*Client]map[Channel]struct{}

	lockMu       sync.Mutex
	channelLocks map[Channel]*sync.Mutex
}

// NewHub creates an empty Hub. One Hub is created at startup and injected
// into the gateway; it is not a package-level singleton.
func NewHub() *Hub {
	return &Hub{
		subscribers:  make(map[Channel]map[*Client]struct{}),
		channels:     make(map[*Client]map[Channel]struct{}),
		channelLocks: make(map[Channel]*sync.Mutex),
	}
}

// Subscribe registers a client on a channel.
func (h *Hub) Subscribe(client *Client, ch Channel) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscribers[ch] == nil {
		h.subscribers[ch] = make(map[*Client]struct{})
	}
	h.subscribers[ch][client] = struct{}{}

	if h.channels[client] == nil {
		h.channels[client] = make(map[Channel]struct{})
	}
	h.channels[client][ch] = struct{}{}
}

// Unsubscribe removes a client from a channel. Unknown pairs are no-ops.
func (h *Hub) Unsubscribe(client *Client, ch Channel) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client, ch)
}

// UnsubscribeAll removes a client from every channel it is subscribed to.
// Called when a connection closes.
func (h *Hub) UnsubscribeAll(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.channels[client] {
		h.removeLocked(client, ch)
	}
	delete(h.channels, client)
}

func (h *Hub) removeLocked(client *Client, ch Channel) {
	if subs, ok := h.subscribers[ch]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscribers, ch)
		}
	}
	if chans, ok := h.channels[client]; ok {
		delete(chans, ch)
	}
}

// Publish delivers a payload to every current subscriber of the channel.
// Publishing to a channel with no subscribers is a silent no-op. Subscribers
// whose buffers are full are dropped from the registry and closed.
func (h *Hub) Publish(ch Channel, payload []byte) {
	h.mu.RLock()
	subs := make([]*Client, 0, len(h.subscribers[ch]))
	for client := range h.subscribers[ch] {
		subs = append(subs, client)
	}
	h.mu.RUnlock()

	for _, client := range subs {
		if !client.enqueue(payload) {
			log.Printf("chat: dropping slow subscriber %s from channel %s", client.ID, ch)
			client.Close()
		}
	}
}

// SubscriberCount returns the number of live subscribers on a channel.
func (h *Hub) SubscriberCount(ch Channel) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[ch])
}

// LockChannel serializes the append-then-publish sequence for one channel so
// stored order and delivered order cannot diverge. Operations on different
// channels proceed in parallel.
func (h *Hub) LockChannel(ch Channel) {
	h.channelLock(ch).Lock()
}

// UnlockChannel releases the channel's publish lock.
func (h *Hub) UnlockChannel(ch Channel) {
	h.channelLock(ch).Unlock()
}

func (h *Hub) channelLock(ch Channel) *sync.Mutex {
	h.lockMu.Lock()
	defer h.lockMu.Unlock()

	lock, ok := h.channelLocks[ch]
	if !ok {
		lock = &sync.Mutex{}
		h.channelLocks[ch] = lock
	}
	return lock
}
