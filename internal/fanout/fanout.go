// Package fanout distributes the single stream of messages arriving from
// the Control Client's read loop to whichever caller currently owns the
// conversation. Only one subscriber is ever active at a time; others
// queue in FIFO order and are promoted once the active subscriber's turn
// completes.
package fanout

import (
	"context"
	"sync"

	"github.com/nshkrdotcom/claude-agent-sdk-sub002/internal/message"
)

// defaultPreSubscribeBufferSize bounds how many messages Hub will retain
// before the first Subscriber registers.
const defaultPreSubscribeBufferSize = 10_000

// Subscriber is a single registered consumer of the Hub's message stream.
// It is handed any buffered backlog (if promoted as the first active
// subscriber) followed by live messages, until its turn completes or the
// Hub is closed.
type Subscriber struct {
	id uint64
	ch chan message.Message

	mu     sync.Mutex
	err    error
	errSet bool
}

// Recv blocks until a message, the subscriber's terminal error, or ctx
// cancellation. The channel closes with no error once the subscriber's
// turn completes normally.
func (s *Subscriber) Recv(ctx context.Context) (message.Message, bool, error) {
	select {
	case msg, ok := <-s.ch:
		if !ok {
			s.mu.Lock()
			err := s.err
			s.mu.Unlock()

			return nil, false, err
		}

		return msg, true, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

func (s *Subscriber) setErr(err error) {
	s.mu.Lock()
	if !s.errSet {
		s.err = err
		s.errSet = true
	}
	s.mu.Unlock()
}

func (s *Subscriber) deliver(msg message.Message) {
	s.ch <- msg
}

func (s *Subscriber) close() {
	close(s.ch)
}

// Hub owns the pre-subscribe buffer, the active subscriber, and the FIFO
// queue of subscribers waiting to be promoted.
type Hub struct {
	mu sync.Mutex

	pending    []message.Message
	pendingCap int

	active *Subscriber
	queue  []*Subscriber

	closed   bool
	closeErr error

	nextID uint64
}

// NewHub constructs a Hub. preSubscribeBufferSize <= 0 uses the default cap.
func NewHub(preSubscribeBufferSize int) *Hub {
	if preSubscribeBufferSize <= 0 {
		preSubscribeBufferSize = defaultPreSubscribeBufferSize
	}

	return &Hub{pendingCap: preSubscribeBufferSize}
}

// Subscribe registers a new subscriber. If no subscriber is currently
// active, the new subscriber is promoted immediately and handed the
// buffered backlog in order. Otherwise it is appended to the FIFO queue
// and receives nothing until promoted.
func (h *Hub) Subscribe() *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscriber{id: h.nextID, ch: make(chan message.Message, len(h.pending)+1)}

	if h.closed {
		sub.setErr(h.closeErr)
		close(sub.ch)

		return sub
	}

	if h.active == nil {
		h.active = sub

		for _, msg := range h.pending {
			sub.ch <- msg
		}

		h.pending = nil

		return sub
	}

	h.queue = append(h.queue, sub)

	return sub
}

// Publish delivers msg to the active subscriber, buffering it if no
// subscriber has registered yet. The delivering channel send happens
// outside the Hub's lock so a slow subscriber cannot stall Subscribe.
func (h *Hub) Publish(msg message.Message) {
	h.mu.Lock()

	if h.closed {
		h.mu.Unlock()

		return
	}

	if h.active == nil {
		if len(h.pending) < h.pendingCap {
			h.pending = append(h.pending, msg)
		}

		h.mu.Unlock()

		return
	}

	sub := h.active
	h.mu.Unlock()

	sub.deliver(msg)
}

// PublishPartial delivers a partial streaming event directly to the
// active subscriber. Unlike Publish, it never buffers: a partial event
// with no active subscriber to observe it is simply dropped, matching
// the rule that partial events belong only to whoever is currently
// driving the turn.
func (h *Hub) PublishPartial(msg message.Message) {
	h.mu.Lock()

	if h.closed || h.active == nil {
		h.mu.Unlock()

		return
	}

	sub := h.active
	h.mu.Unlock()

	sub.deliver(msg)
}

// Complete ends the active subscriber's turn: its channel is closed (with
// no error) and the next queued subscriber, if any, is promoted.
func (h *Hub) Complete() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active == nil {
		return
	}

	h.active.close()
	h.active = nil

	if len(h.queue) > 0 {
		h.active = h.queue[0]
		h.queue = h.queue[1:]
	}
}

// CloseAll terminates every subscriber, active or queued, delivering err
// as each one's terminal error. Subsequent Subscribe calls immediately
// receive a closed channel carrying err.
func (h *Hub) CloseAll(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	h.closed = true
	h.closeErr = err

	if h.active != nil {
		h.active.setErr(err)
		h.active.close()
		h.active = nil
	}

	for _, sub := range h.queue {
		sub.setErr(err)
		sub.close()
	}

	h.queue = nil
	h.pending = nil
}
