package audit

import (
	"log"
	"sync"
)

type Event struct {
	Actor    string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Sink persists a single event.
type Sink interface {
	Log(ev Event) error
}

type Dispatcher struct {
	sink  Sink
	queue chan Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			log.Println("audit error:", err)
		}
	}
}

// Dispatch never blocks. A nil or closed dispatcher discards the event.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		log.Println("audit dispatcher closed, dropping event")
		return
	}

	select {
	case d.queue <- ev:
	default:
		// queue full, the request must not fail because of audit
		log.Println("audit queue full, dropping event")
	}
}

// Close drains pending events and stops the worker. It is safe to call
// more than once.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
