package commands

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/friend95/Cerosoft.AirPoint.Client/protocol"
	"github.com/friend95/Cerosoft.AirPoint.Client/transport"
)

// MoveCoalescer folds high-frequency pointer deltas into one pending vector
// and ships it from a background loop, decoupling the touch sampling rate
// from the wire send rate. QueueMove is safe to call from the touch-delivery
// path: it takes a short lock, never blocks on the network and never
// allocates.
type MoveCoalescer struct {
	tr transport.Transport

	mu sync.Mutex
	dx float32
	dy float32

	wake     chan struct{}
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewMoveCoalescer returns a coalescer writing through tr. Call Start after
// the transport is connected.
func NewMoveCoalescer(tr transport.Transport) *MoveCoalescer {
	return &MoveCoalescer{
		tr:   tr,
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Start launches the background sender loop.
func (c *MoveCoalescer) Start() {
	go c.loop()
}

// QueueMove accumulates a pointer delta and signals the sender.
func (c *MoveCoalescer) QueueMove(dx, dy float32) {
	c.mu.Lock()
	c.dx += dx
	c.dy += dy
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
		// a wakeup is already pending; the drain will pick this delta up
	}
}

// Stop terminates the sender loop and waits for it to exit. Idempotent.
func (c *MoveCoalescer) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
	<-c.done
}

func (c *MoveCoalescer) loop() {
	defer close(c.done)
	for {
		select {
		case <-c.stop:
			return
		case <-c.wake:
		}

		dx, dy := c.drain()
		if dx == 0 && dy == 0 {
			continue
		}

		// the network write happens outside the accumulator lock
		if err := c.tr.Write(protocol.EncodeMove(dx, dy)); err != nil {
			log.WithField("err", err).Debug("move send failed, stopping coalescer")
			return
		}
	}
}

// drain atomically reads and zeroes the pending vector.
func (c *MoveCoalescer) drain() (dx, dy float32) {
	c.mu.Lock()
	dx, dy = c.dx, c.dy
	c.dx, c.dy = 0, 0
	c.mu.Unlock()
	return dx, dy
}
