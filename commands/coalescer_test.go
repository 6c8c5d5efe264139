package commands

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/friend95/Cerosoft.AirPoint.Client/protocol"
)

// fakeTransport collects frames and satisfies transport.Transport.
type fakeTransport struct {
	mu        sync.Mutex
	frames    [][]byte
	connected bool
	failWrite bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{connected: true}
}

func (f *fakeTransport) Connect(target string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = true
	return nil
}

func (f *fakeTransport) Write(frame []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.connected || f.failWrite {
		return errors.New("write failed")
	}
	buf := make([]byte, len(frame))
	copy(buf, frame)
	f.frames = append(f.frames, buf)
	return nil
}

func (f *fakeTransport) Disconnect(reason string, suppress bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = false
}

func (f *fakeTransport) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeTransport) setFailWrite(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWrite = fail
}

// sentMoves decodes every captured frame and returns the decoded packets.
func (f *fakeTransport) sent() []protocol.Packet {
	f.mu.Lock()
	defer f.mu.Unlock()
	var packets []protocol.Packet
	for _, frame := range f.frames {
		p, err := protocol.Decode(bytes.NewReader(frame))
		if err != nil {
			panic(err)
		}
		packets = append(packets, p)
	}
	return packets
}

func TestDrainAccumulatesDeposits(t *testing.T) {
	c := NewMoveCoalescer(newFakeTransport())

	c.QueueMove(3, 4)
	c.QueueMove(1, -1)
	c.QueueMove(-2, 0)

	dx, dy := c.drain()
	assert.Equal(t, float32(2), dx)
	assert.Equal(t, float32(3), dy)

	// a second drain with no deposits yields zero
	dx, dy = c.drain()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestLoopSendsCoalescedMoves(t *testing.T) {
	tr := newFakeTransport()
	c := NewMoveCoalescer(tr)
	c.Start()
	defer c.Stop()

	c.QueueMove(3, 4)
	c.QueueMove(1, -1)
	c.QueueMove(-2, 0)

	require.Eventually(t, func() bool {
		var dx, dy float32
		for _, p := range tr.sent() {
			dx += p.DX
			dy += p.DY
		}
		return dx == 2 && dy == 3
	}, time.Second, time.Millisecond)

	// every frame on the wire is a Move
	for _, p := range tr.sent() {
		assert.Equal(t, protocol.OpMove, p.Op)
	}
}

func TestLoopSkipsZeroDelta(t *testing.T) {
	tr := newFakeTransport()
	c := NewMoveCoalescer(tr)
	c.Start()

	// a drained zero vector must not reach the wire
	c.QueueMove(5, -5)
	c.QueueMove(-5, 5)

	time.Sleep(20 * time.Millisecond)
	c.Stop()

	for _, p := range tr.sent() {
		assert.False(t, p.DX == 0 && p.DY == 0, "zero-delta move was sent")
	}
}

func TestStopTerminatesLoop(t *testing.T) {
	c := NewMoveCoalescer(newFakeTransport())
	c.Start()

	done := make(chan struct{})
	go func() {
		c.Stop()
		c.Stop() // idempotent
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestLoopExitsOnWriteFailure(t *testing.T) {
	tr := newFakeTransport()
	c := NewMoveCoalescer(tr)
	c.Start()

	tr.setFailWrite(true)
	c.QueueMove(1, 1)

	select {
	case <-c.done:
	case <-time.After(time.Second):
		t.Fatal("loop did not exit after write failure")
	}
}
