// Package transport owns the byte stream between the client and the desktop
// receiver. Two realizations exist: TCP and Bluetooth RFCOMM. Both share the
// same connection lifecycle: Connect with a bounded timeout, frame-atomic
// writes, idempotent Disconnect, and at most one loss notification per
// connected session.
package transport

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ConnectTimeout bounds how long a connection attempt may take.
const ConnectTimeout = 3 * time.Second

var (
	ErrNotConnected     = errors.New("transport: not connected")
	ErrAlreadyConnected = errors.New("transport: already connected")
)

// State is the connection lifecycle state.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	}
	return "disconnected"
}

// LossHandler is invoked at most once per connected session, with a
// human-readable reason, when the connection is lost or torn down without
// suppression.
type LossHandler func(reason string)

// Transport is the capability surface the command layer writes through.
type Transport interface {
	// Connect dials target and transitions to Connected. On failure no
	// partial state is retained.
	Connect(target string) error

	// Write sends one whole frame. Concurrent callers are serialized so
	// frames never interleave. A failure triggers an internal disconnect
	// (and the loss notification) before the error is returned.
	Write(frame []byte) error

	// Disconnect tears the connection down. Safe to call at any time, in any
	// state; suppress silences the loss notification for intentional
	// disconnects.
	Disconnect(reason string, suppress bool)

	IsConnected() bool
}

// dialFunc produces a connected byte stream for a target.
type dialFunc func(target string) (io.ReadWriteCloser, error)

// Stream implements Transport over any dialable byte stream.
type Stream struct {
	kind   string
	dial   dialFunc
	onLost LossHandler

	mu           sync.Mutex
	conn         io.ReadWriteCloser
	state        State
	wasConnected bool
	session      string
}

func newStream(kind string, dial dialFunc, onLost LossHandler) *Stream {
	return &Stream{kind: kind, dial: dial, onLost: onLost}
}

func (s *Stream) Connect(target string) error {
	s.mu.Lock()
	if s.state != StateDisconnected {
		s.mu.Unlock()
		return ErrAlreadyConnected
	}
	s.state = StateConnecting
	s.mu.Unlock()

	conn, err := s.dial(target)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateDisconnected
		return fmt.Errorf("%s connect to %s: %w", s.kind, target, err)
	}
	if s.state != StateConnecting {
		// Disconnect raced the dial
		conn.Close()
		return ErrNotConnected
	}

	s.conn = conn
	s.state = StateConnected
	s.wasConnected = true
	s.session = uuid.NewString()

	log.WithFields(log.Fields{
		"transport": s.kind,
		"target":    target,
		"session":   s.session,
	}).Info("connected")
	return nil
}

func (s *Stream) Write(frame []byte) error {
	s.mu.Lock()
	if s.state != StateConnected {
		s.mu.Unlock()
		return ErrNotConnected
	}
	_, err := s.conn.Write(frame)
	s.mu.Unlock()

	if err != nil {
		s.Disconnect(fmt.Sprintf("write failed: %v", err), false)
		return err
	}
	return nil
}

func (s *Stream) Disconnect(reason string, suppress bool) {
	s.mu.Lock()
	if s.state == StateDisconnected && !s.wasConnected {
		s.mu.Unlock()
		return
	}

	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	s.state = StateDisconnected

	notify := s.wasConnected && !suppress
	s.wasConnected = false
	session := s.session
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"transport": s.kind,
		"session":   session,
		"reason":    reason,
	}).Info("disconnected")

	if notify && s.onLost != nil {
		s.onLost(reason)
	}
}

func (s *Stream) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateConnected
}

// Session returns the id of the current connected session, or "" when
// disconnected.
func (s *Stream) Session() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConnected {
		return ""
	}
	return s.session
}
