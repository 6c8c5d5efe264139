// Package protocol defines the binary wire format exchanged between the
// AirPoint client and the desktop receiver. Every frame is a one-byte opcode
// followed by a payload whose shape is fully determined by the opcode; all
// multi-byte numeric fields are little-endian.
package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Opcodes.
const (
	OpMove       byte = 1  // 2x float32 LE (dx, dy)
	OpLeftClick  byte = 2  // no payload
	OpRightClick byte = 3  // no payload
	OpScroll     byte = 4  // float32 LE (delta)
	OpShortcut   byte = 5  // 1 byte (shortcut id)
	OpOpenURL    byte = 6  // uint32 LE length + UTF-8 bytes
	OpShutdown   byte = 7  // no payload
	OpLeftDown   byte = 8  // no payload
	OpLeftUp     byte = 9  // no payload
	OpZoom       byte = 10 // float32 LE (scale delta)
	OpRestart    byte = 11 // no payload
	OpLock       byte = 12 // no payload
	OpTextInsert byte = 20 // uint32 LE length + UTF-8 bytes
	OpKeyPress   byte = 21 // int32 LE (key code)
)

// Key codes carried by OpKeyPress.
const (
	KeyBackspace int32 = 1
	KeyEnter     int32 = 2
)

// Shortcut ids carried by OpShortcut. The receiver maps these onto the
// platform's window-management actions.
const (
	ShortcutTaskView     byte = 1
	ShortcutShowDesktop  byte = 2
	ShortcutDesktopLeft  byte = 3
	ShortcutDesktopRight byte = 4
)

// MaxTextLen caps the length prefix of variable-size payloads so a corrupt
// frame cannot make the receiver allocate unbounded memory.
const MaxTextLen = 1 << 20

var (
	ErrUnknownOpcode = errors.New("protocol: unknown opcode")
	ErrTextTooLong   = errors.New("protocol: text payload exceeds limit")
)

// Packet is the decoded form of one wire frame. Only the fields relevant to
// Op are meaningful; a Packet is constructed, serialized and discarded per
// send, never retained.
type Packet struct {
	Op    byte
	DX    float32 // OpMove
	DY    float32 // OpMove
	Delta float32 // OpScroll, OpZoom
	ID    byte    // OpShortcut
	Text  string  // OpTextInsert, OpOpenURL
	Key   int32   // OpKeyPress
}

// payloadSize returns the fixed payload size for op, or -1 for
// length-prefixed payloads, or -2 for unknown opcodes.
func payloadSize(op byte) int {
	switch op {
	case OpMove:
		return 8
	case OpScroll, OpZoom, OpKeyPress:
		return 4
	case OpShortcut:
		return 1
	case OpLeftClick, OpRightClick, OpShutdown, OpLeftDown, OpLeftUp, OpRestart, OpLock:
		return 0
	case OpTextInsert, OpOpenURL:
		return -1
	}
	return -2
}

// Encode serializes p to its wire frame.
func Encode(p Packet) ([]byte, error) {
	switch size := payloadSize(p.Op); size {
	case -2:
		return nil, fmt.Errorf("%w: %d", ErrUnknownOpcode, p.Op)
	case -1:
		text := []byte(p.Text)
		if len(text) > MaxTextLen {
			return nil, ErrTextTooLong
		}
		// byte length, not rune count
		buf := make([]byte, 1+4+len(text))
		buf[0] = p.Op
		binary.LittleEndian.PutUint32(buf[1:5], uint32(len(text)))
		copy(buf[5:], text)
		return buf, nil
	default:
		buf := make([]byte, 1+size)
		buf[0] = p.Op
		payload := buf[1:]
		switch p.Op {
		case OpMove:
			binary.LittleEndian.PutUint32(payload[0:4], math.Float32bits(p.DX))
			binary.LittleEndian.PutUint32(payload[4:8], math.Float32bits(p.DY))
		case OpScroll, OpZoom:
			binary.LittleEndian.PutUint32(payload[0:4], math.Float32bits(p.Delta))
		case OpShortcut:
			payload[0] = p.ID
		case OpKeyPress:
			binary.LittleEndian.PutUint32(payload[0:4], uint32(p.Key))
		}
		return buf, nil
	}
}

// Decode reads exactly one frame from r. It is the receiver-side inverse of
// Encode; a short read surfaces as io.ErrUnexpectedEOF.
func Decode(r io.Reader) (Packet, error) {
	var op [1]byte
	if _, err := io.ReadFull(r, op[:]); err != nil {
		return Packet{}, err
	}

	p := Packet{Op: op[0]}
	size := payloadSize(p.Op)
	switch size {
	case -2:
		return Packet{}, fmt.Errorf("%w: %d", ErrUnknownOpcode, p.Op)
	case -1:
		var prefix [4]byte
		if _, err := io.ReadFull(r, prefix[:]); err != nil {
			return Packet{}, unexpectedEOF(err)
		}
		n := binary.LittleEndian.Uint32(prefix[:])
		if n > MaxTextLen {
			return Packet{}, ErrTextTooLong
		}
		text := make([]byte, n)
		if _, err := io.ReadFull(r, text); err != nil {
			return Packet{}, unexpectedEOF(err)
		}
		p.Text = string(text)
		return p, nil
	case 0:
		return p, nil
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Packet{}, unexpectedEOF(err)
	}
	switch p.Op {
	case OpMove:
		p.DX = math.Float32frombits(binary.LittleEndian.Uint32(payload[0:4]))
		p.DY = math.Float32frombits(binary.LittleEndian.Uint32(payload[4:8]))
	case OpScroll, OpZoom:
		p.Delta = math.Float32frombits(binary.LittleEndian.Uint32(payload[0:4]))
	case OpShortcut:
		p.ID = payload[0]
	case OpKeyPress:
		p.Key = int32(binary.LittleEndian.Uint32(payload[0:4]))
	}
	return p, nil
}

// unexpectedEOF maps a mid-frame EOF to io.ErrUnexpectedEOF so callers can
// tell a truncated frame from a clean end of stream.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Convenience encoders for the hot paths. These cannot fail: the opcode is
// known and the payload is fixed-size.

func EncodeMove(dx, dy float32) []byte {
	buf, _ := Encode(Packet{Op: OpMove, DX: dx, DY: dy})
	return buf
}

func EncodeScroll(delta float32) []byte {
	buf, _ := Encode(Packet{Op: OpScroll, Delta: delta})
	return buf
}

func EncodeZoom(delta float32) []byte {
	buf, _ := Encode(Packet{Op: OpZoom, Delta: delta})
	return buf
}

func EncodeSimple(op byte) []byte {
	buf, _ := Encode(Packet{Op: op})
	return buf
}

func EncodeShortcut(id byte) []byte {
	buf, _ := Encode(Packet{Op: OpShortcut, ID: id})
	return buf
}

func EncodeKeyPress(code int32) []byte {
	buf, _ := Encode(Packet{Op: OpKeyPress, Key: code})
	return buf
}
