package server

import (
	log "github.com/sirupsen/logrus"

	"github.com/friend95/Cerosoft.AirPoint.Client/protocol"
)

// InputHandler consumes decoded input packets from connected clients. The
// receiver binary wires a platform injector here; tests and the reference
// build use LogHandler.
type InputHandler interface {
	HandlePacket(p protocol.Packet) error
}

// InputHandlerFunc adapts a function to InputHandler.
type InputHandlerFunc func(p protocol.Packet) error

func (f InputHandlerFunc) HandlePacket(p protocol.Packet) error { return f(p) }

// LogHandler logs every decoded packet.
type LogHandler struct{}

func (LogHandler) HandlePacket(p protocol.Packet) error {
	fields := log.Fields{"op": p.Op}
	switch p.Op {
	case protocol.OpMove:
		fields["dx"], fields["dy"] = p.DX, p.DY
	case protocol.OpScroll, protocol.OpZoom:
		fields["delta"] = p.Delta
	case protocol.OpShortcut:
		fields["id"] = p.ID
	case protocol.OpKeyPress:
		fields["key"] = p.Key
	case protocol.OpTextInsert, protocol.OpOpenURL:
		fields["len"] = len(p.Text)
	}
	log.WithFields(fields).Info("input")
	return nil
}

// Event is the JSON form of a decoded packet, broadcast to WebSocket
// subscribers (receiver-side UIs).
type Event struct {
	Type  string  `json:"type"`
	DX    float32 `json:"dx,omitempty"`
	DY    float32 `json:"dy,omitempty"`
	Delta float32 `json:"delta,omitempty"`
	ID    byte    `json:"id,omitempty"`
	Key   int32   `json:"key,omitempty"`
	Text  string  `json:"text,omitempty"`
}

// eventFromPacket maps a wire packet to its JSON event.
func eventFromPacket(p protocol.Packet) Event {
	e := Event{
		DX:    p.DX,
		DY:    p.DY,
		Delta: p.Delta,
		ID:    p.ID,
		Key:   p.Key,
		Text:  p.Text,
	}
	switch p.Op {
	case protocol.OpMove:
		e.Type = "move"
	case protocol.OpLeftClick:
		e.Type = "left_click"
	case protocol.OpRightClick:
		e.Type = "right_click"
	case protocol.OpScroll:
		e.Type = "scroll"
	case protocol.OpShortcut:
		e.Type = "shortcut"
	case protocol.OpOpenURL:
		e.Type = "open_url"
	case protocol.OpShutdown:
		e.Type = "shutdown"
	case protocol.OpLeftDown:
		e.Type = "left_down"
	case protocol.OpLeftUp:
		e.Type = "left_up"
	case protocol.OpZoom:
		e.Type = "zoom"
	case protocol.OpRestart:
		e.Type = "restart"
	case protocol.OpLock:
		e.Type = "lock"
	case protocol.OpTextInsert:
		e.Type = "text"
	case protocol.OpKeyPress:
		e.Type = "key"
	default:
		e.Type = "unknown"
	}
	return e
}
