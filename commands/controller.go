// Package commands binds recognized gestures and explicit user actions to
// wire packets: it applies sensitivity scaling and enable flags, coalesces
// continuous pointer motion, and sends everything else as one-shot frames.
package commands

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/friend95/Cerosoft.AirPoint.Client/gesture"
	"github.com/friend95/Cerosoft.AirPoint.Client/protocol"
	"github.com/friend95/Cerosoft.AirPoint.Client/transport"
)

// Controller is the command facade over one transport. It implements
// gesture.Handler, so a gesture.Recognizer can emit straight into it.
//
// Send-path failures never propagate to callers: the transport converts them
// into its one loss notification, and sends while disconnected are silent
// no-ops.
type Controller struct {
	tr       transport.Transport
	settings Settings

	mu        sync.RWMutex
	coalescer *MoveCoalescer
}

// NewController returns a controller writing through tr with the given
// settings.
func NewController(tr transport.Transport, settings Settings) *Controller {
	return &Controller{tr: tr, settings: settings}
}

// Connect establishes the session and starts the move sender loop. Any
// previous session is fully torn down first, sender loop included.
func (c *Controller) Connect(target string) error {
	if c.tr.IsConnected() {
		c.Disconnect("reconnecting", true)
	}

	if err := c.tr.Connect(target); err != nil {
		return err
	}

	// the pending-move accumulator is per-connection state
	coalescer := NewMoveCoalescer(c.tr)
	coalescer.Start()

	c.mu.Lock()
	c.coalescer = coalescer
	c.mu.Unlock()
	return nil
}

// Disconnect stops the sender loop and tears the transport down.
func (c *Controller) Disconnect(reason string, suppress bool) {
	c.mu.Lock()
	coalescer := c.coalescer
	c.coalescer = nil
	c.mu.Unlock()

	if coalescer != nil {
		coalescer.Stop()
	}
	c.tr.Disconnect(reason, suppress)
}

// IsConnected reports whether the underlying transport is connected.
func (c *Controller) IsConnected() bool {
	return c.tr.IsConnected()
}

// gesture.Handler implementation. Enable flags gate the translation here;
// the recognizer keeps computing state regardless.

func (c *Controller) OnMove(dx, dy float32) {
	if !c.settings.GesturesEnabled {
		return
	}

	c.mu.RLock()
	coalescer := c.coalescer
	c.mu.RUnlock()
	if coalescer == nil {
		return
	}

	s := c.settings.CursorSensitivity
	coalescer.QueueMove(dx*s, dy*s)
}

func (c *Controller) OnScroll(dy float32) {
	if !c.settings.GesturesEnabled || !c.settings.ScrollEnabled {
		return
	}
	c.send(protocol.EncodeScroll(dy * c.settings.ScrollSensitivity))
}

func (c *Controller) OnZoom(scale float32) {
	if !c.settings.GesturesEnabled || !c.settings.ZoomEnabled {
		return
	}
	// sensitivity stretches the deviation from the neutral factor
	scaled := 1 + (scale-1)*c.settings.ZoomSensitivity
	c.send(protocol.EncodeZoom(scaled))
}

func (c *Controller) OnClick(kind gesture.ClickKind) {
	if !c.settings.GesturesEnabled {
		return
	}
	if kind == gesture.ClickSecondary {
		c.RightClick()
	} else {
		c.LeftClick()
	}
}

func (c *Controller) OnDragState(dragging bool) {
	if !c.settings.GesturesEnabled || !c.settings.DragEnabled {
		return
	}
	if dragging {
		c.LeftDown()
	} else {
		c.LeftUp()
	}
}

func (c *Controller) OnSwipe(dir gesture.SwipeDirection) {
	if !c.settings.GesturesEnabled || !c.settings.SwipeEnabled {
		return
	}
	switch dir {
	case gesture.SwipeUp:
		c.Shortcut(protocol.ShortcutTaskView)
	case gesture.SwipeDown:
		c.Shortcut(protocol.ShortcutShowDesktop)
	case gesture.SwipeLeft:
		c.Shortcut(protocol.ShortcutDesktopLeft)
	case gesture.SwipeRight:
		c.Shortcut(protocol.ShortcutDesktopRight)
	}
}

// One-shot commands. These bypass the coalescer; only continuous pointer
// motion is coalesced.

func (c *Controller) LeftClick()  { c.send(protocol.EncodeSimple(protocol.OpLeftClick)) }
func (c *Controller) RightClick() { c.send(protocol.EncodeSimple(protocol.OpRightClick)) }
func (c *Controller) LeftDown()   { c.send(protocol.EncodeSimple(protocol.OpLeftDown)) }
func (c *Controller) LeftUp()     { c.send(protocol.EncodeSimple(protocol.OpLeftUp)) }
func (c *Controller) Shutdown()   { c.send(protocol.EncodeSimple(protocol.OpShutdown)) }
func (c *Controller) Restart()    { c.send(protocol.EncodeSimple(protocol.OpRestart)) }
func (c *Controller) Lock()       { c.send(protocol.EncodeSimple(protocol.OpLock)) }

func (c *Controller) Shortcut(id byte) {
	c.send(protocol.EncodeShortcut(id))
}

func (c *Controller) SendKey(code int32) {
	c.send(protocol.EncodeKeyPress(code))
}

// SendText ships a text insertion. Empty text is short-circuited locally.
func (c *Controller) SendText(text string) {
	if text == "" {
		return
	}
	frame, err := protocol.Encode(protocol.Packet{Op: protocol.OpTextInsert, Text: text})
	if err != nil {
		log.WithField("err", err).Warn("text not sent")
		return
	}
	c.send(frame)
}

// OpenURL asks the receiver to open url in its default browser. Empty URLs
// are short-circuited locally.
func (c *Controller) OpenURL(url string) {
	if url == "" {
		return
	}
	frame, err := protocol.Encode(protocol.Packet{Op: protocol.OpOpenURL, Text: url})
	if err != nil {
		log.WithField("err", err).Warn("url not sent")
		return
	}
	c.send(frame)
}

func (c *Controller) send(frame []byte) {
	// errors surface through the transport's loss notification; a send that
	// races a tear-down is a no-op
	if err := c.tr.Write(frame); err != nil {
		log.WithField("err", err).Debug("command dropped")
	}
}
