package commands

import (
	"fmt"
	"strconv"

	"github.com/friend95/Cerosoft.AirPoint.Client/protocol"
	"github.com/friend95/Cerosoft.AirPoint.Client/transport"
)

// CommandResponse represents a standardized response format for all commands
type CommandResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) *CommandResponse {
	return &CommandResponse{
		Status: "ok",
		Data:   data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(err error) *CommandResponse {
	return &CommandResponse{
		Status: "error",
		Error:  err.Error(),
	}
}

// TargetRequest identifies the receiver a one-shot command is sent to.
type TargetRequest struct {
	Target    string `json:"target"`              // "host:port" or bluetooth address
	Transport string `json:"transport,omitempty"` // "tcp" (default) or "bluetooth"
}

// TextRequest represents the parameters for a text input command
type TextRequest struct {
	TargetRequest
	Text string `json:"text"`
}

// KeyRequest represents the parameters for a key press command
type KeyRequest struct {
	TargetRequest
	Key string `json:"key"` // "backspace", "enter", or a numeric code
}

// URLRequest represents the parameters for an open-URL command
type URLRequest struct {
	TargetRequest
	URL string `json:"url"`
}

// ShortcutRequest represents the parameters for a shortcut command
type ShortcutRequest struct {
	TargetRequest
	ID byte `json:"id"`
}

// PowerRequest represents the parameters for a power command
type PowerRequest struct {
	TargetRequest
	Action string `json:"action"` // "lock", "restart", "shutdown"
}

// NewTransport picks the concrete transport realization for kind.
func NewTransport(kind string, onLost transport.LossHandler) (transport.Transport, error) {
	switch kind {
	case "", "tcp":
		return transport.NewTCP(onLost), nil
	case "bluetooth":
		return transport.NewBluetooth(onLost), nil
	}
	return nil, fmt.Errorf("unknown transport %q", kind)
}

// withConnection connects to the request's target, runs fn against a
// controller, and disconnects without raising a loss notification.
func withConnection(req TargetRequest, fn func(*Controller)) *CommandResponse {
	if req.Target == "" {
		return NewErrorResponse(fmt.Errorf("target is required"))
	}

	tr, err := NewTransport(req.Transport, nil)
	if err != nil {
		return NewErrorResponse(err)
	}

	ctrl := NewController(tr, DefaultSettings())
	if err := ctrl.Connect(req.Target); err != nil {
		return NewErrorResponse(fmt.Errorf("error connecting to %s: %w", req.Target, err))
	}
	defer ctrl.Disconnect("command finished", true)

	fn(ctrl)
	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Sent to %s", req.Target),
	})
}

// TextCommand sends text input to the receiver
func TextCommand(req TextRequest) *CommandResponse {
	if req.Text == "" {
		return NewErrorResponse(fmt.Errorf("text is required"))
	}
	return withConnection(req.TargetRequest, func(ctrl *Controller) {
		ctrl.SendText(req.Text)
	})
}

// KeyCommand sends a single key press to the receiver
func KeyCommand(req KeyRequest) *CommandResponse {
	var code int32
	switch req.Key {
	case "backspace":
		code = protocol.KeyBackspace
	case "enter":
		code = protocol.KeyEnter
	default:
		n, err := strconv.ParseInt(req.Key, 10, 32)
		if err != nil {
			return NewErrorResponse(fmt.Errorf("unknown key %q", req.Key))
		}
		code = int32(n)
	}
	return withConnection(req.TargetRequest, func(ctrl *Controller) {
		ctrl.SendKey(code)
	})
}

// URLCommand opens a URL in the receiver's default browser
func URLCommand(req URLRequest) *CommandResponse {
	if req.URL == "" {
		return NewErrorResponse(fmt.Errorf("url is required"))
	}
	return withConnection(req.TargetRequest, func(ctrl *Controller) {
		ctrl.OpenURL(req.URL)
	})
}

// ShortcutCommand triggers a window-management shortcut on the receiver
func ShortcutCommand(req ShortcutRequest) *CommandResponse {
	if req.ID == 0 {
		return NewErrorResponse(fmt.Errorf("shortcut id is required"))
	}
	return withConnection(req.TargetRequest, func(ctrl *Controller) {
		ctrl.Shortcut(req.ID)
	})
}

// PowerCommand locks, restarts or shuts down the receiver machine
func PowerCommand(req PowerRequest) *CommandResponse {
	var fn func(*Controller)
	switch req.Action {
	case "lock":
		fn = (*Controller).Lock
	case "restart":
		fn = (*Controller).Restart
	case "shutdown":
		fn = (*Controller).Shutdown
	default:
		return NewErrorResponse(fmt.Errorf("unknown power action %q", req.Action))
	}
	return withConnection(req.TargetRequest, fn)
}
