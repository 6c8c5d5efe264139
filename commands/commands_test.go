package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextCommandRequiresText(t *testing.T) {
	resp := TextCommand(TextRequest{TargetRequest: TargetRequest{Target: "host:1"}})
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "text is required")
}

func TestCommandsRequireTarget(t *testing.T) {
	resp := TextCommand(TextRequest{Text: "hi"})
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "target is required")
}

func TestKeyCommandRejectsUnknownKey(t *testing.T) {
	req := KeyRequest{TargetRequest: TargetRequest{Target: "host:1"}, Key: "bogus"}
	resp := KeyCommand(req)
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "unknown key")
}

func TestPowerCommandRejectsUnknownAction(t *testing.T) {
	req := PowerRequest{TargetRequest: TargetRequest{Target: "host:1"}, Action: "sleep"}
	resp := PowerCommand(req)
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "unknown power action")
}

func TestShortcutCommandRequiresID(t *testing.T) {
	resp := ShortcutCommand(ShortcutRequest{TargetRequest: TargetRequest{Target: "host:1"}})
	assert.Equal(t, "error", resp.Status)
}

func TestNewTransportKinds(t *testing.T) {
	for _, kind := range []string{"", "tcp", "bluetooth"} {
		tr, err := NewTransport(kind, nil)
		assert.NoError(t, err)
		assert.NotNil(t, tr)
	}

	_, err := NewTransport("serial", nil)
	assert.Error(t, err)
}
