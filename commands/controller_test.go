package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/friend95/Cerosoft.AirPoint.Client/gesture"
	"github.com/friend95/Cerosoft.AirPoint.Client/protocol"
)

func newTestController(settings Settings) (*Controller, *fakeTransport) {
	tr := newFakeTransport()
	c := NewController(tr, settings)
	return c, tr
}

func opcodes(tr *fakeTransport) []byte {
	var ops []byte
	for _, p := range tr.sent() {
		ops = append(ops, p.Op)
	}
	return ops
}

func TestScrollAppliesSensitivity(t *testing.T) {
	settings := DefaultSettings()
	settings.ScrollSensitivity = 2
	c, tr := newTestController(settings)

	c.OnScroll(10)

	packets := tr.sent()
	require.Len(t, packets, 1)
	assert.Equal(t, protocol.OpScroll, packets[0].Op)
	assert.Equal(t, float32(20), packets[0].Delta)
}

func TestZoomSensitivityStretchesDeviation(t *testing.T) {
	settings := DefaultSettings()
	settings.ZoomSensitivity = 2
	c, tr := newTestController(settings)

	c.OnZoom(1.05)

	packets := tr.sent()
	require.Len(t, packets, 1)
	assert.Equal(t, protocol.OpZoom, packets[0].Op)
	assert.InDelta(t, 1.10, packets[0].Delta, 1e-6)
}

func TestMasterSwitchSilencesEverything(t *testing.T) {
	settings := DefaultSettings()
	settings.GesturesEnabled = false
	c, tr := newTestController(settings)

	c.OnMove(5, 5)
	c.OnScroll(10)
	c.OnZoom(1.1)
	c.OnClick(gesture.ClickPrimary)
	c.OnDragState(true)
	c.OnSwipe(gesture.SwipeUp)

	assert.Empty(t, tr.sent())
}

func TestPerGestureFlags(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		fire    func(*Controller)
		blocked byte
	}{
		{
			"scroll disabled",
			func(s *Settings) { s.ScrollEnabled = false },
			func(c *Controller) { c.OnScroll(10) },
			protocol.OpScroll,
		},
		{
			"zoom disabled",
			func(s *Settings) { s.ZoomEnabled = false },
			func(c *Controller) { c.OnZoom(1.1) },
			protocol.OpZoom,
		},
		{
			"swipe disabled",
			func(s *Settings) { s.SwipeEnabled = false },
			func(c *Controller) { c.OnSwipe(gesture.SwipeUp) },
			protocol.OpShortcut,
		},
		{
			"drag disabled",
			func(s *Settings) { s.DragEnabled = false },
			func(c *Controller) { c.OnDragState(true) },
			protocol.OpLeftDown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.mutate(&settings)
			c, tr := newTestController(settings)

			tt.fire(c)
			assert.NotContains(t, opcodes(tr), tt.blocked)
		})
	}
}

func TestClickKinds(t *testing.T) {
	c, tr := newTestController(DefaultSettings())

	c.OnClick(gesture.ClickPrimary)
	c.OnClick(gesture.ClickSecondary)

	assert.Equal(t, []byte{protocol.OpLeftClick, protocol.OpRightClick}, opcodes(tr))
}

func TestDragStateMapsToButton(t *testing.T) {
	c, tr := newTestController(DefaultSettings())

	c.OnDragState(true)
	c.OnDragState(false)

	assert.Equal(t, []byte{protocol.OpLeftDown, protocol.OpLeftUp}, opcodes(tr))
}

func TestSwipeMapsToShortcuts(t *testing.T) {
	c, tr := newTestController(DefaultSettings())

	c.OnSwipe(gesture.SwipeUp)
	c.OnSwipe(gesture.SwipeDown)
	c.OnSwipe(gesture.SwipeLeft)
	c.OnSwipe(gesture.SwipeRight)

	packets := tr.sent()
	require.Len(t, packets, 4)
	assert.Equal(t, protocol.ShortcutTaskView, packets[0].ID)
	assert.Equal(t, protocol.ShortcutShowDesktop, packets[1].ID)
	assert.Equal(t, protocol.ShortcutDesktopLeft, packets[2].ID)
	assert.Equal(t, protocol.ShortcutDesktopRight, packets[3].ID)
}

func TestEmptyTextAndURLAreShortCircuited(t *testing.T) {
	c, tr := newTestController(DefaultSettings())

	c.SendText("")
	c.OpenURL("")

	assert.Empty(t, tr.sent())
}

func TestSendTextCarriesUTF8(t *testing.T) {
	c, tr := newTestController(DefaultSettings())

	c.SendText("héllo")

	packets := tr.sent()
	require.Len(t, packets, 1)
	assert.Equal(t, protocol.OpTextInsert, packets[0].Op)
	assert.Equal(t, "héllo", packets[0].Text)
}

func TestMoveRoutesThroughCoalescer(t *testing.T) {
	settings := DefaultSettings()
	settings.CursorSensitivity = 2
	c, tr := newTestController(settings)
	require.NoError(t, c.Connect("peer"))
	defer c.Disconnect("test done", true)

	c.OnMove(3, -1)

	require.Eventually(t, func() bool {
		packets := tr.sent()
		return len(packets) == 1 && packets[0].DX == 6 && packets[0].DY == -2
	}, time.Second, time.Millisecond)
}

func TestMoveBeforeConnectIsNoop(t *testing.T) {
	c, tr := newTestController(DefaultSettings())

	// no coalescer yet: the move path must not panic or send
	c.OnMove(3, 3)
	assert.Empty(t, tr.sent())
}

func TestDisconnectedSendsAreSilent(t *testing.T) {
	c, tr := newTestController(DefaultSettings())
	tr.Disconnect("gone", false)

	c.OnScroll(5)
	c.LeftClick()
	c.SendText("x")

	assert.Empty(t, tr.sent())
}
