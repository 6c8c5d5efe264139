package protocol

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMoveRoundTrip(t *testing.T) {
	frame := EncodeMove(1.5, -2.25)
	require.Len(t, frame, 9)
	assert.Equal(t, OpMove, frame[0])

	p, err := Decode(bytes.NewReader(frame))
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), p.DX)
	assert.Equal(t, float32(-2.25), p.DY)
}

func TestEncodeTextLengthPrefixIsByteCount(t *testing.T) {
	frame, err := Encode(Packet{Op: OpTextInsert, Text: "é"})
	require.NoError(t, err)

	// "é" is one rune but two UTF-8 bytes
	require.Len(t, frame, 1+4+2)
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(frame[1:5]))

	p, err := Decode(bytes.NewReader(frame))
	require.NoError(t, err)
	assert.Equal(t, "é", p.Text)
}

func TestEncodeDecodeAllOpcodes(t *testing.T) {
	tests := []struct {
		name   string
		packet Packet
	}{
		{"move", Packet{Op: OpMove, DX: 10, DY: -3.5}},
		{"left click", Packet{Op: OpLeftClick}},
		{"right click", Packet{Op: OpRightClick}},
		{"scroll", Packet{Op: OpScroll, Delta: -42.5}},
		{"shortcut", Packet{Op: OpShortcut, ID: ShortcutTaskView}},
		{"open url", Packet{Op: OpOpenURL, Text: "https://example.com/?q=a b"}},
		{"shutdown", Packet{Op: OpShutdown}},
		{"left down", Packet{Op: OpLeftDown}},
		{"left up", Packet{Op: OpLeftUp}},
		{"zoom", Packet{Op: OpZoom, Delta: 1.08}},
		{"restart", Packet{Op: OpRestart}},
		{"lock", Packet{Op: OpLock}},
		{"text", Packet{Op: OpTextInsert, Text: "hello"}},
		{"empty text", Packet{Op: OpTextInsert, Text: ""}},
		{"key press", Packet{Op: OpKeyPress, Key: KeyEnter}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := Encode(tt.packet)
			require.NoError(t, err)

			decoded, err := Decode(bytes.NewReader(frame))
			require.NoError(t, err)
			assert.Equal(t, tt.packet, decoded)
		})
	}
}

func TestDecodeConsumesExactlyOneFrame(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(EncodeMove(1, 2))
	frame, err := Encode(Packet{Op: OpTextInsert, Text: "ab"})
	require.NoError(t, err)
	stream.Write(frame)
	stream.Write(EncodeSimple(OpLock))

	r := bytes.NewReader(stream.Bytes())

	p1, err := Decode(r)
	require.NoError(t, err)
	assert.Equal(t, OpMove, p1.Op)

	p2, err := Decode(r)
	require.NoError(t, err)
	assert.Equal(t, "ab", p2.Text)

	p3, err := Decode(r)
	require.NoError(t, err)
	assert.Equal(t, OpLock, p3.Op)

	_, err = Decode(r)
	assert.Equal(t, io.EOF, err)
}

func TestDecodeTruncatedFrame(t *testing.T) {
	frame := EncodeMove(1, 2)
	_, err := Decode(bytes.NewReader(frame[:5]))
	assert.Equal(t, io.ErrUnexpectedEOF, err)
}

func TestDecodeTruncatedTextPayload(t *testing.T) {
	frame, err := Encode(Packet{Op: OpTextInsert, Text: "hello"})
	require.NoError(t, err)

	_, err = Decode(bytes.NewReader(frame[:len(frame)-2]))
	assert.Equal(t, io.ErrUnexpectedEOF, err)
}

func TestDecodeUnknownOpcode(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte{99}))
	assert.ErrorIs(t, err, ErrUnknownOpcode)
}

func TestDecodeRejectsOversizedLengthPrefix(t *testing.T) {
	frame := make([]byte, 5)
	frame[0] = OpTextInsert
	binary.LittleEndian.PutUint32(frame[1:5], MaxTextLen+1)

	_, err := Decode(bytes.NewReader(frame))
	assert.ErrorIs(t, err, ErrTextTooLong)
}

func TestEncodeRejectsUnknownOpcode(t *testing.T) {
	_, err := Encode(Packet{Op: 77})
	assert.ErrorIs(t, err, ErrUnknownOpcode)
}
