//go:build !linux

package transport

import (
	"errors"
	"io"
)

// ErrBluetoothUnsupported is returned on platforms without RFCOMM socket
// support.
var ErrBluetoothUnsupported = errors.New("transport: bluetooth rfcomm is only supported on linux")

// NewBluetooth returns an RFCOMM transport whose Connect always fails on
// this platform.
func NewBluetooth(onLost LossHandler) *Stream {
	return newStream("bluetooth", dialRFCOMM, onLost)
}

func dialRFCOMM(target string) (io.ReadWriteCloser, error) {
	return nil, ErrBluetoothUnsupported
}
