//go:build linux

package transport

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// NewBluetooth returns an RFCOMM transport. target for Connect is a device
// address "AA:BB:CC:DD:EE:FF", optionally with "/channel" appended.
func NewBluetooth(onLost LossHandler) *Stream {
	return newStream("bluetooth", dialRFCOMM, onLost)
}

func dialRFCOMM(target string) (io.ReadWriteCloser, error) {
	addr, channel, err := parseBluetoothTarget(target)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_STREAM, unix.BTPROTO_RFCOMM)
	if err != nil {
		return nil, fmt.Errorf("rfcomm socket: %w", err)
	}

	sa := &unix.SockaddrRFCOMM{Addr: addr, Channel: channel}

	// unix.Connect has no deadline support on RFCOMM sockets, so bound it
	// ourselves and abandon the fd on timeout.
	errc := make(chan error, 1)
	go func() {
		errc <- unix.Connect(fd, sa)
	}()

	select {
	case err = <-errc:
	case <-time.After(ConnectTimeout):
		unix.Close(fd)
		return nil, fmt.Errorf("rfcomm connect to %s: timeout", target)
	}
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("rfcomm connect to %s: %w", target, err)
	}

	return os.NewFile(uintptr(fd), "rfcomm:"+target), nil
}
