package transport

import (
	"io"
	"net"
)

// NewTCP returns a TCP transport. target for Connect is "host:port".
func NewTCP(onLost LossHandler) *Stream {
	return newStream("tcp", dialTCP, onLost)
}

func dialTCP(target string) (io.ReadWriteCloser, error) {
	conn, err := net.DialTimeout("tcp", target, ConnectTimeout)
	if err != nil {
		return nil, err
	}

	// pointer deltas are tiny and latency-sensitive
	if tcp, ok := conn.(*net.TCPConn); ok {
		tcp.SetNoDelay(true)
	}
	return conn, nil
}
