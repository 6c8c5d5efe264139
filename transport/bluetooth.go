package transport

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultRFCOMMChannel is the serial-port-profile channel the AirPoint
// receiver listens on.
const DefaultRFCOMMChannel = 4

// parseBluetoothTarget splits "AA:BB:CC:DD:EE:FF[/channel]" into the kernel's
// reversed byte order and a channel number.
func parseBluetoothTarget(target string) ([6]byte, uint8, error) {
	var addr [6]byte

	device := target
	channel := uint8(DefaultRFCOMMChannel)
	if i := strings.IndexByte(target, '/'); i >= 0 {
		device = target[:i]
		ch, err := strconv.ParseUint(target[i+1:], 10, 8)
		if err != nil || ch == 0 {
			return addr, 0, fmt.Errorf("invalid rfcomm channel in %q", target)
		}
		channel = uint8(ch)
	}

	parts := strings.Split(device, ":")
	if len(parts) != 6 {
		return addr, 0, fmt.Errorf("invalid bluetooth address %q", device)
	}
	for i, part := range parts {
		b, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return addr, 0, fmt.Errorf("invalid bluetooth address %q", device)
		}
		// sockaddr stores the address least-significant byte first
		addr[5-i] = byte(b)
	}
	return addr, channel, nil
}
