package transport

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/mdns"
	log "github.com/sirupsen/logrus"
)

// ServiceType is the mDNS service the AirPoint receiver advertises.
const ServiceType = "_airpoint._tcp"

// SerialServiceName is the friendly name an AirPoint receiver registers on
// its Bluetooth serial service; paired-device scans match against it.
const SerialServiceName = "AirPoint"

// Target is one reachable receiver.
type Target struct {
	Name string `json:"name"`
	Addr string `json:"addr"` // "host:port" or a bluetooth device address
	Kind string `json:"kind"` // "tcp" or "bluetooth"
}

// Discovery finds AirPoint receivers on the local network and among paired
// Bluetooth devices, and remembers the most recently seen ones.
type Discovery struct {
	recent *lru.Cache[string, Target]
}

// NewDiscovery returns a Discovery keeping up to size recent targets.
func NewDiscovery(size int) (*Discovery, error) {
	recent, err := lru.New[string, Target](size)
	if err != nil {
		return nil, err
	}
	return &Discovery{recent: recent}, nil
}

// Browse queries mDNS for receivers, blocking up to timeout.
func (d *Discovery) Browse(timeout time.Duration) ([]Target, error) {
	entries := make(chan *mdns.ServiceEntry, 16)
	var targets []Target

	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			t := Target{
				Name: strings.TrimSuffix(e.Name, "."),
				Addr: fmt.Sprintf("%s:%d", e.AddrV4, e.Port),
				Kind: "tcp",
			}
			targets = append(targets, t)
			d.recent.Add(t.Addr, t)
		}
	}()

	err := mdns.Query(&mdns.QueryParam{
		Service:     ServiceType,
		Timeout:     timeout,
		Entries:     entries,
		DisableIPv6: true,
	})
	close(entries)
	<-done

	if err != nil {
		return nil, fmt.Errorf("mdns query: %w", err)
	}
	return targets, nil
}

// PairedSerialDevices lists already-paired Bluetooth peers whose name
// advertises the AirPoint serial service.
func (d *Discovery) PairedSerialDevices() ([]Target, error) {
	// bluetoothctl prints one "Device <addr> <name>" line per paired peer
	out, err := exec.Command("bluetoothctl", "devices", "Paired").Output()
	if err != nil {
		return nil, fmt.Errorf("bluetoothctl: %w", err)
	}

	var targets []Target
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.SplitN(strings.TrimSpace(line), " ", 3)
		if len(fields) != 3 || fields[0] != "Device" {
			continue
		}
		if !strings.Contains(fields[2], SerialServiceName) {
			continue
		}
		t := Target{Name: fields[2], Addr: fields[1], Kind: "bluetooth"}
		targets = append(targets, t)
		d.recent.Add(t.Addr, t)
	}
	return targets, nil
}

// Recent returns the most recently seen targets, newest last.
func (d *Discovery) Recent() []Target {
	keys := d.recent.Keys()
	targets := make([]Target, 0, len(keys))
	for _, k := range keys {
		if t, ok := d.recent.Get(k); ok {
			targets = append(targets, t)
		}
	}
	return targets
}

// Advertise registers the receiver's mDNS service on port. The returned stop
// function unregisters it.
func Advertise(instance string, port int) (stop func(), err error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}
	if instance == "" {
		instance = host
	}

	service, err := mdns.NewMDNSService(instance, ServiceType, "", "", port, nil, []string{"airpoint receiver"})
	if err != nil {
		return nil, fmt.Errorf("mdns service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("mdns server: %w", err)
	}

	log.WithFields(log.Fields{"service": ServiceType, "port": port}).Info("advertising receiver")
	return func() { server.Shutdown() }, nil
}
