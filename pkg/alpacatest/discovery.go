package alpacatest

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"
)

// DiscoveryResponder answers Alpaca discovery probes on a loopback port.
type DiscoveryResponder struct {
	sock  *net.UDPConn
	reply []byte
	done  chan struct{}
}

// NewDiscoveryResponder listens on an ephemeral loopback port and answers
// every probe with alpacaPort. It stops when the test ends.
func NewDiscoveryResponder(t testing.TB, alpacaPort int) *DiscoveryResponder {
	t.Helper()

	sock, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("cannot bind discovery socket: %v", err)
	}

	d := &DiscoveryResponder{
		sock:  sock,
		reply: []byte(fmt.Sprintf(`{"AlpacaPort": %d}`, alpacaPort)),
		done:  make(chan struct{}),
	}
	go d.run()

	t.Cleanup(func() {
		sock.Close()
		<-d.done
	})
	return d
}

// Addr returns the address probes should be sent to.
func (d *DiscoveryResponder) Addr() string {
	return d.sock.LocalAddr().String()
}

func (d *DiscoveryResponder) run() {
	defer close(d.done)

	buf := make([]byte, 1024)
	for {
		d.sock.SetReadDeadline(time.Now().Add(time.Second))
		n, addr, err := d.sock.ReadFromUDP(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			return
		}

		if strings.Contains(string(buf[:n]), "alpacadiscovery1") {
			d.sock.WriteToUDP(d.reply, addr)
		}
	}
}
