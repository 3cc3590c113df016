package alpaca

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

const (
	DiscoveryPort    = 32227
	discoveryMessage = "alpacadiscovery1"
)

// DiscoveredServer is an Alpaca server that answered a discovery probe.
type DiscoveredServer struct {
	IP   string
	Port int
}

// Address returns the host:port to pass to device constructors.
func (s DiscoveredServer) Address() string {
	return net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
}

// Discover broadcasts a discovery probe on the local network and collects
// replies until ctx is done. Callers should give ctx a deadline.
func Discover(ctx context.Context, opts ...Option) ([]DiscoveredServer, error) {
	return DiscoverAt(ctx, net.JoinHostPort("255.255.255.255", strconv.Itoa(DiscoveryPort)), opts...)
}

// DiscoverAt sends the probe to target and collects replies until ctx is
// done. Each server is reported once.
func DiscoverAt(ctx context.Context, target string, opts ...Option) ([]DiscoveredServer, error) {
	logger := buildOptions(opts).logger

	dst, err := net.ResolveUDPAddr("udp4", target)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve discovery address: %w", err)
	}

	sock, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return nil, fmt.Errorf("cannot bind discovery socket: %w", err)
	}
	defer sock.Close()

	if _, err := sock.WriteToUDP([]byte(discoveryMessage), dst); err != nil {
		return nil, fmt.Errorf("send discovery probe: %w", err)
	}
	logger.Debugf("Sent discovery probe to %s", dst)

	seen := make(map[string]bool)
	servers := []DiscoveredServer{}
	buf := make([]byte, 1024)
	for {
		select {
		case <-ctx.Done():
			return servers, nil
		default:
		}

		// Short deadlines so cancellation is noticed.
		sock.SetReadDeadline(time.Now().Add(100 * time.Millisecond))

		n, addr, err := sock.ReadFromUDP(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			return servers, fmt.Errorf("read discovery reply: %w", err)
		}

		var reply struct {
			AlpacaPort int `json:"AlpacaPort"`
		}
		if err := json.Unmarshal(buf[:n], &reply); err != nil || reply.AlpacaPort == 0 {
			logger.Debugf("Ignoring %q from %s", buf[:n], addr)
			continue
		}

		server := DiscoveredServer{IP: addr.IP.String(), Port: reply.AlpacaPort}
		if seen[server.Address()] {
			continue
		}
		seen[server.Address()] = true
		logger.Debugf("Discovered Alpaca server at %s", server.Address())
		servers = append(servers, server)
	}
}
