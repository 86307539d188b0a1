package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	fetchDialTimeout = 10 * time.Second
	fetchTimeout     = 30 * time.Second
	maxRedirects     = 10
)

// errNoAddress is returned when a host resolves to nothing.
var errNoAddress = errors.New("host has no addresses")

// isBlockedIP reports whether ip must not be fetched from: private,
// loopback, link-local, multicast or unspecified addresses.
func isBlockedIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsMulticast() || ip.IsUnspecified()
}

// publicAddrs resolves host and fails if any of its addresses is blocked.
func publicAddrs(ctx context.Context, host string) ([]net.IPAddr, error) {
	ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("%w: %s", errNoAddress, host)
	}
	for _, ipAddr := range ips {
		if isBlockedIP(ipAddr.IP) {
			return nil, fmt.Errorf("refusing to fetch from private address: %s (%s)", host, ipAddr.IP)
		}
	}
	return ips, nil
}

// newSafeHTTPClient returns the client used for url inputs. Every dial and
// every redirect target is resolved first and refused when it points at a
// private address, so agents cannot reach internal services through the
// extract tools.
func newSafeHTTPClient() *http.Client {
	dialer := &net.Dialer{Timeout: fetchDialTimeout}

	return &http.Client{
		Timeout: fetchTimeout,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				host, port, err := net.SplitHostPort(addr)
				if err != nil {
					return nil, err
				}
				ips, err := publicAddrs(ctx, host)
				if err != nil {
					return nil, err
				}
				// dial the checked address, not the name, so DNS cannot change in between
				return dialer.DialContext(ctx, network, net.JoinHostPort(ips[0].IP.String(), port))
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			_, err := publicAddrs(req.Context(), req.URL.Hostname())
			return err
		},
	}
}

// fetchClient returns the client for url inputs under the active config.
func fetchClient() *http.Client {
	if cfg.AllowPrivateIPs {
		return &http.Client{Timeout: fetchTimeout}
	}
	return newSafeHTTPClient()
}
