// Package dns is the DNS-discovery boundary: it publishes this server's
// address under a well-known name so clients (or a load balancer) can
// find it.
package dns

import "net"

// DNS publishes this server's address.
type DNS interface {
	UpdateRoute(address net.IP) error
}
