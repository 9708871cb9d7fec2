/*
Package lookup resolves an IP address to host names using a reverse (PTR)
lookup.
*/
package lookup

import (
	"context"
	"errors"
	"time"

	"github.com/Cloud-Foundations/Dominator/lib/log"
)

var (
	ErrHostNotFound   = errors.New("host not found")
	ErrInvalidAddress = errors.New("invalid IP address")
)

type Client struct {
	logger   log.DebugLogger
	resolver Resolver
	timeout  time.Duration
}

type Params struct {
	Logger   log.DebugLogger
	Resolver Resolver      // Default: net.DefaultResolver.
	Timeout  time.Duration // Default: 5s.
}

// Resolver is implemented by *net.Resolver.
type Resolver interface {
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

// Result mirrors the classic gethostbyaddr(3) result. Names do not have a
// trailing dot.
type Result struct {
	IpAddress   string   `json:"ip_address"`
	Host        string   `json:"host"`
	Aliases     []string `json:"aliases"`
	IpAddresses []string `json:"ip_addresses"`
}

func New(params Params) *Client {
	return newClient(params)
}

// NewNameserverResolver returns a Resolver which sends PTR queries directly to
// server. If server has no port, port 53 is used.
func NewNameserverResolver(server string, timeout time.Duration) Resolver {
	return newNameserverResolver(server, timeout)
}

// Lookup resolves address. If address is empty, 8.8.8.8 is resolved.
// ErrInvalidAddress or ErrHostNotFound (wrapped) is returned if address is
// malformed or has no PTR record.
func (c *Client) Lookup(ctx context.Context, address string) (Result, error) {
	return c.lookup(ctx, address)
}
