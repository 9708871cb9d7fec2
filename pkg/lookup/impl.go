package lookup

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/Cloud-Foundations/Dominator/lib/log/nulllogger"
	"github.com/Cloud-Foundations/ptrsync/pkg/constants"
)

const defaultTimeout = 5 * time.Second

func newClient(params Params) *Client {
	if params.Logger == nil {
		params.Logger = nulllogger.New()
	}
	if params.Resolver == nil {
		params.Resolver = net.DefaultResolver
	}
	if params.Timeout <= 0 {
		params.Timeout = defaultTimeout
	}
	return &Client{
		logger:   params.Logger,
		resolver: params.Resolver,
		timeout:  params.Timeout,
	}
}

func (c *Client) lookup(ctx context.Context, address string) (Result, error) {
	if address == "" {
		address = constants.DefaultLookupAddress
	}
	ip := net.ParseIP(address)
	if ip == nil {
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidAddress, address)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	names, err := c.resolver.LookupAddr(ctx, ip.String())
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return Result{}, fmt.Errorf("%w: %s", ErrHostNotFound, address)
		}
		return Result{}, err
	}
	if len(names) < 1 {
		return Result{}, fmt.Errorf("%w: %s", ErrHostNotFound, address)
	}
	for index, name := range names {
		names[index] = strings.TrimSuffix(name, ".")
	}
	result := Result{
		IpAddress:   address,
		Host:        names[0],
		Aliases:     append([]string{}, names[1:]...),
		IpAddresses: []string{ip.String()},
	}
	c.logger.Printf("IP address: %s resolves to host: %s\n",
		address, result.Host)
	if len(result.Aliases) > 0 {
		c.logger.Debugf(0, "aliases: %s\n", strings.Join(result.Aliases, ", "))
	}
	return result, nil
}
