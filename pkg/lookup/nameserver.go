package lookup

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

type nameserverResolver struct {
	client *dns.Client
	server string
}

func newNameserverResolver(server string,
	timeout time.Duration) *nameserverResolver {
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &nameserverResolver{
		client: &dns.Client{Timeout: timeout},
		server: server,
	}
}

func (r *nameserverResolver) LookupAddr(ctx context.Context, addr string) (
	[]string, error) {
	name, err := dns.ReverseAddr(addr)
	if err != nil {
		return nil, err
	}
	query := new(dns.Msg)
	query.SetQuestion(name, dns.TypePTR)
	response, _, err := r.client.ExchangeContext(ctx, query, r.server)
	if err != nil {
		return nil, err
	}
	switch response.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return nil, r.notFound(addr)
	default:
		return nil, fmt.Errorf("%s: %s: %s", r.server, name,
			dns.RcodeToString[response.Rcode])
	}
	var names []string
	for _, rr := range response.Answer {
		if ptr, ok := rr.(*dns.PTR); ok {
			names = append(names, ptr.Ptr)
		}
	}
	if len(names) < 1 {
		return nil, r.notFound(addr)
	}
	return names, nil
}

func (r *nameserverResolver) notFound(addr string) error {
	return &net.DNSError{
		Err:        "no such host",
		IsNotFound: true,
		Name:       addr,
		Server:     r.server,
	}
}
