package lookup

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/Cloud-Foundations/Dominator/lib/log/testlogger"
	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver map[string][]string

func (f fakeResolver) LookupAddr(ctx context.Context, addr string) (
	[]string, error) {
	if names, ok := f[addr]; ok {
		return names, nil
	}
	if addr == "10.9.9.9" {
		return nil, errors.New("connection refused")
	}
	return nil, &net.DNSError{Err: "no such host", Name: addr, IsNotFound: true}
}

func newTestClient(t *testing.T, resolver Resolver) *Client {
	return New(Params{Logger: testlogger.New(t), Resolver: resolver})
}

func TestLookup(t *testing.T) {
	client := newTestClient(t, fakeResolver{
		"8.8.8.8": {"dns.google."},
		"10.0.0.5": {"www.example.com.", "alias.example.com."},
	})
	result, err := client.Lookup(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, Result{
		IpAddress:   "8.8.8.8",
		Host:        "dns.google",
		Aliases:     []string{},
		IpAddresses: []string{"8.8.8.8"},
	}, result)
	result, err = client.Lookup(context.Background(), "10.0.0.5")
	require.NoError(t, err)
	assert.Equal(t, "www.example.com", result.Host)
	assert.Equal(t, []string{"alias.example.com"}, result.Aliases)
}

func TestLookupFailures(t *testing.T) {
	client := newTestClient(t, fakeResolver{"10.0.0.7": {}})
	_, err := client.Lookup(context.Background(), "192.0.2.1")
	assert.True(t, errors.Is(err, ErrHostNotFound))
	_, err = client.Lookup(context.Background(), "10.0.0.7")
	assert.True(t, errors.Is(err, ErrHostNotFound))
	_, err = client.Lookup(context.Background(), "not-an-ip")
	assert.True(t, errors.Is(err, ErrInvalidAddress))
	_, err = client.Lookup(context.Background(), "10.9.9.9")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrHostNotFound))
}

func startServer(t *testing.T, handler dns.Handler) string {
	packetConn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	started := make(chan struct{})
	server := &dns.Server{
		Handler:           handler,
		NotifyStartedFunc: func() { close(started) },
		PacketConn:        packetConn,
	}
	go server.ActivateAndServe()
	<-started
	t.Cleanup(func() { server.Shutdown() })
	return packetConn.LocalAddr().String()
}

func ptrHandler(writer dns.ResponseWriter, request *dns.Msg) {
	response := new(dns.Msg)
	question := request.Question[0]
	switch question.Name {
	case "5.0.0.10.in-addr.arpa.":
		response.SetReply(request)
		response.Answer = append(response.Answer, &dns.PTR{
			Hdr: dns.RR_Header{
				Name:   question.Name,
				Rrtype: dns.TypePTR,
				Class:  dns.ClassINET,
				Ttl:    300,
			},
			Ptr: "example.com.",
		})
	case "6.0.0.10.in-addr.arpa.":
		response.SetRcode(request, dns.RcodeServerFailure)
	default:
		response.SetRcode(request, dns.RcodeNameError)
	}
	writer.WriteMsg(response)
}

func TestNameserverResolver(t *testing.T) {
	server := startServer(t, dns.HandlerFunc(ptrHandler))
	client := newTestClient(t, NewNameserverResolver(server, time.Second))
	result, err := client.Lookup(context.Background(), "10.0.0.5")
	require.NoError(t, err)
	assert.Equal(t, "example.com", result.Host)
	assert.Equal(t, "10.0.0.5", result.IpAddress)
	_, err = client.Lookup(context.Background(), "10.0.0.1")
	assert.True(t, errors.Is(err, ErrHostNotFound))
	_, err = client.Lookup(context.Background(), "10.0.0.6")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrHostNotFound))
}

func TestNameserverDefaultPort(t *testing.T) {
	resolver := newNameserverResolver("192.0.2.53", 0)
	assert.Equal(t, "192.0.2.53:53", resolver.server)
	assert.Equal(t, defaultTimeout, resolver.client.Timeout)
	resolver = newNameserverResolver("[2001:db8::53]:5353", time.Second)
	assert.Equal(t, "[2001:db8::53]:5353", resolver.server)
}
