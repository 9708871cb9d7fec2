package reverse

import (
	"fmt"
	"net"
	"strings"

	"github.com/miekg/dns"
)

func ipv4Name(address string) (string, error) {
	ip := net.ParseIP(address)
	if ip == nil || ip.To4() == nil || strings.Contains(address, ":") {
		return "", fmt.Errorf("not an IPv4 address: %s", address)
	}
	octets := strings.Split(ip.To4().String(), ".")
	for left, right := 0, len(octets)-1; left < right; left, right =
		left+1, right-1 {
		octets[left], octets[right] = octets[right], octets[left]
	}
	return strings.Join(octets, ".") + "." + IPv4Zone, nil
}

func ipv6Name(address string) (string, error) {
	if !strings.Contains(address, ":") || strings.Contains(address, ".") {
		return "", fmt.Errorf("not an IPv6 address: %s", address)
	}
	if net.ParseIP(address) == nil {
		return "", fmt.Errorf("not an IPv6 address: %s", address)
	}
	return dns.ReverseAddr(address)
}

func name(address string) (string, error) {
	if strings.Contains(address, ":") {
		return ipv6Name(address)
	}
	return ipv4Name(address)
}

func inZone(name, zone string) bool {
	return dns.IsSubDomain(dns.CanonicalName(zone), dns.CanonicalName(name))
}
