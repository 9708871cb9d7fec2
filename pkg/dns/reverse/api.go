/*
Package reverse computes reverse-DNS (PTR) names for IP addresses.

IPv4 names are formed by reversing the dotted-decimal octets and appending the
in-addr.arpa. suffix, e.g. 192.168.1.10 becomes 10.1.168.192.in-addr.arpa.
IPv6 names use the nibble-reversed ip6.arpa. form.
*/
package reverse

const (
	IPv4Zone = "in-addr.arpa."
	IPv6Zone = "ip6.arpa."
)

// IPv4Name returns the in-addr.arpa. name for a dotted-decimal IPv4 address.
// An error is returned if address is not an IPv4 address.
func IPv4Name(address string) (string, error) {
	return ipv4Name(address)
}

// IPv6Name returns the nibble-reversed ip6.arpa. name for an IPv6 address.
// An error is returned if address is not an IPv6 address. IPv4-mapped
// addresses written in dotted form are rejected.
func IPv6Name(address string) (string, error) {
	return ipv6Name(address)
}

// Name returns the reverse name for any IP address.
func Name(address string) (string, error) {
	return name(address)
}

// InZone returns true if the reverse name falls within zone.
func InZone(name, zone string) bool {
	return inZone(name, zone)
}
