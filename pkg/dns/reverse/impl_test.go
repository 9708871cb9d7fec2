package reverse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPv4Name(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"1.2.3.4", "4.3.2.1.in-addr.arpa."},
		{"192.168.1.10", "10.1.168.192.in-addr.arpa."},
		{"10.0.0.5", "5.0.0.10.in-addr.arpa."},
		{"255.255.255.0", "0.255.255.255.in-addr.arpa."},
	}
	for _, tc := range testCases {
		output, err := IPv4Name(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.expected, output, tc.input)
	}
}

func TestIPv4NameRejects(t *testing.T) {
	for _, input := range []string{
		"", "not-an-ip", "1.2.3", "256.1.1.1", "2001:db8::1", "::ffff:1.2.3.4",
	} {
		_, err := IPv4Name(input)
		assert.Error(t, err, input)
	}
}

func TestIPv6Name(t *testing.T) {
	output, err := IPv6Name("2001:db8::1")
	require.NoError(t, err)
	assert.Equal(t,
		"1.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa.",
		output)
	for _, input := range []string{"1.2.3.4", "::ffff:1.2.3.4", "junk:"} {
		_, err := IPv6Name(input)
		assert.Error(t, err, input)
	}
}

func TestName(t *testing.T) {
	output, err := Name("8.8.8.8")
	require.NoError(t, err)
	assert.Equal(t, "8.8.8.8.in-addr.arpa.", output)
	output, err = Name("::1")
	require.NoError(t, err)
	assert.True(t, InZone(output, IPv6Zone))
}

func TestInZone(t *testing.T) {
	assert.True(t, InZone("4.3.2.1.in-addr.arpa.", IPv4Zone))
	assert.True(t, InZone("4.3.2.10.in-addr.arpa.", "10.in-addr.arpa."))
	assert.True(t, InZone("4.3.2.10.IN-ADDR.ARPA", "10.in-addr.arpa."))
	assert.False(t, InZone("4.3.2.1.in-addr.arpa.", "10.in-addr.arpa."))
	assert.False(t, InZone("4.3.2.1.in-addr.arpa.", IPv6Zone))
}
