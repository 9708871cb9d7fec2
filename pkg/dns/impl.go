package dns

import (
	"strings"
)

func fqdn(name string) string {
	if name == "" || name[len(name)-1] != '.' {
		return name + "."
	}
	return name
}

func sameName(left, right string) bool {
	return strings.EqualFold(fqdn(left), fqdn(right))
}
