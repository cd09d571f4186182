// Package validators holds request checks that need more than gin's struct
// tags can express.
package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid reports whether the domain part of an address resolves
// at all: MX records first, a plain host lookup as fallback. This catches
// typo domains at registration; it says nothing about deliverability.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
