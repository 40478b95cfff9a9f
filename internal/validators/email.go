package validators

import (
	"net"
	"regexp"
	"strings"
)

var emailFormat = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ResolveDomain is swapped out in tests to avoid live DNS lookups.
var ResolveDomain = resolveDomain

// IsEmailDomainValid checks the address shape and that the domain
// actually receives mail: an MX record, or failing that an A/AAAA
// record.
func IsEmailDomainValid(email string) bool {
	email = strings.TrimSpace(email)
	if !emailFormat.MatchString(email) {
		return false
	}

	domain := email[strings.LastIndex(email, "@")+1:]
	return ResolveDomain(domain)
}

func resolveDomain(domain string) bool {
	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
