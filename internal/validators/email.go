package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// EmailDomainChecker returns a check that the email domain resolves to an MX
// or address record within timeout.
func EmailDomainChecker(timeout time.Duration) func(email string) bool {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	return func(email string) bool {
		domain := emailDomain(email)
		if domain == "" {
			return false
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if mx, err := net.DefaultResolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
			return true
		}
		if ips, err := net.DefaultResolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
			return true
		}
		return false
	}
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}
