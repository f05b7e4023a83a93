// Package discover locates mail submission services for a domain via DNS
// SRV records (RFC 6186), so an operator can hand out a bare domain and
// still end up with a concrete SMTP URI.
//
// Discovery is configuration derivation only: it issues DNS queries but
// never opens an SMTP connection.
package discover

import (
	"context"
	"errors"
	"fmt"
	"net"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

// SRV service labels for mail submission (RFC 6186, RFC 8314).
const (
	// serviceSubmissions is submission over implicit TLS (port 465 class).
	serviceSubmissions = "submissions"
	// serviceSubmission is submission with STARTTLS (port 587 class).
	serviceSubmission = "submission"
)

// ErrNoService is returned when the domain explicitly advertises that it
// offers no submission service (a single SRV record with target ".",
// RFC 2782).
var ErrNoService = errors.New("discover: domain advertises no submission service")

// Service is a mail submission endpoint advertised by a domain.
type Service struct {
	// Host is the endpoint hostname, without trailing dot.
	Host string `json:"host"`

	// Port is the advertised TCP port.
	Port int `json:"port"`

	// ImplicitTLS is true for endpoints from the "submissions" service,
	// which expect TLS from the first byte (RFC 8314).
	ImplicitTLS bool `json:"implicit_tls"`

	// Priority and Weight carry the SRV selection fields (RFC 2782).
	Priority uint16 `json:"priority"`
	Weight   uint16 `json:"weight"`
}

// URI renders the endpoint as an SMTP URI string that round-trips
// through smtpuri.Parse.
func (s Service) URI() string {
	scheme := "smtp"
	if s.ImplicitTLS {
		scheme = "smtps"
	}
	return scheme + "://" + net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Submission queries the domain's submission SRV records, implicit-TLS
// service first, and returns the advertised endpoints ordered by SRV
// priority (then descending weight; implicit TLS wins ties, per the
// RFC 8314 preference for it).
//
// The domain is normalized to A-label form before querying. A lookup
// that finds neither service returns ErrNotFound; a domain opting out of
// submission entirely returns ErrNoService.
func Submission(ctx context.Context, r Resolver, domain string) ([]Service, error) {
	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return nil, fmt.Errorf("discover: invalid domain %q: %w", domain, err)
	}

	queries := []struct {
		service     string
		implicitTLS bool
	}{
		{serviceSubmissions, true},
		{serviceSubmission, false},
	}

	var services []Service
	optedOut := false

	for _, q := range queries {
		records, err := r.LookupSRV(ctx, q.service, "tcp", ascii)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		for _, srv := range records {
			if srv.Target == "." {
				// RFC 2782: a lone "." target means the service is
				// decidedly not offered.
				optedOut = true
				continue
			}
			services = append(services, Service{
				Host:        strings.TrimSuffix(srv.Target, "."),
				Port:        int(srv.Port),
				ImplicitTLS: q.implicitTLS,
				Priority:    srv.Priority,
				Weight:      srv.Weight,
			})
		}
	}

	if len(services) == 0 {
		if optedOut {
			return nil, ErrNoService
		}
		return nil, ErrNotFound
	}

	slices.SortStableFunc(services, func(a, b Service) int {
		if a.Priority != b.Priority {
			return int(a.Priority) - int(b.Priority)
		}
		return int(b.Weight) - int(a.Weight)
	})

	return services, nil
}
