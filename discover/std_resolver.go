package discover

import (
	"context"
	"errors"
	"net"
	"strings"
)

// StdResolver implements the Resolver interface using the standard
// library net package. Use DNSResolver to control nameservers and retry
// behavior.
type StdResolver struct {
	resolver *net.Resolver
}

var _ Resolver = (*StdResolver)(nil)

// NewStdResolver creates a resolver using the standard library.
func NewStdResolver() *StdResolver {
	return &StdResolver{
		resolver: net.DefaultResolver,
	}
}

// NewStdResolverWithDialer creates a resolver using a custom dialer.
// This allows configuring custom DNS servers while using the stdlib
// interface.
func NewStdResolverWithDialer(dial func(ctx context.Context, network, address string) (net.Conn, error)) *StdResolver {
	return &StdResolver{
		resolver: &net.Resolver{
			PreferGo: true,
			Dial:     dial,
		},
	}
}

// LookupSRV queries SRV records using the standard library.
func (r *StdResolver) LookupSRV(ctx context.Context, service, proto, domain string) ([]*net.SRV, error) {
	// Strip trailing dot for stdlib compatibility
	domain = strings.TrimSuffix(domain, ".")

	_, records, err := r.resolver.LookupSRV(ctx, service, proto, domain)
	if err != nil {
		return nil, convertError(err)
	}

	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records, nil
}

// convertError maps stdlib resolver errors onto the package sentinels.
func convertError(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsNotFound {
			return ErrNotFound
		}
		if dnsErr.IsTemporary {
			return ErrServFail
		}
	}
	return err
}
