package discover

import (
	"context"
	"net"
	"slices"
)

// MockResolver is a Resolver used for testing.
// Set SRV records in the map, keyed by the full query name with trailing
// dot, e.g. "_submission._tcp.example.com.".
type MockResolver struct {
	SRV map[string][]*net.SRV

	// Fail contains query names that will return a server failure.
	Fail []string
}

var _ Resolver = MockResolver{}

// LookupSRV returns the configured records for the query name.
func (r MockResolver) LookupSRV(ctx context.Context, service, proto, domain string) ([]*net.SRV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := "_" + service + "._" + proto + "." + ensureAbsolute(domain)

	if slices.Contains(r.Fail, name) {
		return nil, ErrServFail
	}

	records, ok := r.SRV[name]
	if !ok || len(records) == 0 {
		return nil, ErrNotFound
	}
	return records, nil
}
