// Package sasl implements the client side of SASL mechanisms for SMTP
// authentication (RFC 4954).
//
// Mechanisms produce raw (unencoded) response bytes; the transport is
// responsible for base64-encoding them onto the wire as RFC 4954
// requires.
package sasl

import (
	"errors"
)

var (
	// ErrUnexpectedChallenge is returned when the server issues a
	// challenge the mechanism's exchange does not allow at that point.
	ErrUnexpectedChallenge = errors.New("sasl: unexpected server challenge")
)

// Mechanism defines the client side of a SASL exchange.
type Mechanism interface {
	// Name returns the SASL mechanism name as advertised in EHLO,
	// e.g. "PLAIN".
	Name() string

	// Start begins the exchange and returns the initial response, or nil
	// when the mechanism sends nothing until challenged.
	Start() (initialResponse []byte, err error)

	// Next answers a decoded server challenge with the next response.
	Next(challenge []byte) (response []byte, err error)
}
