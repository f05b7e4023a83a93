package smtpuri

import (
	"errors"
	"net"
	"net/url"
	"strconv"

	"golang.org/x/net/idna"
)

// Well-known mail submission ports.
const (
	// PortSMTP is the classic SMTP relay port, used for local development
	// targets (RFC 5321).
	PortSMTP = 25
	// PortSubmissions is the implicit-TLS submission port (RFC 8314).
	PortSubmissions = 465
	// PortSubmission is the STARTTLS submission port (RFC 6409).
	PortSubmission = 587
)

// ErrNotMailScheme is returned by Parse for URIs whose scheme is outside
// the mail submission family. Use ParseAny to handle mixed URI strings.
var ErrNotMailScheme = errors.New("smtpuri: scheme is not in the mail submission family")

// StartTLSPolicy describes how a client should upgrade a plaintext
// connection to TLS.
type StartTLSPolicy string

const (
	// StartTLSAlways requires a successful STARTTLS upgrade before any
	// mail transaction.
	StartTLSAlways StartTLSPolicy = "always"
	// StartTLSAuto upgrades opportunistically when the server offers
	// STARTTLS and continues in plaintext otherwise.
	StartTLSAuto StartTLSPolicy = "auto"
	// StartTLSNever skips the upgrade entirely. This is the derived policy
	// for implicit-TLS URIs, local development hosts and "+insecure"
	// schemes.
	StartTLSNever StartTLSPolicy = "never"
)

// URI is an immutable parsed mail submission URI.
//
// All derivation happens against the components produced by the generic
// URI parser at construction time; accessors are pure and safe for
// concurrent use on the same value.
type URI struct {
	url   *url.URL
	query queryOptions
}

// Parse parses rawurl as a mail submission URI.
//
// Generic URI grammar (percent-encoding, IPv6 literals, userinfo
// splitting) is delegated to net/url and its parse errors are returned
// unchanged. A scheme outside the "smtp" family yields ErrNotMailScheme.
// Missing components are never an error; every accessor has a defined
// default.
func Parse(rawurl string) (*URI, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, err
	}
	if !isMailScheme(u.Scheme) {
		return nil, ErrNotMailScheme
	}
	return &URI{url: u, query: parseQueryOptions(u.RawQuery)}, nil
}

// String returns the URI in its original string form.
func (u *URI) String() string {
	return u.url.String()
}

// URL returns a copy of the underlying generic URL.
func (u *URI) URL() *url.URL {
	cp := *u.url
	return &cp
}

// Scheme returns the full URI scheme including any modifiers,
// e.g. "smtp+login".
func (u *URI) Scheme() string {
	return u.url.Scheme
}

// Host returns the host component without port or brackets, or "" when no
// host was given.
func (u *URI) Host() string {
	return u.url.Hostname()
}

// ASCIIHost returns the host in A-label (punycode) form per the IDNA
// lookup rules, for wire use with servers that do not speak SMTPUTF8.
// IP literals and empty hosts are returned unchanged.
func (u *URI) ASCIIHost() (string, error) {
	host := u.url.Hostname()
	if host == "" || net.ParseIP(host) != nil {
		return host, nil
	}
	return idna.Lookup.ToASCII(host)
}

// HostLocal reports whether the host is a local development target
// (exactly "localhost" or "127.0.0.1"), which relaxes the port and
// STARTTLS defaults.
func (u *URI) HostLocal() bool {
	h := u.url.Hostname()
	return h == "127.0.0.1" || h == "localhost"
}

// Port returns the port to connect to. A port spelled out in the URI
// always wins; otherwise local hosts get 25, implicit TLS gets 465 and
// everything else gets the submission port 587.
func (u *URI) Port() int {
	if p := u.url.Port(); p != "" {
		// net/url guarantees a numeric port string here.
		n, err := strconv.Atoi(p)
		if err == nil {
			return n
		}
	}
	switch {
	case u.HostLocal():
		return PortSMTP
	case u.TLS():
		return PortSubmissions
	default:
		return PortSubmission
	}
}

// Addr returns the dial address in "host:port" form.
func (u *URI) Addr() string {
	return net.JoinHostPort(u.Host(), strconv.Itoa(u.Port()))
}

// StartTLS returns the derived STARTTLS policy. Implicit TLS always
// disables the upgrade; an explicit starttls query value beats the
// host-local and insecure downgrades; the fallback is StartTLSAlways.
func (u *URI) StartTLS() StartTLSPolicy {
	switch {
	case u.TLS():
		return StartTLSNever
	case u.query.starttls != "":
		return u.query.starttls
	case u.HostLocal():
		return StartTLSNever
	case u.Insecure():
		return StartTLSNever
	default:
		return StartTLSAlways
	}
}

// Auth returns the derived authentication mode. Without credentials there
// is no mode at all. An "auth" query value beats a scheme modifier, and
// AuthNone in either position switches authentication off. Credentials
// with no spelled-out mode default to AuthPlain.
func (u *URI) Auth() (string, bool) {
	if !u.hasCredentials() {
		return "", false
	}
	if u.query.auth != "" {
		if u.query.auth == AuthNone {
			return "", false
		}
		return u.query.auth, true
	}
	if mode, ok := u.SchemeAuth(); ok {
		if mode == AuthNone {
			return "", false
		}
		return mode, true
	}
	return AuthPlain, true
}

// Domain returns the sender/HELO domain: the "domain" query value when
// present, else the fragment.
func (u *URI) Domain() (string, bool) {
	if u.query.domain != "" {
		return u.query.domain, true
	}
	if u.url.Fragment != "" {
		return u.url.Fragment, true
	}
	return "", false
}

// ReadTimeout returns the read timeout requested via the "read_timeout"
// query parameter. The value is opaque data for a downstream client
// (seconds by convention); nothing in this package enforces it.
func (u *URI) ReadTimeout() (int, bool) {
	if u.query.readTimeout == nil {
		return 0, false
	}
	return *u.query.readTimeout, true
}

// OpenTimeout returns the connect timeout requested via the
// "open_timeout" query parameter.
func (u *URI) OpenTimeout() (int, bool) {
	if u.query.openTimeout == nil {
		return 0, false
	}
	return *u.query.openTimeout, true
}

func (u *URI) hasCredentials() bool {
	_, userOK := u.User()
	_, passOK := u.Password()
	return userOK || passOK
}
