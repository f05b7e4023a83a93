package smtpuri

import "strings"

// Authentication modes with dedicated meaning in scheme modifiers and the
// "auth" query parameter. Any other token is passed through verbatim as a
// custom mechanism name.
const (
	// AuthPlain selects the PLAIN SASL mechanism (RFC 4616). Default when
	// credentials are present without an explicit mode.
	AuthPlain = "plain"
	// AuthLogin selects the legacy LOGIN mechanism.
	AuthLogin = "login"
	// AuthNone switches authentication off even when credentials are
	// present in the URI.
	AuthNone = "none"
)

// Scheme tokens that never name an authentication mechanism.
var reservedSchemeTokens = map[string]bool{
	"smtp":     true,
	"smtps":    true,
	"insecure": true,
}

func isMailScheme(scheme string) bool {
	return strings.HasPrefix(scheme, "smtp")
}

// TLS reports whether the URI requests implicit TLS, i.e. the scheme
// starts with "smtps". Implicit TLS is mutually exclusive with STARTTLS.
func (u *URI) TLS() bool {
	return strings.HasPrefix(u.url.Scheme, "smtps")
}

// Insecure reports whether the scheme carries the "insecure" modifier as
// a +-delimited token in any position, marking the URI as deliberately
// security-downgraded.
func (u *URI) Insecure() bool {
	for _, tok := range strings.Split(u.url.Scheme, "+") {
		if tok == "insecure" {
			return true
		}
	}
	return false
}

// SchemeAuth returns the authentication modifier embedded in the scheme:
// the first +-delimited token that is not "smtp", "smtps" or "insecure".
// Tokens beyond the first survivor are ignored.
func (u *URI) SchemeAuth() (string, bool) {
	for _, tok := range strings.Split(u.url.Scheme, "+") {
		if tok == "" || reservedSchemeTokens[tok] {
			continue
		}
		return tok, true
	}
	return "", false
}
