package smtpuri

import (
	"errors"
	"fmt"
	"strings"

	"github.com/synqronlabs/smtpuri/sasl"
)

// ErrUnsupportedMechanism is returned by SASL when the derived auth mode
// names a mechanism this package has no client implementation for.
var ErrUnsupportedMechanism = errors.New("smtpuri: no client mechanism for auth mode")

// SASL returns a client-side SASL mechanism for the URI's derived auth
// mode, loaded with the decoded credentials. It returns (nil, nil) when
// no authentication is derived, and ErrUnsupportedMechanism for custom
// auth modes; callers with their own mechanisms should branch on Auth
// directly instead.
func (u *URI) SASL() (sasl.Mechanism, error) {
	mode, ok := u.Auth()
	if !ok {
		return nil, nil
	}

	user, _ := u.User()
	pass, _ := u.Password()

	switch strings.ToLower(mode) {
	case AuthPlain:
		return sasl.NewPlain("", user, pass), nil
	case AuthLogin:
		return sasl.NewLogin(user, pass), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMechanism, mode)
	}
}
