package sasl

// Plain implements the client side of the PLAIN mechanism (RFC 4616).
// Use only over TLS - the password crosses the wire in clear text.
type Plain struct {
	authzid  string
	username string
	password string
}

// NewPlain creates a PLAIN client. authzid is the identity to act as and
// is usually empty, meaning "same as the authenticated identity".
func NewPlain(authzid, username, password string) *Plain {
	return &Plain{
		authzid:  authzid,
		username: username,
		password: password,
	}
}

// Name returns "PLAIN".
func (p *Plain) Name() string {
	return "PLAIN"
}

// Start returns the single PLAIN message: authzid NUL authcid NUL passwd.
func (p *Plain) Start() (initialResponse []byte, err error) {
	resp := make([]byte, 0, len(p.authzid)+len(p.username)+len(p.password)+2)
	resp = append(resp, p.authzid...)
	resp = append(resp, 0)
	resp = append(resp, p.username...)
	resp = append(resp, 0)
	resp = append(resp, p.password...)
	return resp, nil
}

// Next always fails: PLAIN is a single-message exchange and a server
// challenge after the initial response is a protocol violation.
func (p *Plain) Next(challenge []byte) (response []byte, err error) {
	return nil, ErrUnexpectedChallenge
}
