package sasl

// Login exchange states
const (
	loginStateUsername = iota
	loginStatePassword
	loginStateDone
)

// Login implements the client side of the LOGIN mechanism.
// DEPRECATED in favor of PLAIN; kept for servers that only offer LOGIN.
type Login struct {
	state    int
	username string
	password string
}

// NewLogin creates a LOGIN client.
func NewLogin(username, password string) *Login {
	return &Login{
		state:    loginStateUsername,
		username: username,
		password: password,
	}
}

// Name returns "LOGIN".
func (l *Login) Name() string {
	return "LOGIN"
}

// Start returns no initial response; LOGIN waits for the server's
// username challenge.
func (l *Login) Start() (initialResponse []byte, err error) {
	return nil, nil
}

// Next answers the server's challenges in order: username first, then
// password. The challenge text itself ("Username:"/"Password:") is not
// inspected; some servers vary its wording and trailing whitespace.
func (l *Login) Next(challenge []byte) (response []byte, err error) {
	switch l.state {
	case loginStateUsername:
		l.state = loginStatePassword
		return []byte(l.username), nil

	case loginStatePassword:
		l.state = loginStateDone
		return []byte(l.password), nil

	default:
		return nil, ErrUnexpectedChallenge
	}
}
