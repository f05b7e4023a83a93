package smtpuri

import "fmt"

// UserinfoFormat selects the shape DecodedUserinfo returns.
type UserinfoFormat string

const (
	// UserinfoString renders present parts joined with ":", e.g. "user",
	// "user:pass". Absent parts never render as empty segments.
	UserinfoString UserinfoFormat = "string"
	// UserinfoPair yields a [2]any of (user, password), each nil when
	// absent.
	UserinfoPair UserinfoFormat = "pair"
	// UserinfoMap yields a map with "user" and/or "password" keys, each
	// present only when its value is.
	UserinfoMap UserinfoFormat = "map"
)

// InvalidFormatError is returned when DecodedUserinfo is asked for a
// format it does not know.
type InvalidFormatError struct {
	Format UserinfoFormat
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("smtpuri: unknown userinfo format %q", string(e.Format))
}

// User returns the percent-decoded user part of the userinfo. An empty
// user (including "smtp://:pass@host" forms) counts as absent, never as
// an empty string.
func (u *URI) User() (string, bool) {
	if u.url.User == nil {
		return "", false
	}
	name := u.url.User.Username()
	if name == "" {
		return "", false
	}
	return name, true
}

// Password returns the percent-decoded password part of the userinfo.
// A missing or empty password counts as absent.
func (u *URI) Password() (string, bool) {
	if u.url.User == nil {
		return "", false
	}
	pass, ok := u.url.User.Password()
	if !ok || pass == "" {
		return "", false
	}
	return pass, true
}

// DecodedUserinfo returns the decoded credentials in the requested
// format. Entirely absent userinfo yields the format's empty shape, not
// an error; an unrecognized format yields an *InvalidFormatError.
func (u *URI) DecodedUserinfo(format UserinfoFormat) (any, error) {
	user, userOK := u.User()
	pass, passOK := u.Password()

	switch format {
	case UserinfoString:
		switch {
		case userOK && passOK:
			return user + ":" + pass, nil
		case userOK:
			return user, nil
		case passOK:
			return pass, nil
		default:
			return "", nil
		}

	case UserinfoPair:
		var pair [2]any
		if userOK {
			pair[0] = user
		}
		if passOK {
			pair[1] = pass
		}
		return pair, nil

	case UserinfoMap:
		m := make(map[string]string, 2)
		if userOK {
			m["user"] = user
		}
		if passOK {
			m["password"] = pass
		}
		return m, nil

	default:
		return nil, &InvalidFormatError{Format: format}
	}
}
