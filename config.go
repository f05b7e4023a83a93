package smtpuri

import (
	"encoding/json"
	"fmt"

	"github.com/tinylib/msgp/msgp"
)

// Config is a derived SMTP settings map. Keys whose derived value is
// absent are omitted entirely; a key is never present with a nil value.
type Config map[string]any

// Config produces the generic settings projection.
//
// Keys: "auth", "domain", "host", "open_timeout", "port", "read_timeout",
// "scheme", "starttls", "tls", plus "user" and "password" when an auth
// mode is derived. The "starttls" value is the string "always" or "auto",
// or the boolean false when the upgrade is off.
func (u *URI) Config() Config {
	cfg := Config{
		"scheme": u.Scheme(),
		"port":   u.Port(),
		"tls":    u.TLS(),
	}

	if host := u.Host(); host != "" {
		cfg["host"] = host
	}

	if policy := u.StartTLS(); policy == StartTLSNever {
		cfg["starttls"] = false
	} else {
		cfg["starttls"] = string(policy)
	}

	if mode, ok := u.Auth(); ok {
		cfg["auth"] = mode
		if user, ok := u.User(); ok {
			cfg["user"] = user
		}
		if pass, ok := u.Password(); ok {
			cfg["password"] = pass
		}
	}

	if domain, ok := u.Domain(); ok {
		cfg["domain"] = domain
	}
	if n, ok := u.ReadTimeout(); ok {
		cfg["read_timeout"] = n
	}
	if n, ok := u.OpenTimeout(); ok {
		cfg["open_timeout"] = n
	}

	return cfg
}

// MailerConfig produces an ActionMailer-compatible settings projection.
//
// Keys: "address", "authentication", "domain", "enable_starttls",
// "enable_starttls_auto", "open_timeout", "port", "read_timeout", "tls",
// plus "user_name" and "password" when an auth mode is derived.
//
// ActionMailer treats the mere presence of "tls", "enable_starttls" and
// "enable_starttls_auto" as truthy, so false values must be dropped
// rather than emitted, and the STARTTLS keys must be dropped whenever
// implicit TLS is on.
func (u *URI) MailerConfig() Config {
	cfg := Config{
		"port": u.Port(),
	}

	if host := u.Host(); host != "" {
		cfg["address"] = host
	}

	if mode, ok := u.Auth(); ok {
		cfg["authentication"] = mode
		if user, ok := u.User(); ok {
			cfg["user_name"] = user
		}
		if pass, ok := u.Password(); ok {
			cfg["password"] = pass
		}
	}

	if domain, ok := u.Domain(); ok {
		cfg["domain"] = domain
	}
	if n, ok := u.ReadTimeout(); ok {
		cfg["read_timeout"] = n
	}
	if n, ok := u.OpenTimeout(); ok {
		cfg["open_timeout"] = n
	}

	policy := u.StartTLS()
	cfg["tls"] = u.TLS()
	cfg["enable_starttls"] = policy == StartTLSAlways
	cfg["enable_starttls_auto"] = policy == StartTLSAuto

	if cfg["tls"] == false {
		delete(cfg, "tls")
	}
	if cfg["enable_starttls"] == false || cfg["tls"] == true {
		delete(cfg, "enable_starttls")
	}
	if cfg["enable_starttls_auto"] == false || cfg["tls"] == true {
		delete(cfg, "enable_starttls_auto")
	}

	return cfg
}

// ToJSON serializes the settings map to JSON bytes.
func (c Config) ToJSON() ([]byte, error) {
	return json.Marshal(c)
}

// ToJSONIndent serializes the settings map to pretty-printed JSON bytes.
func (c Config) ToJSONIndent() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// ConfigFromJSON deserializes a settings map from JSON bytes. Numeric
// values decode as float64 per encoding/json.
func ConfigFromJSON(data []byte) (Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return c, nil
}

// ToMessagePack serializes the settings map to MessagePack bytes.
func (c Config) ToMessagePack() ([]byte, error) {
	return msgp.AppendIntf(nil, map[string]any(c))
}

// ConfigFromMessagePack deserializes a settings map from MessagePack
// bytes. Integer values are normalized back to int.
func ConfigFromMessagePack(data []byte) (Config, error) {
	v, _, err := msgp.ReadIntfBytes(data)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("smtpuri: msgpack payload is %T, not a map", v)
	}

	cfg := make(Config, len(m))
	for k, val := range m {
		if n, ok := val.(int64); ok {
			cfg[k] = int(n)
		} else {
			cfg[k] = val
		}
	}
	return cfg, nil
}
