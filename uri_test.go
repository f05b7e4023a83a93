package smtpuri

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, rawurl string) *URI {
	t.Helper()
	u, err := Parse(rawurl)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", rawurl, err)
	}
	return u
}

func TestParse_MalformedURI(t *testing.T) {
	_, err := Parse("smtp://exa mple.com")
	if err == nil {
		t.Fatal("expected a parse error for a host containing a space")
	}
	if errors.Is(err, ErrNotMailScheme) {
		t.Errorf("expected the generic URI error, got %v", err)
	}
}

func TestParse_NotMailScheme(t *testing.T) {
	for _, rawurl := range []string{"http://example.com", "imap://example.com", "mail.example.com"} {
		_, err := Parse(rawurl)
		if !errors.Is(err, ErrNotMailScheme) {
			t.Errorf("Parse(%q): expected ErrNotMailScheme, got %v", rawurl, err)
		}
	}
}

func TestParse_MissingComponentsAreNotErrors(t *testing.T) {
	u := mustParse(t, "smtp://foo")

	if _, ok := u.User(); ok {
		t.Error("expected no user")
	}
	if _, ok := u.Password(); ok {
		t.Error("expected no password")
	}
	if _, ok := u.Domain(); ok {
		t.Error("expected no domain")
	}
	if _, ok := u.ReadTimeout(); ok {
		t.Error("expected no read timeout")
	}
	if _, ok := u.OpenTimeout(); ok {
		t.Error("expected no open timeout")
	}
}

func TestURI_Port(t *testing.T) {
	tests := []struct {
		rawurl string
		want   int
	}{
		{"smtp://foo", 587},
		{"smtp://localhost", 25},
		{"smtp://127.0.0.1", 25},
		{"smtp://127.0.0.1:1025", 1025},
		{"smtp://localhost:2525", 2525},
		{"smtps://foo", 465},
		{"smtps://foo:12345", 12345},
		{"smtps://localhost", 25}, // host-local beats implicit TLS
	}

	for _, tt := range tests {
		u := mustParse(t, tt.rawurl)
		if got := u.Port(); got != tt.want {
			t.Errorf("Port(%q) = %d, want %d", tt.rawurl, got, tt.want)
		}
	}
}

func TestURI_Addr(t *testing.T) {
	u := mustParse(t, "smtps://mail.example.com")
	if got := u.Addr(); got != "mail.example.com:465" {
		t.Errorf("Addr() = %q, want mail.example.com:465", got)
	}

	u = mustParse(t, "smtp://[::1]:1025")
	if got := u.Addr(); got != "[::1]:1025" {
		t.Errorf("Addr() = %q, want [::1]:1025", got)
	}
}

func TestURI_StartTLS(t *testing.T) {
	tests := []struct {
		rawurl string
		want   StartTLSPolicy
	}{
		{"smtp://foo", StartTLSAlways},
		{"smtp://localhost", StartTLSNever},
		{"smtp://127.0.0.1", StartTLSNever},
		{"smtps://foo", StartTLSNever},
		{"smtp+insecure://foo", StartTLSNever},
		{"smtp://foo?starttls=false", StartTLSNever},
		{"smtp://foo?starttls=auto", StartTLSAuto},
		{"smtp://foo?starttls=always", StartTLSAlways},
		{"smtp://foo?starttls=yes", StartTLSAlways}, // any other truthy value
		{"smtp://localhost?starttls=always", StartTLSAlways},
		{"smtp+insecure://foo?starttls=auto", StartTLSAuto},
		{"smtps://foo?starttls=true", StartTLSNever}, // implicit TLS always wins
		{"smtp://foo?starttls=", StartTLSAlways},     // blank value is absent
	}

	for _, tt := range tests {
		u := mustParse(t, tt.rawurl)
		if got := u.StartTLS(); got != tt.want {
			t.Errorf("StartTLS(%q) = %q, want %q", tt.rawurl, got, tt.want)
		}
	}
}

func TestURI_TLS(t *testing.T) {
	if mustParse(t, "smtp://foo").TLS() {
		t.Error("smtp:// should not request implicit TLS")
	}
	if !mustParse(t, "smtps://foo").TLS() {
		t.Error("smtps:// should request implicit TLS")
	}
	if !mustParse(t, "smtps+login://foo").TLS() {
		t.Error("smtps+login:// should request implicit TLS")
	}
}

func TestURI_Insecure(t *testing.T) {
	if mustParse(t, "smtp://foo").Insecure() {
		t.Error("smtp:// should not be insecure")
	}
	if !mustParse(t, "smtp+insecure://foo").Insecure() {
		t.Error("smtp+insecure:// should be insecure")
	}
	if !mustParse(t, "smtp+login+insecure://foo").Insecure() {
		t.Error("insecure token should count in any position")
	}
}

func TestURI_SchemeAuth(t *testing.T) {
	tests := []struct {
		rawurl string
		want   string
		ok     bool
	}{
		{"smtp://foo", "", false},
		{"smtp+login://foo", "login", true},
		{"smtp+insecure://foo", "", false},
		{"smtp+insecure+login://foo", "login", true},
		{"smtp+login+insecure://foo", "login", true},
		{"smtp+login+plain://foo", "login", true}, // extra tokens ignored
		{"smtp+cram-md5://foo", "cram-md5", true},
		{"smtps+none://foo", "none", true},
	}

	for _, tt := range tests {
		u := mustParse(t, tt.rawurl)
		got, ok := u.SchemeAuth()
		if got != tt.want || ok != tt.ok {
			t.Errorf("SchemeAuth(%q) = (%q, %v), want (%q, %v)", tt.rawurl, got, ok, tt.want, tt.ok)
		}
	}
}

func TestURI_Auth(t *testing.T) {
	tests := []struct {
		rawurl string
		want   string
		ok     bool
	}{
		{"smtp://u:p@foo", "plain", true},
		{"smtp+login://u:p@foo", "login", true},
		{"smtp+none://u:p@foo", "", false},
		{"smtp+none://u:p@foo?auth=login", "login", true}, // query beats scheme
		{"smtp+login://u:p@foo?auth=none", "", false},
		{"smtp://u:p@foo?auth=cram-md5", "cram-md5", true},
		{"smtp://token@foo", "plain", true},
		{"smtp://:token@foo", "plain", true},
		{"smtp://foo", "", false},            // no credentials, no auth
		{"smtp+login://foo", "", false},      // modifier without credentials is inert
		{"smtp://foo?auth=login", "", false}, // query without credentials is inert
	}

	for _, tt := range tests {
		u := mustParse(t, tt.rawurl)
		got, ok := u.Auth()
		if got != tt.want || ok != tt.ok {
			t.Errorf("Auth(%q) = (%q, %v), want (%q, %v)", tt.rawurl, got, ok, tt.want, tt.ok)
		}
	}
}

func TestURI_Domain(t *testing.T) {
	u := mustParse(t, "smtps://foo#sender.org")
	if got, ok := u.Domain(); !ok || got != "sender.org" {
		t.Errorf("Domain() = (%q, %v), want sender.org from the fragment", got, ok)
	}

	u = mustParse(t, "smtps://foo?domain=x.org#sender.org")
	if got, ok := u.Domain(); !ok || got != "x.org" {
		t.Errorf("Domain() = (%q, %v), want the query to beat the fragment", got, ok)
	}

	u = mustParse(t, "smtps://foo?domain=")
	if _, ok := u.Domain(); ok {
		t.Error("blank domain value should count as absent")
	}
}

func TestURI_Timeouts(t *testing.T) {
	u := mustParse(t, "smtp://foo?read_timeout=5&open_timeout=30")

	if got, ok := u.ReadTimeout(); !ok || got != 5 {
		t.Errorf("ReadTimeout() = (%d, %v), want 5", got, ok)
	}
	if got, ok := u.OpenTimeout(); !ok || got != 30 {
		t.Errorf("OpenTimeout() = (%d, %v), want 30", got, ok)
	}

	u = mustParse(t, "smtp://foo?read_timeout=&open_timeout=soon")
	if _, ok := u.ReadTimeout(); ok {
		t.Error("blank read_timeout should count as absent")
	}
	if _, ok := u.OpenTimeout(); ok {
		t.Error("unparsable open_timeout should count as absent")
	}
}

func TestURI_ASCIIHost(t *testing.T) {
	u := mustParse(t, "smtp://bücher.example")
	got, err := u.ASCIIHost()
	if err != nil {
		t.Fatalf("ASCIIHost failed: %v", err)
	}
	if got != "xn--bcher-kva.example" {
		t.Errorf("ASCIIHost() = %q, want xn--bcher-kva.example", got)
	}

	u = mustParse(t, "smtp://127.0.0.1")
	got, err = u.ASCIIHost()
	if err != nil || got != "127.0.0.1" {
		t.Errorf("ASCIIHost() = (%q, %v), want IP literals unchanged", got, err)
	}
}

func TestURI_AccessorsAreIdempotent(t *testing.T) {
	u := mustParse(t, "smtp+login://u:p@foo?starttls=auto&read_timeout=7#sender.org")

	if u.Port() != u.Port() {
		t.Error("Port changed between calls")
	}
	if u.StartTLS() != u.StartTLS() {
		t.Error("StartTLS changed between calls")
	}
	a1, ok1 := u.Auth()
	a2, ok2 := u.Auth()
	if a1 != a2 || ok1 != ok2 {
		t.Error("Auth changed between calls")
	}
	d1, _ := u.Domain()
	d2, _ := u.Domain()
	if d1 != d2 {
		t.Error("Domain changed between calls")
	}
	if u.String() != u.String() {
		t.Error("String changed between calls")
	}
}

func TestURI_URLReturnsCopy(t *testing.T) {
	u := mustParse(t, "smtp://foo")
	cp := u.URL()
	cp.Host = "mutated"

	if u.Host() != "foo" {
		t.Errorf("mutating the returned URL leaked into the URI: host = %q", u.Host())
	}
}
