package smtpuri

import (
	"net/url"
	"strconv"
	"strings"
)

// queryOptions holds the recognized, coerced query parameters of an SMTP
// URI. Zero values mean "absent": blank-after-trim values are treated as
// if the key were missing. Unrecognized keys are ignored.
type queryOptions struct {
	starttls    StartTLSPolicy
	auth        string
	domain      string
	readTimeout *int
	openTimeout *int
}

// parseQueryOptions form-decodes and coerces the raw query string once,
// at construction time. A malformed escape in the query is not a parse
// error for the URI as a whole; whatever decodes cleanly is used.
func parseQueryOptions(rawQuery string) queryOptions {
	var opts queryOptions
	if rawQuery == "" {
		return opts
	}

	values, _ := url.ParseQuery(rawQuery)
	get := func(key string) string {
		return strings.TrimSpace(values.Get(key))
	}

	opts.auth = get("auth")
	opts.domain = get("domain")

	switch v := get("starttls"); v {
	case "":
		// absent
	case "auto":
		opts.starttls = StartTLSAuto
	case "false":
		opts.starttls = StartTLSNever
	default:
		// "always" and any other truthy value both mean a required upgrade.
		opts.starttls = StartTLSAlways
	}

	opts.readTimeout = parseSeconds(get("read_timeout"))
	opts.openTimeout = parseSeconds(get("open_timeout"))

	return opts
}

// parseSeconds coerces a timeout query value. Blank or unparsable values
// count as absent; there is no error path for query coercion.
func parseSeconds(v string) *int {
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
