package smtpuri

import (
	"net/url"
	"strings"
)

// ParserFunc parses a raw URI string into a scheme-specific
// representation.
type ParserFunc func(rawurl string) (any, error)

// Registry dispatches URI strings to scheme-specific parsers by literal
// prefix match on the raw string. Strings matching no registered prefix
// fall through to a generic parser, unchanged in behavior, so a Registry
// can front an existing "parse any URI" call site.
//
// Register all parsers before the first Parse call; a Registry is safe
// for concurrent reads but not for concurrent mutation.
type Registry struct {
	prefixes map[string]ParserFunc
	fallback ParserFunc
}

// NewRegistry returns a Registry whose fallback is net/url parsing,
// yielding *url.URL for unregistered schemes.
func NewRegistry() *Registry {
	return &Registry{
		prefixes: make(map[string]ParserFunc),
		fallback: func(rawurl string) (any, error) {
			return url.Parse(rawurl)
		},
	}
}

// Register routes strings beginning with prefix to fn. The longest
// matching prefix wins at parse time.
func (r *Registry) Register(prefix string, fn ParserFunc) {
	r.prefixes[prefix] = fn
}

// Fallback replaces the generic parser used for unmatched strings.
func (r *Registry) Fallback(fn ParserFunc) {
	r.fallback = fn
}

// Parse dispatches rawurl to the parser registered for its longest
// matching prefix, or to the fallback.
func (r *Registry) Parse(rawurl string) (any, error) {
	var best string
	for prefix := range r.prefixes {
		if strings.HasPrefix(rawurl, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best != "" {
		return r.prefixes[best](rawurl)
	}
	return r.fallback(rawurl)
}

var defaultRegistry = func() *Registry {
	r := NewRegistry()
	r.Register("smtp", func(rawurl string) (any, error) {
		return Parse(rawurl)
	})
	return r
}()

// ParseAny parses any URI string: mail submission URIs yield *URI,
// everything else passes through generic net/url parsing and yields
// *url.URL.
func ParseAny(rawurl string) (any, error) {
	return defaultRegistry.Parse(rawurl)
}
