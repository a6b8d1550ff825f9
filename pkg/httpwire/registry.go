package httpwire

import "strings"

// generalHeaders, requestHeaders, responseHeaders, and entityHeaders list
// the canonical header names recognized by the registry, grouped exactly
// as RFC 2616 §4.2 groups them (general, request, response, entity). The
// set is fixed at the values spec.md §6 names; it is not meant to grow
// with every header the wider ecosystem invents.
var (
	generalHeaders = []string{
		"Cache-Control", "Connection", "Date", "Pragma", "Trailer",
		"Transfer-Encoding", "Upgrade", "Sec-WebSocket-Extensions",
		"Sec-WebSocket-Protocol", "Via", "Warning",
	}
	requestHeaders = []string{
		"Accept", "Accept-Charset", "Accept-Encoding", "Accept-Language",
		"Authorization", "Cookie", "Expect", "From", "Host", "If-Match",
		"If-Modified-Since", "If-None-Match", "If-Range",
		"If-Unmodified-Since", "Max-Forwards", "Proxy-Authorization",
		"Range", "Referer", "Sec-WebSocket-Key", "Sec-WebSocket-Version",
		"TE", "User-Agent", "X-Requested-With",
	}
	responseHeaders = []string{
		"Accept-Ranges", "Age", "ETag", "Location", "Proxy-Authenticate",
		"Retry-After", "Sec-WebSocket-Accept", "Server", "Set-Cookie",
		"Set-Cookie2", "Vary", "WWW-Authenticate", "X-Frame-Options",
	}
	entityHeaders = []string{
		"Allow", "Content-Encoding", "Content-Language", "Content-Length",
		"Content-Location", "Content-MD5", "Content-Range", "Content-Type",
		"Expires", "Last-Modified",
	}
)

// registry is the immutable, process-wide canonical-name table. It is
// built once in init and never mutated afterward, so it may be shared
// freely across goroutines.
var registry = newHeaderRegistry()

type headerRegistry struct {
	byLowerName map[string]string
	group       map[string]Group
	client      map[string]bool
	server      map[string]bool
}

func newHeaderRegistry() *headerRegistry {
	r := &headerRegistry{
		byLowerName: make(map[string]string, 64),
		group:       make(map[string]Group, 64),
		client:      make(map[string]bool, 64),
		server:      make(map[string]bool, 64),
	}
	add := func(names []string, g Group) {
		for _, name := range names {
			lower := strings.ToLower(name)
			r.byLowerName[lower] = name
			r.group[name] = g
		}
	}
	add(generalHeaders, GroupGeneral)
	add(requestHeaders, GroupRequest)
	add(responseHeaders, GroupResponse)
	add(entityHeaders, GroupEntity)

	for _, name := range generalHeaders {
		r.client[name] = true
		r.server[name] = true
	}
	for _, name := range entityHeaders {
		r.client[name] = true
		r.server[name] = true
	}
	for _, name := range requestHeaders {
		r.client[name] = true
	}
	for _, name := range responseHeaders {
		r.server[name] = true
	}
	return r
}

// isXPrefixed reports whether a lowercased header name begins with "x-".
func isXPrefixed(lower string) bool {
	return len(lower) >= 2 && lower[0] == 'x' && lower[1] == '-'
}

// capfirstDash applies the "Capfirst-Dash" canonicalisation: split on '-',
// uppercase the first byte of each non-empty segment and lowercase the
// rest, then rejoin with '-'. It is used both for "x-" prefixed names and,
// in non-strict mode, for any name the registry does not recognize.
func capfirstDash(lower string) string {
	segments := strings.Split(lower, "-")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		out = append(out, strings.ToUpper(seg[:1])+seg[1:])
	}
	return strings.Join(out, "-")
}

// canonicalize applies the lookup rules of spec.md §4.1: lowercase, then
// "x-" names get Capfirst-Dash treatment, then a registry lookup, then
// (unless strict) Capfirst-Dash again as a last resort. It returns the
// canonical name and whether one was produced.
//
// allowed, when non-nil, further restricts the result to names accepted
// by the requested HeaderKind; a registry hit outside the kind's set is
// treated as a miss.
func canonicalize(name string, allowed map[string]bool, strict bool) (string, bool) {
	lower := strings.ToLower(name)
	if lower == "" {
		return "", false
	}
	if isXPrefixed(lower) {
		return capfirstDash(lower), true
	}
	if canon, ok := registry.byLowerName[lower]; ok {
		if allowed != nil && !allowed[canon] {
			return "", false
		}
		return canon, true
	}
	if strict {
		return "", false
	}
	return capfirstDash(lower), true
}

// groupOf returns the registry group for a canonical header name, or
// GroupNone if the name is unknown (e.g. an "x-" extension or a
// non-strict passthrough name).
func groupOf(canonical string) Group {
	if g, ok := registry.group[canonical]; ok {
		return g
	}
	return GroupNone
}

// allowedSet returns the set of canonical names permitted for kind, or nil
// for KindBoth (meaning "no restriction beyond the registry itself").
func allowedSet(kind HeaderKind) map[string]bool {
	switch kind {
	case KindClient:
		return registry.client
	case KindServer:
		return registry.server
	default:
		return nil
	}
}

// ForKind returns the canonical names accepted for kind, in no particular
// order. It exists for introspection and tests; the parser and container
// never need to enumerate the whole set.
func ForKind(kind HeaderKind) []string {
	allowed := allowedSet(kind)
	if allowed == nil {
		allowed = make(map[string]bool, len(registry.group))
		for name := range registry.group {
			allowed[name] = true
		}
	}
	names := make([]string, 0, len(allowed))
	for name := range allowed {
		names = append(names, name)
	}
	return names
}
