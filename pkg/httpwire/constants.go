package httpwire

import "regexp"

// These patterns are taken verbatim (translated to Go's RE2 syntax) from
// the original source's METHOD_RE, VERSION_RE, STATUS_RE, and HEADER_RE.
// No third-party regex engine appears anywhere in the example corpus, and
// these patterns run once per message (not once per byte, unlike the
// teacher's hot path), so stdlib regexp is the right tool — see
// DESIGN.md.
var (
	methodRE  = regexp.MustCompile(`^[A-Z0-9$\-_.]{3,20}$`)
	versionRE = regexp.MustCompile(`^HTTP/(\d+)\.(\d+)`)
	statusRE  = regexp.MustCompile(`^(\d{3})\s*(\w*)`)
	headerRE  = regexp.MustCompile(`[\x00-\x1F\x7F()<>@,;:\[\]={} \t\\"]`)
)

// Framing/size limits. Unlike the teacher's fixed 8KB budget, these are
// configurable via Option so callers can raise or lower them; the
// defaults match shockwave/http11/constants.go's MaxRequestLineSize and
// MaxHeadersSize.
const (
	defaultMaxHeaderBytes = 8192
	maxChunkSize          = 16 * 1024 * 1024
)

// statusNoContent, statusNotModified mirror the two fixed status codes
// spec.md §4.3 calls out for forced zero-length framing.
const (
	statusNoContent  = 204
	statusNotModified = 304
)
