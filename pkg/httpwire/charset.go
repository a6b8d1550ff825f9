package httpwire

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// DefaultCharset is the byte encoding used for protocol-level text: the
// request/status line and header block. Payload bodies are opaque bytes
// and are never passed through this codec.
var latin1 = charmap.ISO8859_1

// EncodeLatin1 converts s to its latin-1 (ISO-8859-1) byte representation,
// the charset spec.md §6 names for header fields and method/URL tokens.
func EncodeLatin1(s string) ([]byte, error) {
	return latin1.NewEncoder().Bytes([]byte(s))
}

// DecodeLatin1 converts latin-1 encoded bytes back to a Go string.
func DecodeLatin1(b []byte) (string, error) {
	out, err := latin1.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// headerTokenChars is the set of bytes that may appear unquoted in an
// RFC 2616 token, used by QuoteHeaderValue to decide whether a value needs
// quoting at all.
const headerTokenChars = "!#$%&'*+-.0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ^_`abcdefghijklmnopqrstuvwxyz|~"

func isTokenChar(b byte, extra string) bool {
	if strings.IndexByte(headerTokenChars, b) >= 0 {
		return true
	}
	return extra != "" && strings.IndexByte(extra, b) >= 0
}

// QuoteHeaderValue quotes value per RFC 2616 token rules: if allowToken is
// true and every byte is a token character (optionally including
// extraChars), the value is returned unchanged; otherwise it is wrapped in
// double quotes with backslash and quote characters escaped.
func QuoteHeaderValue(value, extraChars string, allowToken bool) string {
	if allowToken {
		allToken := true
		for i := 0; i < len(value); i++ {
			if !isTokenChar(value[i], extraChars) {
				allToken = false
				break
			}
		}
		if allToken {
			return value
		}
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(value[i])
		}
	}
	b.WriteByte('"')
	return b.String()
}

// UnquoteHeaderValue reverses QuoteHeaderValue. It intentionally matches
// what browsers do rather than the strict RFC unescaping: a UNC-style
// filename (`\\server\share`) is left alone so Windows paths sent as
// unescaped filenames round-trip, matching the behavior preserved from the
// original source.
func UnquoteHeaderValue(value string, isFilename bool) string {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		inner := value[1 : len(value)-1]
		if !isFilename || !strings.HasPrefix(inner, `\\`) {
			inner = strings.ReplaceAll(inner, `\\`, `\`)
			inner = strings.ReplaceAll(inner, `\"`, `"`)
			return inner
		}
	}
	return value
}

// ParseDictHeader parses a comma-separated list of key[=value] pairs as
// described by RFC 2068 §2 (e.g. WWW-Authenticate challenge parameters):
//
//	ParseDictHeader(`foo="is a fish", bar="as well", novalue`)
//
// yields {"foo": "is a fish", "bar": "as well", "novalue": ""}. A key with
// no "=" maps to the empty string, mirroring the original source's use of
// None for "key without a value" (Go has no natural nil string, so the
// zero value stands in for it; callers distinguishing "absent" from
// "empty" should check map membership, not the value).
func ParseDictHeader(value string) map[string]string {
	result := make(map[string]string)
	for _, item := range parseHTTPList(value) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		eq := strings.IndexByte(item, '=')
		if eq < 0 {
			result[item] = ""
			continue
		}
		name := strings.TrimSpace(item[:eq])
		v := strings.TrimSpace(item[eq+1:])
		if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
			v = UnquoteHeaderValue(v, false)
		}
		result[name] = v
	}
	return result
}

// parseHTTPList splits a comma-separated header value into items, leaving
// commas that fall inside double quotes intact.
func parseHTTPList(value string) []string {
	var items []string
	var cur strings.Builder
	inQuotes := false
	escaped := false
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case escaped:
			cur.WriteByte(c)
			escaped = false
		case c == '\\' && inQuotes:
			cur.WriteByte(c)
			escaped = true
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == ',' && !inQuotes:
			items = append(items, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		items = append(items, cur.String())
	}
	return items
}
