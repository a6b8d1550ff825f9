package httpwire

import (
	"strconv"
	"strings"
)

// stepFirstLine scans the parser's raw buffer for the first CRLF. If none
// is found yet, it reports that more data is needed. Once found, it
// parses the line via parseFirstLine and, on success, advances the
// parser's state to stateHeaders and primes the raw buffer with whatever
// bytes followed the CRLF.
func (p *Parser) stepFirstLine(newData []byte) (consumed int, done bool) {
	if len(newData) > 0 {
		p.raw.append(newData)
	}
	block := p.raw.bytes()
	idx := indexCRLF(block)
	if idx < 0 {
		return len(newData), false
	}

	line, err := DecodeLatin1(block[:idx])
	if err != nil {
		p.fail(ErrnoBadFirstLine, err.Error())
		return 0, true
	}
	rest := append([]byte(nil), block[idx+2:]...)
	p.raw.reset()
	if len(rest) > 0 {
		p.raw.append(rest)
	}

	if !p.parseFirstLine(line) {
		return 0, true
	}
	p.onFirstLine = true
	p.state = stateHeaders
	return idx + 2, true
}

func indexCRLF(b []byte) int {
	for i := 0; i+2 <= len(b); i++ {
		if b[i] == '\r' && b[i+1] == '\n' {
			return i
		}
	}
	return -1
}

// parseFirstLine dispatches to request-line or status-line parsing per
// spec.md §4.3: kind 0 tries request-line only, kind 1 tries status-line
// only, kind 2 (auto) tries request-line first and falls back to
// status-line on failure. It sets errno/errstr and returns false on
// failure, matching _parse_firstline in the original source.
func (p *Parser) parseFirstLine(line string) bool {
	switch p.kind {
	case ParserKindResponse:
		if msg, ok := p.parseStatusLine(line); !ok {
			p.fail(ErrnoBadFirstLine, msg)
			return false
		}
		return true
	case ParserKindRequest:
		if msg, ok := p.parseRequestLine(line); !ok {
			p.fail(ErrnoBadFirstLine, msg)
			return false
		}
		return true
	default: // auto-detect
		if _, ok := p.parseRequestLine(line); ok {
			return true
		}
		if msg, ok := p.parseStatusLine(line); !ok {
			p.fail(ErrnoBadFirstLine, msg)
			return false
		}
		return true
	}
}

// parseRequestLine parses "METHOD SP Request-URI SP HTTP-Version".
func (p *Parser) parseRequestLine(line string) (string, bool) {
	bits := splitN(line, 3)
	if len(bits) != 3 {
		return "invalid request line: " + line, false
	}
	method := strings.ToUpper(bits[0])
	if !methodRE.MatchString(method) {
		return "invalid method: " + bits[0], false
	}
	m := versionRE.FindStringSubmatch(bits[2])
	if m == nil {
		return "invalid HTTP version: " + bits[2], false
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])

	path, query, fragment := parseRequestTarget(bits[1])

	p.method = method
	p.url = bits[1]
	p.path = path
	p.queryString = query
	p.fragment = fragment
	p.version = Version{Major: major, Minor: minor}
	return "", true
}

// parseStatusLine parses "HTTP-Version SP Status-Line-Remainder". Per the
// Open Question in spec.md §9, reason is only the first \w* word of the
// remainder, matching STATUS_RE's capture group exactly — this is
// preserved intentionally, not fixed.
func (p *Parser) parseStatusLine(line string) (string, bool) {
	bits := splitN(line, 2)
	if len(bits) != 2 {
		return "invalid status line: " + line, false
	}
	m := versionRE.FindStringSubmatch(bits[0])
	if m == nil {
		return "invalid HTTP version: " + bits[0], false
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])

	sm := statusRE.FindStringSubmatch(bits[1])
	if sm == nil {
		return "invalid status: " + bits[1], false
	}
	code, _ := strconv.Atoi(sm[1])

	p.version = Version{Major: major, Minor: minor}
	p.status = bits[1]
	p.statusCode = code
	p.reason = sm[2]
	return "", true
}

// splitN splits s on runs of whitespace into at most n fields, with the
// last field keeping any embedded whitespace (Python's str.split(None, n)
// semantics, used by both _parse_request_line and _parse_response_line in
// the original source).
func splitN(s string, n int) []string {
	fields := make([]string, 0, n)
	i := 0
	for len(fields) < n-1 {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) {
			return fields
		}
		start := i
		for i < len(s) && !isSpace(s[i]) {
			i++
		}
		fields = append(fields, s[start:i])
	}
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	if i < len(s) {
		fields = append(fields, s[i:])
	}
	return fields
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}
