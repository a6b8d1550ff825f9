package httpwire

import "strings"

// parseHeaderBlock parses the bytes of a header block (the region up to,
// but not including, the terminating blank line) into dst, and derives
// the framing decisions spec.md §4.3 describes (content-length, chunked,
// forced-zero-length responses, decompressor setup).
//
// It mirrors _parse_headers in the original source: lines are split on
// CRLF, a line without a colon is skipped, names are validated against
// headerRE, and continuation lines (leading SP/HTAB) are folded into the
// previous value. The "merge same header" step uses the upper-cased name
// as its working key (spec.md §4.3 "Tie-breaks and policies"), then
// stores through dst, which canonicalises per the registry.
func (p *Parser) parseHeaderBlock(block string, dst *Header) (consumed int, err *ParseError) {
	lines := strings.Split(block, "\r\n")

	// merged tracks insertion order and values keyed by the upper-cased
	// working name, exactly as the source's self._headers[name] lookups
	// operate before the value ever reaches the canonicalising container.
	merged := map[string]string{}
	order := []string{}

	i := 0
	for i < len(lines) {
		curr := lines[i]
		i++
		colon := strings.IndexByte(curr, ':')
		if colon < 0 {
			continue
		}
		name := strings.TrimRight(curr[:colon], " \t")
		nameUpper := strings.ToUpper(name)
		if headerRE.MatchString(nameUpper) {
			return 0, &ParseError{Errno: ErrnoInvalidHeader, Msg: "invalid header name " + nameUpper}
		}

		valueParts := []string{strings.TrimLeft(curr[colon+1:], " \t")}
		for i < len(lines) && len(lines[i]) > 0 && (lines[i][0] == ' ' || lines[i][0] == '\t') {
			valueParts = append(valueParts, lines[i])
			i++
		}
		value := strings.TrimRight(strings.Join(valueParts, ""), " \t\r\n")

		if existing, ok := merged[nameUpper]; ok {
			value = existing + ", " + value
		} else {
			order = append(order, nameUpper)
		}
		merged[nameUpper] = value
	}

	for _, name := range order {
		dst.Set(name, merged[name])
	}
	return len(block), nil
}

// applyFraming derives chunked/content-length framing from the parsed
// headers, per spec.md §4.3's "After parsing the block, examine the
// container" rules, and sets up a Decompressor when enabled.
func (p *Parser) applyFraming() {
	te := strings.ToLower(p.headers.Get("Transfer-Encoding", ""))
	p.chunked = te == "chunked"

	clenRaw, hasCL := p.headers.GetAll("Content-Length")
	var clen int64
	clenOK := false
	if hasCL && !p.chunked {
		if v, ok := parseNonNegativeInt(strings.Join(clenRaw, ", ")); ok {
			clen, clenOK = v, true
		}
	}

	forceZero := false
	if p.kind == ParserKindResponse || p.kind == ParserKindAuto {
		switch {
		case p.statusCode == statusNoContent, p.statusCode == statusNotModified:
			forceZero = true
		case p.statusCode >= 100 && p.statusCode < 200:
			forceZero = true
		}
	}
	if p.method == "HEAD" {
		forceZero = true
	}
	if forceZero {
		clen, clenOK = 0, true
		p.chunked = false
	}

	p.hasContentLen = clenOK
	p.contentLength = clen
	p.clenRest = clen
	p.clenRestSet = clenOK

	if p.opts.decompress {
		enc := strings.ToLower(p.headers.Get("Content-Encoding", ""))
		if d, ok := NewDecompressor(enc); ok {
			p.decompressor = d
		}
	}
}

// parseNonNegativeInt parses s as a non-negative base-10 integer. Per
// spec.md §4.3, an unparseable or negative Content-Length is treated as
// absent, never as an error.
func parseNonNegativeInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	var n int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int64(c-'0')
	}
	return n, true
}

// stepHeaders attempts to parse the header block out of the parser's raw
// buffer. It returns the number of bytes consumed, whether headers
// completed (or a terminal error occurred), and whether the message
// closed outright (the "exactly \r\n" case in spec.md §4.3.2).
func (p *Parser) stepHeaders(newData []byte, length int) (consumed int, done bool, closed bool) {
	if len(newData) > 0 {
		p.raw.append(newData)
	}
	block := p.raw.bytes()
	idx := indexCRLFCRLF(block)
	if idx < 0 {
		if string(block) == "\r\n" {
			p.raw.reset()
			return p.close(length), true, true
		}
		return length, false, false
	}

	headerText, err := DecodeLatin1(block[:idx])
	if err != nil {
		p.fail(ErrnoInvalidHeader, err.Error())
		return 0, true, false
	}
	rest := append([]byte(nil), block[idx+4:]...)

	if p.opts.maxHeaderBytes > 0 && idx > p.opts.maxHeaderBytes {
		p.fail(ErrnoInvalidHeader, ErrHeaderTooLarge.Error())
		return 0, true, false
	}

	n, perr := p.parseHeaderBlock(headerText, p.headers)
	if perr != nil {
		p.err = perr
		return 0, true, false
	}

	p.raw.reset()
	if len(rest) > 0 {
		p.raw.append(rest)
	}
	p.onHeadersComplete = true
	p.state = stateBody
	p.applyFraming()
	return n + 4, true, false
}

func indexCRLFCRLF(b []byte) int {
	for i := 0; i+4 <= len(b); i++ {
		if b[i] == '\r' && b[i+1] == '\n' && b[i+2] == '\r' && b[i+3] == '\n' {
			return i
		}
	}
	return -1
}
