package httpwire

// stepBody reuses Execute's needMore/bodyDone sentinels (defined in
// parser.go), mirroring the original _parse_body's use of None/0/negative/
// positive:
//   - needMore: no further progress possible this call; Execute returns
//     length immediately (identity framing always returns this, even on
//     the call that completes the message — see spec.md §9's note that
//     this is an intentional trait of the source).
//   - bodyDone (0): the message is fully parsed.
//   - a negative value: ErrnoInvalidChunk occurred.
//   - a positive value: one chunk was consumed and more buffered data may
//     contain another; the caller should call stepBody again.

// stepBody processes one unit of body progress against the parser's raw
// buffer (identity: the whole pending buffer; chunked: one chunk).
func (p *Parser) stepBody() int {
	if !p.chunked {
		return p.stepIdentityBody()
	}
	return p.stepChunk()
}

func (p *Parser) stepIdentityBody() int {
	data := append([]byte(nil), p.raw.bytes()...)
	if p.clenRestSet {
		p.clenRest -= int64(len(data))
	}
	if p.decompressor != nil && len(data) > 0 {
		out, err := p.decompressor.Write(data)
		if err != nil {
			p.debugf("decompression failed", "err", err)
		} else {
			data = out
		}
	}
	p.partialBody = true
	if len(data) > 0 {
		p.body.append(data)
	}
	p.raw.reset()
	if !p.clenRestSet || p.clenRest <= 0 {
		p.onMessageComplete = true
		p.state = stateComplete
	}
	return needMore
}

// stepChunk parses and consumes a single chunk from the raw buffer,
// per spec.md §4.3's chunked body algorithm.
func (p *Parser) stepChunk() int {
	data := p.raw.bytes()

	size, rest, ok := parseChunkSize(data)
	if !ok {
		p.fail(ErrnoInvalidChunk, "invalid chunk size")
		return -1
	}
	if rest == nil {
		// No CRLF-terminated size line buffered yet.
		return needMore
	}
	if size == 0 {
		if !trailerBlockComplete(rest) {
			return needMore
		}
		return p.finishChunkedBody(rest)
	}
	if len(rest) < size {
		return needMore
	}
	bodyPart := rest[:size]
	tail := rest[size:]
	if len(tail) < 2 || tail[0] != '\r' || tail[1] != '\n' {
		p.fail(ErrnoInvalidChunk, "chunk missing terminator")
		return -1
	}

	out := append([]byte(nil), bodyPart...)
	if p.decompressor != nil {
		decoded, err := p.decompressor.Write(out)
		if err != nil {
			p.debugf("decompression failed", "err", err)
		} else {
			out = decoded
		}
	}
	p.partialBody = true
	p.body.append(out)

	newRest := append([]byte(nil), tail[2:]...)
	p.raw.reset()
	if len(newRest) > 0 {
		p.raw.append(newRest)
	}
	return len(newRest) + 1 // any positive value signals "try another chunk"
}

// finishChunkedBody parses trailers (if present) from rest and reports
// message completion, per the zero-size-chunk branch of spec.md §4.3.
func (p *Parser) finishChunkedBody(rest []byte) int {
	p.parseTrailers(rest)
	p.raw.reset()
	return 0
}

// parseChunkSize reads a chunk-size line ("hex-size[;ext]\r\n") from the
// front of data. ok is false only for a malformed (non-hex) size; rest is
// nil when the CRLF hasn't arrived yet (caller should wait for more
// data), distinguished from a present-but-empty rest via len(data).
func parseChunkSize(data []byte) (size int, rest []byte, ok bool) {
	idx := indexCRLF(data)
	if idx < 0 {
		return 0, nil, true
	}
	line := data[:idx]
	if semi := indexByte(line, ';'); semi >= 0 {
		line = line[:semi]
	}
	line = trimSpaceBytes(line)
	if len(line) == 0 {
		return 0, nil, false
	}
	var n int
	for _, b := range line {
		n <<= 4
		switch {
		case b >= '0' && b <= '9':
			n |= int(b - '0')
		case b >= 'a' && b <= 'f':
			n |= int(b-'a') + 10
		case b >= 'A' && b <= 'F':
			n |= int(b-'A') + 10
		default:
			return 0, nil, false
		}
		if n > maxChunkSize {
			return 0, nil, false
		}
	}
	return n, data[idx+2:], true
}

// trailerBlockComplete reports whether rest (the bytes immediately after
// a zero-size chunk's size line) contains a fully-buffered trailer
// section: either the bare CRLF that terminates an empty trailer block,
// or one or more trailer lines followed by the blank-line CRLF pair.
func trailerBlockComplete(rest []byte) bool {
	if len(rest) >= 2 && rest[0] == '\r' && rest[1] == '\n' {
		return true
	}
	return indexCRLFCRLF(rest) >= 0
}

// parseTrailers parses a trailer header block out of rest, per spec.md
// §4.3's "Trailers" rule. An empty trailer section (rest begins with the
// terminating CRLF directly) leaves trailers unset; a genuine trailer
// block runs up to the blank-line CRLF pair and is parsed the same way
// the header block is.
func (p *Parser) parseTrailers(rest []byte) {
	if len(rest) >= 2 && rest[0] == '\r' && rest[1] == '\n' {
		return
	}
	idx := indexCRLFCRLF(rest)
	if idx < 0 {
		return
	}
	block := rest[:idx]
	text, err := DecodeLatin1(block)
	if err != nil {
		return
	}
	trailers := NewHeader(p.headerKind, p.opts.strictHeaders)
	if _, perr := p.parseHeaderBlock(text, trailers); perr == nil {
		p.trailers = trailers
	}
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

func trimSpaceBytes(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && isSpace(b[start]) {
		start++
	}
	for end > start && isSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}
