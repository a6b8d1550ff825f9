package httpwire

import (
	"log/slog"
	"net/url"

	"github.com/valyala/bytebufferpool"
)

// ParserKind selects how Parser.Execute interprets the first line of a
// message: as a request, a response, or auto-detected.
type ParserKind int

const (
	ParserKindRequest ParserKind = 0
	ParserKindResponse ParserKind = 1
	ParserKindAuto     ParserKind = 2
)

type parserState int

const (
	stateFirstLine parserState = iota
	stateHeaders
	stateBody
	stateTrailers
	stateComplete
)

// Version is an HTTP version number, e.g. {1, 1} for HTTP/1.1.
type Version struct {
	Major int
	Minor int
}

// Parser is a single-threaded, non-blocking, resumable HTTP/1.1 message
// parser. It owns no I/O: callers feed it byte chunks as they arrive from
// a transport via Execute, and drain decoded body fragments via RecvBody.
//
// A Parser is built for one message. To parse the next message on a
// keep-alive connection, construct a new Parser (spec.md §3 Lifecycle).
type Parser struct {
	kind       ParserKind
	opts       options
	headerKind HeaderKind

	state parserState

	// raw accumulates bytes since the last structural boundary was found
	// (end of first line, end of header block, end of a chunk).
	raw *pooledBuf

	onFirstLine         bool
	onHeadersComplete    bool
	onMessageBegin       bool
	onMessageComplete    bool

	version Version

	// Request fields.
	method       string
	url          string
	path         string
	queryString  string
	fragment     string

	// Response fields.
	statusCode int
	status     string
	reason     string

	headers  *Header
	trailers *Header

	chunked       bool
	hasContentLen bool
	contentLength int64
	clenRest      int64
	clenRestSet   bool

	body *pooledBuf

	partialBody bool

	decompressor Decompressor

	err *ParseError

	released bool
}

// pooledBuf defers acquiring a bytebufferpool buffer until first use, so a
// Parser that never sees a body doesn't pay for one, and returns it to the
// pool on release.
type pooledBuf struct {
	buf    *bytebufferpool.ByteBuffer
	getter func() *bytebufferpool.ByteBuffer
	putter func(*bytebufferpool.ByteBuffer)
}

func newRawBuf() *pooledBuf  { return &pooledBuf{getter: getRawBuf, putter: putRawBuf} }
func newBodyBuf() *pooledBuf { return &pooledBuf{getter: getBodyBuf, putter: putBodyBuf} }

func (p *pooledBuf) append(b []byte) {
	if p.buf == nil {
		p.buf = p.getter()
	}
	p.buf.Write(b)
}

func (p *pooledBuf) bytes() []byte {
	if p.buf == nil {
		return nil
	}
	return p.buf.B
}

func (p *pooledBuf) reset() {
	if p.buf != nil {
		p.buf.Reset()
	}
}

func (p *pooledBuf) len() int {
	if p.buf == nil {
		return 0
	}
	return p.buf.Len()
}

// release returns the underlying buffer to its pool, if one was acquired.
func (p *pooledBuf) release() {
	if p.buf != nil {
		p.putter(p.buf)
		p.buf = nil
	}
}

type options struct {
	decompress     bool
	strictHeaders  bool
	maxHeaderBytes int
	logger         *slog.Logger
}

// Option configures a Parser at construction time, following the
// functional-options idiom (see capacitor.Builder for the fluent-config
// variant of the same idea elsewhere in the teacher's module family).
type Option func(*options)

// WithDecompression enables transparent body decompression when the
// message advertises a Content-Encoding that NewDecompressor recognizes.
func WithDecompression(enabled bool) Option {
	return func(o *options) { o.decompress = enabled }
}

// WithStrictHeaders controls whether unrecognized header names are
// dropped (strict) or canonicalised and kept (non-strict, the default).
func WithStrictHeaders(strict bool) Option {
	return func(o *options) { o.strictHeaders = strict }
}

// WithMaxHeaderBytes bounds how large the buffered header block may grow
// before parsing gives up with ErrHeaderTooLarge. Zero means unbounded,
// matching spec.md §4.3's note that the core does not itself impose a
// limit; non-zero values are a caller-side guard in the spirit of that
// note, not a spec requirement.
func WithMaxHeaderBytes(n int) Option {
	return func(o *options) { o.maxHeaderBytes = n }
}

// WithLogger attaches a slog.Logger the parser uses for low-volume debug
// diagnostics (malformed input, decompressor setup). A nil logger (the
// default) disables this entirely; Execute never logs at any other level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewParser constructs a Parser for the given ParserKind.
func NewParser(kind ParserKind, opts ...Option) *Parser {
	o := options{maxHeaderBytes: defaultMaxHeaderBytes}
	for _, opt := range opts {
		opt(&o)
	}
	var hk HeaderKind
	switch kind {
	case ParserKindRequest:
		hk = KindClient
	case ParserKindResponse:
		hk = KindServer
	default:
		hk = KindBoth
	}
	return &Parser{
		kind:       kind,
		opts:       o,
		headerKind: hk,
		headers:    NewHeader(hk, o.strictHeaders),
		raw:        newRawBuf(),
		body:       newBodyBuf(),
		err:        &ParseError{Errno: ErrnoNone},
	}
}

func (p *Parser) debugf(msg string, args ...any) {
	if p.opts.logger != nil {
		p.opts.logger.Debug(msg, args...)
	}
}

// Release returns the parser's pooled buffers. Call it once the message is
// fully consumed (or abandoned); using the Parser afterward is a bug, not
// a recoverable state, matching spec.md §5's "to cancel, drop the parser".
func (p *Parser) Release() {
	p.released = true
	p.raw.release()
	p.body.release()
}

// Errno reports the last parse failure, or ErrnoNone if none occurred.
func (p *Parser) Errno() ParseErrno {
	if p.err == nil {
		return ErrnoNone
	}
	return p.err.Errno
}

// Errstr reports a human-readable description of the last parse failure.
func (p *Parser) Errstr() string {
	if p.err == nil {
		return ""
	}
	return p.err.Msg
}

func (p *Parser) fail(errno ParseErrno, msg string) {
	p.err = &ParseError{Errno: errno, Msg: msg}
}

// IsHeadersComplete reports whether the header block has been fully
// parsed.
func (p *Parser) IsHeadersComplete() bool { return p.onHeadersComplete }

// IsPartialBody reports whether unread body bytes are buffered.
func (p *Parser) IsPartialBody() bool { return p.partialBody }

// IsMessageBegin reports whether parsing has started producing output.
func (p *Parser) IsMessageBegin() bool { return p.onMessageBegin }

// IsMessageComplete reports whether the message has been fully parsed.
func (p *Parser) IsMessageComplete() bool { return p.onMessageComplete }

// IsChunked reports whether Transfer-Encoding: chunked framing is in use.
func (p *Parser) IsChunked() bool { return p.chunked }

// Version returns the parsed HTTP version.
func (p *Parser) Version() Version { return p.version }

// Method returns the parsed request method, or "" for a response message.
func (p *Parser) Method() string { return p.method }

// StatusCode returns the parsed status code, or 0 for a request message.
func (p *Parser) StatusCode() int { return p.statusCode }

// Reason returns the status line's reason phrase. Per the Open Question
// in spec.md §9, this is only the first word of the reason phrase
// ("No Content" -> "No") — preserved intentionally for compatibility with
// the source, not a bug in this port.
func (p *Parser) Reason() string { return p.reason }

// URL returns the raw request-target as it appeared on the wire.
func (p *Parser) URL() string { return p.url }

// Path returns the parsed path component of the request-target.
func (p *Parser) Path() string { return p.path }

// QueryString returns the parsed query component of the request-target.
func (p *Parser) QueryString() string { return p.queryString }

// Fragment returns the parsed fragment component of the request-target.
func (p *Parser) Fragment() string { return p.fragment }

// Headers returns the Header container populated by header parsing. It is
// populated exactly once, before any body fragment is available.
func (p *Parser) Headers() *Header { return p.headers }

// Trailers returns the Header container populated from a chunked
// message's trailer block, or nil if none was present (or the message
// wasn't chunked).
func (p *Parser) Trailers() *Header { return p.trailers }

// RecvBody returns the body bytes accumulated since the last call and
// clears both the accumulator and IsPartialBody.
func (p *Parser) RecvBody() []byte {
	out := append([]byte(nil), p.body.bytes()...)
	p.body.reset()
	p.partialBody = false
	return out
}

// Execute feeds length bytes from data into the parser and returns the
// number of bytes consumed as defined by spec.md §7's failure model: the
// full byte count on success or on a benign "need more data" pause, the
// cumulative consumed count on ErrnoBadFirstLine/ErrnoInvalidHeader, and
// -1 on ErrnoInvalidChunk.
//
// A length of 0 signals end-of-stream: it forces message completion if
// the header block had already been seen.
func (p *Parser) Execute(data []byte, length int) int {
	if length == 0 {
		return p.close(length)
	}
	data = data[:length]

	for {
		switch p.state {
		case stateFirstLine:
			consumed, done := p.stepFirstLine(data)
			if !done {
				return consumed
			}
			if p.Errno() != ErrnoNone {
				return consumed
			}
			data = nil
			continue

		case stateHeaders:
			consumed, done, closed := p.stepHeaders(data, length)
			if closed {
				return consumed
			}
			if !done {
				return consumed
			}
			if p.Errno() != ErrnoNone {
				return consumed
			}
			data = nil
			continue

		case stateBody, stateTrailers:
			p.onMessageBegin = true
			if len(data) > 0 {
				p.raw.append(data)
				data = nil
			}
			ret := p.stepBody()
			switch {
			case ret == needMore:
				return length
			case ret < 0:
				return -1
			case ret == bodyDone:
				p.state = stateComplete
				p.onMessageComplete = true
				return length
			default:
				continue
			}

		case stateComplete:
			return 0
		}
	}
}

const (
	needMore = -(1 << 30)
	bodyDone = 0
)

// close implements the source's close(length): forcing message completion
// when a 0-length feed signals EOF.
func (p *Parser) close(length int) int {
	p.onMessageBegin = true
	p.onMessageComplete = true
	p.state = stateComplete
	if p.raw.len() == 0 && p.onFirstLine {
		p.onHeadersComplete = true
		return length
	}
	return length + p.raw.len()
}

// parseRequestTarget splits a raw request-target into path, query, and
// fragment using the standard library's URI splitter, matching the
// source's use of urlsplit (spec.md §4.3 "Request-line parsing").
func parseRequestTarget(raw string) (path, query, fragment string) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", ""
	}
	return u.Path, u.RawQuery, u.Fragment
}
