package httpwire

import "errors"

// ParseErrno identifies why the parser stopped making progress. The
// numeric values are fixed by spec.md §7 and must not be renumbered.
type ParseErrno int

const (
	// ErrnoNone indicates no error has occurred.
	ErrnoNone ParseErrno = -1
	// ErrnoBadFirstLine: the first line was neither a valid request line
	// nor a valid status line for the parser's kind.
	ErrnoBadFirstLine ParseErrno = 0
	// ErrnoInvalidHeader: a header name contained a forbidden character.
	ErrnoInvalidHeader ParseErrno = 1
	// ErrnoInvalidChunk: a chunk size was not hexadecimal, or a chunk was
	// missing its trailing CRLF.
	ErrnoInvalidChunk ParseErrno = 2
)

func (e ParseErrno) String() string {
	switch e {
	case ErrnoNone:
		return "none"
	case ErrnoBadFirstLine:
		return "bad first line"
	case ErrnoInvalidHeader:
		return "invalid header"
	case ErrnoInvalidChunk:
		return "invalid chunk"
	default:
		return "unknown"
	}
}

// ParseError pairs a ParseErrno with a human-readable reason. It is stored
// on the Parser, not returned from execute — see spec.md §7's propagation
// rule: the parser never throws past execute.
type ParseError struct {
	Errno ParseErrno
	Msg   string
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return e.Errno.String() + ": " + e.Msg
}

// Structural errors, independent of the ParseErrno/execute protocol,
// mirroring the teacher's package-level sentinel style
// (shockwave/http11/errors.go).
var (
	// ErrHeaderTooLarge is returned by Header Container helpers and
	// decompressor setup when a size guard configured via
	// WithMaxHeaderBytes is exceeded.
	ErrHeaderTooLarge = errors.New("httpwire: header block too large")

	// ErrBufferTooSmall is returned by pooled-buffer helpers when asked to
	// grow past a hard cap.
	ErrBufferTooSmall = errors.New("httpwire: buffer too small")

	// ErrUnsupportedEncoding is returned by NewDecompressor for a
	// Content-Encoding value the parser does not know how to inflate.
	ErrUnsupportedEncoding = errors.New("httpwire: unsupported content-encoding")

	// ErrParserClosed is returned by Execute once is_message_complete is
	// true and the caller keeps feeding bytes (spec.md §4.3 COMPLETE
	// state: "Further feeds return 0" — we additionally surface this as
	// an error from Release-after-use misuse, not from Execute itself).
	ErrParserClosed = errors.New("httpwire: parser already released")
)
