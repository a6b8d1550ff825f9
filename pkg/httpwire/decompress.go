package httpwire

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
)

// Decompressor is the narrow trait the parser drives body bytes through
// when transparent decompression is enabled and the message advertises a
// supported Content-Encoding. It mirrors design note §9's
// "Decompressor { write(bytes) -> bytes; finish() -> bytes }" sketch.
type Decompressor interface {
	// Write feeds raw (wire) bytes in and returns however many
	// decompressed bytes became available as a result. Implementations
	// may buffer internally; a short or empty return is not an error.
	Write(p []byte) ([]byte, error)
}

// NewDecompressor returns the Decompressor for contentEncoding, or nil,
// false if the encoding is not one the parser transparently inflates.
// Recognized values are "gzip" and "deflate" (spec.md §4.3), plus "br"
// (brotli) as a supplement grounded in the teacher module's dependency
// set — see SPEC_FULL.md §4.
func NewDecompressor(contentEncoding string) (Decompressor, bool) {
	switch contentEncoding {
	case "gzip":
		return newGzipDecompressor(), true
	case "deflate":
		return newFlateDecompressor(), true
	case "br":
		return newBrotliDecompressor(), true
	default:
		return nil, false
	}
}

// pipeDecompressor adapts a streaming io.Reader-based decompressor (the
// shape klauspost/compress and brotli both expose) to the Write-based
// Decompressor trait: input bytes are appended to an internal buffer and
// the underlying reader is drained non-blockingly by reading until it
// would need more input than is currently buffered.
type pipeDecompressor struct {
	in     *bytes.Buffer
	reader io.Reader
	newErr error
	make   func(io.Reader) (io.Reader, error)
}

func (p *pipeDecompressor) Write(chunk []byte) ([]byte, error) {
	if p.newErr != nil {
		return nil, p.newErr
	}
	p.in.Write(chunk)
	if p.reader == nil {
		r, err := p.make(p.in)
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			// Not enough header bytes yet; wait for more input.
			return nil, nil
		}
		if err != nil {
			p.newErr = err
			return nil, err
		}
		p.reader = r
	}
	out := make([]byte, 0, len(chunk)*2+64)
	buf := make([]byte, 4096)
	for {
		n, err := p.reader.Read(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}
		if err != nil {
			// io.EOF / io.ErrUnexpectedEOF here just means "no more
			// decompressed bytes until more compressed input arrives".
			break
		}
		if n == 0 {
			break
		}
	}
	return out, nil
}

func newGzipDecompressor() Decompressor {
	return &pipeDecompressor{
		in: &bytes.Buffer{},
		make: func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		},
	}
}

func newFlateDecompressor() Decompressor {
	return &pipeDecompressor{
		in: &bytes.Buffer{},
		make: func(r io.Reader) (io.Reader, error) {
			return flate.NewReader(r), nil
		},
	}
}

func newBrotliDecompressor() Decompressor {
	return &pipeDecompressor{
		in: &bytes.Buffer{},
		make: func(r io.Reader) (io.Reader, error) {
			return brotli.NewReader(r), nil
		},
	}
}
