package httpwire

import "github.com/valyala/bytebufferpool"

// rawBufPool and bodyBufPool back the Parser's raw-accumulator and
// body-accumulator buffers. Pooling them avoids a fresh slice allocation
// per message the way shockwave/buffer_pool.go pools fixed-size buffers
// for request/response I/O; bytebufferpool's self-tuning calibration
// (instead of shockwave's fixed 2/4/8/16/32/64KB size classes) fits a
// parser better, since header blocks and chunk sizes are caller-controlled
// and don't cluster into a handful of buckets.
var (
	rawBufPool  bytebufferpool.Pool
	bodyBufPool bytebufferpool.Pool
)

func getRawBuf() *bytebufferpool.ByteBuffer  { return rawBufPool.Get() }
func putRawBuf(b *bytebufferpool.ByteBuffer) { rawBufPool.Put(b) }

func getBodyBuf() *bytebufferpool.ByteBuffer  { return bodyBufPool.Get() }
func putBodyBuf(b *bytebufferpool.ByteBuffer) { bodyBufPool.Put(b) }
