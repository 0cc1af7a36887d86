package handler

import (
	"bytes"
	"sync"
)

const (
	initialBufferSize = 512

	// maxPooledBufferSize keeps one oversized response from pinning memory in the pool
	maxPooledBufferSize = 64 << 10
)

var encodeBuffers = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return encodeBuffers.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	buf.Reset()
	encodeBuffers.Put(buf)
}
