package nnclient

import "bytes"

// BufferPool is a bounded pool of byte buffers with explicit checkout and
// return. At most its capacity's worth of buffers are ever retained; extra
// returns are dropped for the garbage collector, and checkouts never block.
type BufferPool struct {
	free chan *bytes.Buffer
}

// NewBufferPool creates a pool retaining at most size buffers.
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{free: make(chan *bytes.Buffer, size)}
}

// Get checks a reset buffer out of the pool, allocating one if none is free.
func (p *BufferPool) Get() *bytes.Buffer {
	select {
	case buf := <-p.free:
		return buf
	default:
		return &bytes.Buffer{}
	}
}

// Put returns a buffer to the pool. The buffer must not be used afterwards.
func (p *BufferPool) Put(buf *bytes.Buffer) {
	buf.Reset()
	select {
	case p.free <- buf:
	default:
	}
}
