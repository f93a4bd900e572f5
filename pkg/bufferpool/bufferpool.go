package bufferpool

import (
	"bytes"
	"sync"
)

const defaultSize = 1024

var pool = &sync.Pool{
	New: func() interface{} {
		return &Buffer{
			Buffer: bytes.NewBuffer(make([]byte, 0, defaultSize)),
		}
	},
}

// Buffer is a pooled bytes.Buffer. Callers must not retain references to the
// buffer or its contents after Release.
type Buffer struct {
	*bytes.Buffer
}

// Get returns a reset buffer from the pool.
func Get() *Buffer {
	buf := pool.Get().(*Buffer)
	buf.Reset()
	return buf
}

// Release returns the buffer to the pool.
func (b *Buffer) Release() {
	pool.Put(b)
}
