package mempool

import (
	"sync"
)

// A simple sized pool for []uint8 pixel buffers to reduce allocations on the
// erosion and scoring hot paths.

var uint8Pools sync.Map // key: size class (int), value: *sync.Pool

// sizeClass rounds n up to the next multiple of 1024 to reduce churn.
func sizeClass(n int) int {
	if n <= 1024 {
		return 1024
	}
	const step = 1024
	r := (n + step - 1) / step
	return r * step
}

// GetUint8 retrieves a []uint8 buffer of at least n elements from the pool.
// The returned slice has length n, is zeroed, and may have larger capacity.
// The caller must return it via PutUint8 when done.
func GetUint8(n int) []uint8 {
	cls := sizeClass(n)
	pAny, _ := uint8Pools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]uint8, cls) }})
	p, ok := pAny.(*sync.Pool)
	if !ok {
		return make([]uint8, n)
	}
	buf, ok := p.Get().([]uint8)
	if !ok || cap(buf) < cls {
		buf = make([]uint8, cls)
	} else {
		buf = buf[:cap(buf)]
	}
	buf = buf[:n]
	// Pixel buffers are reused across images; callers expect clean state.
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

// PutUint8 returns a buffer to the pool. It is safe to pass a nil slice.
func PutUint8(buf []uint8) {
	if buf == nil {
		return
	}
	cls := sizeClass(cap(buf))
	pAny, _ := uint8Pools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]uint8, cls) }})
	p, ok := pAny.(*sync.Pool)
	if !ok {
		return
	}
	p.Put(buf[:cap(buf)]) //nolint:staticcheck
}
