package syntax

// Two append-only arenas back every Context, bulk-freed on reset: a node
// arena generalized over a type parameter, and a growing byte-string arena
// for word text.

// batch is a bump allocator for fixed-size records. Handing out *T
// pointers backed by a growing slice avoids one heap allocation per node,
// and batch.reset discards the whole arena in O(1).
type batch[T any] struct {
	buf []T
}

const batchSize = 32

// next returns a pointer to a fresh, zero-valued T.
func (b *batch[T]) next() *T {
	if len(b.buf) == 0 {
		b.buf = make([]T, batchSize)
	}
	v := &b.buf[0]
	b.buf = b.buf[1:]
	return v
}

// reset drops the current block; records handed out earlier are never
// reused, so pointers obtained before reset stay valid.
func (b *batch[T]) reset() {
	b.buf = nil
}

// textArena grows the top object one byte at a time, then finish gets a
// stable slice and starts a fresh object. Because finish caps the returned
// slice's capacity
// at its own length, later appends to the arena can never alias an
// already-finished string.
type textArena struct {
	buf   []byte
	start int
}

func (t *textArena) writeByte(b byte) {
	t.buf = append(t.buf, b)
}

func (t *textArena) write(bs ...byte) {
	t.buf = append(t.buf, bs...)
}

// len reports how many bytes the in-progress object has accumulated so
// far.
func (t *textArena) len() int {
	return len(t.buf) - t.start
}

// byteAt returns the i'th byte of the in-progress object.
func (t *textArena) byteAt(i int) byte {
	return t.buf[t.start+i]
}

// truncate shrinks the in-progress object to n bytes.
func (t *textArena) truncate(n int) {
	t.buf = t.buf[:t.start+n]
}

// finish closes out the in-progress object and returns it as a stable,
// non-aliasing slice; the next write starts a brand new object.
func (t *textArena) finish() []byte {
	s := t.buf[t.start:len(t.buf):len(t.buf)]
	t.start = len(t.buf)
	return s
}

// reset discards the object in progress and starts a fresh buffer;
// objects finished earlier keep their storage.
func (t *textArena) reset() {
	t.buf = nil
	t.start = 0
}
