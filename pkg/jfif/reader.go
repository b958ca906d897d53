package jfif

import (
	"io"

	"github.com/jpfielding/jfif.go/pkg/util"
)

// bufferSize is the raw byte buffer capacity. Large enough that refills
// are rare across an entropy segment.
const bufferSize = 4096

// Reader pulls bytes from an underlying source through a refillable
// buffer and removes JPEG byte stuffing on demand. It is the acquisition
// layer for one decode session: create one per stream, use it from one
// goroutine, discard it when the stream ends.
type Reader struct {
	r io.Reader

	// bytes buffers raw bytes from r, like a bufio.Reader except that up
	// to 2 bytes can be unread after a stuffed read, so the last 2 bytes
	// before the boundary survive every refill.
	bytes struct {
		// buf[i:j] holds bytes read from r not yet handed out.
		buf  [bufferSize]byte
		i, j int
		// nUnreadable is how many raw bytes produced the most recent
		// logical byte: 0, 1, or 2. UnreadStuffedByte backs i up by it.
		nUnreadable int
	}

	// bits is the accumulator state for the bit-level consumer.
	bits bits
}

// NewReader builds a Reader for one stream. The Content field of a
// decoded Header is the usual source.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// fill tops the buffer up from the underlying source. Only legal when no
// unread bytes remain; calling it early is a bug and yields
// ErrUnreadBytes. The last two buffered bytes are carried to the front
// first so UnreadStuffedByte stays possible across the refill.
func (r *Reader) fill() error {
	if r.bytes.i != r.bytes.j {
		return ErrUnreadBytes
	}
	if r.bytes.j > 2 {
		r.bytes.buf[0] = r.bytes.buf[r.bytes.j-2]
		r.bytes.buf[1] = r.bytes.buf[r.bytes.j-1]
		r.bytes.i, r.bytes.j = 2, 2
	}
	n, err := r.r.Read(r.bytes.buf[r.bytes.j:])
	r.bytes.j += n
	if n > 0 {
		return nil
	}
	if err == io.EOF {
		err = ErrShortStream
	}
	return err
}

// ReadByte returns the next raw byte, refilling as needed. It knows
// nothing about byte stuffing; entropy-coded data goes through
// ReadStuffedByte instead.
func (r *Reader) ReadByte() (byte, error) {
	for r.bytes.i == r.bytes.j {
		if err := r.fill(); err != nil {
			return 0, err
		}
	}
	x := r.bytes.buf[r.bytes.i]
	r.bytes.i++
	r.bytes.nUnreadable = 0
	return x, nil
}

// ReadFull reads exactly len(p) bytes into p, refilling across buffer
// boundaries, or fails with the first refill error (ErrShortStream when
// the source runs dry). Any pending stuffed-read state is unwound first
// so a length-based read never starts mid-overshoot.
func (r *Reader) ReadFull(p []byte) error {
	if r.bytes.nUnreadable != 0 {
		if r.bits.n >= 8 {
			r.UnreadStuffedByte()
		}
		r.bytes.nUnreadable = 0
	}
	for len(p) > 0 {
		n, err := util.BoundedCopy(p, r.bytes.buf[r.bytes.i:r.bytes.j])
		if err != nil {
			return err
		}
		p = p[n:]
		r.bytes.i += n
		if len(p) == 0 {
			break
		}
		if err := r.fill(); err != nil {
			return err
		}
	}
	return nil
}

// Ignore skips exactly n bytes. Same refill loop as ReadFull without the
// copy.
func (r *Reader) Ignore(n int) error {
	if r.bytes.nUnreadable != 0 {
		if r.bits.n >= 8 {
			r.UnreadStuffedByte()
		}
		r.bytes.nUnreadable = 0
	}
	for n > 0 {
		m := r.bytes.j - r.bytes.i
		if m > n {
			m = n
		}
		r.bytes.i += m
		n -= m
		if n == 0 {
			break
		}
		if err := r.fill(); err != nil {
			return err
		}
	}
	return nil
}
