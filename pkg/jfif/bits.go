package jfif

// bits holds unprocessed bits taken from the byte stream for a bit-level
// consumer (a Huffman decoder, above this package). The n least
// significant bits of a are the unread bits, consumed MSB to LSB.
type bits struct {
	a uint32 // accumulator
	m uint32 // mask; m == 1<<(n-1) when n > 0, m == 0 when n == 0
	n int32  // number of unread bits in a
}

// EnsureNBits tops the accumulator up, one destuffed byte at a time,
// until it holds at least n bits. Refill and stuffing errors propagate.
func (r *Reader) EnsureNBits(n int32) error {
	for r.bits.n < n {
		c, err := r.ReadStuffedByte()
		if err != nil {
			return err
		}
		r.bits.a = r.bits.a<<8 | uint32(c)
		r.bits.n += 8
		if r.bits.m == 0 {
			r.bits.m = 1 << 7
		} else {
			r.bits.m <<= 8
		}
	}
	return nil
}

// ReadBit consumes one bit from the accumulator.
func (r *Reader) ReadBit() (bool, error) {
	if r.bits.n == 0 {
		if err := r.EnsureNBits(1); err != nil {
			return false, err
		}
	}
	ret := r.bits.a&r.bits.m != 0
	r.bits.n--
	r.bits.m >>= 1
	return ret, nil
}

// ReadBits consumes n bits, MSB first, as an unsigned value.
func (r *Reader) ReadBits(n int32) (uint32, error) {
	if r.bits.n < n {
		if err := r.EnsureNBits(n); err != nil {
			return 0, err
		}
	}
	ret := r.bits.a >> uint32(r.bits.n-n)
	ret &= (1 << uint32(n)) - 1
	r.bits.n -= n
	r.bits.m >>= uint32(n)
	return ret, nil
}

// ResetBits drops the whole accumulator. Restart markers begin a fresh
// entropy segment, so any buffered bits belong to the one that just
// ended.
func (r *Reader) ResetBits() {
	r.bits = bits{}
}

// BitsHeld reports how many unread bits the accumulator holds.
func (r *Reader) BitsHeld() int32 {
	return r.bits.n
}
