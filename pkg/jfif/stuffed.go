package jfif

// ReadStuffedByte returns the next logical byte of entropy-coded data.
// On the wire a literal 0xFF is escaped as 0xFF 0x00; the 0x00 is
// consumed and discarded here. A 0xFF followed by anything else is a
// marker byte leaking into an entropy read and fails with ErrMissingFF00.
// nUnreadable records how many raw bytes this call consumed (1 or 2) so
// UnreadStuffedByte can give them back.
func (r *Reader) ReadStuffedByte() (byte, error) {
	// Fast path while the buffer holds at least two bytes: the 0x00 check
	// never has to cross a refill.
	if r.bytes.i+2 <= r.bytes.j {
		x := r.bytes.buf[r.bytes.i]
		r.bytes.i++
		r.bytes.nUnreadable = 1
		if x != markerPrefix {
			return x, nil
		}
		if r.bytes.buf[r.bytes.i] != 0x00 {
			return 0, ErrMissingFF00
		}
		r.bytes.i++
		r.bytes.nUnreadable = 2
		return markerPrefix, nil
	}

	// Near the buffer boundary: two plain reads, same bookkeeping.
	x, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if x != markerPrefix {
		r.bytes.nUnreadable = 1
		return x, nil
	}
	x, err = r.ReadByte()
	if err != nil {
		r.bytes.nUnreadable = 1
		return 0, err
	}
	r.bytes.nUnreadable = 2
	if x != 0x00 {
		return 0, ErrMissingFF00
	}
	return markerPrefix, nil
}

// UnreadStuffedByte undoes the most recent ReadStuffedByte call, giving a
// byte of data back from the bit accumulator to the byte buffer. Huffman
// lookup wants 8 bits buffered before it decides, so a bit-level consumer
// can overshoot by one or two raw bytes near the end of a segment; this
// puts them back. Safe to call when there is nothing to unread.
func (r *Reader) UnreadStuffedByte() {
	r.bytes.i -= r.bytes.nUnreadable
	r.bytes.nUnreadable = 0
	if r.bits.n >= 8 {
		r.bits.a >>= 8
		r.bits.n -= 8
		r.bits.m >>= 8
	}
}
