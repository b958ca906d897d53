package jfif

import "io"

// DestuffStats summarizes one pass over an entropy stream.
type DestuffStats struct {
	Logical int64 `json:"logical"` // logical bytes produced
	Stuffed int64 `json:"stuffed"` // 0xFF 0x00 pairs collapsed
	Marker  bool  `json:"marker"`  // true when a marker ended the pass, false when the source ran dry
}

// Destuff streams logical entropy bytes to w until the source is
// exhausted or a marker interrupts the entropy data, either of which ends
// the pass normally. Write errors and buffer faults abort it.
func (r *Reader) Destuff(w io.Writer) (DestuffStats, error) {
	var stats DestuffStats
	var one [1]byte
	for {
		x, err := r.ReadStuffedByte()
		switch err {
		case nil:
		case ErrShortStream:
			return stats, nil
		case ErrMissingFF00:
			stats.Marker = true
			return stats, nil
		default:
			return stats, err
		}
		if r.bytes.nUnreadable == 2 {
			stats.Stuffed++
		}
		one[0] = x
		if _, err := w.Write(one[:]); err != nil {
			return stats, err
		}
		stats.Logical++
	}
}
