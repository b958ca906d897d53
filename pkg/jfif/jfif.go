// Package jfif provides the front half of a JPEG/JFIF decoder: JFIF APP0
// header recognition plus the byte and bit acquisition layer every JPEG
// entropy decoder sits on top of.
//
// This package does not decode pixels. It produces a correctly destuffed,
// correctly positioned byte/bit stream:
//   - JFIF APP0 header decode (DecodeHeader)
//   - buffered byte reads with refill across an io.Reader (ReadByte,
//     ReadFull, Ignore)
//   - byte-stuffing removal for entropy-coded data, where a literal 0xFF
//     is escaped as 0xFF 0x00 on the wire (ReadStuffedByte)
//   - rewind support for a bit-level consumer that overshot
//     (UnreadStuffedByte)
//   - an MSB-first bit accumulator for that consumer (EnsureNBits,
//     ReadBit, ReadBits)
//
// Basic usage:
//
//	hdr, err := jfif.DecodeHeader(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	r := jfif.NewReader(bytes.NewReader(hdr.Content))
//	b, err := r.ReadStuffedByte() // entropy-coded bytes, destuffed
//
// Huffman tables, IDCT, quantization, and color conversion belong to the
// layers above and are not implemented here.
package jfif

import "errors"

// JPEG marker bytes relevant to the front-end. Markers are two bytes, 0xFF
// followed by the type.
const (
	markerPrefix = 0xFF
	soiMarker    = 0xD8 // start of image
	eoiMarker    = 0xD9 // end of image
	app0Marker   = 0xE0 // JFIF application segment
)

// jfifTag is the identifier field of a JFIF APP0 segment, NUL included.
const jfifTag = "JFIF\x00"

var (
	// ErrUnreadBytes means fill was invoked while unread bytes remained in
	// the buffer. This is a caller bug, never a data problem.
	ErrUnreadBytes = errors.New("jfif: fill called with unread bytes buffered")

	// ErrMissingFF00 means entropy-coded data contained a 0xFF byte that was
	// not followed by the 0x00 stuffing byte. Either the stream is malformed
	// or the caller read past the end of the entropy segment into a marker.
	ErrMissingFF00 = errors.New("jfif: missing 0xff00 byte-stuffing sequence")

	// ErrShortStream means the underlying source ended while a read still
	// expected bytes. Fatal to the decode in progress.
	ErrShortStream = errors.New("jfif: unexpected end of stream")

	// ErrShortHeader means the input cannot hold even a start-of-image
	// prefix.
	ErrShortHeader = errors.New("jfif: input shorter than a start-of-image prefix")
)
