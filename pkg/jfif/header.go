package jfif

import (
	"encoding/binary"
)

// jfifHeaderLen is the byte length of SOI + APP0 marker + the fixed-layout
// JFIF segment body (length, identifier, version, units, densities,
// thumbnail dimensions).
const jfifHeaderLen = 20

// soiPrefixLen is what a raw entropy stream carries before its data: the
// start-of-image marker plus the 0xFF opening the next segment.
const soiPrefixLen = 3

// Header holds the fixed-layout fields of a JFIF APP0 segment. When the
// input carries no APP0 segment every field is zero and only Content is
// set. Immutable once decoded.
type Header struct {
	Length       uint16 // APP0 segment length, identifier through thumbnail
	Identifier   string // "JFIF\x00", or "" when no APP0 segment is present
	VersionMajor uint8
	VersionMinor uint8
	Units        uint8  // 0 = aspect ratio only, 1 = dots/inch, 2 = dots/cm
	XDensity     uint16
	YDensity     uint16
	XThumbnail   uint8
	YThumbnail   uint8
	Content      []byte // the stream after the header, entropy data and all
}

// HasJFIF reports whether the input carried a JFIF APP0 segment.
func (h *Header) HasJFIF() bool {
	return h.Identifier != ""
}

// DecodeHeader reads the front of a JPEG stream once, at start-up. If the
// stream opens with SOI, APP0 and the JFIF identifier, the fixed-width
// APP0 fields are extracted and Content is everything after them.
// Otherwise the stream is treated as a raw entropy stream: fields stay
// zero and Content is everything after the 3-byte start-of-image prefix.
// The only failure is an input too short to hold that prefix.
//
// Content aliases data; callers that mutate data must copy first.
func DecodeHeader(data []byte) (*Header, error) {
	if len(data) < soiPrefixLen {
		return nil, ErrShortHeader
	}
	if len(data) >= jfifHeaderLen &&
		data[0] == markerPrefix && data[1] == soiMarker &&
		data[2] == markerPrefix && data[3] == app0Marker &&
		string(data[6:11]) == jfifTag {
		return &Header{
			Length:       binary.BigEndian.Uint16(data[4:6]),
			Identifier:   string(data[6:11]),
			VersionMajor: data[11],
			VersionMinor: data[12],
			Units:        data[13],
			XDensity:     binary.BigEndian.Uint16(data[14:16]),
			YDensity:     binary.BigEndian.Uint16(data[16:18]),
			XThumbnail:   data[18],
			YThumbnail:   data[19],
			Content:      data[jfifHeaderLen:],
		}, nil
	}
	return &Header{Content: data[soiPrefixLen:]}, nil
}
