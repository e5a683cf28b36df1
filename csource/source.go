// Copyright 2024 the csource authors.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package csource

import "unicode/utf16"

// CompressedSource is an immutable, random-access compressed
// representation of a UTF-16 text buffer. The zero value is the
// compressed form of the empty string.
type CompressedSource struct {
	bytes  []byte
	length int // character length, in UTF-16 code units

	// cached holds a fully decompressed copy of the source once one has
	// been materialized, the way the reference implementation caches a
	// String handle alongside the compressed bytes.
	cached []uint16
}

// Compress flattens src and encodes it into a new CompressedSource.
func Compress(src Source) *CompressedSource {
	length := src.Len()
	idxSize := indexSize(length)

	var out Collector
	index := make([]byte, idxSize)
	Encode(src, &out, index)

	bytes := make([]byte, out.Size()+idxSize)
	out.WriteTo(bytes)
	copy(bytes[out.Size():], index)

	return &CompressedSource{bytes: bytes, length: length}
}

// Len returns the character length of the source, in UTF-16 code units.
func (s *CompressedSource) Len() int { return s.length }

// Bytes returns the raw compressed token stream plus trailing sparse
// index, exactly as FromBytes expects to receive it back. Callers must
// not modify the returned slice.
func (s *CompressedSource) Bytes() []byte { return s.bytes }

// FromBytes wraps an already-compressed token stream (as returned by
// Bytes) and its character length back into a CompressedSource,
// without re-encoding.
func FromBytes(data []byte, length int) *CompressedSource {
	return &CompressedSource{bytes: data, length: length}
}

// getCursor computes the cursor for character position pos.
func (s *CompressedSource) getCursor(pos int) Cursor {
	return GetCursor(s.bytes, pos, s.length)
}

// IsAscii reports whether every character in [start, start+chars) is
// 7-bit ASCII.
func (s *CompressedSource) IsAscii(start, chars int) bool {
	return IsAscii(s.bytes, s.getCursor(start), chars)
}

// Decompress decodes the entire source into a new UTF-16 buffer.
func (s *CompressedSource) Decompress() []uint16 {
	return s.decompressRange(0, s.length)
}

// DecompressRange decodes [start, start+length) into a new UTF-16
// buffer. If a full decompression has already been cached, it is
// substringed directly instead of re-walking the token stream.
func (s *CompressedSource) DecompressRange(start, length int) []uint16 {
	if s.cached != nil {
		out := make([]uint16, length)
		copy(out, s.cached[start:start+length])
		return out
	}
	return s.decompressRange(start, length)
}

func (s *CompressedSource) decompressRange(start, length int) []uint16 {
	out := make([]uint16, length)
	Decode(s.bytes, s.getCursor(start), out)
	return out
}

// Cache materializes and retains a full decompression, so that future
// DecompressRange calls can substring it instead of re-decoding.
func (s *CompressedSource) Cache() {
	if s.cached == nil {
		s.cached = s.Decompress()
	}
}

// DecompressString is DecompressRange re-encoded as a Go string (UTF-8).
func (s *CompressedSource) DecompressString(start, length int) string {
	return string(utf16.Decode(s.DecompressRange(start, length)))
}

// DecompressToSink decodes up to length UTF-16 code units starting at
// start and feeds their UTF-8 encoding to sink one byte at a time. It
// stops as soon as sink refuses a byte (never mid-codepoint) and
// returns the number of characters successfully written, which equals
// length unless sink refused.
func (s *CompressedSource) DecompressToSink(start, length int, sink ByteSink) int {
	return decompressToSink(s.bytes, s.getCursor(start), length, sink)
}

// Dump writes exactly chars UTF-16 code units' worth of content,
// starting at character position start, to sink as UTF-8.
func (s *CompressedSource) Dump(sink ByteSink, start, chars int) {
	Dump(sink, s.bytes, s.getCursor(start), chars)
}

// SubStringEquals reports whether the length(other) characters starting
// at start equal other exactly. It returns false if start+len(other)
// overflows the source's length.
func (s *CompressedSource) SubStringEquals(start int, other []uint16) bool {
	if start+len(other) > s.length {
		return false
	}
	cursor := s.getCursor(start)
	var c [1]uint16
	for i := range other {
		Decode(s.bytes, cursor, c[:])
		if c[0] != other[i] {
			return false
		}
		AdvanceCursor(s.bytes, &cursor, 1)
	}
	return true
}
