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

import "encoding/binary"

// charsPerIndexEntry is the block size the encoder flushes an index entry
// at, and the granularity GetCursor can seek to directly.
const charsPerIndexEntry = 1024

// Cursor is a position inside a compressed token stream, split into a
// byte offset and an offset into the token currently straddling it. A
// Cursor is a value type; it holds no reference to the bytes it was
// derived from.
type Cursor struct {
	ByteOffset     uint32
	SubTokenOffset uint32
}

// indexSize returns the size, in bytes, of the positional index appended
// after the token payload for a stream of the given character length.
func indexSize(length int) int {
	return (length / charsPerIndexEntry) * 4
}

// writeIndex writes the byte offset at which character pos begins into
// the index vector. pos must be a positive multiple of charsPerIndexEntry.
func writeIndex(index []byte, pos, byteOffset int) {
	if pos < charsPerIndexEntry || pos%charsPerIndexEntry != 0 {
		panic("csource: writeIndex: pos is not a positive multiple of the index block size")
	}
	entry := pos/charsPerIndexEntry - 1
	binary.LittleEndian.PutUint32(index[entry*4:], uint32(byteOffset))
}

// readIndex reads the byte offset of the index entry covering character
// pos out of data, where data is the full compressed byte array (payload
// followed by index) and length is the stream's character length.
//
// readIndex returns 0 for any pos below the first index entry, matching
// the behavior of GetCursor(data, pos, length) for pos < 1024.
func readIndex(data []byte, pos, length int) uint32 {
	if pos < charsPerIndexEntry {
		return 0
	}
	indexBase := len(data) - indexSize(length)
	entry := pos/charsPerIndexEntry - 1
	return binary.LittleEndian.Uint32(data[indexBase+entry*4:])
}

// AdvanceCursor moves cursor forward by chars characters (UTF-16 code
// units). If the target position lands inside a multi-character token,
// the cursor is parked on that token's header byte with the appropriate
// SubTokenOffset; otherwise it is advanced past the token with a zero
// SubTokenOffset.
func AdvanceCursor(data []byte, cursor *Cursor, chars int) {
	byteOffset := int(cursor.ByteOffset)
	charsWritten := 0
	prevByteOffset := 0
	prevCharsWritten := 0

	target := chars + int(cursor.SubTokenOffset)

	for charsWritten < target {
		prevByteOffset = byteOffset
		prevCharsWritten = charsWritten

		code := data[byteOffset]
		byteOffset++

		charsWritten += int(tokenLengths[code])
		if !isBytecode(code) {
			if isAscii(code) {
				byteOffset++
			} else {
				charsWritten += uc16Length(data[byteOffset], data[byteOffset+1], data[byteOffset+2]) - 1
				byteOffset += 3
			}
		}
	}

	if charsWritten == target {
		cursor.ByteOffset = uint32(byteOffset)
		cursor.SubTokenOffset = 0
	} else {
		cursor.ByteOffset = uint32(prevByteOffset)
		cursor.SubTokenOffset = uint32(target - prevCharsWritten)
	}
}

// GetCursor computes the cursor for character position pos in a stream
// of the given character length, using the positional index to skip to
// the nearest 1024-character boundary before fast-forwarding.
func GetCursor(data []byte, pos, length int) Cursor {
	cursor := Cursor{ByteOffset: readIndex(data, pos, length)}
	AdvanceCursor(data, &cursor, pos%charsPerIndexEntry)
	return cursor
}
