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

import (
	"encoding/binary"
	"unsafe"

	"github.com/dchest/siphash"
)

// hashK0, hashK1 are the fixed siphash keys used to hash decompressed
// substrings. A fixed key is appropriate here — unlike a string table
// used for untrusted lookups, substring hashes in this package are only
// ever compared against each other within a single process.
const (
	hashK0 uint64 = 0x736f75726365
	hashK1 uint64 = 0x636f6d7072657373
)

const hashChunkSize = 32

// hashKey is hashK0 and hashK1 encoded as the 16-byte key siphash.New
// expects, matching the key used by the one-shot siphash.Hash calls below.
var hashKey = func() []byte {
	key := make([]byte, 16)
	binary.LittleEndian.PutUint64(key[0:8], hashK0)
	binary.LittleEndian.PutUint64(key[8:16], hashK1)
	return key
}()

// SubStringHash computes a hash of the length characters starting at
// start, equal to hashing the equivalent decompressed substring's raw
// UTF-16 bytes in one shot. If a full decompression is already cached,
// the substring is fed to the hasher directly; otherwise it is streamed
// through in hashChunkSize-character chunks — siphash's incremental
// writer makes the two paths produce identical results.
func (s *CompressedSource) SubStringHash(start, length int) uint64 {
	if s.cached != nil {
		return hashUTF16(s.cached[start : start+length])
	}

	h := siphash.New(hashKey)
	cursor := s.getCursor(start)
	var buf [hashChunkSize]uint16

	remaining := length
	for remaining > 0 {
		n := hashChunkSize
		if n > remaining {
			n = remaining
		}
		chunk := buf[:n]
		Decode(s.bytes, cursor, chunk)
		AdvanceCursor(s.bytes, &cursor, n)

		writeUTF16(h, chunk)
		remaining -= n
	}

	return h.Sum64()
}

type byteWriterAt interface {
	Write(p []byte) (int, error)
}

func writeUTF16(w byteWriterAt, chars []uint16) {
	if len(chars) == 0 {
		return
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&chars[0])), len(chars)*2)
	w.Write(buf)
}

// hashUTF16 hashes a UTF-16 buffer's raw bytes in a single siphash call.
func hashUTF16(chars []uint16) uint64 {
	if len(chars) == 0 {
		return siphash.Hash(hashK0, hashK1, nil)
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&chars[0])), len(chars)*2)
	return siphash.Hash(hashK0, hashK1, buf)
}

// GetLineNumberSlow walks the source from its start, counting newline
// characters up to min(pos, Len()). It is O(pos) and intended only for
// cold paths such as error reporting.
func (s *CompressedSource) GetLineNumberSlow(pos int) int {
	if pos > s.length {
		pos = s.length
	}
	line := 0
	cursor := Cursor{}
	var c [1]uint16
	for pos > 0 {
		Decode(s.bytes, cursor, c[:])
		AdvanceCursor(s.bytes, &cursor, 1)
		if c[0] == '\n' {
			line++
		}
		pos--
	}
	return line
}
