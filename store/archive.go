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

package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/wingo/csource/csource"
)

// entry is one named, possibly-shared compressed source in an Archive.
type entry struct {
	id          uuid.UUID
	path        string
	fingerprint fingerprint
	source      *csource.CompressedSource
}

// Archive is an in-memory, deduplicating collection of compressed
// source buffers addressed by path. Two paths whose source text is
// byte-identical share a single compressed representation.
type Archive struct {
	ID uuid.UUID

	entries []entry
	byFP    map[fingerprint]*csource.CompressedSource
}

// NewArchive returns an empty Archive with a freshly generated identity.
func NewArchive() *Archive {
	return &Archive{
		ID:   uuid.New(),
		byFP: make(map[fingerprint]*csource.CompressedSource),
	}
}

// Put compresses text (if its fingerprint has not already been seen in
// this archive) and records it under path, returning the entry's
// identifier. Calling Put twice with the same text, even under
// different paths, compresses it only once.
func (a *Archive) Put(path, text string) uuid.UUID {
	fp := fingerprintOf(text)

	src, ok := a.byFP[fp]
	if !ok {
		src = csource.Compress(asciiOrTwoByte(text))
		a.byFP[fp] = src
	}

	id := uuid.New()
	a.entries = append(a.entries, entry{
		id:          id,
		path:        path,
		fingerprint: fp,
		source:      src,
	})
	return id
}

// asciiOrTwoByte picks the narrower Source representation for text, the
// same choice a host string implementation makes at construction time.
func asciiOrTwoByte(text string) csource.Source {
	ascii := true
	for _, r := range text {
		if r > 0x7f {
			ascii = false
			break
		}
	}
	if ascii {
		return csource.AsciiSource(text)
	}

	units := make([]uint16, 0, len(text))
	for _, r := range text {
		if r <= 0xffff {
			units = append(units, uint16(r))
		} else {
			c := uint32(r) - 0x10000
			units = append(units, uint16(0xd800+(c>>10)), uint16(0xdc00+(c&0x3ff)))
		}
	}
	return csource.TwoByteSource(units)
}

// Len returns the number of path entries in the archive (not the
// number of unique compressed sources, which may be fewer).
func (a *Archive) Len() int { return len(a.entries) }

// UniqueSources returns the number of distinct compressed sources
// backing the archive's entries, after fingerprint deduplication.
func (a *Archive) UniqueSources() int { return len(maps.Keys(a.byFP)) }

// Paths returns every entry path in the archive, sorted.
func (a *Archive) Paths() []string {
	paths := make([]string, len(a.entries))
	for i, e := range a.entries {
		paths[i] = e.path
	}
	slices.Sort(paths)
	return paths
}

// Source returns the compressed source stored at path, or nil if path
// is not present.
func (a *Archive) Source(path string) *csource.CompressedSource {
	for i := range a.entries {
		if a.entries[i].path == path {
			return a.entries[i].source
		}
	}
	return nil
}

const (
	archiveMagic = "CSRC"
	codecZstd    = byte('z')
	codecS2      = byte('s')
)

// WriteTo serializes the archive's entry table and writes it to w,
// compressed end-to-end with the named codec ("zstd" or "s2").
func (a *Archive) WriteTo(w io.Writer, codec string) (int64, error) {
	var codecByte byte
	switch codec {
	case "zstd":
		codecByte = codecZstd
	case "s2":
		codecByte = codecS2
	default:
		return 0, fmt.Errorf("store: unknown archive codec %q", codec)
	}

	var raw bytes.Buffer
	a.encodeInto(&raw)

	compressed, err := compress(codecByte, raw.Bytes())
	if err != nil {
		return 0, err
	}

	header := make([]byte, 0, len(archiveMagic)+1)
	header = append(header, archiveMagic...)
	header = append(header, codecByte)

	nHeader, err := w.Write(header)
	if err != nil {
		return int64(nHeader), err
	}
	nBody, err := w.Write(compressed)
	return int64(nHeader + nBody), err
}

func (a *Archive) encodeInto(buf *bytes.Buffer) {
	buf.Write(a.ID[:])

	writeUint32(buf, uint32(len(a.entries)))
	for _, e := range a.entries {
		writeUint32(buf, uint32(len(e.path)))
		buf.WriteString(e.path)
		buf.Write(e.id[:])
		buf.Write(e.fingerprint[:])
		writeUint32(buf, uint32(e.source.Len()))

		enc := e.source.Bytes()
		writeUint32(buf, uint32(len(enc)))
		buf.Write(enc)
	}
}

// ReadFrom decodes an archive previously written by WriteTo.
func ReadFrom(r io.Reader) (*Archive, error) {
	header := make([]byte, len(archiveMagic)+1)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("store: reading archive header: %w", err)
	}
	if string(header[:len(archiveMagic)]) != archiveMagic {
		return nil, fmt.Errorf("store: not a csrc archive")
	}
	codecByte := header[len(archiveMagic)]

	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("store: reading archive body: %w", err)
	}
	raw, err := decompress(codecByte, compressed)
	if err != nil {
		return nil, err
	}
	return decodeArchive(raw)
}

func decodeArchive(raw []byte) (*Archive, error) {
	a := &Archive{byFP: make(map[fingerprint]*csource.CompressedSource)}

	if len(raw) < 16 {
		return nil, fmt.Errorf("store: archive body truncated before id")
	}
	copy(a.ID[:], raw[:16])
	raw = raw[16:]

	count, raw, err := readUint32(raw)
	if err != nil {
		return nil, err
	}

	for i := uint32(0); i < count; i++ {
		var pathLen uint32
		pathLen, raw, err = readUint32(raw)
		if err != nil {
			return nil, err
		}
		if uint32(len(raw)) < pathLen {
			return nil, fmt.Errorf("store: archive entry %d: path truncated", i)
		}
		path := string(raw[:pathLen])
		raw = raw[pathLen:]

		var id uuid.UUID
		if len(raw) < 16 {
			return nil, fmt.Errorf("store: archive entry %d: id truncated", i)
		}
		copy(id[:], raw[:16])
		raw = raw[16:]

		var fp fingerprint
		if len(raw) < len(fp) {
			return nil, fmt.Errorf("store: archive entry %d: fingerprint truncated", i)
		}
		copy(fp[:], raw[:len(fp)])
		raw = raw[len(fp):]

		var charLen uint32
		charLen, raw, err = readUint32(raw)
		if err != nil {
			return nil, err
		}

		var encLen uint32
		encLen, raw, err = readUint32(raw)
		if err != nil {
			return nil, err
		}
		if uint32(len(raw)) < encLen {
			return nil, fmt.Errorf("store: archive entry %d: payload truncated", i)
		}
		enc := raw[:encLen]
		raw = raw[encLen:]

		src, ok := a.byFP[fp]
		if !ok {
			src = csource.FromBytes(enc, int(charLen))
			a.byFP[fp] = src
		}

		a.entries = append(a.entries, entry{id: id, path: path, fingerprint: fp, source: src})
	}

	return a, nil
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func readUint32(raw []byte) (uint32, []byte, error) {
	if len(raw) < 4 {
		return 0, nil, fmt.Errorf("store: archive body truncated reading a length")
	}
	return binary.LittleEndian.Uint32(raw), raw[4:], nil
}
