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
	"fmt"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

func compress(codec byte, src []byte) ([]byte, error) {
	switch codec {
	case codecZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(src, nil), nil
	case codecS2:
		return s2.Encode(nil, src), nil
	default:
		return nil, fmt.Errorf("store: unknown archive codec byte %q", codec)
	}
}

func decompress(codec byte, src []byte) ([]byte, error) {
	switch codec {
	case codecZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(src, nil)
	case codecS2:
		return s2.Decode(nil, src)
	default:
		return nil, fmt.Errorf("store: unknown archive codec byte %q", codec)
	}
}
