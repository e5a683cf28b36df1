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

import "golang.org/x/crypto/blake2b"

// fingerprint is a content hash used to dedup archive entries whose
// source text is byte-identical, so that Put never compresses the same
// text twice.
type fingerprint [blake2b.Size256]byte

func fingerprintOf(text string) fingerprint {
	return fingerprint(blake2b.Sum256([]byte(text)))
}
