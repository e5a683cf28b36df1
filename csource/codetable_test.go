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

import "testing"

func TestCodeTableInvariants(t *testing.T) {
	if tokenLengths[asciiCode] != 1 || tokenLengths[unicodeCode] != 1 {
		t.Fatalf("ascii/unicode escape token lengths must be 1, got %d/%d",
			tokenLengths[asciiCode], tokenLengths[unicodeCode])
	}
	if tokenLengths[lastBytecode] != maxTokenLength {
		t.Fatalf("tokenLengths[lastBytecode] = %d, want %d", tokenLengths[lastBytecode], maxTokenLength)
	}
	for c := firstBytecode; c < lastBytecode; c++ {
		if tokenLengths[c] > tokenLengths[c+1] {
			t.Fatalf("tokenLengths not non-decreasing at %d: %d > %d", c, tokenLengths[c], tokenLengths[c+1])
		}
	}
	for c := firstBytecode; c <= lastBytecode; c++ {
		chars := bytecodeChars[c]
		if len(chars) != int(tokenLengths[c]) {
			t.Fatalf("bytecodeChars[%d] has length %d, tokenLengths says %d", c, len(chars), tokenLengths[c])
		}
		for _, b := range []byte(chars) {
			if b > 0x7f {
				t.Fatalf("bytecodeChars[%d] contains a non-ASCII byte %#x", c, b)
			}
		}
	}
}

func TestLongestMatchPrefersLongerEntries(t *testing.T) {
	for c := firstBytecode; c <= lastBytecode; c++ {
		chars := bytecodeChars[c]
		input := make([]int, len(chars)+1)
		for i, b := range []byte(chars) {
			input[i] = int(b)
		}
		input[len(chars)] = 'Z'

		code, n := longestMatch(input)
		if n == 0 {
			continue // no bytecode matched; entry c is always a candidate for its own content, so this does not happen
		}
		if n < len(chars) {
			t.Errorf("longestMatch(%q...) returned a shorter match (%d) than the known entry %d (%d)", chars, n, c, len(chars))
		}
		if int(tokenLengths[code]) != n {
			t.Errorf("longestMatch returned code %d with length %d, but tokenLengths[%d] = %d", code, n, code, tokenLengths[code])
		}
	}
}
