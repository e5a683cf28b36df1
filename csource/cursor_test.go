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
	"strings"
	"testing"
)

func TestAdvanceCursorMatchesFreshCursor(t *testing.T) {
	s := strings.Repeat("abcdefgh ", 400) // > 2 index boundaries
	src := Compress(AsciiSource(s))

	var cur Cursor
	for pos := 0; pos < len(s); pos += 7 {
		AdvanceCursor(src.bytes, &cur, 7)
		if pos+7 > len(s) {
			break
		}
		fresh := GetCursor(src.bytes, pos+7, src.length)
		if cur != fresh {
			t.Fatalf("at pos %d: incrementally advanced cursor %+v != fresh cursor %+v", pos+7, cur, fresh)
		}
	}
}

func TestIndexSize(t *testing.T) {
	cases := []struct {
		length int
		want   int
	}{
		{0, 0},
		{1023, 0},
		{1024, 4},
		{2047, 4},
		{2048, 8},
	}
	for _, tc := range cases {
		if got := indexSize(tc.length); got != tc.want {
			t.Errorf("indexSize(%d) = %d, want %d", tc.length, got, tc.want)
		}
	}
}

func TestGetCursorUsesIndex(t *testing.T) {
	s := strings.Repeat("z", 5000)
	src := Compress(AsciiSource(s))

	direct := GetCursor(src.bytes, 2048, src.length)

	var walked Cursor
	AdvanceCursor(src.bytes, &walked, 2048)

	if direct != walked {
		t.Errorf("GetCursor via index = %+v, walked cursor = %+v", direct, walked)
	}
}
