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

// Command csrcdump compresses each named text file (or stdin) with
// package csource and dumps the decompressed content back out as UTF-8;
// with -v it also prints compression statistics to stderr.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"unicode/utf16"

	"golang.org/x/sys/cpu"

	"github.com/wingo/csource/csource"
)

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	dashv := flag.Bool("v", false, "print compression statistics")
	flag.Parse()

	if *dashv {
		// informational only: this codec has no SIMD path, but the CPU
		// feature probe is cheap and worth logging alongside the stats.
		fmt.Fprintf(os.Stderr, "cpu: avx2=%v avx512=%v\n", cpu.X86.HasAVX2, cpu.X86.HasAVX512)
	}

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for _, arg := range args {
		if err := dumpOne(out, arg, *dashv); err != nil {
			exitf("%s: %s", arg, err)
		}
	}
}

func dumpOne(out *bufio.Writer, arg string, verbose bool) error {
	var in io.Reader
	if arg == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	text, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	src := csource.Compress(sourceOf(text))
	if verbose {
		fmt.Fprintf(os.Stderr, "%s: %d chars -> %d compressed bytes, ascii=%v\n",
			arg, src.Len(), len(src.Bytes()), src.IsAscii(0, src.Len()))
	}

	sink := &writerByteSink{w: out}
	src.Dump(sink, 0, src.Len())
	return sink.err
}

// sourceOf decodes raw input bytes as UTF-8 text and picks the narrower
// Source representation, the same choice a host string implementation
// makes at construction time.
func sourceOf(text []byte) csource.Source {
	ascii := true
	for _, c := range text {
		if c > 0x7f {
			ascii = false
			break
		}
	}
	if ascii {
		return csource.AsciiSource(text)
	}
	return csource.TwoByteSource(utf16.Encode([]rune(string(text))))
}

type writerByteSink struct {
	w   *bufio.Writer
	err error
}

func (s *writerByteSink) PutByte(b byte) bool {
	if s.err != nil {
		return false
	}
	if err := s.w.WriteByte(b); err != nil {
		s.err = err
		return false
	}
	return true
}
