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

// Command csrcpack reads a YAML manifest naming source texts, packs
// them into a single deduplicating archive, and writes the result to
// the path given by -o.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wingo/csource/store"
)

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	dasho := flag.String("o", "", "output archive path")
	dashc := flag.String("c", "zstd", "archive compression codec (zstd, s2)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		exitf("usage: csrcpack -o out.csrc [-c zstd|s2] manifest.yaml")
	}
	if *dasho == "" {
		exitf("csrcpack requires the -o argument")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		exitf("reading manifest: %s", err)
	}

	manifest, err := store.ParseManifest(data)
	if err != nil {
		exitf("%s", err)
	}

	archive := store.NewArchive()
	for _, e := range manifest.Entries {
		archive.Put(e.Path, e.Source)
	}

	out, err := os.Create(*dasho)
	if err != nil {
		exitf("creating %s: %s", *dasho, err)
	}
	defer out.Close()

	n, err := archive.WriteTo(out, *dashc)
	if err != nil {
		exitf("writing archive: %s", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %d entries (%d bytes) to %s\n", archive.Len(), n, *dasho)
}
