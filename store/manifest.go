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

// Package store holds many named CompressedSource buffers in one
// archive, deduplicating identical source text and persisting the
// result compactly.
package store

import (
	"fmt"

	"sigs.k8s.io/yaml"
)

// Manifest is the declarative input to cmd/csrcpack: a list of source
// paths and the literal text to compress at each one.
type Manifest struct {
	Entries []ManifestEntry `json:"entries"`
}

// ManifestEntry names one archive entry to pack.
type ManifestEntry struct {
	Path   string `json:"path"`
	Source string `json:"source"`
}

// ParseManifest decodes a YAML-encoded Manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("store: parsing manifest: %w", err)
	}
	for i, e := range m.Entries {
		if e.Path == "" {
			return nil, fmt.Errorf("store: manifest entry %d has an empty path", i)
		}
	}
	return &m, nil
}
