/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package scheme holds the registry of URL schemes known to the parser,
// with the default port of each.
package scheme

import "strings"

// Registry holds the parsed scheme records, keyed by lowercase name.
type Registry struct {
	Records  map[string]Record
	FileDate string
}

// Record describes one scheme.
type Record struct {
	Name        string   `json:"name"`
	DefaultPort int      `json:"defaultPort,omitempty"`
	Description []string `json:"description,omitempty"`

	// Aliases are other names resolving to the same record.
	Aliases []string `json:"aliases,omitempty"`
}

// Lookup returns the record of the named scheme, case-insensitively.
func (r *Registry) Lookup(name string) (Record, bool) {
	if r == nil {
		return Record{}, false
	}
	rec, ok := r.Records[strings.ToLower(name)]
	return rec, ok
}

// Known reports whether the named scheme is in the registry.
func (r *Registry) Known(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// DefaultPort returns the default port of the named scheme and whether the
// scheme is known. Schemes without a port, such as file, report 0.
func (r *Registry) DefaultPort(name string) (int, bool) {
	rec, ok := r.Lookup(name)
	return rec.DefaultPort, ok
}
