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

package scheme

import (
	"bytes"
	_ "embed" // Note the blank import for go:embed
	"errors"
	"sync"
)

//go:embed scheme-registry
var embeddedRegistryData []byte

// New parses the embedded scheme registry and returns a fresh Registry.
//
// Each call parses the whole file; use Default for a shared instance.
func New() (*Registry, error) {
	if len(embeddedRegistryData) == 0 {
		return nil, errors.New("embedded scheme-registry file is empty or not found")
	}
	return ParseRegistry(bytes.NewReader(embeddedRegistryData))
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := New()
	if err != nil {
		panic("scheme: invalid embedded registry: " + err.Error())
	}
	return r
})

// Default returns the registry built from the embedded file, parsed once.
// It must not be modified.
func Default() *Registry {
	return defaultRegistry()
}
