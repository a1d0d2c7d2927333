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

package links

import (
	"sync"

	"github.com/willf/bloom"
)

// Deduper drops links whose URL was already seen. It is backed by a bloom
// filter, so a small fraction of unseen URLs may be dropped too.
type Deduper struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
}

// NewDeduper returns a deduper sized for n URLs with the given false
// positive rate.
func NewDeduper(n uint, fp float64) *Deduper {
	return &Deduper{
		filter: bloom.NewWithEstimates(n, fp),
	}
}

// Dedupe returns the links of the given slice not seen yet, in order.
func (d *Deduper) Dedupe(links []Link) []Link {
	d.mu.Lock()
	defer d.mu.Unlock()

	ret := make([]Link, 0, len(links))
	for _, l := range links {
		if !d.filter.TestAndAdd([]byte(l.URL)) {
			ret = append(ret, l)
		}
	}
	return ret
}
