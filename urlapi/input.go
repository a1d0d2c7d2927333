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

package urlapi

import "strings"

// parserInput is a byte cursor over the raw URL with bounded spans, used
// in place of format-string scanning.
type parserInput struct {
	s   string
	pos int
}

// newParserInput creates a new parserInput wrapping the given string.
func newParserInput(s string) *parserInput {
	return &parserInput{s: s}
}

// peek returns the next byte without advancing the position.
func (p *parserInput) peek() (byte, bool) {
	if p.pos >= len(p.s) {
		return 0, false
	}
	return p.s[p.pos], true
}

// consume advances past c if it is the next byte.
func (p *parserInput) consume(c byte) bool {
	if b, ok := p.peek(); ok && b == c {
		p.pos++
		return true
	}
	return false
}

// span consumes up to limit bytes accepted by valid and returns them.
// A negative limit means no limit.
func (p *parserInput) span(limit int, valid func(byte) bool) string {
	start := p.pos
	for p.pos < len(p.s) && (limit < 0 || p.pos-start < limit) && valid(p.s[p.pos]) {
		p.pos++
	}
	return p.s[start:p.pos]
}

// asStr returns the unread portion of the input string.
func (p *parserInput) asStr() string {
	return p.s[p.pos:]
}

// excluding returns a predicate accepting every byte not in set.
func excluding(set string) func(byte) bool {
	return func(c byte) bool {
		return strings.IndexByte(set, c) < 0
	}
}
