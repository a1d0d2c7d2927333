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

// outputBuffer receives the bytes produced by the encoder. The counting
// implementation only sizes the output, the builder one produces it, so
// both go through the exact same escaping decisions.
type outputBuffer interface {
	// writeByte appends a single byte to the buffer.
	writeByte(c byte)
	// writeString appends a string to the buffer.
	writeString(s string)
	// len returns the number of bytes currently in the buffer.
	len() int
}

// countingBuffer discards all writes and only tracks the length of the
// would-be output.
type countingBuffer struct {
	length int
}

func (b *countingBuffer) writeByte(byte) { b.length++ }

func (b *countingBuffer) writeString(s string) { b.length += len(s) }

func (b *countingBuffer) len() int { return b.length }

// builderBuffer writes into a strings.Builder.
type builderBuffer struct {
	builder *strings.Builder
}

func (b *builderBuffer) writeByte(c byte) { b.builder.WriteByte(c) }

func (b *builderBuffer) writeString(s string) { b.builder.WriteString(s) }

func (b *builderBuffer) len() int { return b.builder.Len() }
