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

const upperHex = "0123456789ABCDEF"

// findHostSep returns the index of the first '/' or '?' following the
// host name, or len(url) if there is none. The host name starts after the
// first "//", or at the beginning of url when there is no "//".
func findHostSep(url string) int {
	start := 0
	if i := strings.Index(url, "//"); i >= 0 {
		start = i + len("//")
	}
	if i := strings.IndexAny(url[start:], "/?"); i >= 0 {
		return start + i
	}
	return len(url)
}

// escapeURL writes url to out, escaping the bytes that need it.
//
// Everything before the host separator is copied verbatim so that
// internationalized host names keep their raw bytes. After it, a space
// becomes "%20" left of the first '?' and '+' right of it, and bytes
// outside printable ASCII, whitespace and controls become %XX. In relative
// mode the host separator is the start of url.
func escapeURL(url string, relative bool, out outputBuffer) {
	hostSep := 0
	if !relative {
		hostSep = findHostSep(url)
	}

	left := true
	for i := 0; i < len(url); i++ {
		c := url[i]
		if i < hostSep {
			out.writeByte(c)
			continue
		}
		switch {
		case c == ' ':
			if left {
				out.writeString("%20")
			} else {
				out.writeByte('+')
			}
		case needsEscaping(c):
			out.writeByte('%')
			out.writeByte(upperHex[c>>4])
			out.writeByte(upperHex[c&0x0F])
		default:
			if c == '?' {
				left = false
			}
			out.writeByte(c)
		}
	}
}

// EscapedLen returns the length of url once escaped by EscapeTo with the
// same relative mode.
func EscapedLen(url string, relative bool) int {
	var b countingBuffer
	escapeURL(url, relative, &b)
	return b.len()
}

// EscapeTo appends the escaped form of url to target. It writes exactly
// EscapedLen(url, relative) bytes.
func EscapeTo(target *strings.Builder, url string, relative bool) {
	escapeURL(url, relative, &builderBuffer{builder: target})
}

// Escape returns the escaped form of url.
func Escape(url string, relative bool) string {
	var b strings.Builder
	b.Grow(EscapedLen(url, relative))
	EscapeTo(&b, url, relative)
	return b.String()
}
