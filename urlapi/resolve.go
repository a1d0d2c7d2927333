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

// maxAbsoluteSchemeLength bounds the scheme token of an absolute URL.
const maxAbsoluteSchemeLength = 15

// IsAbsoluteURL reports whether url starts with scheme:// followed by at
// least one more byte.
func IsAbsoluteURL(url string) bool {
	n := 0
	for n < len(url) && n < maxAbsoluteSchemeLength && strings.IndexByte("?&/:", url[n]) < 0 {
		n++
	}
	return n > 0 && strings.HasPrefix(url[n:], "://") && len(url) > n+len("://")
}

// stripFragment removes the fragment of an absolute URL string. The '#'
// is searched after the query start, matching how the parser finds it.
func stripFragment(url string) string {
	from := 0
	if q := strings.IndexByte(url, '?'); q >= 0 {
		from = q
	}
	if i := strings.IndexByte(url[from:], '#'); i >= 0 {
		return url[:from+i]
	}
	return url
}

// concatURL merges the relative reference rel into the absolute URL base
// and returns the new absolute URL. Spaces in rel are encoded as %20 left
// of its '?' and as '+' right of it, bytes above 0x7F as %XX.
//
// The merge works on the raw string: it is lenient with URLs such as
// "http://host?dir=/a" where a '?' precedes the first path slash.
func concatURL(base, rel string) string {
	base = stripFragment(base)

	// protsep is where the host name starts.
	protsep := 0
	if i := strings.Index(base, "//"); i >= 0 {
		protsep = i + len("//")
	}

	end := len(base)
	useurl := rel
	hostChanged := false
	// sep is the position after which nothing of the base path remains
	// when end reaches it; -1 when the base has no such position.
	sep := protsep

	switch {
	case strings.HasPrefix(rel, "//"):
		// Only the scheme of the base is kept.
		end = protsep
		useurl = rel[len("//"):]
		hostChanged = true

	case strings.HasPrefix(rel, "/"):
		// A new absolute path on the same host. A '?' before the first
		// slash after the host ends the host part too.
		slash := strings.IndexByte(base[protsep:], '/')
		query := strings.IndexByte(base[protsep:], '?')
		switch {
		case slash >= 0 && query >= 0 && query < slash:
			end = protsep + query
		case slash >= 0:
			end = protsep + slash
		case query >= 0:
			end = protsep + query
		}

	default:
		if i := strings.IndexByte(base[protsep:end], '?'); i >= 0 {
			end = protsep + i
		}
		// A query-only reference is appended to the whole path, anything
		// else replaces the last segment.
		if !strings.HasPrefix(useurl, "?") {
			if i := strings.LastIndexByte(base[protsep:end], '/'); i >= 0 {
				end = protsep + i
			}
		}

		sep = -1
		if i := strings.IndexByte(base[protsep:end], '/'); i >= 0 {
			sep = protsep + i + 1
		}

		useurl = strings.TrimPrefix(useurl, "./")
		level := 0
		for strings.HasPrefix(useurl, "../") {
			level++
			useurl = useurl[len("../"):]
		}

		if sep >= 0 {
			for ; level > 0; level-- {
				i := strings.LastIndexByte(base[sep:end], '/')
				if i < 0 {
					end = sep
					break
				}
				end = sep + i
			}
		}
	}

	relative := !hostChanged
	needSlash := !strings.HasPrefix(useurl, "/") &&
		!strings.HasPrefix(useurl, "?") &&
		(sep < 0 || end != sep)

	var b strings.Builder
	b.Grow(end + 1 + EscapedLen(useurl, relative))
	b.WriteString(base[:end])
	if needSlash {
		b.WriteByte('/')
	}
	EscapeTo(&b, useurl, relative)
	return b.String()
}
