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

// extractFirstSegment splits off the first path segment of in, including
// its leading slash if any.
func extractFirstSegment(in string) (string, string) {
	from := 0
	if strings.HasPrefix(in, "/") {
		from = 1
	}
	i := strings.IndexByte(in[from:], '/')
	if i == -1 {
		return in, ""
	}
	return in[:from+i], in[from+i:]
}

// removeDotSegments implements RFC 3986, Section 5.2.4. The result for an
// already normalized path is the path itself, so applying it twice is the
// same as applying it once.
func removeDotSegments(input string) string {
	segments := make([]string, 0, strings.Count(input, "/")+1)
	in := input

	for len(in) > 0 {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = in[2:]
		case in == "/.":
			in = "/"
		case strings.HasPrefix(in, "/../"):
			in = in[3:]
			segments = dropLastSegment(segments)
		case in == "/..":
			in = "/"
			segments = dropLastSegment(segments)
		case in == "." || in == "..":
			in = ""
		default:
			var segment string
			segment, in = extractFirstSegment(in)
			segments = append(segments, segment)
		}
	}

	out := strings.Join(segments, "")
	if out == input {
		return input
	}
	return out
}

func dropLastSegment(segments []string) []string {
	if len(segments) == 0 {
		return segments
	}
	return segments[:len(segments)-1]
}
