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

// isASCIILetter checks if a byte is an ASCII letter.
func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// isASCIIDigit checks if a byte is an ASCII digit.
func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// isASCIIHexDigit checks if a byte is an ASCII hexadecimal digit.
func isASCIIHexDigit(c byte) bool {
	return isASCIIDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isControl(c byte) bool { return c < 0x20 || c == 0x7F }

func isSpace(c byte) bool { return c == ' ' || ('\t' <= c && c <= '\r') }

func isGraphic(c byte) bool { return 0x20 < c && c < 0x7F }

// needsEscaping decides, independently of any encoding, whether a byte of
// a URL must be percent-encoded. Only bytes outside the ASCII control,
// whitespace and graphic classes do.
func needsEscaping(c byte) bool {
	return !isControl(c) && !isSpace(c) && !isGraphic(c)
}

// isHostNameChar reports whether c may appear in a registered host name.
func isHostNameChar(c byte) bool {
	return isASCIILetter(c) || isASCIIDigit(c) || c == '-' || c == '.'
}

// isIPLiteralChar reports whether c may appear between the brackets of an
// IPv6 literal.
func isIPLiteralChar(c byte) bool {
	return isASCIIHexDigit(c) || c == ':' || c == '.'
}

// isSchemeChar reports whether c may follow the first letter of a scheme.
func isSchemeChar(c byte) bool {
	return isASCIILetter(c) || isASCIIDigit(c) || c == '+' || c == '-' || c == '.'
}

// validScheme checks the RFC 3986 scheme syntax.
func validScheme(s string) bool {
	if s == "" || !isASCIILetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isSchemeChar(s[i]) {
			return false
		}
	}
	return true
}

// startsWithDrivePrefix reports whether s starts with an MS-DOS style
// drive letter ("c:" or "c|") followed by a slash, a backslash or the end.
func startsWithDrivePrefix(s string) bool {
	if len(s) < 2 || !isASCIILetter(s[0]) || (s[1] != ':' && s[1] != '|') {
		return false
	}
	return len(s) == 2 || s[2] == '/' || s[2] == '\\'
}
