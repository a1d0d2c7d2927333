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

import (
	"runtime"
	"strings"
)

const (
	// schemeLookahead is how far into the URL a ':' is searched for before
	// deciding that there is no scheme.
	schemeLookahead = 16
	// maxSchemeLength is the longest scheme token the splitter accepts.
	maxSchemeLength = schemeLookahead - 1
	// maxSlashes is the number of slashes accepted after "scheme:".
	maxSlashes = 3
	fileScheme = "file"
)

// urlParser holds the state of a single parse. The handle under
// construction is only handed out once every step succeeded.
type urlParser struct {
	raw   string
	flags Flags
	reg   Registry
	u     URL
}

// genericURL is the result of splitting scheme://host[/path].
type genericURL struct {
	scheme string
	host   string
	rest   string
	// matched counts the leading tokens found, in order: scheme, slashes,
	// host, rest.
	matched int
}

// splitGeneric splits a URL of the form scheme:/{1,3}host[rest] with a
// bounded scan for the scheme token.
func splitGeneric(url string) genericURL {
	var g genericURL
	in := newParserInput(url)

	g.scheme = in.span(maxSchemeLength, excluding("/:"))
	if g.scheme == "" || !in.consume(':') {
		if g.scheme != "" {
			g.matched = 1
		}
		return g
	}
	g.matched = 1

	if in.span(maxSlashes, func(c byte) bool { return c == '/' }) == "" {
		return g
	}
	g.matched = 2

	g.host = in.span(-1, excluding("/?#"))
	if g.host == "" {
		return g
	}
	g.matched = 3

	g.rest = in.asStr()
	if g.rest != "" {
		g.matched = 4
	}
	return g
}

// splitNoScheme splits a URL of the form host[rest].
func splitNoScheme(url string) (string, string) {
	in := newParserInput(url)
	host := in.span(-1, excluding("/?#"))
	return host, in.asStr()
}

// hasScheme reports whether a ':' appears within the lookahead window
// before any '/'.
func hasScheme(url string) bool {
	for i := 0; i < schemeLookahead && i < len(url); i++ {
		switch url[i] {
		case '/':
			return false
		case ':':
			return true
		}
	}
	return false
}

// parse runs every step and fills p.u.
func (p *urlParser) parse() error {
	url := p.raw
	if strings.HasPrefix(url, ":") {
		return malformed("URL starts with a colon", "")
	}
	if strings.IndexByte(url, '\n') >= 0 {
		return malformed("Newline in URL", "")
	}

	var hostname, path string
	var isFile bool
	var err error
	if hasScheme(url) && len(url) >= len("file:") && strings.EqualFold(url[:len("file:")], "file:") {
		isFile = true
		if path, err = parseFilePath(url[len("file:"):]); err != nil {
			return err
		}
		p.u.scheme = some(fileScheme)
	} else if hostname, path, err = p.parseGeneric(url); err != nil {
		return err
	}

	path, query, fragment := splitQueryFragment(path)
	p.u.query = nonEmpty(query)
	p.u.fragment = nonEmpty(fragment)
	p.u.path = some(p.normalizePath(path))

	if isFile {
		return nil
	}

	if hostname, err = p.parseHostnameLogin(hostname); err != nil {
		return err
	}
	if hostname, err = p.parsePort(hostname); err != nil {
		return err
	}
	if err = checkHostname(hostname); err != nil {
		return err
	}
	p.u.host = some(hostname)
	return nil
}

// parseGeneric splits a non-file URL and validates its scheme. It falls
// back to host[/path] with the default scheme when DefaultScheme is set.
func (p *urlParser) parseGeneric(url string) (string, string, error) {
	g := splitGeneric(url)
	scheme, hostname, path := g.scheme, g.host, g.rest

	switch {
	case g.matched == 2:
		return "", "", malformed("No host name after the scheme", url)
	case g.matched < 2:
		if p.flags&DefaultScheme == 0 {
			return "", "", malformed("No scheme", url)
		}
		hostname, path = splitNoScheme(url)
		if hostname == "" {
			return "", "", malformed("No host name", url)
		}
		scheme = defaultScheme
	}

	if err := p.checkScheme(scheme); err != nil {
		return "", "", err
	}
	p.u.scheme = some(strings.ToLower(scheme))
	return hostname, path, nil
}

// checkScheme validates a scheme against the registry, or only its syntax
// when AllowUnknownScheme is set.
func (p *urlParser) checkScheme(scheme string) error {
	if _, ok := p.reg.DefaultPort(scheme); ok {
		return nil
	}
	if p.flags&AllowUnknownScheme == 0 {
		return &kindError{kind: ErrUnsupportedScheme, message: "Unsupported scheme", details: scheme}
	}
	if !validScheme(scheme) {
		return malformed("Invalid scheme", scheme)
	}
	return nil
}

// parseFilePath extracts the path of a file: URL. An authority is only
// accepted when it is empty, "localhost" or "127.0.0.1".
func parseFilePath(path string) (string, error) {
	if path == "" {
		return "", malformed("Empty file URL", "")
	}

	if strings.HasPrefix(path, "//") {
		ptr := path[len("//"):]
		if !startsWithDrivePrefix(ptr) {
			authority := ptr
			if i := strings.IndexByte(ptr, '/'); i >= 0 {
				authority = ptr[:i]
			}
			if authority != "" && !strings.EqualFold(authority, "localhost") && authority != "127.0.0.1" {
				return "", malformed("Invalid file URL host", authority)
			}
			ptr = ptr[len(authority):]
		}
		path = ptr
	}

	hasDrive := startsWithDrivePrefix(path) ||
		(strings.HasPrefix(path, "/") && startsWithDrivePrefix(path[1:]))
	if hasDrive {
		if runtime.GOOS != "windows" {
			return "", malformed("Drive letter in file URL", path)
		}
		path = strings.TrimPrefix(path, "/")
	}
	return path, nil
}

// splitQueryFragment cuts the query at the first '?' of path, then the
// fragment at the first '#' of the query, or of the path when there is no
// query. Both delimiters are dropped.
func splitQueryFragment(path string) (string, string, string) {
	var query, fragment string
	hasQuery := false
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, query = path[:i], path[i+1:]
		hasQuery = true
	}
	if hasQuery {
		if i := strings.IndexByte(query, '#'); i >= 0 {
			query, fragment = query[:i], query[i+1:]
		}
	} else if i := strings.IndexByte(path, '#'); i >= 0 {
		path, fragment = path[:i], path[i+1:]
	}
	return path, query, fragment
}

// normalizePath makes sure the path starts with a slash and removes its
// dot segments unless PathAsIs is set.
func (p *urlParser) normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if path[0] != '/' {
		path = "/" + path
	}
	if p.flags&PathAsIs != 0 {
		return path
	}
	return removeDotSegments(path)
}
