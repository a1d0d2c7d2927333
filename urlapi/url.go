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

// Package urlapi parses, inspects, modifies and serializes URLs.
//
// A raw URL string is split by Parse into its scheme, user, password,
// options, host, port, path, query and fragment. Each part is validated
// and the path is normalized. The resulting *URL can then be read part by
// part with Get, changed with Set, copied with Dup and turned back into a
// string with Get(PartURL, ...).
//
// Setting PartURL to a relative reference resolves it against the current
// URL, the way an HTTP client follows a relative redirect.
//
// The parser is deliberately lenient with legacy forms such as
// "http:/host" or "http://host?query" and does not aim at WHATWG
// compliance. It never performs I/O.
//
// A *URL is not safe for concurrent modification.
package urlapi

import (
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jplu/urlkit/scheme"
)

// Registry answers whether a scheme is known and what its default port
// is. A default port of 0 means the scheme has none.
type Registry interface {
	DefaultPort(name string) (int, bool)
}

// URL is a parsed URL handle. The zero value is an empty handle on which
// parts can be set one by one.
type URL struct {
	scheme   field
	user     field
	password field
	options  field
	host     field
	port     field
	path     field
	query    field
	fragment field
	portnum  int

	registry Registry
}

// New returns an empty handle using the default scheme registry.
func New() *URL {
	return &URL{registry: scheme.Default()}
}

// Parse parses rawURL with the default scheme registry.
//
// With VerifyOnly set, Parse returns a nil *URL and a nil error for a
// valid URL.
func Parse(rawURL string, flags Flags) (*URL, error) {
	return ParseWithRegistry(rawURL, flags, nil)
}

// ParseNormalized first normalizes rawURL to Unicode Normalization Form C
// and then parses it. Canonically equivalent paths, queries and fragments
// then give identical handles.
func ParseNormalized(rawURL string, flags Flags) (*URL, error) {
	return ParseWithRegistry(norm.NFC.String(rawURL), flags, nil)
}

// ParseWithRegistry parses rawURL and checks schemes against reg. A nil
// reg means the default registry.
func ParseWithRegistry(rawURL string, flags Flags, reg Registry) (*URL, error) {
	if reg == nil {
		reg = scheme.Default()
	}
	p := &urlParser{raw: rawURL, flags: flags, reg: reg}
	if err := p.parse(); err != nil {
		return nil, newParseError(err)
	}
	if flags&VerifyOnly != 0 {
		return nil, nil
	}
	u := &URL{}
	u.take(&p.u)
	u.registry = reg
	return u, nil
}

// take moves the contents of from into u and leaves from empty.
func (u *URL) take(from *URL) {
	reg := u.registry
	*u = *from
	*from = URL{}
	if u.registry == nil {
		u.registry = reg
	}
}

// reg returns the registry of the handle. It never modifies the handle so
// that concurrent readers stay safe.
func (u *URL) reg() Registry {
	if u.registry == nil {
		return scheme.Default()
	}
	return u.registry
}

// Release clears every part of the handle. It is safe to call on a nil or
// already released handle.
func (u *URL) Release() {
	if u == nil {
		return
	}
	*u = URL{}
}

// Dup returns an independent copy of the handle.
func (u *URL) Dup() (*URL, error) {
	if u == nil {
		return nil, ErrBadHandle
	}
	c := *u
	return &c, nil
}

// Equal reports whether both handles hold the same parts.
func (u *URL) Equal(o *URL) bool {
	if u == nil || o == nil {
		return u == o
	}
	return u.scheme == o.scheme && u.user == o.user && u.password == o.password &&
		u.options == o.options && u.host == o.host && u.port == o.port &&
		u.portnum == o.portnum && u.path == o.path && u.query == o.query &&
		u.fragment == o.fragment
}

// fieldOf returns a pointer to the storage of a simple part.
func (u *URL) fieldOf(part Part) *field {
	switch part {
	case PartScheme:
		return &u.scheme
	case PartUser:
		return &u.user
	case PartPassword:
		return &u.password
	case PartOptions:
		return &u.options
	case PartHost:
		return &u.host
	case PartPort:
		return &u.port
	case PartPath:
		return &u.path
	case PartQuery:
		return &u.query
	case PartFragment:
		return &u.fragment
	}
	return nil
}

// effectivePort applies DefaultPort and NoDefaultPort to the stored port
// for the given scheme.
func (u *URL) effectivePort(schemeName string, schemeSet bool, flags Flags) (string, bool) {
	if !schemeSet {
		return u.port.value, u.port.set
	}
	def, known := u.reg().DefaultPort(schemeName)
	switch {
	case !u.port.set && flags&DefaultPort != 0 && known && def > 0:
		return strconv.Itoa(def), true
	case u.port.set && flags&NoDefaultPort != 0 && known && def == u.portnum:
		return "", false
	}
	return u.port.value, u.port.set
}

// Get returns a copy of the requested part.
//
// For PartPort, DefaultPort returns the scheme's default port when none is
// stored and NoDefaultPort hides a stored port equal to that default. For
// PartURL the same port rules apply, and DefaultScheme makes a handle
// without scheme use "https". PartURL requires a host.
func (u *URL) Get(part Part, flags Flags) (string, error) {
	var b strings.Builder
	if err := u.GetTo(part, &b, flags); err != nil {
		return "", err
	}
	return b.String(), nil
}

// GetTo writes the requested part into target, avoiding the copy made by
// Get. Nothing is written on error.
func (u *URL) GetTo(part Part, target *strings.Builder, flags Flags) error {
	if u == nil {
		return ErrBadHandle
	}
	if target == nil {
		return ErrBadPartPointer
	}

	switch part {
	case PartURL:
		return u.writeURL(target, flags)
	case PartPort:
		port, ok := u.effectivePort(u.scheme.value, u.scheme.set, flags)
		if !ok {
			return &MissingPartError{Part: PartPort}
		}
		target.WriteString(port)
		return nil
	}

	f := u.fieldOf(part)
	if f == nil {
		return newParseError(ErrUnknownPart)
	}
	if !f.set {
		return &MissingPartError{Part: part}
	}
	target.WriteString(f.value)
	return nil
}

// writeURL serializes the handle as
// scheme://[user[:password]@]host[:port]path[?query][#fragment].
func (u *URL) writeURL(b *strings.Builder, flags Flags) error {
	if !u.host.set {
		return &MissingPartError{Part: PartHost}
	}
	schemeName := u.scheme.value
	if !u.scheme.set {
		if flags&DefaultScheme == 0 {
			return &MissingPartError{Part: PartScheme}
		}
		schemeName = defaultScheme
	}
	port, hasPort := u.effectivePort(schemeName, true, flags)

	b.WriteString(schemeName)
	b.WriteString("://")
	b.WriteString(u.user.value)
	if u.password.set {
		b.WriteByte(':')
		b.WriteString(u.password.value)
	}
	if u.user.set || u.password.set {
		b.WriteByte('@')
	}
	b.WriteString(u.host.value)
	if hasPort {
		b.WriteByte(':')
		b.WriteString(port)
	}
	if u.path.set {
		b.WriteString(u.path.value)
	} else {
		b.WriteByte('/')
	}
	if u.query.set {
		b.WriteByte('?')
		b.WriteString(u.query.value)
	}
	if u.fragment.set {
		b.WriteByte('#')
		b.WriteString(u.fragment.value)
	}
	return nil
}

// Set replaces one part of the handle. On error the handle is unchanged.
//
// A scheme must be known to the registry unless AllowUnknownScheme is set,
// a port must be a decimal number in [1, 65535] and a host must only hold
// host name characters or a bracketed IPv6 literal. A path not starting
// with '/' gets one.
//
// For PartURL, an absolute URL replaces the whole handle. Any other value
// is resolved as a reference relative to the current URL, and the result
// replaces the handle.
func (u *URL) Set(part Part, value string, flags Flags) error {
	if u == nil {
		return ErrBadHandle
	}

	switch part {
	case PartURL:
		return u.setURL(value, flags)
	case PartScheme:
		if _, known := u.reg().DefaultPort(value); !known {
			if flags&AllowUnknownScheme == 0 {
				return newParseError(&kindError{kind: ErrUnsupportedScheme, message: "Unsupported scheme", details: value})
			}
			if !validScheme(value) {
				return newParseError(malformed("Invalid scheme", value))
			}
		}
		u.scheme = some(strings.ToLower(value))
		return nil
	case PartPort:
		n, err := parsePortNumber(value)
		if err != nil {
			return newParseError(err)
		}
		u.port = some(strconv.Itoa(n))
		u.portnum = n
		return nil
	case PartHost:
		if err := checkHostname(value); err != nil {
			return newParseError(err)
		}
	case PartPath:
		if !strings.HasPrefix(value, "/") {
			value = "/" + value
		}
	}

	f := u.fieldOf(part)
	if f == nil {
		return newParseError(ErrUnknownPart)
	}
	*f = some(value)
	return nil
}

// setURL replaces the whole handle, resolving value against the current
// URL when it is not absolute.
func (u *URL) setURL(value string, flags Flags) error {
	flags &^= VerifyOnly

	if !IsAbsoluteURL(value) {
		old, err := u.Get(PartURL, flags)
		if err != nil {
			return err
		}
		value = concatURL(old, value)
	}

	next, err := ParseWithRegistry(value, flags, u.reg())
	if err != nil {
		return err
	}
	u.take(next)
	return nil
}

// Clear removes a part from the handle. Clearing PartURL empties the whole
// handle and clearing the path restores "/".
func (u *URL) Clear(part Part) error {
	if u == nil {
		return ErrBadHandle
	}
	switch part {
	case PartURL:
		reg := u.registry
		*u = URL{registry: reg}
		return nil
	case PartPort:
		u.portnum = 0
	case PartPath:
		u.path = some("/")
		return nil
	}
	f := u.fieldOf(part)
	if f == nil {
		return newParseError(ErrUnknownPart)
	}
	*f = field{}
	return nil
}

// String returns the whole URL, or an empty string if the handle cannot
// be serialized.
func (u *URL) String() string {
	s, err := u.Get(PartURL, 0)
	if err != nil {
		return ""
	}
	return s
}

// MarshalJSON implements the json.Marshaler interface, encoding the URL as
// a JSON string.
func (u *URL) MarshalJSON() ([]byte, error) {
	s, err := u.Get(PartURL, 0)
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// UnmarshalJSON implements the json.Unmarshaler interface. It parses the
// JSON string with no flags.
func (u *URL) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s, 0)
	if err != nil {
		return err
	}
	u.take(parsed)
	return nil
}
