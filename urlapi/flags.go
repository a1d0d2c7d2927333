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

// Flags alter how a URL is parsed, read or modified. Values are combined
// with a bitwise OR.
type Flags uint

const (
	// DefaultPort makes Get return the scheme's default port when no port
	// is stored.
	DefaultPort Flags = 1 << iota
	// NoDefaultPort makes Get act as if no port was stored when the stored
	// port equals the scheme's default.
	NoDefaultPort
	// DefaultScheme lets Parse accept a URL without a scheme, using
	// "https", and lets Get(PartURL) fall back to it.
	DefaultScheme
	// AllowUnknownScheme accepts schemes that are not in the registry.
	AllowUnknownScheme
	// VerifyOnly makes Parse validate the URL and discard the handle.
	VerifyOnly
	// PathAsIs disables dot-segment removal on the path.
	PathAsIs
	// DisallowUser rejects URLs carrying a user name.
	DisallowUser
)

// defaultScheme is used for URLs without a scheme when DefaultScheme is set.
const defaultScheme = "https"

// Part selects a component of a URL handle.
type Part int

const (
	// PartURL is the whole URL. Setting it with a relative reference
	// resolves that reference against the current contents.
	PartURL Part = iota
	PartScheme
	PartUser
	PartPassword
	PartOptions
	PartHost
	PartPort
	PartPath
	PartQuery
	PartFragment
)

// Parts lists the components in URL order, without PartURL.
var Parts = []Part{
	PartScheme, PartUser, PartPassword, PartOptions, PartHost,
	PartPort, PartPath, PartQuery, PartFragment,
}

var partNames = [...]string{
	PartURL:      "url",
	PartScheme:   "scheme",
	PartUser:     "user",
	PartPassword: "password",
	PartOptions:  "options",
	PartHost:     "host",
	PartPort:     "port",
	PartPath:     "path",
	PartQuery:    "query",
	PartFragment: "fragment",
}

// String returns the lowercase name of the part.
func (p Part) String() string {
	if p < 0 || int(p) >= len(partNames) {
		return "unknown"
	}
	return partNames[p]
}

// PartByName returns the part with the given name, as returned by String.
func PartByName(name string) (Part, bool) {
	for i, n := range partNames {
		if n == name {
			return Part(i), true
		}
	}
	return 0, false
}
