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

// field is an optional string component of a URL handle. A field can be
// set to the empty string, which differs from not being set at all.
type field struct {
	value string
	set   bool
}

func some(s string) field { return field{value: s, set: true} }

// nonEmpty returns a set field for a non-empty s and an unset one otherwise.
func nonEmpty(s string) field {
	if s == "" {
		return field{}
	}
	return some(s)
}

// credentials holds the parts of a login string.
type credentials struct {
	user     field
	password field
	options  field
}

// splitLogin splits a login string of the form user[:password][;options].
// The password starts at the first ':' and the options at the first ';',
// whichever comes first ends the user name. Empty parts are left unset.
func splitLogin(login string) (credentials, error) {
	for i := 0; i < len(login); i++ {
		if isControl(login[i]) {
			return credentials{}, &kindError{
				kind:    ErrMalformedInput,
				message: "Invalid control character in login",
				char:    login[i],
			}
		}
	}

	psep := strings.IndexByte(login, ':')
	osep := strings.IndexByte(login, ';')

	userEnd := len(login)
	if psep >= 0 && (osep < 0 || psep < osep) {
		userEnd = psep
	} else if osep >= 0 {
		userEnd = osep
	}

	var c credentials
	c.user = nonEmpty(login[:userEnd])
	if psep >= 0 {
		end := len(login)
		if osep > psep {
			end = osep
		}
		c.password = nonEmpty(login[psep+1 : end])
	}
	if osep >= 0 {
		end := len(login)
		if psep > osep {
			end = psep
		}
		c.options = nonEmpty(login[osep+1 : end])
	}
	return c, nil
}
