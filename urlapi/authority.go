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
	"strconv"
	"strings"
)

const (
	maxPort = 0xFFFF
	// maxIPLiteralLength bounds the text between the brackets of an IPv6
	// literal.
	maxIPLiteralLength = 45
)

// parseHostnameLogin strips the login data from the host token. Everything
// before the last '@' is the login.
func (p *urlParser) parseHostnameLogin(hostname string) (string, error) {
	at := strings.LastIndexByte(hostname, '@')
	if at < 0 {
		return hostname, nil
	}

	creds, err := splitLogin(hostname[:at])
	if err != nil {
		return "", err
	}
	if creds.user.set && p.flags&DisallowUser != 0 {
		return "", &kindError{kind: ErrUserNotAllowed, message: "User name not allowed", details: creds.user.value}
	}

	p.u.user = creds.user
	p.u.password = creds.password
	p.u.options = creds.options
	return hostname[at+1:], nil
}

// splitHostPort separates the port from hostport. For a bracketed IPv6
// literal the port may only follow the closing bracket. hasPort is false
// when there is no colon or nothing after it.
func splitHostPort(hostport string) (host, port string, hasPort bool, err error) {
	if strings.HasPrefix(hostport, "[") {
		end := strings.IndexByte(hostport, ']')
		if end < 0 {
			return "", "", false, malformed("Invalid host IP: unterminated IPv6 literal", hostport)
		}
		host, rest := hostport[:end+1], hostport[end+1:]
		if rest == "" {
			return host, "", false, nil
		}
		if rest[0] != ':' {
			return "", "", false, malformed("Invalid characters after IPv6 literal", rest)
		}
		return host, rest[1:], len(rest) > 1, nil
	}

	colon := strings.IndexByte(hostport, ':')
	if colon < 0 {
		return hostport, "", false, nil
	}
	return hostport[:colon], hostport[colon+1:], colon+1 < len(hostport), nil
}

// parsePortNumber validates a decimal port in [1, 65535].
func parsePortNumber(port string) (int, error) {
	if port == "" {
		return 0, &kindError{kind: ErrBadPortNumber, message: "Empty port"}
	}
	for i := 0; i < len(port); i++ {
		if !isASCIIDigit(port[i]) {
			return 0, &kindError{kind: ErrBadPortNumber, message: "Invalid port character", char: port[i]}
		}
	}
	n, err := strconv.ParseUint(port, 10, 32)
	if err != nil || n == 0 || n > maxPort {
		return 0, &kindError{kind: ErrBadPortNumber, message: "Port out of range", details: port}
	}
	return int(n), nil
}

// parsePort strips the port from hostname and stores its canonical form.
// A colon without digits is ignored, as browsers do.
func (p *urlParser) parsePort(hostname string) (string, error) {
	host, port, hasPort, err := splitHostPort(hostname)
	if err != nil {
		return "", err
	}
	if !hasPort {
		return host, nil
	}

	n, err := parsePortNumber(port)
	if err != nil {
		return "", err
	}
	p.u.port = some(strconv.Itoa(n))
	p.u.portnum = n
	return host, nil
}

// checkHostname validates the host against the accepted character set.
// An IPv6 literal is checked between its brackets.
func checkHostname(host string) error {
	if strings.HasPrefix(host, "[") {
		if len(host) < 2 || !strings.HasSuffix(host, "]") {
			return malformed("Invalid host IP: unterminated IPv6 literal", host)
		}
		literal := host[1 : len(host)-1]
		if literal == "" || len(literal) > maxIPLiteralLength {
			return malformed("Invalid host IP", host)
		}
		for i := 0; i < len(literal); i++ {
			if !isIPLiteralChar(literal[i]) {
				return &kindError{kind: ErrMalformedInput, message: "Invalid character in IPv6 literal", char: literal[i]}
			}
		}
		return nil
	}

	for i := 0; i < len(host); i++ {
		if !isHostNameChar(host[i]) {
			return &kindError{kind: ErrMalformedInput, message: "Invalid character in host", char: host[i]}
		}
	}
	return nil
}
