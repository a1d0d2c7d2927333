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

// Package links extracts the references of an HTML document and resolves
// them against the document URL with the urlapi redirect resolver.
package links

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/segmentio/agecache"
	"github.com/tidwall/match"
	"golang.org/x/net/html"

	"github.com/jplu/urlkit/urlapi"
)

// DefaultSelector selects the elements whose href or src is extracted.
const DefaultSelector = `a[href], area[href], link[href], img[src], script[src], iframe[src], source[src]`

const (
	defaultCacheSize = 1024
	defaultCacheTTL  = 10 * time.Minute
)

// baseSelector finds the <base> element that overrides the document URL.
var baseSelector = cascadia.MustCompile("base[href]")

// Link is a reference found in a document.
type Link struct {
	Tag  string `json:"tag"`
	Attr string `json:"attr"`
	Ref  string `json:"ref"`
	URL  string `json:"url"`
}

// Config configures an Extractor.
type Config struct {
	// Selector is a CSS selector, DefaultSelector when empty.
	Selector string

	// Match is a glob pattern resolved URLs must match, any URL when empty.
	Match string

	// Flags are passed to the parser when resolving references.
	Flags urlapi.Flags

	// CacheSize is the number of resolved references kept.
	CacheSize int

	// CacheTTL is how long a resolved reference is kept.
	CacheTTL time.Duration

	// Logger receives the references that could not be resolved.
	Logger *slog.Logger
}

// Extractor finds and resolves references. It is safe for concurrent use.
type Extractor struct {
	selector cascadia.Selector
	pattern  string
	flags    urlapi.Flags
	cache    *agecache.Cache
	logger   *slog.Logger
}

// New returns an extractor for cfg. It fails on an invalid selector.
func New(cfg Config) (*Extractor, error) {
	sel := cfg.Selector
	if sel == "" {
		sel = DefaultSelector
	}
	selector, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("links: compile selector %q - %w", sel, err)
	}

	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Extractor{
		selector: selector,
		pattern:  cfg.Match,
		flags:    cfg.Flags &^ urlapi.VerifyOnly,
		cache: agecache.New(agecache.Config{
			Capacity:           size,
			MaxAge:             ttl,
			ExpirationType:     agecache.PassiveExpration,
			ExpirationInterval: time.Minute,
		}),
		logger: logger,
	}, nil
}

// Extract parses the HTML document read from r and returns its references
// resolved against base, in document order. References that do not
// resolve, or whose URL does not match the pattern, are skipped.
//
// A <base href> element in the document replaces base.
func (e *Extractor) Extract(ctx context.Context, base string, r io.Reader) ([]Link, error) {
	baseURL, err := urlapi.Parse(base, e.flags)
	if err != nil {
		return nil, fmt.Errorf("links: parse base %q - %w", base, err)
	}

	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("links: parse html - %w", err)
	}

	if n := baseSelector.MatchFirst(root); n != nil {
		href, _ := attr(n, "href")
		if next, ok := e.resolve(baseURL, href); ok {
			if baseURL, err = urlapi.Parse(next, e.flags); err != nil {
				return nil, fmt.Errorf("links: parse base %q - %w", next, err)
			}
		}
	}

	var ret []Link
	for _, n := range e.selector.MatchAll(root) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		key, ref, ok := reference(n)
		if !ok {
			continue
		}
		resolved, ok := e.resolve(baseURL, ref)
		if !ok {
			continue
		}
		if e.pattern != "" && !match.Match(resolved, e.pattern) {
			continue
		}
		ret = append(ret, Link{Tag: n.Data, Attr: key, Ref: ref, URL: resolved})
	}
	return ret, nil
}

// resolve resolves ref against base. Results, failures included, are
// cached per base and reference.
func (e *Extractor) resolve(base *urlapi.URL, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") || hasOpaqueScheme(ref) {
		return "", false
	}

	baseStr := base.String()
	key := baseStr + "\x00" + ref
	if v, ok := e.cache.Get(key); ok {
		s := v.(string)
		return s, s != ""
	}

	resolved, err := e.resolveURL(base, ref)
	if err != nil {
		e.logger.Debug("skipping reference", "base", baseStr, "ref", ref, "error", err)
	}
	e.cache.Set(key, resolved)
	return resolved, resolved != ""
}

func (e *Extractor) resolveURL(base *urlapi.URL, ref string) (string, error) {
	u, err := base.Dup()
	if err != nil {
		return "", err
	}
	defer u.Release()

	if err := u.Set(urlapi.PartURL, ref, e.flags); err != nil {
		return "", err
	}
	return u.Get(urlapi.PartURL, 0)
}

// reference returns the attribute holding the reference of n.
func reference(n *html.Node) (string, string, bool) {
	for _, key := range []string{"href", "src"} {
		if v, ok := attr(n, key); ok {
			return key, v, true
		}
	}
	return "", "", false
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// hasOpaqueScheme reports whether ref starts with a scheme that is not
// followed by "//", such as mailto: or javascript:.
func hasOpaqueScheme(ref string) bool {
	i := strings.IndexByte(ref, ':')
	if i <= 0 || strings.HasPrefix(ref[i:], "://") {
		return false
	}
	for j := 0; j < i; j++ {
		c := ref[j]
		letter := ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
		if j == 0 && !letter {
			return false
		}
		if !letter && !('0' <= c && c <= '9') && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}
