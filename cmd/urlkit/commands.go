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

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/tj/kingpin"
	"golang.org/x/sync/errgroup"

	"github.com/jplu/urlkit/internal/links"
	"github.com/jplu/urlkit/urlapi"
)

const (
	dedupeCapacity = 1 << 16
	dedupeFalsePos = 0.0001
)

// stdinName names standard input among the documents of the links command.
const stdinName = "-"

// cli holds the values bound to the command line.
type cli struct {
	verbose bool

	defaultScheme bool
	anyScheme     bool
	pathAsIs      bool
	noUser        bool
	defaultPort   bool
	noDefaultPort bool

	rawURL   string
	part     string
	asJSON   bool
	sets     []string
	refs     []string
	base     string
	match    string
	unique   bool
	selector string
	files    []string
	useStdin bool

	parseCmd   *kingpin.Cmd
	getCmd     *kingpin.Cmd
	setCmd     *kingpin.Cmd
	resolveCmd *kingpin.Cmd
	linksCmd   *kingpin.Cmd

	logger *slog.Logger
	stdin  io.Reader
	stdout io.Writer
}

func newCLI(app *kingpin.Application) *cli {
	c := &cli{}

	app.Flag("verbose", "Log debug messages.").Short('v').BoolVar(&c.verbose)
	app.Flag("default-scheme", "Accept URLs without a scheme, using https.").BoolVar(&c.defaultScheme)
	app.Flag("any-scheme", "Accept schemes missing from the registry.").BoolVar(&c.anyScheme)
	app.Flag("path-as-is", "Keep dot segments in paths.").BoolVar(&c.pathAsIs)
	app.Flag("no-user", "Reject URLs carrying a user name.").BoolVar(&c.noUser)
	app.Flag("default-port", "Print the scheme's default port when none is set.").BoolVar(&c.defaultPort)
	app.Flag("no-default-port", "Hide a port equal to the scheme's default.").BoolVar(&c.noDefaultPort)

	c.parseCmd = app.Command("parse", "Print every part of a URL.")
	c.parseCmd.Flag("json", "Print the parts as JSON.").BoolVar(&c.asJSON)
	c.parseCmd.Arg("url", "URL to parse.").Required().StringVar(&c.rawURL)

	c.getCmd = app.Command("get", "Print one part of a URL.")
	c.getCmd.Arg("url", "URL to parse.").Required().StringVar(&c.rawURL)
	c.getCmd.Arg("part", "Part to print: "+strings.Join(partNames(), ", ")+".").Required().StringVar(&c.part)

	c.setCmd = app.Command("set", "Change parts of a URL and print the result.")
	c.setCmd.Arg("url", "URL to modify.").Required().StringVar(&c.rawURL)
	c.setCmd.Arg("assignments", "PART=VALUE pairs applied in order.").Required().StringsVar(&c.sets)

	c.resolveCmd = app.Command("resolve", "Resolve references against a base URL.")
	c.resolveCmd.Arg("base", "Base URL.").Required().StringVar(&c.rawURL)
	c.resolveCmd.Arg("refs", "References to resolve.").Required().StringsVar(&c.refs)

	c.linksCmd = app.Command("links", "Print the resolved links of HTML documents.")
	c.linksCmd.Flag("base", "URL the documents were fetched from.").Required().StringVar(&c.base)
	c.linksCmd.Flag("match", "Only print URLs matching this glob pattern.").StringVar(&c.match)
	c.linksCmd.Flag("unique", "Print each URL once.").BoolVar(&c.unique)
	c.linksCmd.Flag("selector", "CSS selector of the elements to read.").Default(links.DefaultSelector).StringVar(&c.selector)
	c.linksCmd.Flag("stdin", "Also read a document from standard input.").BoolVar(&c.useStdin)
	c.linksCmd.Arg("files", "HTML files. Standard input is read when none is given.").StringsVar(&c.files)

	return c
}

func partNames() []string {
	names := make([]string, 0, len(urlapi.Parts)+1)
	names = append(names, urlapi.PartURL.String())
	for _, p := range urlapi.Parts {
		names = append(names, p.String())
	}
	return names
}

// flags returns the parser flags selected on the command line.
func (c *cli) flags() urlapi.Flags {
	var f urlapi.Flags
	if c.defaultScheme {
		f |= urlapi.DefaultScheme
	}
	if c.anyScheme {
		f |= urlapi.AllowUnknownScheme
	}
	if c.pathAsIs {
		f |= urlapi.PathAsIs
	}
	if c.noUser {
		f |= urlapi.DisallowUser
	}
	if c.defaultPort {
		f |= urlapi.DefaultPort
	}
	if c.noDefaultPort {
		f |= urlapi.NoDefaultPort
	}
	return f
}

func (c *cli) dispatch(ctx context.Context, command string) error {
	switch command {
	case c.parseCmd.FullCommand():
		return c.parse()
	case c.getCmd.FullCommand():
		return c.get()
	case c.setCmd.FullCommand():
		return c.set()
	case c.resolveCmd.FullCommand():
		return c.resolve()
	case c.linksCmd.FullCommand():
		return c.links(ctx)
	}
	return fmt.Errorf("unknown command %q", command)
}

func (c *cli) parse() error {
	u, err := urlapi.Parse(c.rawURL, c.flags())
	if err != nil {
		return err
	}

	parts := make(map[string]string, len(urlapi.Parts)+1)
	for _, p := range append([]urlapi.Part{urlapi.PartURL}, urlapi.Parts...) {
		v, err := u.Get(p, c.flags())
		switch {
		case errors.Is(err, urlapi.ErrMissingPart):
			continue
		case err != nil:
			return err
		}
		parts[p.String()] = v
	}

	if c.asJSON {
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(parts)
	}

	for _, p := range urlapi.Parts {
		v, ok := parts[p.String()]
		if !ok {
			v = "[missing]"
		}
		fmt.Fprintf(c.stdout, "%-9s %s\n", p.String()+":", v)
	}
	return nil
}

func (c *cli) get() error {
	part, ok := urlapi.PartByName(c.part)
	if !ok {
		return fmt.Errorf("unknown part %q", c.part)
	}
	u, err := urlapi.Parse(c.rawURL, c.flags())
	if err != nil {
		return err
	}
	v, err := u.Get(part, c.flags())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, v)
	return nil
}

func (c *cli) set() error {
	u, err := urlapi.Parse(c.rawURL, c.flags())
	if err != nil {
		return err
	}
	for _, assignment := range c.sets {
		name, value, ok := strings.Cut(assignment, "=")
		if !ok {
			return fmt.Errorf("assignment %q is not PART=VALUE", assignment)
		}
		part, ok := urlapi.PartByName(name)
		if !ok {
			return fmt.Errorf("unknown part %q", name)
		}
		if err := u.Set(part, value, c.flags()); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
		c.logger.Debug("part set", "part", name, "value", value)
	}
	return c.printURL(u)
}

func (c *cli) resolve() error {
	base, err := urlapi.Parse(c.rawURL, c.flags())
	if err != nil {
		return err
	}
	for _, ref := range c.refs {
		u, err := base.Dup()
		if err != nil {
			return err
		}
		if err := u.Set(urlapi.PartURL, ref, c.flags()); err != nil {
			return fmt.Errorf("resolve %q: %w", ref, err)
		}
		if err := c.printURL(u); err != nil {
			return err
		}
		u.Release()
	}
	return nil
}

func (c *cli) printURL(u *urlapi.URL) error {
	s, err := u.Get(urlapi.PartURL, c.flags())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, s)
	return nil
}

// links extracts the links of every file, and of standard input when
// asked or when no file is given, concurrently. They are printed in
// document order with standard input last.
func (c *cli) links(ctx context.Context) error {
	docs := append([]string(nil), c.files...)
	if c.useStdin || len(docs) == 0 {
		docs = append(docs, stdinName)
	}

	extractor, err := links.New(links.Config{
		Selector: c.selector,
		Match:    c.match,
		Flags:    c.flags(),
		Logger:   c.logger,
	})
	if err != nil {
		return err
	}

	results := make([][]links.Link, len(docs))
	eg, subctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, name := range docs {
		eg.Go(func() error {
			found, err := c.extractFile(subctx, extractor, name)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			c.logger.Debug("document processed", "file", name, "links", len(found))
			results[i] = found
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	var deduper *links.Deduper
	if c.unique {
		deduper = links.NewDeduper(dedupeCapacity, dedupeFalsePos)
	}
	for _, found := range results {
		if deduper != nil {
			found = deduper.Dedupe(found)
		}
		for _, l := range found {
			fmt.Fprintln(c.stdout, l.URL)
		}
	}
	return nil
}

func (c *cli) extractFile(ctx context.Context, e *links.Extractor, name string) ([]links.Link, error) {
	if name == stdinName {
		return e.Extract(ctx, c.base, c.stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return e.Extract(ctx, c.base, f)
}
