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

package scheme

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxPort is the largest Default-Port value accepted.
const maxPort = 0xFFFF

// recordJar reads a record-jar file line by line. Fields of the record
// being read are kept by lowercase name until its "%%" terminator.
type recordJar struct {
	reg    *Registry
	fields map[string][]string
	last   string
	line   int
}

func newRecordJar() *recordJar {
	return &recordJar{
		reg:    &Registry{Records: make(map[string]Record)},
		fields: make(map[string][]string),
	}
}

// feed consumes one line of the file.
func (j *recordJar) feed(line string) error {
	j.line++
	switch {
	case line == "%%":
		return j.end()
	case strings.TrimSpace(line) == "", strings.HasPrefix(line, "#"):
		return nil
	case line[0] == ' ' || line[0] == '\t':
		j.fold(strings.TrimSpace(line))
		return nil
	}

	name, body, ok := strings.Cut(line, ":")
	if !ok {
		return fmt.Errorf("scheme: line %d: expected \"Field: value\", got %q", j.line, line)
	}
	name = strings.ToLower(strings.TrimSpace(name))
	body = strings.TrimSpace(body)

	// File-Date only counts before the first record.
	if name == "file-date" && len(j.reg.Records) == 0 {
		j.reg.FileDate = body
		return nil
	}
	j.fields[name] = append(j.fields[name], body)
	j.last = name
	return nil
}

// fold appends a continuation line to the last value read.
func (j *recordJar) fold(text string) {
	values := j.fields[j.last]
	if len(values) == 0 {
		return
	}
	values[len(values)-1] += " " + text
}

// end stores the record being read, if any, and starts a new one.
func (j *recordJar) end() error {
	fields := j.fields
	j.fields = make(map[string][]string)
	j.last = ""
	if len(fields) == 0 {
		return nil
	}

	rec, err := toRecord(fields)
	if err != nil {
		return fmt.Errorf("scheme: record ending on line %d: %w", j.line, err)
	}
	return j.reg.add(rec)
}

// ParseRegistry reads a scheme registry from r. The file is a sequence of
// "Field: value" records separated by "%%" lines. Lines starting with '#'
// are comments and lines starting with a blank continue the previous value.
func ParseRegistry(r io.Reader) (*Registry, error) {
	j := newRecordJar()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := j.feed(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scheme: read registry: %w", err)
	}
	if err := j.end(); err != nil {
		return nil, err
	}
	return j.reg, nil
}

// add stores rec under its name and every alias.
func (r *Registry) add(rec Record) error {
	for _, name := range append([]string{rec.Name}, rec.Aliases...) {
		key := strings.ToLower(name)
		if _, dup := r.Records[key]; dup {
			return fmt.Errorf("scheme: duplicate scheme %q", name)
		}
		r.Records[key] = rec
	}
	return nil
}

// toRecord converts the fields of one record. Scheme is required and
// Default-Port must be in [0, 65535].
func toRecord(fields map[string][]string) (Record, error) {
	first := func(key string) string {
		if v := fields[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	rec := Record{
		Name:        first("scheme"),
		Description: fields["description"],
		Aliases:     fields["alias"],
	}
	if rec.Name == "" {
		return Record{}, fmt.Errorf("missing Scheme field")
	}
	if port := first("default-port"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 0 || n > maxPort {
			return Record{}, fmt.Errorf("invalid Default-Port %q for scheme %q", port, rec.Name)
		}
		rec.DefaultPort = n
	}
	return rec, nil
}
