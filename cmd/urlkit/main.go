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

// Command urlkit parses, modifies and resolves URLs from the command line
// and harvests the links of HTML documents.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tj/kingpin"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		cancel()
		os.Exit(1)
	}
}

// run parses args and executes the selected command. Errors are logged to
// stderr before being returned.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	app := kingpin.New("urlkit", "Parse, modify and resolve URLs.")
	c := newCLI(app)

	command, err := app.Parse(args)
	if err != nil {
		newLogger(stderr, false).Error("invalid command line", "error", err)
		return err
	}

	c.logger = newLogger(stderr, c.verbose)
	c.stdin = stdin
	c.stdout = stdout

	if err := c.dispatch(ctx, command); err != nil {
		c.logger.Error("command failed", "command", command, "error", err)
		return err
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
