// Command htmlwash washes untrusted HTML read from files or stdin and
// writes markup that is safe to embed in a page to stdout.
//
// Usage:
//
//	htmlwash [-render-unallowed] [-strip] [file ...]
//
// Whitelists and logging are configured through HTMLWASH_* environment
// variables or a .env file in the working directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/njchilds90/htmlwasher"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "htmlwash:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("htmlwash", flag.ContinueOnError)
	fs.SetOutput(stderr)
	render := fs.Bool("render-unallowed", cfg.RenderUnallowedTags, "write disallowed tags back as escaped text")
	strip := fs.Bool("strip", false, "remove all markup instead of washing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := newLogger(cfg, stderr)
	policy := cfg.Policy()
	policy.RenderUnallowedTags = *render
	w := htmlwasher.NewWasher(policy, htmlwasher.WithLogger(log))

	wash := func(name string, r io.Reader) error {
		var (
			out string
			err error
		)
		if *strip {
			b, err := io.ReadAll(r)
			if err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}
			out = htmlwasher.StripTags(string(b))
		} else {
			out, err = w.WashReader(r)
			if err != nil {
				return fmt.Errorf("wash %s: %w", name, err)
			}
		}
		log.LogAttrs(context.Background(), slog.LevelInfo, "input washed",
			slog.String("input", name),
			slog.Int("bytes", len(out)),
		)
		_, err = io.WriteString(stdout, out)
		return err
	}

	if fs.NArg() == 0 {
		return wash("stdin", stdin)
	}
	for _, name := range fs.Args() {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		err = wash(name, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
