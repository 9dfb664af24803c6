package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jscard"
	"jscard/internal/convert"
	"jscard/internal/diagnostic"
	"jscard/internal/group"
	"jscard/internal/jscontact"
	"jscard/internal/localize"
	"jscard/internal/wire"
)

var severityColors = map[diagnostic.Severity]*color.Color{
	diagnostic.SeverityError:   color.New(color.FgRed, color.Bold),
	diagnostic.SeverityWarning: color.New(color.FgYellow),
	diagnostic.SeverityInfo:    color.New(color.FgCyan),
}

func runConvert(cmd *cobra.Command, args []string) error {
	var recs []wire.Record

	err := eachInput(args, func(name string, r io.Reader) error {
		decoded, err := wire.Decode(r)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		recs = append(recs, decoded...)

		return nil
	})
	if err != nil {
		return err
	}

	converted := 0

	entries, err := jscard.ToStructuredBatch(cmd.Context(), recs, cfg, jscard.WithResults(func(res convert.Result) {
		converted++

		if !quiet {
			printDiagnostics(os.Stderr, res.Diagnostics.All())
		}
	}))

	var batchErr *convert.BatchError
	if err != nil && !errors.As(err, &batchErr) {
		return err
	}

	out, err := flatten(entries)
	if err != nil {
		return err
	}

	if dump {
		spew.Fdump(os.Stderr, entries)
	}

	log.Infof("converted %d of %d records into %d top-level entries", converted, len(recs), len(entries))

	if err := writeOutput(func(w io.Writer) error { return writeJSON(w, out) }); err != nil {
		return err
	}

	if batchErr != nil {
		return batchErr
	}

	return nil
}

// flatten lists every top-level card followed by the resolved members of
// each group, so that the output can be exported again. The --lang option
// is applied here.
func flatten(entries []group.Entry) ([]*jscontact.Card, error) {
	var out []*jscontact.Card

	seen := make(map[string]bool)
	add := func(c *jscontact.Card) error {
		if seen[c.UID] {
			return nil
		}

		seen[c.UID] = true

		if language != "" {
			localized, err := localize.Apply(c, language)
			if err != nil {
				return err
			}

			c = localized
		}

		out = append(out, c)

		return nil
	}

	for _, e := range entries {
		if e.Group == nil {
			if err := add(e.Card); err != nil {
				return nil, err
			}

			continue
		}

		if err := add(e.Group.Card); err != nil {
			return nil, err
		}

		for _, m := range e.Group.Members {
			if m.Placeholder {
				continue
			}

			if err := add(m.Card); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

func runExport(_ *cobra.Command, args []string) error {
	cards, err := readCards(args)
	if err != nil {
		return err
	}

	if dump {
		spew.Fdump(os.Stderr, cards)
	}

	return writeOutput(func(w io.Writer) error { return jscard.EncodeVCF(w, cards, cfg) })
}

func runValidate(_ *cobra.Command, args []string) error {
	cards, err := readCards(args)
	if err != nil {
		return err
	}

	var failed int

	for _, card := range cards {
		violations := jscard.ValidateLocalizations(card)
		if len(violations) == 0 {
			continue
		}

		failed++

		printDiagnostics(os.Stderr, violations)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d cards have invalid localizations", failed, len(cards))
	}

	color.New(color.FgGreen).Fprintf(os.Stderr, "%d cards OK\n", len(cards))

	return nil
}

func printDiagnostics(w io.Writer, diags []diagnostic.Diagnostic) {
	for _, d := range diags {
		c, ok := severityColors[d.Severity]
		if !ok {
			c = color.New(color.Reset)
		}

		c.Fprintf(w, "%-7s ", d.Severity)
		fmt.Fprintln(w, d)
	}
}

// eachInput calls fn for every named file, or for stdin when there is none.
func eachInput(args []string, fn func(name string, r io.Reader) error) error {
	if len(args) == 0 {
		return fn("stdin", os.Stdin)
	}

	for _, name := range args {
		f, err := os.Open(name)
		if err != nil {
			return err
		}

		err = fn(name, f)
		f.Close()

		if err != nil {
			return err
		}
	}

	return nil
}

// readCards reads JSON cards: each input holds one card or an array.
func readCards(args []string) ([]*jscontact.Card, error) {
	var cards []*jscontact.Card

	err := eachInput(args, func(name string, r io.Reader) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		data = bytes.TrimSpace(data)
		if len(data) > 0 && data[0] == '[' {
			var batch []*jscontact.Card
			if err := json.Unmarshal(data, &batch); err != nil {
				return fmt.Errorf("failed to parse %s: %w", name, err)
			}

			cards = append(cards, batch...)

			return nil
		}

		var card jscontact.Card
		if err := json.Unmarshal(data, &card); err != nil {
			return fmt.Errorf("failed to parse %s: %w", name, err)
		}

		cards = append(cards, &card)

		return nil
	})

	return cards, err
}

func writeOutput(write func(io.Writer) error) error {
	if outputPath == "" {
		return write(os.Stdout)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
