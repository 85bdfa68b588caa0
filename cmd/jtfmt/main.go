// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Program jtfmt reformats JSON documents in the canonical layout produced by
// the tree serializer.
//
// Usage:
//
//	jtfmt [flags] [file ...]
//
// With no files, or a file named "-", jtfmt reads standard input and writes
// the formatted result to standard output. With --in-place, each named file
// is rewritten instead. With --check, nothing is written, and jtfmt reports
// each file whose contents differ from the formatted form.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/creachadair/jtext"
	"github.com/creachadair/jtext/stream"
	"github.com/creachadair/jtext/tree"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger constructs the logger for a run; tests replace it.
var newLogger = func(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

type settings struct {
	InPlace bool
	Stream  bool
	Relaxed bool
	Check   bool
	Indent  string
	Verbose bool
}

func newRootCommand() *cobra.Command {
	var cfg settings
	cmd := &cobra.Command{
		Use:   "jtfmt [flags] [file ...]",
		Short: "Reformat JSON documents",
		Long: `Reformat JSON documents.

The root of each document must be an object or an array. Numbers must be
integers in the int64 range or decimals without an exponent.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cfg.Verbose)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer log.Sync()
			return cfg.run(cmd, args, log)
		},
	}
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	fs := cmd.Flags()
	fs.SortFlags = false
	fs.BoolVarP(&cfg.InPlace, "in-place", "w", false, "rewrite named files in place")
	fs.BoolVar(&cfg.Stream, "stream", false, "copy with the streaming reader instead of building a tree")
	fs.BoolVar(&cfg.Relaxed, "relaxed", false, "accept comments and trailing commas in the input")
	fs.BoolVar(&cfg.Check, "check", false, "report files that are not formatted, without writing")
	fs.StringVar(&cfg.Indent, "indent", "  ", "indentation unit for nested values")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable development logging")
	cmd.MarkFlagsMutuallyExclusive("stream", "relaxed")
	cmd.MarkFlagsMutuallyExclusive("in-place", "check")
	return cmd
}

func (cfg settings) run(cmd *cobra.Command, args []string, log *zap.Logger) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	var nfail, nbad int
	for _, name := range args {
		input, err := readInput(cmd, name)
		if err != nil {
			log.Error("read failed", zap.String("file", name), zap.Error(err))
			nfail++
			continue
		}
		output, err := cfg.format(input)
		if err != nil {
			log.Error("format failed", zap.String("file", name), zap.Error(err))
			nfail++
			continue
		}
		log.Debug("formatted",
			zap.String("file", name),
			zap.Int("inputBytes", len(input)),
			zap.Int("outputBytes", len(output)),
		)

		switch {
		case cfg.Check:
			if !bytes.Equal(input, output) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
				nbad++
			}
		case cfg.InPlace && name != "-":
			if bytes.Equal(input, output) {
				continue
			}
			if err := writeFile(name, output); err != nil {
				log.Error("write failed", zap.String("file", name), zap.Error(err))
				nfail++
			}
		default:
			if _, err := cmd.OutOrStdout().Write(output); err != nil {
				return err
			}
		}
	}
	if nfail > 0 {
		return fmt.Errorf("%d of %d inputs failed", nfail, len(args))
	}
	if nbad > 0 {
		return fmt.Errorf("%d of %d inputs are not formatted", nbad, len(args))
	}
	return nil
}

// format returns the canonical formatting of input, followed by a newline.
func (cfg settings) format(input []byte) ([]byte, error) {
	var buf bytes.Buffer
	p := jtext.NewPrinter(&buf)
	p.SetIndent(cfg.Indent)

	if cfg.Stream {
		s, err := jtext.NewScanner(bytes.NewReader(input))
		if err != nil {
			return nil, err
		}
		if err := stream.Copy(p, s); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	var v tree.Value
	var err error
	if cfg.Relaxed {
		v, err = tree.ParseRelaxed(input)
	} else {
		v, err = tree.Parse(bytes.NewReader(input))
	}
	if err != nil {
		return nil, err
	}
	if err := tree.Encode(p, v); err != nil {
		return nil, err
	}
	p.Raw("\n")
	if err := p.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

// writeFile replaces the contents of name, preserving its permissions.
func writeFile(name string, data []byte) error {
	fi, err := os.Stat(name)
	if err != nil {
		return err
	}
	return os.WriteFile(name, data, fi.Mode().Perm())
}
