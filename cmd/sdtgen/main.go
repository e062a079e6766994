// Package main implements sdtgen, which builds a single system description
// table from command line options.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mvaleed/sdtgen/internal/config"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	opts, err := parseFlags(os.Args[0], os.Args[1:])
	if err != nil {
		os.Exit(reportUsage(err, os.Stderr))
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err := run(logger, opts, os.Stdout); err != nil {
		logger.Error("Building table failed", log.Err(err))
		os.Exit(1)
	}
}

// reportUsage prints a flag parsing failure and returns the exit code.
// Asking for help is not a failure.
func reportUsage(err error, stderr io.Writer) int {
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		usageErr.ShowUsage(stderr)
		return 0
	}
	if msg := usageErr.Error(); msg != "" {
		fmt.Fprintf(stderr, "sdtgen: %s\n\n", msg)
	}
	usageErr.ShowUsage(stderr)
	return 2
}

func run(logger *log.Logger, opts options, stdout io.Writer) error {
	table, err := buildTable(logger, opts)
	if err != nil {
		return err
	}

	if err := writeTable(table, opts.Output, stdout); err != nil {
		return err
	}

	sig := table.Signature()
	logger.Info("Table written",
		log.String("signature", string(sig[:])),
		log.Int("length", table.Len()),
		log.Hex("checksum", table.Checksum()),
		log.String("output", outputName(opts.Output)))
	return nil
}

func outputName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
