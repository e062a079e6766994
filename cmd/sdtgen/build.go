package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/mvaleed/sdtgen/internal/acpi"
	"github.com/retroenv/retrogolib/log"
)

// buildTable creates the table described by opts, appends the body file and
// applies the fixed writes in the order given.
func buildTable(logger *log.Logger, opts options) (*acpi.Table, error) {
	if len(opts.Signature) != 4 {
		return nil, fmt.Errorf("signature %q must be exactly 4 characters", opts.Signature)
	}
	if opts.Revision > math.MaxUint8 {
		return nil, fmt.Errorf("revision %d does not fit in a byte", opts.Revision)
	}
	if opts.Length > math.MaxUint32 {
		return nil, fmt.Errorf("length %d does not fit the length field", opts.Length)
	}
	if opts.OEMRevision > math.MaxUint32 || opts.CreatorRev > math.MaxUint32 {
		return nil, errors.New("revisions must fit in 32 bits")
	}

	sig, err := asciiField("signature", opts.Signature, 4)
	if err != nil {
		return nil, err
	}
	oemID, err := asciiField("OEM ID", opts.OEMID, 6)
	if err != nil {
		return nil, err
	}
	oemTableID, err := asciiField("OEM table ID", opts.OEMTableID, 8)
	if err != nil {
		return nil, err
	}
	creatorID, err := asciiField("creator ID", opts.CreatorID, 4)
	if err != nil {
		return nil, err
	}

	creator := acpi.Creator{
		ID:       [4]byte(creatorID),
		Revision: uint32(opts.CreatorRev),
	}
	table, err := acpi.New(
		[4]byte(sig),
		uint32(opts.Length),
		uint8(opts.Revision),
		[6]byte(oemID),
		[8]byte(oemTableID),
		uint32(opts.OEMRevision),
		creator,
	)
	if err != nil {
		return nil, fmt.Errorf("creating table: %w", err)
	}

	if opts.Body != "" {
		if err := appendBody(table, opts.Body); err != nil {
			return nil, err
		}
		logger.Debug("Appended body",
			log.String("file", opts.Body),
			log.Int("length", table.Len()))
	}

	for _, w := range opts.Writes {
		if err := table.WriteU32(w.Offset, w.Value); err != nil {
			return nil, fmt.Errorf("writing u32 at %d: %w", w.Offset, err)
		}
		logger.Debug("Wrote u32",
			log.Hex("offset", w.Offset),
			log.Hex("value", w.Value))
	}

	for _, w := range opts.Registers {
		if err := table.WriteField(w.Offset, w.Register); err != nil {
			return nil, fmt.Errorf("writing register address at %d: %w", w.Offset, err)
		}
		logger.Debug("Wrote register address",
			log.Hex("offset", w.Offset),
			log.Stringer("register", w.Register))
	}

	return table, nil
}

func appendBody(table *acpi.Table, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening body: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(table, f); err != nil {
		return fmt.Errorf("appending body: %w", err)
	}
	return nil
}

// writeTable emits the table to path, or to stdout when path is empty.
func writeTable(table *acpi.Table, path string, stdout io.Writer) error {
	if path == "" {
		_, err := table.WriteTo(stdout)
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := table.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing table: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to sync file: %w", err)
	}
	return f.Close()
}
