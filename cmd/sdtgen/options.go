package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mvaleed/sdtgen/internal/acpi"
)

type options struct {
	Signature   string
	Revision    uint
	OEMID       string
	OEMTableID  string
	OEMRevision uint
	CreatorID   string
	CreatorRev  uint
	Length      uint
	Body        string
	Output      string
	Debug       bool
	Quiet       bool

	Writes    writeList
	Registers registerList
}

// UsageError represents an error that should show usage information.
// It wraps flag.ErrHelp when help was asked for.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
	err   error
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) Unwrap() error {
	return e.err
}

// ShowUsage writes the usage text to w. Stdout is kept for table bytes.
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: sdtgen [options]\n\n")
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	e.flags.SetOutput(io.Discard)
	fmt.Fprintln(w)
}

func parseFlags(name string, args []string) (options, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	// Parse errors are reported once, by the caller.
	flags.SetOutput(io.Discard)
	var opts options
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error(), err: err}
	}
	if flags.NArg() != 0 {
		return opts, &UsageError{flags: flags, msg: fmt.Sprintf("unexpected argument %s", flags.Arg(0))}
	}
	return opts, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options) {
	def := acpi.DefaultCreator
	flags.StringVar(&opts.Signature, "sig", "", "4 character table signature, for example APIC")
	flags.UintVar(&opts.Revision, "rev", 1, "table revision")
	flags.StringVar(&opts.OEMID, "oem-id", "SDTGEN", "OEM ID, up to 6 characters")
	flags.StringVar(&opts.OEMTableID, "oem-table", "SDTGEN", "OEM table ID, up to 8 characters")
	flags.UintVar(&opts.OEMRevision, "oem-rev", 1, "OEM revision")
	flags.StringVar(&opts.CreatorID, "creator-id", string(def.ID[:]), "creator ID, up to 4 characters")
	flags.UintVar(&opts.CreatorRev, "creator-rev", uint(def.Revision), "creator revision")
	flags.UintVar(&opts.Length, "len", acpi.HeaderSize, "initial table length, zero padded after the header")
	flags.StringVar(&opts.Body, "body", "", "file whose contents are appended to the table")
	flags.StringVar(&opts.Output, "o", "", "output file, stdout if not given")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.Var(&opts.Writes, "u32", "write a u32 at an offset, as off=value (repeatable)")
	flags.Var(&opts.Registers, "reg", "write a register address at an offset, as off=mmio32:0x1000 or off=io8:0x400 (repeatable)")
}

// asciiField space pads s to n bytes.
func asciiField(name, s string, n int) ([]byte, error) {
	if len(s) > n {
		return nil, fmt.Errorf("%s %q is longer than %d characters", name, s, n)
	}
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return nil, fmt.Errorf("%s %q is not ASCII", name, s)
		}
	}
	b := []byte(s + strings.Repeat(" ", n-len(s)))
	return b, nil
}

type u32Write struct {
	Offset int
	Value  uint32
}

type writeList []u32Write

func (l *writeList) String() string {
	parts := make([]string, 0, len(*l))
	for _, w := range *l {
		parts = append(parts, fmt.Sprintf("%d=%#x", w.Offset, w.Value))
	}
	return strings.Join(parts, ",")
}

func (l *writeList) Set(s string) error {
	off, val, err := splitAssignment(s)
	if err != nil {
		return err
	}
	v, err := strconv.ParseUint(val, 0, 32)
	if err != nil {
		return fmt.Errorf("invalid u32 value %q: %w", val, err)
	}
	*l = append(*l, u32Write{Offset: off, Value: uint32(v)})
	return nil
}

type registerWrite struct {
	Offset   int
	Register acpi.RegisterAddress
}

type registerList []registerWrite

func (l *registerList) String() string {
	parts := make([]string, 0, len(*l))
	for _, w := range *l {
		parts = append(parts, fmt.Sprintf("%d=%s", w.Offset, w.Register))
	}
	return strings.Join(parts, ",")
}

func (l *registerList) Set(s string) error {
	off, val, err := splitAssignment(s)
	if err != nil {
		return err
	}
	reg, err := parseRegister(val)
	if err != nil {
		return err
	}
	*l = append(*l, registerWrite{Offset: off, Register: reg})
	return nil
}

var errBadRegister = errors.New("register must look like mmio32:0x1000 or io8:0x400")

func parseRegister(s string) (acpi.RegisterAddress, error) {
	kind, addr, ok := strings.Cut(s, ":")
	if !ok {
		return acpi.RegisterAddress{}, fmt.Errorf("%w: %q", errBadRegister, s)
	}

	switch {
	case strings.HasPrefix(kind, "mmio"):
		a, err := strconv.ParseUint(addr, 0, 64)
		if err != nil {
			return acpi.RegisterAddress{}, fmt.Errorf("invalid memory address %q: %w", addr, err)
		}
		switch strings.TrimPrefix(kind, "mmio") {
		case "8":
			return acpi.MemoryMapped[uint8](a), nil
		case "16":
			return acpi.MemoryMapped[uint16](a), nil
		case "32":
			return acpi.MemoryMapped[uint32](a), nil
		case "64":
			return acpi.MemoryMapped[uint64](a), nil
		}

	case strings.HasPrefix(kind, "io"):
		p, err := strconv.ParseUint(addr, 0, 16)
		if err != nil {
			return acpi.RegisterAddress{}, fmt.Errorf("invalid port %q: %w", addr, err)
		}
		port := uint16(p)
		switch strings.TrimPrefix(kind, "io") {
		case "8":
			return acpi.PortMapped[uint8](port), nil
		case "16":
			return acpi.PortMapped[uint16](port), nil
		case "32":
			return acpi.PortMapped[uint32](port), nil
		case "64":
			return acpi.PortMapped[uint64](port), nil
		}
	}

	return acpi.RegisterAddress{}, fmt.Errorf("%w: %q", errBadRegister, s)
}

func splitAssignment(s string) (int, string, error) {
	off, val, ok := strings.Cut(s, "=")
	if !ok {
		return 0, "", fmt.Errorf("expected off=value, got %q", s)
	}
	o, err := strconv.ParseUint(off, 0, 32)
	if err != nil {
		return 0, "", fmt.Errorf("invalid offset %q: %w", off, err)
	}
	return int(o), val, nil
}
