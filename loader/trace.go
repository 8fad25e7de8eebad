// Package loader reads memory traces for replay through the cache
// hierarchy.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/vcsim/timing/cache"
)

// ErrMalformedLine is returned, wrapped, for any trace line that cannot be
// parsed.
var ErrMalformedLine = errors.New("malformed trace line")

// Operation is one memory operation of a trace.
type Operation struct {
	Op   cache.Op
	Addr cache.Address
	Data int32
}

// Trace is an ordered list of memory operations.
type Trace struct {
	Ops []Operation
}

// Len returns the number of operations in the trace.
func (t *Trace) Len() int {
	return len(t.Ops)
}

// Append adds an operation to the end of the trace.
func (t *Trace) Append(op cache.Op, addr cache.Address, data int32) {
	t.Ops = append(t.Ops, Operation{Op: op, Addr: addr, Data: data})
}

// Load parses the trace file at path.
func Load(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse reads a trace. Each non-empty line has the form
//
//	memR,memW,adr,data
//
// where exactly one of memR and memW is 1. Parsing stops at the first
// malformed line.
func Parse(r io.Reader) (*Trace, error) {
	t := &Trace{}
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		op, err := parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		t.Ops = append(t.Ops, op)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}

	return t, nil
}

func parseLine(text string) (Operation, error) {
	fields := strings.Split(text, ",")
	if len(fields) != 4 {
		return Operation{}, fmt.Errorf("%w: want 4 fields, got %d",
			ErrMalformedLine, len(fields))
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	memR, err := parseFlag(fields[0], "memR")
	if err != nil {
		return Operation{}, err
	}

	memW, err := parseFlag(fields[1], "memW")
	if err != nil {
		return Operation{}, err
	}

	if memR == memW {
		return Operation{}, fmt.Errorf("%w: exactly one of memR and memW must be set",
			ErrMalformedLine)
	}

	addr, err := strconv.ParseUint(fields[2], 10, 16)
	if err != nil || addr > uint64(cache.MaxAddress) {
		return Operation{}, fmt.Errorf("%w: address %q out of range [0, %d]",
			ErrMalformedLine, fields[2], cache.MaxAddress)
	}

	data, err := strconv.ParseInt(fields[3], 10, 32)
	if err != nil {
		return Operation{}, fmt.Errorf("%w: bad data %q: %v",
			ErrMalformedLine, fields[3], err)
	}

	op := cache.OpRead
	if memW {
		op = cache.OpWrite
	}

	return Operation{Op: op, Addr: cache.Address(addr), Data: int32(data)}, nil
}

func parseFlag(s, name string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s must be 0 or 1, got %q",
			ErrMalformedLine, name, s)
	}
}

// Write serializes the trace in the format Parse reads.
func (t *Trace) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, op := range t.Ops {
		memR, memW := 1, 0
		if op.Op == cache.OpWrite {
			memR, memW = 0, 1
		}

		if _, err := fmt.Fprintf(bw, "%d,%d,%d,%d\n", memR, memW, op.Addr, op.Data); err != nil {
			return fmt.Errorf("failed to write trace: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}

	return nil
}
