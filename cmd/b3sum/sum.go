package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"lukechampine.com/b3"
)

// A mode selects which BLAKE3 hash function is computed.
type mode struct {
	key     []byte // keyed hashing, if non-nil
	context string // key derivation, if non-empty
}

func parseMode(keyHex, context string) (mode, error) {
	if keyHex != "" && context != "" {
		return mode{}, errors.New("-key and -derive-key are mutually exclusive")
	}
	var m mode
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil {
			return mode{}, errors.Wrap(err, "invalid key")
		} else if len(key) != b3.KeyLen {
			return mode{}, &b3.KeyLengthError{Expected: b3.KeyLen, Actual: len(key)}
		}
		m.key = key
	}
	m.context = context
	return m, nil
}

func (m mode) newHasher() (*b3.Hasher, error) {
	switch {
	case m.key != nil:
		return b3.NewKeyed(m.key)
	case m.context != "":
		return b3.NewDeriveKey(m.context), nil
	default:
		return b3.New(), nil
	}
}

func (m mode) sum(r io.Reader, length int) ([]byte, error) {
	h, err := m.newHasher()
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(h, r); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	h.Finalize(out)
	return out, nil
}

func (m mode) sumFile(path string, length int) ([]byte, error) {
	if path == "-" {
		return m.sum(os.Stdin, length)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sum, err := m.sum(f, length)
	return sum, errors.Wrapf(err, "could not read %v", path)
}

func formatSum(sum []byte, name string, noNames, tag bool) string {
	switch {
	case noNames:
		return hex.EncodeToString(sum)
	case tag:
		return fmt.Sprintf("BLAKE3 (%v) = %x", name, sum)
	default:
		return fmt.Sprintf("%x  %v", sum, name)
	}
}

// parseSumLine parses a line of the form "<hex>  <path>" or
// "BLAKE3 (<path>) = <hex>".
func parseSumLine(line string) (sum []byte, path string, err error) {
	var hexSum string
	if strings.HasPrefix(line, "BLAKE3 (") {
		i := strings.LastIndex(line, ") = ")
		if i < 0 {
			return nil, "", errors.Errorf("malformed line %q", line)
		}
		path, hexSum = line[len("BLAKE3 ("):i], line[i+len(") = "):]
	} else {
		i := strings.Index(line, "  ")
		if i < 0 {
			return nil, "", errors.Errorf("malformed line %q", line)
		}
		hexSum, path = line[:i], line[i+2:]
	}
	sum, err = hex.DecodeString(hexSum)
	if err != nil {
		return nil, "", errors.Wrapf(err, "malformed checksum in line %q", line)
	} else if len(sum) == 0 || path == "" {
		return nil, "", errors.Errorf("malformed line %q", line)
	}
	return sum, path, nil
}

// checkSums reads checksum lines from r, recomputes each checksum, and writes
// a result line for each to w. It returns the number of mismatched or
// unreadable files.
func checkSums(m mode, r io.Reader, w io.Writer) (failed int, err error) {
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimRight(s.Text(), "\r")
		if line == "" {
			continue
		}
		exp, path, err := parseSumLine(line)
		if err != nil {
			return failed, err
		}
		sum, err := m.sumFile(path, len(exp))
		if err != nil {
			fmt.Fprintf(w, "%v: FAILED (%v)\n", path, errors.Cause(err))
			failed++
		} else if string(sum) != string(exp) {
			fmt.Fprintf(w, "%v: FAILED\n", path)
			failed++
		} else {
			fmt.Fprintf(w, "%v: OK\n", path)
		}
	}
	return failed, s.Err()
}
