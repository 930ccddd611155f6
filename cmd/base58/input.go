package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bartossh/Base58/alphabet"
)

var (
	ErrMissingArgument = errors.New("missing argument")
	ErrVersionRange    = errors.New("version must be between 0 and 255")
)

// readArgument returns the single positional argument, "-" reads it from r.
func readArgument(args []string, r io.Reader) (string, error) {
	if len(args) != 1 {
		return "", errors.Join(ErrMissingArgument, fmt.Errorf("expected exactly one argument, got %d", len(args)))
	}
	if args[0] != "-" {
		return args[0], nil
	}
	buf, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(buf), "\r\n"), nil
}

// inputBytes turns a command line argument into bytes, hex decoded when asHex is set.
func inputBytes(arg string, asHex bool) ([]byte, error) {
	if !asHex {
		return []byte(arg), nil
	}
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(arg), "0x"))
	if err != nil {
		return nil, fmt.Errorf("hex input: %w", err)
	}
	return b, nil
}

// outputBytes renders decoded bytes either as hex or as raw text.
func outputBytes(b []byte, asHex bool) string {
	if asHex {
		return hex.EncodeToString(b)
	}
	return string(b)
}

// parseVersion accepts decimal or 0x prefixed hexadecimal version bytes.
func parseVersion(s string) (byte, error) {
	digits, base := s, 10
	if h, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		digits, base = h, 16
	}
	n, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("version %q: %w", s, err)
	}
	if n > 255 {
		return 0, errors.Join(ErrVersionRange, fmt.Errorf("received %d", n))
	}
	return byte(n), nil
}

// formatInvalid renders the invalid characters report of the validate command.
func formatInvalid(invalid []rune) string {
	if len(invalid) == 0 {
		return "valid"
	}
	quoted := make([]string, 0, len(invalid))
	for _, r := range invalid {
		quoted = append(quoted, strconv.QuoteRune(r))
	}
	return "invalid characters: " + strings.Join(quoted, ", ")
}

type invalidReport struct {
	name    string
	invalid []rune
}

// invalidByAlphabet lists the characters of text outside the named alphabet,
// or outside each alphabet when name is empty.
func invalidByAlphabet(text, name string) ([]invalidReport, error) {
	if name != "" {
		a, err := alphabet.Lookup(name)
		if err != nil {
			return nil, err
		}
		return []invalidReport{{name: name, invalid: a.InvalidChars(text)}}, nil
	}

	reports := make([]invalidReport, 0, len(alphabet.Variants()))
	for _, v := range alphabet.Variants() {
		a, err := alphabet.Get(v)
		if err != nil {
			return nil, err
		}
		reports = append(reports, invalidReport{name: v.String(), invalid: a.InvalidChars(text)})
	}
	return reports, nil
}
