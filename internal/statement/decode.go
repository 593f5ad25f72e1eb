// Package statement decodes already-parsed account statements.
//
// The input is the JSON produced by statement parsers such as casparser:
// either a full statement object with a "folios" array, or a bare array of
// folios. Decoding never evaluates anything. Structural JSON errors and bad
// dates fail the statement; unreadable amounts decode as absent and count as 0.
package statement

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode"

	"github.com/bobmcallan/tealscan/internal/models"
)

// ErrEmpty is returned when the input holds no JSON document at all.
var ErrEmpty = errors.New("statement is empty")

// Decode reads one statement from r.
func Decode(r io.Reader) (*models.Statement, error) {
	br := bufio.NewReader(r)

	first, err := peekNonSpace(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("failed to read statement: %w", err)
	}

	dec := json.NewDecoder(br)

	stmt := &models.Statement{}
	if first == '[' {
		if err := dec.Decode(&stmt.Folios); err != nil {
			return nil, fmt.Errorf("invalid statement JSON: %w", err)
		}
	} else {
		// A literal null leaves stmt empty, which scans to a zero summary
		if err := dec.Decode(stmt); err != nil {
			return nil, fmt.Errorf("invalid statement JSON: %w", err)
		}
	}

	if dec.More() {
		return nil, errors.New("invalid statement JSON: trailing data after statement")
	}

	return stmt, nil
}

// DecodeBytes decodes a statement held in memory.
func DecodeBytes(data []byte) (*models.Statement, error) {
	return Decode(bytes.NewReader(data))
}

// DecodeFile decodes the statement stored at path.
func DecodeFile(path string) (*models.Statement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open statement %s: %w", path, err)
	}
	defer f.Close()

	stmt, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return stmt, nil
}

// peekNonSpace skips leading whitespace (and a UTF-8 BOM) and returns the
// first significant byte without consuming it.
func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		r, size, err := br.ReadRune()
		if err != nil {
			return 0, err
		}
		if r == '\uFEFF' || unicode.IsSpace(r) {
			continue
		}
		if err := br.UnreadRune(); err != nil {
			return 0, err
		}
		if size != 1 {
			return 0, fmt.Errorf("unexpected character %q at start of statement", r)
		}
		b, err := br.Peek(1)
		if err != nil {
			return 0, err
		}
		return b[0], nil
	}
}
