// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package split

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

// Line is one successfully split input line.
type Line struct {
	// Number is the 1-based line number in the input.
	Number int
	N      *big.Int
	M      *big.Int
	Pair   Pair
}

// LineError reports the input line that stopped a batch.
type LineError struct {
	Number int
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Number, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// errFieldCount is wrapped with ErrSyntax for lines without exactly two fields.
var errFieldCount = errors.New("expected two fields \"N M\"")

// Batch reads "N M" pairs, one per line. Blank lines and lines starting
// with # are skipped but still counted.
type Batch struct {
	Reader io.Reader

	// MaxDigits rejects operands longer than this many characters. Zero disables the check.
	MaxDigits int

	// OnLine, if set, is called with the number of bytes consumed by each line.
	OnLine func(n int)
}

// Run splits every line and hands the result to fn. It stops at the first
// malformed line, the first error from fn, or when ctx is done.
func (b *Batch) Run(ctx context.Context, fn func(Line) error) error {
	r := bufio.NewReader(b.Reader)
	number := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, readErr := r.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("read batch input: %w", readErr)
		}
		if raw == "" && readErr != nil {
			return nil
		}
		number++
		if b.OnLine != nil {
			b.OnLine(len(raw))
		}

		text := strings.TrimSpace(raw)
		if text != "" && !strings.HasPrefix(text, "#") {
			line, err := b.parseLine(number, text)
			if err != nil {
				return &LineError{Number: number, Err: err}
			}
			if err := fn(line); err != nil {
				return err
			}
		}

		if readErr != nil {
			return nil
		}
	}
}

func (b *Batch) parseLine(number int, text string) (Line, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return Line{}, fmt.Errorf("%w: %w, got %d", ErrSyntax, errFieldCount, len(fields))
	}
	var operands [2]*big.Int
	for i, f := range fields {
		if b.MaxDigits > 0 && len(f) > b.MaxDigits {
			return Line{}, fmt.Errorf("%w: operand has %d characters, limit is %d", ErrSyntax, len(f), b.MaxDigits)
		}
		x, err := ParseOperand(f)
		if err != nil {
			return Line{}, err
		}
		operands[i] = x
	}
	p, err := Split(operands[0], operands[1])
	if err != nil {
		return Line{}, err
	}
	return Line{Number: number, N: operands[0], M: operands[1], Pair: p}, nil
}
