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
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, b *Batch) ([]Line, error) {
	t.Helper()
	var lines []Line
	err := b.Run(context.Background(), func(l Line) error {
		lines = append(lines, l)
		return nil
	})
	return lines, err
}

func TestBatch_Run(t *testing.T) {
	input := "10 3\n\n# comment\n  -7\t4  \n7 -4"
	lines, err := collect(t, &Batch{Reader: strings.NewReader(input)})
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, 1, lines[0].Number)
	assert.Equal(t, "(0, 1)", lines[0].Pair.String())

	assert.Equal(t, 4, lines[1].Number)
	assert.Equal(t, "-7", lines[1].N.String())
	assert.Equal(t, "4", lines[1].M.String())
	assert.Equal(t, "(0, 1)", lines[1].Pair.String())

	assert.Equal(t, 5, lines[2].Number, "last line without newline is still read")
	assert.Equal(t, "(-1, 0)", lines[2].Pair.String())
}

func TestBatch_Empty(t *testing.T) {
	lines, err := collect(t, &Batch{Reader: strings.NewReader("")})
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestBatch_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		wantLine int
		wantErr  error
	}{
		{"one field", "10 3\n10\n", 0, 2, ErrSyntax},
		{"three fields", "1 2 3\n", 0, 1, ErrSyntax},
		{"not a number", "# header\nten 3\n", 0, 2, ErrSyntax},
		{"zero divisor", "1 1\n2 2\n5 0\n", 0, 3, ErrDivisionByZero},
		{"operand too long", "123456 7\n", 5, 1, ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := collect(t, &Batch{Reader: strings.NewReader(tt.input), MaxDigits: tt.max})
			require.Error(t, err)

			var lineErr *LineError
			require.True(t, errors.As(err, &lineErr), "expected *LineError, got %T", err)
			assert.Equal(t, tt.wantLine, lineErr.Number)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "line ")
		})
	}
}

func TestBatch_CallbackErrorStops(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	b := &Batch{Reader: strings.NewReader("1 2\n3 4\n5 6\n")}
	err := b.Run(context.Background(), func(Line) error {
		calls++
		if calls == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, calls)
}

func TestBatch_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	b := &Batch{Reader: strings.NewReader("1 2\n3 4\n5 6\n")}
	err := b.Run(ctx, func(Line) error {
		calls++
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestBatch_OnLineCountsBytes(t *testing.T) {
	input := "10 3\n# skip\n\n9 3"
	total := 0
	calls := 0
	b := &Batch{
		Reader: strings.NewReader(input),
		OnLine: func(n int) {
			total += n
			calls++
		},
	}
	_, err := collect(t, b)
	require.NoError(t, err)
	assert.Equal(t, len(input), total)
	assert.Equal(t, 4, calls)
}
