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
	"errors"
	"fmt"
	"math/big"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrDivisionByZero is returned when the divisor M is zero.
	ErrDivisionByZero = errors.New("integer division or modulo by zero")

	// ErrSyntax is wrapped by ParseOperand when the text is not a base-10 integer.
	ErrSyntax = errors.New("invalid base-10 integer")
)

var two = big.NewInt(2)

// Pair is the result of splitting one remainder.
type Pair struct {
	Remainder *big.Int `json:"remainder"`
	Low       *big.Int `json:"low"`
	High      *big.Int `json:"high"`
}

// String renders the pair as "(low, high)".
func (p Pair) String() string {
	return fmt.Sprintf("(%s, %s)", p.Low, p.High)
}

// MarshalYAML emits the three values as plain !!int scalars. big.Int only
// implements TextMarshaler, which yaml.v3 would quote as a string.
func (p Pair) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, kv := range []struct {
		key string
		val *big.Int
	}{
		{"remainder", p.Remainder},
		{"low", p.Low},
		{"high", p.High},
	} {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.key},
			IntNode(kv.val),
		)
	}
	return node, nil
}

// IntNode returns a YAML !!int scalar node for x.
func IntNode(x *big.Int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: x.String()}
}

// FloorMod returns n mod m with the sign of m.
func FloorMod(n, m *big.Int) (*big.Int, error) {
	if m.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	// Rem truncates, so its result carries the sign of n.
	r := new(big.Int).Rem(n, m)
	if r.Sign() != 0 && r.Sign() != m.Sign() {
		r.Add(r, m)
	}
	return r, nil
}

// Split computes s = n mod m and returns (floor(s/2), s - floor(s/2)).
// Neither argument is modified.
func Split(n, m *big.Int) (Pair, error) {
	s, err := FloorMod(n, m)
	if err != nil {
		return Pair{}, err
	}
	// Div is Euclidean; for a positive divisor that is floor division.
	low := new(big.Int).Div(s, two)
	high := new(big.Int).Sub(s, low)
	return Pair{Remainder: s, Low: low, High: high}, nil
}

// SplitInt64 is Split on native integers. It never overflows: the remainder
// is strictly smaller in magnitude than m.
func SplitInt64(n, m int64) (low, high int64, err error) {
	if m == 0 {
		return 0, 0, ErrDivisionByZero
	}
	// math.MinInt64 % -1 is defined as 0.
	s := n % m
	if s != 0 && (s < 0) != (m < 0) {
		s += m
	}
	low = s >> 1
	return low, s - low, nil
}

// ParseOperand parses a base-10 integer of any size. A leading + or - is
// accepted and surrounding whitespace is ignored.
func ParseOperand(text string) (*big.Int, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty value", ErrSyntax)
	}
	x, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSyntax, text)
	}
	return x, nil
}
