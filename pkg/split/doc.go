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

// Package split divides the remainder of N mod M into two near-equal halves.
//
// The remainder uses floored modulus: its sign follows the divisor, so
// -7 mod 4 is 1 and 7 mod -4 is -1. Go's % operator truncates toward zero
// and would give -3 and 3 instead, so it is never used on its own.
//
// # Quick Start
//
//	n, _ := split.ParseOperand("10")
//	m, _ := split.ParseOperand("3")
//	p, err := split.Split(n, m)
//	if err != nil {
//	    return err // split.ErrDivisionByZero when m is 0
//	}
//	fmt.Println(p) // (0, 1)
//
// Every Pair satisfies Low + High == Remainder and Low <= High.
//
// # Batches
//
// Batch applies Split to a line-oriented stream of "N M" pairs:
//
//	b := split.Batch{Reader: os.Stdin}
//	err := b.Run(ctx, func(l split.Line) error {
//	    fmt.Println(l.Pair)
//	    return nil
//	})
//
// Nothing in this package logs, records metrics or touches global state.
package split
