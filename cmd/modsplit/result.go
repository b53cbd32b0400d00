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

package main

import (
	"math/big"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/modsplit/pkg/split"
)

// Result is one split as printed by the CLI.
//
// JSON: {"line":4,"n":-7,"m":4,"remainder":1,"low":0,"high":1}
// Text: (0, 1)
type Result struct {
	// Line is the batch input line number; zero outside batch mode.
	Line int      `json:"line,omitempty"`
	N    *big.Int `json:"n"`
	M    *big.Int `json:"m"`
	split.Pair
}

// MarshalYAML prepends line, n and m to the pair's own mapping. Without it
// the embedded Pair's MarshalYAML would be promoted and drop them.
func (r Result) MarshalYAML() (any, error) {
	pair, err := r.Pair.MarshalYAML()
	if err != nil {
		return nil, err
	}
	node := pair.(*yaml.Node)

	var head []*yaml.Node
	if r.Line > 0 {
		head = append(head,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "line"},
			split.IntNode(big.NewInt(int64(r.Line))),
		)
	}
	head = append(head,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "n"},
		split.IntNode(r.N),
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "m"},
		split.IntNode(r.M),
	)
	node.Content = append(head, node.Content...)
	return node, nil
}
