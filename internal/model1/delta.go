// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package model1

import (
	"fmt"

	"github.com/wI2L/jsondiff"
)

// RowDelta returns the RFC 6902 patch turning old into cur.
// A nil old row yields the additions of every field.
func RowDelta(old, cur Row) (jsondiff.Patch, error) {
	src := map[string]any(old)
	if src == nil {
		src = map[string]any{}
	}
	patch, err := jsondiff.Compare(src, map[string]any(cur))
	if err != nil {
		return nil, fmt.Errorf("failed to compare rows: %w", err)
	}
	return patch, nil
}
