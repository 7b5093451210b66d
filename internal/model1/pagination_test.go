// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package model1_test

import (
	"testing"

	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/stretchr/testify/assert"
)

func TestPageCount(t *testing.T) {
	uu := map[string]struct {
		n, size, e int
	}{
		"empty":   {n: 0, size: 10, e: 1},
		"one":     {n: 1, size: 10, e: 1},
		"exact":   {n: 20, size: 10, e: 2},
		"partial": {n: 21, size: 10, e: 3},
		"single":  {n: 3, size: 1, e: 3},
		"bad":     {n: 3, size: 0, e: 1},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, model1.PageCount(u.n, u.size))
		})
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, model1.ClampPage(0, 5))
	assert.Equal(t, 1, model1.ClampPage(-1, 5))
	assert.Equal(t, 3, model1.ClampPage(3, 5))
	assert.Equal(t, 5, model1.ClampPage(9999, 5))
	assert.Equal(t, 1, model1.ClampPage(2, 0))
}

func TestPageBounds(t *testing.T) {
	uu := map[string]struct {
		page, size, n int
		start, end    int
	}{
		"first":  {page: 1, size: 10, n: 25, start: 0, end: 10},
		"last":   {page: 3, size: 10, n: 25, start: 20, end: 25},
		"beyond": {page: 4, size: 10, n: 25, start: 25, end: 25},
		"empty":  {page: 1, size: 10, n: 0, start: 0, end: 0},
		"zero":   {page: 0, size: 10, n: 5, start: 0, end: 5},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			s, e := model1.PageBounds(u.page, u.size, u.n)
			assert.Equal(t, u.start, s)
			assert.Equal(t, u.end, e)
		})
	}
}
