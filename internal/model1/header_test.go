// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package model1_test

import (
	"errors"
	"testing"

	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnsValidate(t *testing.T) {
	err := model1.Columns{{Key: "a"}, {Key: "b"}, {Key: "a"}}.Validate()
	require.Error(t, err)

	var cerr *model1.ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "columns[2].key", cerr.Field)
	assert.Contains(t, cerr.Error(), `duplicate key "a"`)

	err = model1.Columns{{Key: "a"}, {Label: "No key"}}.Validate()
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "columns[1].key", cerr.Field)
}

func TestColumnsLookup(t *testing.T) {
	cols := model1.Columns{
		{Key: "orderNumber", Label: "Order"},
		{Key: "status", Type: model1.ColumnStatus, NoSort: true},
	}

	i, ok := cols.IndexOf("status")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = cols.IndexOf("bozo")
	assert.False(t, ok)

	c, ok := cols.Lookup("status")
	require.True(t, ok)
	assert.False(t, c.Sortable())
	assert.Equal(t, "STATUS", c.Title())

	assert.Equal(t, []string{"orderNumber", "status"}, cols.Keys())
	assert.Equal(t, []string{"Order", "STATUS"}, cols.Labels())
}

func TestRowID(t *testing.T) {
	assert.Equal(t, "a1", model1.Row{"_id": "a1", "id": "x"}.ID())
	assert.Equal(t, "7", model1.Row{"id": 7}.ID())
	assert.Equal(t, "", model1.Row{"name": "Latte"}.ID())
}

func TestSortDirectionToggle(t *testing.T) {
	assert.Equal(t, model1.SortDesc, model1.SortAsc.Toggle())
	assert.Equal(t, model1.SortAsc, model1.SortDesc.Toggle())
}
