// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package model1_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drinkColumns() model1.Columns {
	return model1.Columns{
		{Key: "name"},
		{Key: "price", Type: model1.ColumnCurrency},
	}
}

func drinks() model1.Rows {
	return model1.Rows{
		{"_id": "1", "name": "Latte", "price": 3.5},
		{"_id": "2", "name": "Mocha", "price": 4.0},
		{"_id": "3", "name": "Americano", "price": 2.5},
	}
}

func names(rr model1.Rows) []string {
	out := make([]string, 0, len(rr))
	for _, r := range rr {
		out = append(out, r.String("name"))
	}
	return out
}

func numbered(n int) model1.Rows {
	rr := make(model1.Rows, 0, n)
	for i := range n {
		rr = append(rr, model1.Row{"_id": fmt.Sprintf("r%d", i), "name": fmt.Sprintf("item-%02d", i), "qty": i % 3})
	}
	return rr
}

func TestNewTabularView_Config(t *testing.T) {
	uu := map[string]struct {
		cols model1.Columns
		opts []model1.Option
		err  bool
	}{
		"ok": {
			cols: drinkColumns(),
		},
		"dup-key": {
			cols: model1.Columns{{Key: "name"}, {Key: "name"}},
			err:  true,
		},
		"empty-key": {
			cols: model1.Columns{{Key: ""}},
			err:  true,
		},
		"zero-page-size": {
			cols: drinkColumns(),
			opts: []model1.Option{model1.WithPageSize(0)},
			err:  true,
		},
		"negative-page-size": {
			cols: drinkColumns(),
			opts: []model1.Option{model1.WithPageSize(-3)},
			err:  true,
		},
		"no-columns": {
			cols: model1.Columns{},
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			tv, err := model1.NewTabularView(u.cols, drinks(), u.opts...)
			if u.err {
				require.Error(t, err)
				assert.True(t, errors.Is(err, model1.ErrConfig))
				var cerr *model1.ConfigError
				assert.True(t, errors.As(err, &cerr))
				assert.Nil(t, tv)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 3, tv.Len())
		})
	}
}

func TestTabularView_Defaults(t *testing.T) {
	tv, err := model1.NewTabularView(drinkColumns(), drinks())
	require.NoError(t, err)

	o := tv.Options()
	assert.True(t, o.Searchable)
	assert.True(t, o.Sortable)
	assert.True(t, o.Pagination)
	assert.Equal(t, 10, o.PageSize)

	v := tv.View()
	assert.Equal(t, 1, v.CurrentPage)
	assert.Equal(t, 1, v.TotalPages)
	assert.Equal(t, 3, v.TotalMatching)
	assert.Equal(t, []string{"Latte", "Mocha", "Americano"}, names(v.Rows))
}

func TestTabularView_SortAndPaginate(t *testing.T) {
	tv, err := model1.NewTabularView(drinkColumns(), drinks(), model1.WithPageSize(2))
	require.NoError(t, err)

	tv.SetSort("price")
	v := tv.View()
	assert.Equal(t, 2, v.TotalPages)
	assert.Equal(t, []string{"Americano", "Latte"}, names(v.Rows))

	tv.GoToPage(2)
	v = tv.View()
	assert.Equal(t, 2, v.CurrentPage)
	assert.Equal(t, []string{"Mocha"}, names(v.Rows))
}

func TestTabularView_SearchTerm(t *testing.T) {
	tv, err := model1.NewTabularView(drinkColumns(), drinks(), model1.WithPageSize(2))
	require.NoError(t, err)

	tv.GoToPage(2)
	tv.SetSearchTerm("mo")
	v := tv.View()
	assert.Equal(t, 1, v.TotalMatching)
	assert.Equal(t, 1, v.CurrentPage)
	assert.Equal(t, []string{"Mocha"}, names(v.Rows))

	tv.SetSearchTerm("MOCHA")
	assert.Equal(t, 1, tv.View().TotalMatching)

	tv.SetSearchTerm("3.5")
	assert.Equal(t, []string{"Latte"}, names(tv.View().Rows))

	tv.SetSearchTerm("")
	assert.Equal(t, 3, tv.View().TotalMatching)
}

func TestTabularView_SearchMatchesAnyColumn(t *testing.T) {
	cols := model1.Columns{{Key: "name"}, {Key: "status", Type: model1.ColumnStatus}}
	rows := model1.Rows{
		{"_id": "a", "name": "Latte", "status": "pending"},
		{"_id": "b", "name": "Pending review", "status": "ready"},
		{"_id": "c", "name": "Cookie", "status": nil},
		{"_id": "d", "name": "Espresso"},
	}
	tv, err := model1.NewTabularView(cols, rows)
	require.NoError(t, err)

	tv.SetSearchTerm("pend")
	assert.Equal(t, []string{"Latte", "Pending review"}, names(tv.View().Rows))

	tv.SetSearchTerm("nothing")
	v := tv.View()
	assert.Equal(t, 0, v.TotalMatching)
	assert.Empty(t, v.Rows)
	assert.Equal(t, 1, v.TotalPages)
	assert.Equal(t, 1, v.CurrentPage)
}

func TestTabularView_SearchDisabled(t *testing.T) {
	tv, err := model1.NewTabularView(drinkColumns(), drinks(), model1.WithSearch(false))
	require.NoError(t, err)

	tv.SetSearchTerm("mo")
	assert.Equal(t, 3, tv.View().TotalMatching)
	assert.Empty(t, tv.State().SearchTerm)
}

func TestTabularView_ClearSearchRestoresAll(t *testing.T) {
	for _, n := range []int{0, 1, 7, 25} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			rows := numbered(n)
			tv, err := model1.NewTabularView(model1.Columns{{Key: "name"}, {Key: "qty"}}, rows, model1.WithPageSize(4))
			require.NoError(t, err)

			tv.SetSearchTerm("item-1")
			tv.SetSearchTerm("")
			assert.Equal(t, n, tv.View().TotalMatching)
		})
	}
}

func TestTabularView_TotalMatchingIndependentOfPagination(t *testing.T) {
	rows := numbered(23)
	for _, size := range []int{1, 2, 5, 10, 23, 100} {
		t.Run(fmt.Sprintf("size=%d", size), func(t *testing.T) {
			tv, err := model1.NewTabularView(model1.Columns{{Key: "name"}, {Key: "qty"}}, rows, model1.WithPageSize(size))
			require.NoError(t, err)

			tv.SetSearchTerm("item-1")
			v := tv.View()
			assert.Equal(t, 10, v.TotalMatching)

			var seen int
			for p := 1; p <= v.TotalPages; p++ {
				tv.GoToPage(p)
				seen += len(tv.View().Rows)
			}
			assert.Equal(t, v.TotalMatching, seen)
		})
	}
}

func TestTabularView_SetSortToggles(t *testing.T) {
	tv, err := model1.NewTabularView(drinkColumns(), drinks())
	require.NoError(t, err)

	tv.SetSort("price")
	asc := names(tv.View().Rows)
	assert.Equal(t, model1.SortAsc, tv.State().SortDirection)

	tv.SetSort("price")
	assert.Equal(t, model1.SortDesc, tv.State().SortDirection)
	assert.Equal(t, []string{"Mocha", "Latte", "Americano"}, names(tv.View().Rows))

	tv.SetSort("price")
	assert.Equal(t, model1.SortAsc, tv.State().SortDirection)
	assert.Equal(t, asc, names(tv.View().Rows))

	tv.SetSort("price")
	tv.SetSort("name")
	assert.Equal(t, "name", tv.State().SortColumn)
	assert.Equal(t, model1.SortAsc, tv.State().SortDirection)
	assert.Equal(t, []string{"Americano", "Latte", "Mocha"}, names(tv.View().Rows))
}

func TestTabularView_SetSortIgnored(t *testing.T) {
	uu := map[string]struct {
		cols model1.Columns
		opts []model1.Option
		key  string
	}{
		"unknown": {
			cols: drinkColumns(),
			key:  "nope",
		},
		"not-sortable": {
			cols: model1.Columns{{Key: "name"}, {Key: "price", NoSort: true}},
			key:  "price",
		},
		"sort-disabled": {
			cols: drinkColumns(),
			opts: []model1.Option{model1.WithSort(false)},
			key:  "price",
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			tv, err := model1.NewTabularView(u.cols, drinks(), u.opts...)
			require.NoError(t, err)

			before := tv.View()
			tv.SetSort(u.key)
			assert.Equal(t, before, tv.View())
			assert.Empty(t, tv.State().SortColumn)
		})
	}
}

func TestTabularView_StableSort(t *testing.T) {
	rows := model1.Rows{
		{"_id": "1", "name": "a", "size": "M"},
		{"_id": "2", "name": "b", "size": "S"},
		{"_id": "3", "name": "c", "size": "M"},
		{"_id": "4", "name": "d", "size": "S"},
		{"_id": "5", "name": "e", "size": "M"},
	}
	tv, err := model1.NewTabularView(model1.Columns{{Key: "name"}, {Key: "size"}}, rows)
	require.NoError(t, err)

	tv.SetSort("size")
	assert.Equal(t, []string{"a", "c", "e", "b", "d"}, names(tv.View().Rows))

	tv.SetSort("size")
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, names(tv.View().Rows))
}

func TestTabularView_SortNilsLowest(t *testing.T) {
	rows := model1.Rows{
		{"_id": "1", "name": "a", "price": 2.0},
		{"_id": "2", "name": "b"},
		{"_id": "3", "name": "c", "price": nil},
		{"_id": "4", "name": "d", "price": 1},
	}
	tv, err := model1.NewTabularView(drinkColumns(), rows)
	require.NoError(t, err)

	tv.SetSort("price")
	assert.Equal(t, []string{"b", "c", "d", "a"}, names(tv.View().Rows))
}

func TestTabularView_SortNaN(t *testing.T) {
	rows := model1.Rows{
		{"_id": "1", "name": "a", "price": 3.0},
		{"_id": "2", "name": "b", "price": 1.0},
		{"_id": "3", "name": "c", "price": math.NaN()},
		{"_id": "4", "name": "d", "price": 2.0},
		{"_id": "5", "name": "e", "price": 0.5},
		{"_id": "6", "name": "f"},
	}
	tv, err := model1.NewTabularView(drinkColumns(), rows)
	require.NoError(t, err)

	tv.SetSort("price")
	assert.Equal(t, []string{"f", "c", "e", "b", "d", "a"}, names(tv.View().Rows))
	tv.SetSort("price")
	assert.Equal(t, []string{"a", "d", "b", "e", "c", "f"}, names(tv.View().Rows))
}

func TestTabularView_NaturalSort(t *testing.T) {
	rows := model1.Rows{
		{"_id": "1", "name": "ORD-10"},
		{"_id": "2", "name": "ORD-9"},
		{"_id": "3", "name": "ORD-100"},
	}
	cols := model1.Columns{{Key: "name"}}

	plain, err := model1.NewTabularView(cols, rows)
	require.NoError(t, err)
	plain.SetSort("name")
	assert.Equal(t, []string{"ORD-10", "ORD-100", "ORD-9"}, names(plain.View().Rows))

	natural, err := model1.NewTabularView(cols, rows, model1.WithNaturalSort(true))
	require.NoError(t, err)
	natural.SetSort("name")
	assert.Equal(t, []string{"ORD-9", "ORD-10", "ORD-100"}, names(natural.View().Rows))
}

func TestTabularView_SortBy(t *testing.T) {
	tv, err := model1.NewTabularView(drinkColumns(), drinks())
	require.NoError(t, err)

	tv.SortBy("price", model1.SortDesc)
	assert.Equal(t, []string{"Mocha", "Latte", "Americano"}, names(tv.View().Rows))

	tv.SortBy("bozo", model1.SortAsc)
	assert.Equal(t, "price", tv.State().SortColumn)
}

func TestTabularView_GoToPageClamps(t *testing.T) {
	tv, err := model1.NewTabularView(model1.Columns{{Key: "name"}}, numbered(25), model1.WithPageSize(10))
	require.NoError(t, err)
	require.Equal(t, 3, tv.View().TotalPages)

	uu := map[string]struct {
		page, want int
	}{
		"zero":     {page: 0, want: 1},
		"negative": {page: -4, want: 1},
		"first":    {page: 1, want: 1},
		"last":     {page: 3, want: 3},
		"overflow": {page: 9999, want: 3},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.NotPanics(t, func() { tv.GoToPage(u.page) })
			v := tv.View()
			assert.Equal(t, u.want, v.CurrentPage)
			assert.NotEmpty(t, v.Rows)
		})
	}

	tv.GoToPage(3)
	assert.Len(t, tv.View().Rows, 5)
}

func TestTabularView_NextPrevPage(t *testing.T) {
	tv, err := model1.NewTabularView(model1.Columns{{Key: "name"}}, numbered(5), model1.WithPageSize(2))
	require.NoError(t, err)

	tv.PrevPage()
	assert.Equal(t, 1, tv.State().CurrentPage)
	tv.NextPage()
	tv.NextPage()
	tv.NextPage()
	assert.Equal(t, 3, tv.State().CurrentPage)
	tv.PrevPage()
	assert.Equal(t, 2, tv.State().CurrentPage)
}

func TestTabularView_NoPagination(t *testing.T) {
	tv, err := model1.NewTabularView(model1.Columns{{Key: "name"}}, numbered(25), model1.WithPagination(false), model1.WithPageSize(5))
	require.NoError(t, err)

	tv.GoToPage(4)
	v := tv.View()
	assert.Equal(t, 1, v.TotalPages)
	assert.Equal(t, 1, v.CurrentPage)
	assert.Len(t, v.Rows, 25)
}

func TestTabularView_UpdateData(t *testing.T) {
	tv, err := model1.NewTabularView(model1.Columns{{Key: "name"}, {Key: "qty"}}, numbered(30), model1.WithPageSize(10))
	require.NoError(t, err)

	tv.SetSort("qty")
	tv.SetSearchTerm("item")
	tv.GoToPage(3)
	require.Equal(t, 3, tv.State().CurrentPage)

	tv.UpdateData(numbered(12))
	s := tv.State()
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, "item", s.SearchTerm)
	assert.Equal(t, "qty", s.SortColumn)
	assert.Equal(t, 12, tv.View().TotalMatching)
}

func TestTabularView_UpdateDataEmpty(t *testing.T) {
	tv, err := model1.NewTabularView(drinkColumns(), drinks())
	require.NoError(t, err)

	assert.NotPanics(t, func() { tv.UpdateData(model1.Rows{}) })
	v := tv.View()
	assert.Empty(t, v.Rows)
	assert.True(t, v.Empty())
	assert.Equal(t, 1, v.TotalPages)
	assert.Equal(t, 1, v.CurrentPage)
	assert.Equal(t, 0, v.TotalMatching)

	tv.UpdateData(nil)
	assert.Equal(t, 1, tv.View().TotalPages)
}

func TestTabularView_UpdateDataDoesNotAlias(t *testing.T) {
	rows := drinks()
	tv, err := model1.NewTabularView(drinkColumns(), nil)
	require.NoError(t, err)

	tv.UpdateData(rows)
	rows[0] = model1.Row{"_id": "x", "name": "Zzz"}
	assert.Equal(t, "Latte", tv.View().Rows[0].String("name"))
}

func TestTabularView_ViewIdempotent(t *testing.T) {
	tv, err := model1.NewTabularView(drinkColumns(), drinks(), model1.WithPageSize(2))
	require.NoError(t, err)
	tv.SetSort("name")
	tv.SetSearchTerm("a")

	v1, v2 := tv.View(), tv.View()
	assert.Equal(t, v1, v2)
	assert.Equal(t, tv.State(), v1.State)
}

func TestTabularView_Cells(t *testing.T) {
	cols := model1.Columns{
		{Key: "name", Render: func(v any, r model1.Row) string {
			return fmt.Sprintf("%s#%s", model1.Stringify(v), r.ID())
		}},
		{Key: "price", Type: model1.ColumnCurrency},
		{Key: "when", Type: model1.ColumnDate},
		{Key: "status", Type: model1.ColumnStatus},
		{Key: "notes"},
	}
	rows := model1.Rows{
		{"_id": "1", "name": "Latte", "price": 3.5, "when": "today", "status": "ready", "notes": ""},
		{"_id": "2", "name": "Mocha"},
	}
	tv, err := model1.NewTabularView(cols, rows, model1.WithFormatter(fakeFormatter{}))
	require.NoError(t, err)

	v := tv.View()
	assert.Equal(t, []string{"Latte#1", "$3.5", "D(today)", "S(ready)", "-"}, v.Cells[0])
	assert.Equal(t, []string{"Mocha#2", "-", "-", "-", "-"}, v.Cells[1])
	assert.Equal(t, "$3.5", tv.CellText(rows[0], "price"))
	assert.Equal(t, "-", tv.CellText(rows[0], "bozo"))
}

func TestTabularView_Select(t *testing.T) {
	var picked []model1.Row
	tv, err := model1.NewTabularView(drinkColumns(), drinks(),
		model1.WithPageSize(2),
		model1.WithRowSelect(func(r model1.Row) { picked = append(picked, r) }),
	)
	require.NoError(t, err)

	tv.SetSort("price")
	tv.GoToPage(2)
	row, ok := tv.Select(0)
	require.True(t, ok)
	assert.Equal(t, "Mocha", row.String("name"))
	require.Len(t, picked, 1)
	assert.Equal(t, 4.0, picked[0]["price"])

	_, ok = tv.Select(1)
	assert.False(t, ok)
	_, ok = tv.Select(-1)
	assert.False(t, ok)
	assert.Len(t, picked, 1)

	row, ok = tv.SelectByID("3")
	require.True(t, ok)
	assert.Equal(t, "Americano", row.String("name"))
	assert.Len(t, picked, 2)

	_, ok = tv.SelectByID("bozo")
	assert.False(t, ok)
}

func TestTabularView_SetPageSize(t *testing.T) {
	tv, err := model1.NewTabularView(model1.Columns{{Key: "name"}}, numbered(20), model1.WithPageSize(5))
	require.NoError(t, err)

	tv.GoToPage(4)
	require.NoError(t, tv.SetPageSize(10))
	v := tv.View()
	assert.Equal(t, 2, v.TotalPages)
	assert.Equal(t, 2, v.CurrentPage)

	err = tv.SetPageSize(0)
	assert.ErrorIs(t, err, model1.ErrConfig)
	assert.Equal(t, 10, tv.Options().PageSize)
}

func TestTabularView_EventsAndDelta(t *testing.T) {
	tv, err := model1.NewTabularView(drinkColumns(), drinks())
	require.NoError(t, err)
	assert.Equal(t, 3, tv.Events().Count(model1.EventUnchanged))

	next := model1.Rows{
		{"_id": "1", "name": "Latte", "price": 3.8},
		{"_id": "2", "name": "Mocha", "price": 4.0},
		{"_id": "4", "name": "Cortado", "price": 3.0},
	}
	tv.UpdateData(next)

	ee := tv.Events()
	assert.Equal(t, 1, ee.Count(model1.EventUpdate))
	assert.Equal(t, 1, ee.Count(model1.EventAdd))
	assert.Equal(t, 1, ee.Count(model1.EventUnchanged))
	assert.Equal(t, []model1.ResEvent{model1.EventUpdate, model1.EventUnchanged, model1.EventAdd}, tv.View().Kinds)

	patch, err := tv.Delta("1")
	require.NoError(t, err)
	require.Len(t, patch, 1)
	assert.Equal(t, "/price", patch[0].Path)

	patch, err = tv.Delta("2")
	require.NoError(t, err)
	assert.Empty(t, patch)

	patch, err = tv.Delta("4")
	require.NoError(t, err)
	assert.NotEmpty(t, patch)

	_, err = tv.Delta("3")
	assert.ErrorIs(t, err, model1.ErrNoRow)
}

type fakeFormatter struct{}

func (fakeFormatter) Price(v any) string  { return "$" + model1.Stringify(v) }
func (fakeFormatter) Date(v any) string   { return "D(" + model1.Stringify(v) + ")" }
func (fakeFormatter) Status(v any) string { return "S(" + model1.Stringify(v) + ")" }
