// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package model1

// PageCount returns the number of pages for n rows. It is never below 1.
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// ClampPage brings page into [1, total].
func ClampPage(page, total int) int {
	if total < 1 {
		total = 1
	}
	switch {
	case page < 1:
		return 1
	case page > total:
		return total
	}
	return page
}

// PageBounds returns the [start, end) slice bounds of a page over n rows.
func PageBounds(page, size, n int) (int, int) {
	if size <= 0 || n <= 0 {
		return 0, 0
	}
	start := (page - 1) * size
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	end := start + size
	if end > n {
		end = n
	}
	return start, end
}
