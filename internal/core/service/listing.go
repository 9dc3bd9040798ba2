package service

import (
	"sort"
	"strings"
)

// defaultPageSize is the page length list controllers fall back to when the
// caller does not specify one.
const defaultPageSize = 10

// filterItems keeps the items matching the free-text query. The query is
// lowercased once; match receives each item with the prepared needle. An
// empty query keeps everything.
func filterItems[T any](items []T, query string, match func(item T, needle string) bool) []T {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if match(it, needle) {
			out = append(out, it)
		}
	}
	return out
}

// paginate returns the requested window plus the pre-pagination total. Pages
// are 0-based; out-of-range pages clamp to the last page rather than
// returning nothing.
func paginate[T any](items []T, page, pageSize int) (window []T, total, clampedPage int) {
	total = len(items)
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if page < 0 {
		page = 0
	}

	lastPage := 0
	if total > 0 {
		lastPage = (total - 1) / pageSize
	}
	if page > lastPage {
		page = lastPage
	}

	start := page * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return items[start:end], total, page
}

// containsFold reports whether any of the haystacks contains the lowercased
// needle.
func containsFold(needle string, haystacks ...string) bool {
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

// distinctSorted returns the sorted set of non-empty values.
func distinctSorted(values []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
