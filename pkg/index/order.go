package index

import (
	"sort"

	"github.com/fulmenhq/folio/pkg/content"
)

const (
	defaultOrder = 9999
	defaultYear  = 0
)

// sortKey is (not featured, category, order, -year, title).
type sortKey struct {
	notFeatured bool
	category    string
	order       int64
	negYear     int64
	title       string
}

func keyOf(rec *content.Meta) sortKey {
	k := sortKey{notFeatured: true, order: defaultOrder, negYear: -defaultYear}
	if v, ok := rec.Get("featured"); ok {
		if b, isBool := v.(bool); isBool && b {
			k.notFeatured = false
		}
	}
	k.category, _ = rec.String("category")
	if n, ok := rec.Int("order"); ok {
		k.order = n
	}
	if n, ok := rec.Int("year"); ok {
		k.negYear = -n
	}
	k.title, _ = rec.String("title")
	return k
}

func (a sortKey) less(b sortKey) bool {
	if a.notFeatured != b.notFeatured {
		return !a.notFeatured
	}
	if a.category != b.category {
		return a.category < b.category
	}
	if a.order != b.order {
		return a.order < b.order
	}
	if a.negYear != b.negYear {
		return a.negYear < b.negYear
	}
	return a.title < b.title
}

// Sort orders records featured first, then by category, order (missing 9999),
// year descending (missing 0) and title. Equal keys keep traversal order.
func Sort(records []*content.Meta) {
	keys := make(map[*content.Meta]sortKey, len(records))
	for _, r := range records {
		keys[r] = keyOf(r)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return keys[records[i]].less(keys[records[j]])
	})
}
