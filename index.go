package md2site

import (
	"cmp"
	"slices"
)

// YearGroup holds the articles published in one calendar year.
type YearGroup struct {
	Year     int
	Articles []*Entry
}

// YearIndex is the chronological view of all published articles, rebuilt
// from scratch on every build and read-only afterwards.
type YearIndex struct {
	// Articles sorted by date, newest first; equal dates by URL.
	Articles []*Entry

	// Years newest first, each with its articles in the same order.
	Years []YearGroup
}

// NewYearIndex sorts and groups articles. Every article must carry a date;
// the build guarantees this before any index is made. The input slice is
// not modified.
func NewYearIndex(articles []*Entry) *YearIndex {
	sorted := slices.Clone(articles)
	slices.SortStableFunc(sorted, compareArticles)

	idx := &YearIndex{Articles: sorted}
	for _, a := range sorted {
		year := a.Meta.Date.Year
		if n := len(idx.Years); n > 0 && idx.Years[n-1].Year == year {
			idx.Years[n-1].Articles = append(idx.Years[n-1].Articles, a)
			continue
		}
		idx.Years = append(idx.Years, YearGroup{Year: year, Articles: []*Entry{a}})
	}
	return idx
}

// compareArticles orders by date descending, then URL ascending.
func compareArticles(a, b *Entry) int {
	if c := b.Meta.Date.Compare(*a.Meta.Date); c != 0 {
		return c
	}
	return cmp.Compare(a.URL, b.URL)
}

// Len returns the number of indexed articles.
func (x *YearIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.Articles)
}

// context returns the "articles" and "year_articles" template values.
func (x *YearIndex) context() ([]map[string]any, []map[string]any) {
	articles := make([]map[string]any, 0, x.Len())
	byEntry := make(map[*Entry]map[string]any, x.Len())
	for _, a := range x.Articles {
		c := a.Context()
		byEntry[a] = c
		articles = append(articles, c)
	}

	years := make([]map[string]any, 0, len(x.Years))
	for _, g := range x.Years {
		list := make([]map[string]any, 0, len(g.Articles))
		for _, a := range g.Articles {
			list = append(list, byEntry[a])
		}
		years = append(years, map[string]any{"year": g.Year, "articles": list})
	}
	return articles, years
}
