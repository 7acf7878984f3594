// Package query remembers transcript searches and suggests them again.
package query

import (
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/srtdeck/srtdeck/filesystem"
	"github.com/srtdeck/srtdeck/key"
	"github.com/srtdeck/srtdeck/where"
	"golang.org/x/exp/slices"
)

type queryRecord struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

var (
	mu         sync.Mutex
	cacherOnce sync.Once
	cacher     *gache.Cache[map[string]*queryRecord]
)

func records() *gache.Cache[map[string]*queryRecord] {
	cacherOnce.Do(func() {
		cacher = gache.New[map[string]*queryRecord](
			&gache.Options{
				Path:       where.Queries(),
				FileSystem: &filesystem.GacheFs{},
			},
		)
	})
	return cacher
}

// Remember records a search query or increases its rank by weight.
func Remember(q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	cached, expired, err := records().Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*queryRecord)
	}

	if record, ok := cached[q]; ok {
		record.Rank += weight
	} else {
		cached[q] = &queryRecord{Rank: weight, Query: q}
	}

	return records().Set(cached)
}

// Suggest returns the best remembered query for a partial input.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns the remembered queries fuzzily matching the partial input, highest rank first.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	mu.Lock()
	cached, expired, err := records().Get()
	if err != nil || expired || cached == nil {
		mu.Unlock()
		return []string{}
	}

	matching := lo.Filter(lo.Values(cached), func(record *queryRecord, _ int) bool {
		return fuzzy.Match(q, record.Query)
	})
	mu.Unlock()

	slices.SortFunc(matching, func(a, b *queryRecord) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.Query, b.Query)
	})

	return lo.Map(matching, func(r *queryRecord, _ int) string {
		return r.Query
	})
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
