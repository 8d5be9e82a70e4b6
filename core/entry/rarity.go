package entry

import (
	"sort"

	"nft-toolkit/core/utils"
)

// Rarity maps field name → value key → number of entries holding that value.
type Rarity map[string]map[string]int

// ValueCount is one row of a rarity report.
type ValueCount struct {
	Value string  `json:"value"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// RarityKey is the map key used for a raw field value. Values are compared
// by identity of their string form; nil becomes "null".
func RarityKey(v any) string {
	if v == nil {
		return "null"
	}
	return utils.ToString(v)
}

// DetermineRarity counts the values of every field across all entries.
func DetermineRarity(entries []Entry) Rarity {
	counts := make(Rarity)
	for _, e := range entries {
		for field, value := range e.Fields {
			values, ok := counts[field]
			if !ok {
				values = make(map[string]int)
				counts[field] = values
			}
			values[RarityKey(value)]++
		}
	}
	return counts
}

// Fields returns the field names of the report, sorted.
func (r Rarity) Fields() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ranked lists the values of field from rarest to most common. Share is the
// fraction of all counted occurrences of that field. Ties are ordered by value.
func (r Rarity) Ranked(field string) []ValueCount {
	values := r[field]
	total := 0
	for _, n := range values {
		total += n
	}

	ranked := make([]ValueCount, 0, len(values))
	for v, n := range values {
		vc := ValueCount{Value: v, Count: n}
		if total > 0 {
			vc.Share = float64(n) / float64(total)
		}
		ranked = append(ranked, vc)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count < ranked[j].Count
		}
		return ranked[i].Value < ranked[j].Value
	})
	return ranked
}
