package clusterlist

import "strings"

// Filter is an inclusion set of cluster identifiers. An empty Filter
// allows every cluster.
type Filter map[string]struct{}

// ParseFilter parses a --limit-cluster value into a Filter. The raw
// value may be a plain comma list ("a,b,c") or wrapped in braces
// ("{a,b,c}"); braces and all whitespace are stripped before splitting.
// Empty entries are discarded, so ",," parses to an empty Filter.
func ParseFilter(raw string) Filter {
	raw = strings.NewReplacer("{", "", "}", "", " ", "", "\t", "").Replace(raw)

	filter := Filter{}
	for _, entry := range strings.Split(raw, ",") {
		if entry == "" {
			continue
		}
		filter[entry] = struct{}{}
	}
	return filter
}

// Allows reports whether the cluster should be scanned. Membership is a
// case-sensitive exact match.
func (f Filter) Allows(cluster string) bool {
	if len(f) == 0 {
		return true
	}
	_, ok := f[cluster]
	return ok
}
