package report

import "strings"

// UnknownContext is written when the active context name cannot be
// resolved after a successful login.
const UnknownContext = "(unknown)"

// PodRecord is one pod running with hostNetwork enabled. Records are
// built per pod returned by the cluster-wide query and serialized
// immediately; they are never mutated after creation.
type PodRecord struct {
	Cluster     string
	Context     string
	Namespace   string
	Pod         string
	Node        string
	HostNetwork bool
	OwnerKind   string
	OwnerName   string
}

// sanitize replaces the CSV field separator inside a value so every row
// keeps exactly eight columns.
func sanitize(field string) string {
	return strings.ReplaceAll(field, ",", " _")
}
