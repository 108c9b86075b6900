package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var headingCaser = cases.Upper(language.English)

// writeTable renders any JSON-serializable value as a two-column
// FIELD/VALUE table, flattening nested structures into dotted paths and
// slice indices ("Items[0].Name").
func writeTable(out io.Writer, v any) error {
	// JSON round-trip gives a uniform tree respecting struct tags.
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return err
	}

	rows := map[string]string{}
	flatten("", tree, rows)

	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", headingCaser.String("field"), headingCaser.String("value"))
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, rows[k])
	}
	return tw.Flush()
}

func flatten(prefix string, node any, rows map[string]string) {
	switch val := node.(type) {
	case map[string]any:
		for k, child := range val {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, child, rows)
		}
	case []any:
		for i, child := range val {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), child, rows)
		}
	case nil:
		rows[prefix] = ""
	default:
		rows[prefix] = fmt.Sprintf("%v", val)
	}
}
