package setupfile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var pyEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Quote renders s as a single-quoted Python string literal.
func Quote(s string) string {
	return "'" + pyEscaper.Replace(s) + "'"
}

// Literal renders v as a Python expression. Supported values are nil, bool,
// int, string, []string, []any, map[string][]string and map[string]any; map
// keys are emitted in sorted order. Anything else is rendered as the string
// form of its Go value.
func Literal(v any) string {
	switch v := v.(type) {
	case nil:
		return "None"
	case bool:
		if v {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(v)
	case string:
		return Quote(v)
	case []string:
		items := make([]string, len(v))
		for i, s := range v {
			items[i] = Quote(s)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case []any:
		items := make([]string, len(v))
		for i, x := range v {
			items[i] = Literal(x)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string][]string:
		m := make(map[string]any, len(v))
		for k, x := range v {
			m[k] = x
		}
		return Literal(m)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]string, len(keys))
		for i, k := range keys {
			items[i] = Quote(k) + ": " + Literal(v[k])
		}
		return "{" + strings.Join(items, ", ") + "}"
	}
	return Quote(fmt.Sprint(v))
}
