package cmdline

import (
	"fmt"
	"strings"
)

// Format substitutes values into the %s placeholders of template.
//
// Array-valued arguments ([]string or []any) are expanded element by
// element: each array is consumed completely, in element order, before the
// next argument is touched (column-major over the argument table). %%
// emits a literal percent. The flattened value count must match the
// placeholder count exactly, and %s is the only verb recognized; anything
// else is a formatting error.
func Format(template string, args []any) (string, error) {
	vals := flatten(args)
	var b strings.Builder
	next := 0
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(template) {
			return "", fmt.Errorf("template %q ends with a bare %%", template)
		}
		switch template[i] {
		case '%':
			b.WriteByte('%')
		case 's':
			if next >= len(vals) {
				return "", fmt.Errorf(
					"template %q wants more than the %d value(s) given",
					template, len(vals))
			}
			b.WriteString(vals[next])
			next++
		default:
			return "", fmt.Errorf(
				"unsupported placeholder %%%c in template %q", template[i], template)
		}
	}
	if next != len(vals) {
		return "", fmt.Errorf(
			"template %q consumed only %d of %d value(s)", template, next, len(vals))
	}
	return b.String(), nil
}

// flatten expands array values in place, preserving argument order.
func flatten(args []any) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		switch v := a.(type) {
		case string:
			out = append(out, v)
		case []string:
			out = append(out, v...)
		case []any:
			for _, e := range v {
				out = append(out, fmt.Sprint(e))
			}
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}
