package rewrite

// stringRewriter is invoked for every string value the walk visits; when
// pathField is true the string is a bare rootPath-style path, otherwise it
// is checked by the callee for being a file:// URI. It returns the
// replacement string.
type stringRewriter func(s string, pathField bool) string

// walk recurses over the generic JSON tree produced by encoding/json
// (map[string]interface{}, []interface{}, and scalars), rewriting string
// leaves in place via fn. It is structural, not method-aware: the same
// walk runs over every message regardless of which LSP method it carries.
//
// Two keys are never recursed into: "text" and "contentChanges" carry
// document contents, not paths. The key "rootPath" is special-cased to
// mark its string value as a bare path rather than a file:// URI.
func walk(node interface{}, fn stringRewriter) interface{} {
	switch v := node.(type) {
	case map[string]interface{}:
		for k, val := range v {
			if k == "text" || k == "contentChanges" {
				continue
			}
			if k == "rootPath" {
				if s, ok := val.(string); ok {
					v[k] = fn(s, true)
					continue
				}
			}
			v[k] = walk(val, fn)
		}
		return v
	case []interface{}:
		for i := range v {
			v[i] = walk(v[i], fn)
		}
		return v
	case string:
		return fn(v, false)
	default:
		return v
	}
}
