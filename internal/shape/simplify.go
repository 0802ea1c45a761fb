package shape

// Strip removes the named keys from every object in a decoded JSON
// value, recursing through nested objects and arrays. The input is not
// modified.
func Strip(v any, keys ...string) any {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	return strip(v, drop)
}

func strip(v any, drop map[string]struct{}) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if _, skip := drop[k]; skip {
				continue
			}
			out[k] = strip(val, drop)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = strip(val, drop)
		}
		return out
	default:
		return v
	}
}
