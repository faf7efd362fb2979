package composer

// Merge combines two manifest documents. Values present only in one input
// are kept. When both inputs hold a value for the same key: two maps merge
// recursively, two lists concatenate (base entries first, duplicates kept
// verbatim), and anything else resolves in favor of the overlay, including
// type mismatches. Neither input is mutated.
func Merge(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = clone(v)
	}
	for k, ov := range overlay {
		bv, exists := out[k]
		if !exists {
			out[k] = clone(ov)
			continue
		}
		out[k] = mergeValue(bv, ov)
	}
	return out
}

func mergeValue(base, overlay any) any {
	if bm, ok := base.(map[string]any); ok {
		if om, ok := overlay.(map[string]any); ok {
			return Merge(bm, om)
		}
	}
	if bl, ok := base.([]any); ok {
		if ol, ok := overlay.([]any); ok {
			merged := make([]any, 0, len(bl)+len(ol))
			merged = append(merged, bl...)
			for _, v := range ol {
				merged = append(merged, clone(v))
			}
			return merged
		}
	}
	return clone(overlay)
}

func clone(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[k] = clone(inner)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, inner := range val {
			a[i] = clone(inner)
		}
		return a
	default:
		return val
	}
}
