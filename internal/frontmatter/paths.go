package frontmatter

import (
	"strconv"
	"strings"
)

// pathSegment is one step of a dot/bracket extraction path: either a map key
// or an array index.
type pathSegment struct {
	key   string
	index int
	isIdx bool
}

// parsePath splits an extraction path into segments. Mixed dot and bracket
// notation is supported in one string, e.g. "columns[2].content" or
// "nested[0].deep[1].value".
func parsePath(path string) []pathSegment {
	var segments []pathSegment
	for _, part := range strings.Split(path, ".") {
		for part != "" {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				segments = append(segments, pathSegment{key: part})
				break
			}
			if open > 0 {
				segments = append(segments, pathSegment{key: part[:open]})
			}
			close := strings.IndexByte(part, ']')
			if close < open {
				// Unbalanced bracket: keep the remainder as a literal key.
				segments = append(segments, pathSegment{key: part[open:]})
				break
			}
			idx, err := strconv.Atoi(part[open+1 : close])
			if err != nil {
				segments = append(segments, pathSegment{key: part[open+1 : close]})
			} else {
				segments = append(segments, pathSegment{index: idx, isIdx: true})
			}
			part = part[close+1:]
		}
	}
	return segments
}

// extract walks data along the path. A missing key or out-of-range index
// yields (nil, false), never an error, so optional structure parts simply
// omit their target fields.
func extract(data interface{}, path string) (interface{}, bool) {
	current := data
	for _, seg := range parsePath(path) {
		if seg.isIdx {
			list, ok := toList(current)
			if !ok || seg.index < 0 || seg.index >= len(list) {
				return nil, false
			}
			current = list[seg.index]
			continue
		}
		obj, ok := toMap(current)
		if !ok {
			return nil, false
		}
		value, ok := obj[seg.key]
		if !ok {
			return nil, false
		}
		current = value
	}
	return current, true
}

// toMap normalizes the map shapes yaml.v3 and encoding/json produce.
func toMap(value interface{}) (map[string]interface{}, bool) {
	switch m := value.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, v := range m {
			if ks, ok := k.(string); ok {
				out[ks] = v
			}
		}
		return out, true
	}
	return nil, false
}

func toList(value interface{}) ([]interface{}, bool) {
	list, ok := value.([]interface{})
	return list, ok
}
