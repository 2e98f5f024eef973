package store

// index is the in-memory view of a store. It is not safe for concurrent use;
// mappingStore guards it.
type index struct {
	mode    Mode
	values  map[string][]string
	members map[string]map[string]struct{}
}

func newIndex(mode Mode) *index {
	return &index{
		mode:    mode,
		values:  make(map[string][]string),
		members: make(map[string]map[string]struct{}),
	}
}

// add records the pair and reports whether the index changed.
func (i *index) add(key, value string) bool {
	if i.mode == ModeSingle {
		if cur, ok := i.values[key]; ok && cur[0] == value {
			return false
		}
		i.values[key] = []string{value}
		return true
	}

	set, ok := i.members[key]
	if !ok {
		set = make(map[string]struct{})
		i.members[key] = set
	}
	if _, ok = set[value]; ok {
		return false
	}
	set[value] = struct{}{}
	i.values[key] = append(i.values[key], value)
	return true
}

func (i *index) get(key string) (string, bool) {
	vals, ok := i.values[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func (i *index) has(key, value string) bool {
	if i.mode == ModeSingle {
		v, ok := i.get(key)
		return ok && v == value
	}
	_, ok := i.members[key][value]
	return ok
}

func (i *index) snapshot() map[string][]string {
	out := make(map[string][]string, len(i.values))
	for k, v := range i.values {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func (i *index) len() int {
	return len(i.values)
}
