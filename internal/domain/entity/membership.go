package entity

// ToggleMembership removes id from set when present, appends it otherwise.
// It returns the new set and whether id is a member afterwards. Duplicates of
// id already in set are all removed.
func ToggleMembership(set []string, id string) ([]string, bool) {
	if contains(set, id) {
		out := make([]string, 0, len(set))
		for _, v := range set {
			if v != id {
				out = append(out, v)
			}
		}
		return out, false
	}
	return append(set, id), true
}

func contains(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

// adjustCounter applies one toggle step to a cached counter, floored at zero.
func adjustCounter(n int, added bool) int {
	if added {
		return n + 1
	}
	if n <= 0 {
		return 0
	}
	return n - 1
}
