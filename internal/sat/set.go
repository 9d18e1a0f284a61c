package sat

// resetSet represents a set of variable IDs in [0, N) that can be cleared
// in constant time. It backs the "seen" marks used by conflict analysis to
// avoid resolving the same variable twice.
type resetSet struct {
	addedAt        []uint32
	addedTimestamp uint32
}

// contains returns true if v is currently in the set.
func (rs *resetSet) contains(v int) bool {
	return rs.addedAt[v] == rs.addedTimestamp
}

// add inserts v into the set.
func (rs *resetSet) add(v int) {
	rs.addedAt[v] = rs.addedTimestamp
}

// clear empties the set in O(1), short of the rare timestamp overflow.
func (rs *resetSet) clear() {
	rs.addedTimestamp++
	if rs.addedTimestamp == 0 { // overflow, back to a clean slate
		rs.addedTimestamp = 1
		for i := range rs.addedAt {
			rs.addedAt[i] = 0
		}
	}
}

// grow extends the set's capacity by one slot, for a newly added variable.
func (rs *resetSet) grow() {
	rs.addedAt = append(rs.addedAt, 0)
}
