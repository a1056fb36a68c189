package nfa

// Entry is one registered top-level sub-automaton: its start state id
// and whether its individual verdict is inverted before the overall
// AND-of-XORs combination across all entries is taken.
type Entry struct {
	Start  int
	Invert bool
}

// composer is the bounded registry CONCAT/NOTREGEX nodes populate,
// grounded on lib.h's startStates/invertFlags arrays.
type composer struct {
	entries []Entry
}

func (c *composer) register(start int, invert bool) error {
	if len(c.entries) >= maxSubNFAs {
		return ErrCapacityExceeded
	}
	c.entries = append(c.entries, Entry{Start: start, Invert: invert})
	return nil
}
