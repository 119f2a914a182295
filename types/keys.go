package types

/*
NamePair stores two entity names in ascending order so that it can be used as a
map key for an unordered pair. A pair built from ["b","a"] is stored as ["a","b"].
*/
type NamePair [2]string

func NewNamePair(a, b string) (np NamePair) {
	if a <= b {
		return NamePair{a, b}
	}
	return NamePair{b, a}
}

func (np NamePair) Contains(name string) bool {
	return np[0] == name || np[1] == name
}

// Other returns the member of the pair that is not name
func (np NamePair) Other(name string) string {
	if np[0] == name {
		return np[1]
	}
	return np[0]
}

func (np NamePair) String() string {
	return np[0] + ":" + np[1]
}
