package domain

// Genre is a static reference entry seeded at schema-creation time.
type Genre struct {
	ID   int64
	Name string
}

// Equal reports whether two genres match on both id and name.
func (g Genre) Equal(other Genre) bool {
	return g.ID == other.ID && g.Name == other.Name
}
