package domain

// Actor is a person appearing in movies. Names are not unique; two actors may
// share a name and still be distinct rows.
type Actor struct {
	ID   int64
	Name string
}
