package employee

// Employee is a directory entry. Index is the stable position in the
// directory and seeds the attendance synthesizer; it never depends on
// search filtering.
type Employee struct {
	ID         string
	Name       string
	Department string
	Location   string
	Index      int
}
