package score

// Vectors accumulates the values of objects over multiple tables.
// The values of an object are concatenated in the order in which the
// tables are added.  Vectors keeps the order in which the objects
// were first seen.
type Vectors struct {
	names []string
	vecs  map[string][]float64
}

// NewVectors returns a new, empty accumulator.
func NewVectors() *Vectors {
	return &Vectors{vecs: make(map[string][]float64)}
}

// Add appends the rows of the table to the according object vectors
// and returns the number of values that were added.
func (v *Vectors) Add(t Table) int {
	var n int
	for _, row := range t {
		vec, ok := v.vecs[row.Name]
		if !ok {
			v.names = append(v.names, row.Name)
		}
		v.vecs[row.Name] = append(vec, row.Values...)
		n += len(row.Values)
	}
	return n
}

// Get returns the vector of the given object.
func (v *Vectors) Get(name string) ([]float64, bool) {
	vec, ok := v.vecs[name]
	return vec, ok
}

// Names returns the object names in insertion order.
func (v *Vectors) Names() []string {
	return v.names
}

// Len returns the number of objects.
func (v *Vectors) Len() int {
	return len(v.names)
}
