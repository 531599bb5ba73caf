package a11yeval

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultObjects lists the accessibility objects that are labeled in
// the study.
var DefaultObjects = []string{
	"Accent Paving", "Barrier Post", "Barrier Stump", "Bench", "Bicycle", "Bridge", "Building", "Bus", "Bus Stop",
	"Car", "Chair", "Closed Sidewalk", "Counter", "Crosswalk", "Curb", "Dog", "Driveway(flat)", "Elevator",
	"Escalator", "Fence", "Fire hydrant", "Flush Door", "Foldout Sign", "Fountain", "Gate", "Guide dog", "Gutter",
	"Hose", "Lamp Post", "Mail box", "Maintenance Vehicle", "Motorcycle", "Parallel Parking Spot", "Paratransit vehicle",
	"Pedestrian Crossing", "Person", "Person with a disability", "Pillar", "Pole", "Puddle", "Push button", "Railing",
	"Raised Entryway", "Retaining Wall", "Road", "Road Divider", "Road Shoulder", "Roadside Parking", "Sidewalk",
	"Sidewalk pits", "Sign", "Sign Post", "Sloped Driveway", "Slopped Curb", "Snow", "Stairs", "Stop sign",
	"Street Vendor", "Table", "Tactile Paving", "Traffic Signals", "Train Platform", "Train Tracks", "Trash bins",
	"Trash on roads", "Tree", "Turnstile", "Uncontrolled Crossing", "Uneven Stairs", "Unpaved Road", "Unpaved Sidewalk",
	"Vegetation", "Wall", "Water leakage", "Water Pipes", "Wet surface", "Wheelchair", "White Cane", "Yard Waste",
}

// NormalizeName returns the canonical form of an object name: NFC
// normalized, trimmed and lower-cased.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(name)))
}

// ObjectList is an ordered set of normalized object names.  The zero
// value (nil) is an empty list and means "no restriction" wherever an
// allow-list is optional.
type ObjectList struct {
	names  []string
	labels []string // display names as first given
	index  map[string]int
}

// NewObjectList creates a new object list from the given names.  The
// names are normalized and duplicates are removed; the order of the
// first occurrences is kept.  The first spelling of each object is
// kept as its display label.
func NewObjectList(names ...string) *ObjectList {
	l := &ObjectList{index: make(map[string]int, len(names))}
	for _, label := range names {
		label = strings.TrimSpace(norm.NFC.String(label))
		name := NormalizeName(label)
		if name == "" {
			continue
		}
		if _, ok := l.index[name]; ok {
			continue
		}
		l.index[name] = len(l.names)
		l.names = append(l.names, name)
		l.labels = append(l.labels, label)
	}
	return l
}

// Len returns the number of objects in the list.  It is safe to call
// Len on a nil list.
func (l *ObjectList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.names)
}

// Contains returns true if the (normalized) name is in the list.
func (l *ObjectList) Contains(name string) bool {
	_, ok := l.Index(name)
	return ok
}

// Index returns the position of the name in the list.
func (l *ObjectList) Index(name string) (int, bool) {
	if l == nil {
		return 0, false
	}
	i, ok := l.index[NormalizeName(name)]
	return i, ok
}

// Names returns a copy of the normalized names in list order.
func (l *ObjectList) Names() []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.names...)
}

// ReadObjectList reads an object list.  Names are separated by new
// lines or commas.  Empty lines and lines starting with `#` are
// skipped.  Leading `+` or `-` signs (as written by
// WriteSignedObjects) are removed.
func ReadObjectList(r io.Reader) (*ObjectList, error) {
	var names []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, name := range strings.Split(line, ",") {
			name = strings.TrimSpace(name)
			name = strings.TrimLeft(name, "+-")
			names = append(names, name)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("readObjectList: %v", err)
	}
	return NewObjectList(names...), nil
}

// Labels returns a copy of the display labels in list order.
func (l *ObjectList) Labels() []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.labels...)
}

// WriteSignedObjects writes the positive and negative prompt
// vocabulary for the given objects.  The first line lists all objects
// prefixed with `+`, the second line all objects prefixed with `-`.
func WriteSignedObjects(w io.Writer, names []string) error {
	for _, sign := range []string{"+", "-"} {
		signed := make([]string, len(names))
		for i := range names {
			signed[i] = sign + names[i]
		}
		if _, err := fmt.Fprintln(w, strings.Join(signed, ", ")); err != nil {
			return fmt.Errorf("writeSignedObjects: %v", err)
		}
	}
	return nil
}
