package a11yeval

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	for _, tc := range []struct {
		test, want string
	}{
		{"", ""},
		{"Curb", "curb"},
		{"  Bus Stop\t", "bus stop"},
		{"Driveway(flat)", "driveway(flat)"},
		{"Café", "café"},
	} {
		t.Run(tc.test, func(t *testing.T) {
			if got := NormalizeName(tc.test); got != tc.want {
				t.Fatalf("expected %q; got %q", tc.want, got)
			}
		})
	}
}

func TestObjectList(t *testing.T) {
	l := NewObjectList("Curb", " bench", "CURB", "", "Sign")
	if got, want := l.Names(), []string{"curb", "bench", "sign"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v; got %v", want, got)
	}
	if got, want := l.Labels(), []string{"Curb", "bench", "Sign"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v; got %v", want, got)
	}
	if l.Len() != 3 {
		t.Fatalf("expected 3; got %d", l.Len())
	}
	for _, tc := range []struct {
		name string
		idx  int
		ok   bool
	}{
		{"curb", 0, true},
		{"Bench ", 1, true},
		{"sign", 2, true},
		{"tree", 0, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			idx, ok := l.Index(tc.name)
			if idx != tc.idx || ok != tc.ok {
				t.Fatalf("expected %d,%t; got %d,%t", tc.idx, tc.ok, idx, ok)
			}
			if got := l.Contains(tc.name); got != tc.ok {
				t.Fatalf("expected %t; got %t", tc.ok, got)
			}
		})
	}
}

func TestNilObjectList(t *testing.T) {
	var l *ObjectList
	if l.Len() != 0 {
		t.Fatalf("expected 0; got %d", l.Len())
	}
	if l.Contains("curb") {
		t.Fatalf("nil list must not contain anything")
	}
	if l.Names() != nil || l.Labels() != nil {
		t.Fatalf("expected nil names; got %v %v", l.Names(), l.Labels())
	}
}

func TestDefaultObjects(t *testing.T) {
	l := NewObjectList(DefaultObjects...)
	if l.Len() != len(DefaultObjects) {
		t.Fatalf("expected %d unique objects; got %d", len(DefaultObjects), l.Len())
	}
}

func TestReadObjectList(t *testing.T) {
	for _, tc := range []struct {
		name, test string
		want       []string
	}{
		{"lines", "Curb\nBench\n", []string{"curb", "bench"}},
		{"commas", "Curb, Bench,Sign", []string{"curb", "bench", "sign"}},
		{"comments", "# objects\n\nCurb\n", []string{"curb"}},
		{"signed", "+Curb, +Bench\n-Curb, -Bench\n", []string{"curb", "bench"}},
		{"empty", "", nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			l, err := ReadObjectList(strings.NewReader(tc.test))
			if err != nil {
				t.Fatalf("got error: %v", err)
			}
			if got := l.Names(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v; got %v", tc.want, got)
			}
		})
	}
}

func TestWriteSignedObjects(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSignedObjects(&buf, []string{"Curb", "Bus Stop"}); err != nil {
		t.Fatalf("got error: %v", err)
	}
	want := "+Curb, +Bus Stop\n-Curb, -Bus Stop\n"
	if got := buf.String(); got != want {
		t.Fatalf("expected %q; got %q", want, got)
	}
	l, err := ReadObjectList(&buf)
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	if got, want := l.Names(), []string{"curb", "bus stop"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v; got %v", want, got)
	}
}

func TestWriteSignedDefaultObjects(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSignedObjects(&buf, NewObjectList(DefaultObjects...).Labels()); err != nil {
		t.Fatalf("got error: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines; got %d", len(lines))
	}
	for i, prefix := range []string{"+Accent Paving, +Barrier Post, ", "-Accent Paving, -Barrier Post, "} {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Fatalf("expected prefix %q; got %q", prefix, lines[i])
		}
	}
	if !strings.HasSuffix(lines[0], ", +Yard Waste") {
		t.Fatalf("expected suffix %q; got %q", ", +Yard Waste", lines[0])
	}
}
