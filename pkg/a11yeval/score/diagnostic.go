package score

import "fmt"

// DiagnosticKind identifies the type of a data irregularity that was
// encountered while scoring.
type DiagnosticKind int

// Diagnostic kinds.
const (
	// MissingPrediction: a truth file has no prediction counterpart;
	// the file is skipped.
	MissingPrediction DiagnosticKind = iota
	// MissingTruth: a listed file does not exist in the truth source;
	// the file is skipped.
	MissingTruth
	// FileLengthMismatch: the truth and prediction tables of a file
	// contribute a different number of values.
	FileLengthMismatch
	// ObjectLengthMismatch: the truth and prediction vectors of an
	// object differ in length; the object is excluded.
	ObjectLengthMismatch
	// SampleCountMismatch: the vectors of an object do not cover the
	// same number of samples as the other objects; the object is
	// excluded.
	SampleCountMismatch
	// UnmatchedObject: an object exists on one side only; it is
	// excluded.
	UnmatchedObject
	// UndefinedCells: an included object has undefined values.
	// Undefined values are scored as negatives.
	UndefinedCells
	// NoListedObjects: a table does not contain any object of the
	// object list; the file is skipped.
	NoListedObjects
)

func (k DiagnosticKind) String() string {
	switch k {
	case MissingPrediction:
		return "missing prediction"
	case MissingTruth:
		return "missing truth"
	case FileLengthMismatch:
		return "file length mismatch"
	case ObjectLengthMismatch:
		return "object length mismatch"
	case SampleCountMismatch:
		return "sample count mismatch"
	case UnmatchedObject:
		return "unmatched object"
	case UndefinedCells:
		return "undefined cells"
	case NoListedObjects:
		return "no listed objects"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// Diagnostic records a data irregularity.  Depending on its kind,
// Truth and Pred hold the lengths (or counts) of the two sides.
type Diagnostic struct {
	Kind       DiagnosticKind
	File       string // file name for file level diagnostics
	Object     string // object name for object level diagnostics
	Side       string // "truth" or "prediction" for unmatched objects and tables
	Suggestion string // closest object name on the other side, if any
	Truth      int
	Pred       int
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case MissingPrediction, MissingTruth:
		return fmt.Sprintf("%s: %s", d.Kind, d.File)
	case NoListedObjects:
		return fmt.Sprintf("%s: %s (%s)", d.Kind, d.File, d.Side)
	case FileLengthMismatch:
		return fmt.Sprintf("%s: %s: truth=%d prediction=%d", d.Kind, d.File, d.Truth, d.Pred)
	case ObjectLengthMismatch:
		return fmt.Sprintf("%s: %q: truth=%d prediction=%d", d.Kind, d.Object, d.Truth, d.Pred)
	case SampleCountMismatch:
		return fmt.Sprintf("%s: %q: length=%d samples=%d", d.Kind, d.Object, d.Truth, d.Pred)
	case UnmatchedObject:
		if d.Suggestion != "" {
			return fmt.Sprintf("%s: %q (%s only, did you mean %q?)", d.Kind, d.Object, d.Side, d.Suggestion)
		}
		return fmt.Sprintf("%s: %q (%s only)", d.Kind, d.Object, d.Side)
	case UndefinedCells:
		return fmt.Sprintf("%s: %q: truth=%d prediction=%d", d.Kind, d.Object, d.Truth, d.Pred)
	default:
		return d.Kind.String()
	}
}
