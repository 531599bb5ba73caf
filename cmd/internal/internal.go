package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"git.sr.ht/~flobar/a11yeval/pkg/a11yeval"
	"github.com/spf13/cobra"
)

// a11yeval version
const Version = "v0.1.0"

// Flags is used to define the standard command-line parameters for
// a11yeval sub commands.
type Flags struct {
	Params string // Path to the configuration file
}

// Init initializes the standard commandline arguments for the given
// subcommand.
func (flags *Flags) Init(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flags.Params, "parameters", "P", "", "set path to configuration file")
}

// ReadObjects reads the object allow list from the given file.  If
// the path is empty, the default objects are returned if defaults is
// true and nil otherwise.
func ReadObjects(path string, defaults bool) (*a11yeval.ObjectList, error) {
	if path == "" {
		if defaults {
			return a11yeval.NewObjectList(a11yeval.DefaultObjects...), nil
		}
		return nil, nil
	}
	is, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("readObjects %s: %v", path, err)
	}
	defer is.Close()
	objects, err := a11yeval.ReadObjectList(is)
	if err != nil {
		return nil, fmt.Errorf("readObjects %s: %v", path, err)
	}
	return objects, nil
}

// Model is a named directory of prediction tables.
type Model struct {
	Name, Dir string
}

// Models returns the models of the given directories.  The name of a
// model is the base name of its directory.  If no directories are
// given, the configured models are returned sorted by name.  Models
// name their output files, so duplicate names are an error.
func Models(dirs []string, config map[string]string) ([]Model, error) {
	var ret []Model
	if len(dirs) == 0 {
		for name, dir := range config {
			ret = append(ret, Model{Name: name, Dir: dir})
		}
		sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
		return ret, nil
	}
	seen := make(map[string]string, len(dirs))
	for _, dir := range dirs {
		name := filepath.Base(filepath.Clean(dir))
		if other, ok := seen[name]; ok {
			return nil, fmt.Errorf("models: %s and %s have the same name %q", other, dir, name)
		}
		seen[name] = dir
		ret = append(ret, Model{Name: name, Dir: dir})
	}
	return ret, nil
}
