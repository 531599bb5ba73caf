package main

import (
	"git.sr.ht/~flobar/a11yeval/cmd/deviation"
	"git.sr.ht/~flobar/a11yeval/cmd/objects"
	"git.sr.ht/~flobar/a11yeval/cmd/ratings"
	"git.sr.ht/~flobar/a11yeval/cmd/score"
	"git.sr.ht/~flobar/a11yeval/cmd/version"
	"git.sr.ht/~flobar/a11yeval/pkg/a11yeval"
	"github.com/spf13/cobra"
)

var logging bool

var root = &cobra.Command{
	Use:   "a11yeval",
	Short: "Evaluate accessibility annotations of vision models",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		a11yeval.SetLog(logging)
	},
}

func init() {
	root.PersistentFlags().BoolVar(&logging, "log", false, "enable logging")
	root.AddCommand(
		deviation.CMD,
		objects.CMD,
		ratings.CMD,
		score.CMD,
		version.CMD,
	)
}

func main() {
	root.Execute()
}
