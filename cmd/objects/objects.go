package objects

import (
	"io"
	"log"
	"os"

	"git.sr.ht/~flobar/a11yeval/cmd/internal"
	"git.sr.ht/~flobar/a11yeval/pkg/a11yeval"
	"github.com/spf13/cobra"
)

// CMD defines the a11yeval objects command.
var CMD = &cobra.Command{
	Use:   "objects",
	Short: "Print the signed object vocabulary",
	Run:   run,
}

var flags = struct {
	internal.Flags
	objects, out string
}{}

func init() {
	flags.Init(CMD)
	CMD.Flags().StringVarP(&flags.objects, "objects", "o", "",
		"read the objects from the given file (default the study's objects)")
	CMD.Flags().StringVarP(&flags.out, "out", "w", "",
		"write the vocabulary to the given file")
}

func run(_ *cobra.Command, _ []string) {
	config, err := internal.ReadConfig(flags.Params)
	chk(err)
	internal.UpdateInConfig(&config.Objects, flags.objects)
	objects, err := internal.ReadObjects(config.Objects, true)
	chk(err)
	a11yeval.Log("writing %d objects", objects.Len())
	var out io.Writer = os.Stdout
	if flags.out != "" {
		f, err := os.Create(flags.out)
		chk(err)
		defer func() { chk(f.Close()) }()
		out = f
	}
	chk(a11yeval.WriteSignedObjects(out, objects.Labels()))
}

func chk(err error) {
	if err != nil {
		log.Fatalf("error: %v", err)
	}
}
