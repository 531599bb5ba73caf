package deviation

import (
	"errors"
	"fmt"
	"log"
	"os"

	"git.sr.ht/~flobar/a11yeval/cmd/internal"
	"git.sr.ht/~flobar/a11yeval/pkg/a11yeval"
	"git.sr.ht/~flobar/a11yeval/pkg/a11yeval/plots"
	"git.sr.ht/~flobar/a11yeval/pkg/a11yeval/ratings"
	"github.com/spf13/cobra"
)

// CMD defines the a11yeval deviation command.
var CMD = &cobra.Command{
	Use:   "deviation FILE",
	Short: "Compare the rating quality of expert and non-expert participants",
	Args:  cobra.ExactArgs(1),
	Run:   run,
}

var flags = struct {
	internal.Flags
	order, expertise []string
	out, title       string
	separator, alpha float64
}{}

func init() {
	flags.Init(CMD)
	CMD.Flags().StringVarP(&flags.out, "out", "o", "",
		"write the deviation plot to the given file")
	CMD.Flags().StringVarP(&flags.title, "title", "T", "",
		"set the title of the plot")
	CMD.Flags().StringSliceVarP(&flags.order, "order", "O", nil,
		"set the order of the participants (overwrites the setting in the configuration file)")
	CMD.Flags().StringSliceVarP(&flags.expertise, "expertise", "e", nil,
		"set the two compared expertise levels (overwrites the setting in the configuration file)")
	CMD.Flags().Float64VarP(&flags.separator, "separator", "s", 0,
		"draw a separator line at the given x position")
	CMD.Flags().Float64VarP(&flags.alpha, "alpha", "a", 0,
		"set the significance level (overwrites the setting in the configuration file)")
}

func run(_ *cobra.Command, args []string) {
	config, err := internal.ReadConfig(flags.Params)
	chk(err)
	dc := &config.Deviation
	internal.UpdateInConfig(&dc.Order, flags.order)
	internal.UpdateInConfig(&dc.Expertise, flags.expertise)
	internal.UpdateInConfig(&dc.Separator, flags.separator)
	internal.UpdateInConfig(&dc.Alpha, flags.alpha)
	if len(dc.Expertise) != 2 {
		chk(fmt.Errorf("expected two expertise levels; got %d", len(dc.Expertise)))
	}
	is, err := os.Open(args[0])
	chk(err)
	recs, err := ratings.Read(is, config.Ratings.Columns)
	is.Close()
	chk(err)
	devs := ratings.Deviations(recs)
	if len(devs) == 0 {
		chk(errors.New("no deviations"))
	}
	a11yeval.Log("calculated %d deviations from %d ratings", len(devs), len(recs))

	x := ratings.ByExpertise(devs, dc.Expertise[0])
	y := ratings.ByExpertise(devs, dc.Expertise[1])
	test, err := ratings.MannWhitneyU(x, y)
	chk(err)
	method := "asymptotic"
	if test.Exact {
		method = "exact"
	}
	fmt.Printf("%s n=%d %s n=%d U=%g z=%f p=%g (%s)\n",
		dc.Expertise[0], len(x), dc.Expertise[1], len(y), test.U, test.Z, test.P, method)
	if test.Significant(dc.Alpha) {
		fmt.Printf("significant at alpha=%g\n", dc.Alpha)
	} else {
		fmt.Printf("not significant at alpha=%g\n", dc.Alpha)
	}
	if flags.out == "" {
		return
	}
	p, err := plots.Deviations(devs, plots.DeviationOptions{
		Title:        flags.title,
		XLabel:       "participant",
		YLabel:       "F1 - rating",
		Participants: dc.Order,
		Expertise:    dc.Expertise,
		Separator:    dc.Separator,
	})
	chk(err)
	chk(plots.Save(p, plots.Inches(config.Plot.Width), plots.Inches(config.Plot.Height), flags.out))
}

func chk(err error) {
	if err != nil {
		log.Fatalf("error: %v", err)
	}
}
