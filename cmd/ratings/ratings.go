package ratings

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"git.sr.ht/~flobar/a11yeval/cmd/internal"
	"git.sr.ht/~flobar/a11yeval/pkg/a11yeval"
	"git.sr.ht/~flobar/a11yeval/pkg/a11yeval/plots"
	"git.sr.ht/~flobar/a11yeval/pkg/a11yeval/ratings"
	"github.com/spf13/cobra"
)

// CMD defines the a11yeval ratings command.
var CMD = &cobra.Command{
	Use:   "ratings FILE",
	Short: "Summarize the user ratings of the models",
	Args:  cobra.ExactArgs(1),
	Run:   run,
}

var flags = struct {
	internal.Flags
	exclude, order    []string
	f1                map[string]string
	out, title        string
	group             int
	center, gray, raw bool
}{}

func init() {
	flags.Init(CMD)
	CMD.Flags().StringVarP(&flags.out, "out", "o", "",
		"write the interval plot to the given file")
	CMD.Flags().StringVarP(&flags.title, "title", "T", "",
		"set the title of the plot")
	CMD.Flags().StringSliceVarP(&flags.exclude, "exclude", "x", nil,
		"exclude the given models (overwrites the setting in the configuration file)")
	CMD.Flags().StringSliceVarP(&flags.order, "order", "O", nil,
		"set the order of the models (overwrites the setting in the configuration file)")
	CMD.Flags().StringToStringVarP(&flags.f1, "f1", "F", nil,
		"annotate the F1 score of the models (model=value)")
	CMD.Flags().IntVarP(&flags.group, "group", "g", 0,
		"set the number of models per group")
	CMD.Flags().BoolVarP(&flags.center, "center", "c", false,
		"center the ratings by their grand mean")
	CMD.Flags().BoolVarP(&flags.gray, "gray", "G", false,
		"plot in gray scale")
	CMD.Flags().BoolVarP(&flags.raw, "raw", "r", false,
		"summarize the raw instead of the normalized ratings")
}

func run(_ *cobra.Command, args []string) {
	config, err := internal.ReadConfig(flags.Params)
	chk(err)
	rc := &config.Ratings
	internal.UpdateInConfig(&rc.Exclude, flags.exclude)
	internal.UpdateInConfig(&rc.Order, flags.order)
	internal.UpdateInConfig(&rc.Group, flags.group)
	internal.UpdateInConfig(&rc.Center, flags.center)
	internal.UpdateInConfig(&rc.Gray, flags.gray)
	f1, err := parseF1(flags.f1)
	chk(err)
	if len(f1) > 0 {
		rc.F1 = f1
	}
	recs, err := readRecords(args[0], rc.Columns)
	chk(err)
	a11yeval.Log("read %d ratings from %s", len(recs), args[0])
	value := func(r ratings.Record) float64 { return r.Normalized }
	if flags.raw {
		value = func(r ratings.Record) float64 { return r.Score }
	}
	sums, err := ratings.Summarize(recs, value, ratings.SummaryOptions{
		Exclude: rc.Exclude,
		Order:   rc.Order,
		Center:  rc.Center,
		Lower:   rc.Lower,
		Upper:   rc.Upper,
	})
	chk(err)
	if len(sums) == 0 {
		chk(errors.New("no ratings"))
	}
	chk(printSummaries(os.Stdout, sums))
	if flags.out == "" {
		return
	}
	ylabel := "normalized rating"
	if flags.raw {
		ylabel = "rating"
	}
	p, err := plots.Intervals(sums, plots.IntervalOptions{
		Title:  flags.title,
		YLabel: ylabel,
		Min:    rc.YMin,
		Max:    rc.YMax,
		Group:  rc.Group,
		F1:     rc.F1,
		Gray:   rc.Gray,
	})
	chk(err)
	chk(plots.Save(p, plots.Inches(config.Plot.Width), plots.Inches(config.Plot.Height), flags.out))
}

func readRecords(name string, cols ratings.Columns) ([]ratings.Record, error) {
	is, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer is.Close()
	return ratings.Read(is, cols)
}

func parseF1(vals map[string]string) (map[string]float64, error) {
	ret := make(map[string]float64, len(vals))
	for model, val := range vals {
		var f1 float64
		if _, err := fmt.Sscanf(val, "%g", &f1); err != nil {
			return nil, fmt.Errorf("invalid f1 value %s=%s", model, val)
		}
		ret[model] = f1
	}
	return ret, nil
}

func printSummaries(out io.Writer, sums []ratings.Summary) error {
	for _, s := range sums {
		_, err := fmt.Fprintf(out, "%s n=%d mean=%f lower=%f upper=%f\n",
			s.Model, s.N, s.Mean, s.Lower, s.Upper)
		if err != nil {
			return err
		}
	}
	return nil
}

func chk(err error) {
	if err != nil {
		log.Fatalf("error: %v", err)
	}
}
