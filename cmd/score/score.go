package score

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"git.sr.ht/~flobar/a11yeval/cmd/internal"
	"git.sr.ht/~flobar/a11yeval/pkg/a11yeval"
	"git.sr.ht/~flobar/a11yeval/pkg/a11yeval/plots"
	"git.sr.ht/~flobar/a11yeval/pkg/a11yeval/score"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// CMD defines the a11yeval score command.
var CMD = &cobra.Command{
	Use:   "score [PRED-DIR...]",
	Short: "Score predicted object labels against the ground truth",
	Run:   run,
}

var flags = struct {
	internal.Flags
	files                           []string
	truth, objects, layout, average string
	residual                        string
	jobs                            int
	defaultObjects, perLabel        bool
}{}

func init() {
	flags.Init(CMD)
	CMD.Flags().StringVarP(&flags.truth, "truth", "t", "",
		"set the ground truth directory (overwrites the setting in the configuration file)")
	CMD.Flags().StringSliceVarP(&flags.files, "files", "f", nil,
		"set the label files to score (default all files in the truth directory)")
	CMD.Flags().StringVarP(&flags.objects, "objects", "o", "",
		"set the object allow list file (overwrites the setting in the configuration file)")
	CMD.Flags().BoolVarP(&flags.defaultObjects, "default-objects", "d", false,
		"use the default object list if no allow list is given")
	CMD.Flags().StringVarP(&flags.layout, "layout", "l", "",
		"set the table layout: auto, rows, listed or columns")
	CMD.Flags().StringVarP(&flags.average, "average", "a", "",
		"set the averaging: micro, macro, weighted or samples")
	CMD.Flags().BoolVarP(&flags.perLabel, "per-label", "L", false,
		"print the scores of each object")
	CMD.Flags().StringVarP(&flags.residual, "residual", "r", "",
		"write residual tables and heat maps to the given directory")
	CMD.Flags().IntVarP(&flags.jobs, "jobs", "j", 0,
		"set the number of models scored in parallel (overwrites the setting in the configuration file)")
}

func run(_ *cobra.Command, args []string) {
	config, err := internal.ReadConfig(flags.Params)
	chk(err)
	internal.UpdateInConfig(&config.Truth, flags.truth)
	internal.UpdateInConfig(&config.Objects, flags.objects)
	internal.UpdateInConfig(&config.Layout, flags.layout)
	internal.UpdateInConfig(&config.Average, flags.average)
	internal.UpdateInConfig(&config.Jobs, flags.jobs)
	if config.Truth == "" {
		chk(errors.New("missing ground truth directory"))
	}
	models, err := internal.Models(args, config.Models)
	chk(err)
	if len(models) == 0 {
		chk(errors.New("missing prediction directories"))
	}
	objects, err := internal.ReadObjects(config.Objects, flags.defaultObjects)
	chk(err)
	layout, err := score.ParseLayout(config.Layout)
	chk(err)
	avg, err := score.ParseAverage(config.Average)
	chk(err)
	truth := os.DirFS(config.Truth)
	files := flags.files
	if len(files) == 0 {
		files, err = score.ListFiles(truth, "")
		chk(err)
	}
	opts := score.Options{
		Files:   files,
		Objects: objects,
		Layout:  layout,
		Average: avg,
	}
	results, errs := scoreAll(truth, models, opts, config.Jobs)
	for i, m := range models {
		logDiagnostics(m.Name, results[i])
		if errs[i] != nil && !errors.Is(errs[i], score.ErrInsufficientData) {
			chk(fmt.Errorf("%s: %v", m.Name, errs[i]))
		}
	}
	for i, m := range models {
		if errs[i] != nil {
			fmt.Printf("%s insufficient data\n", m.Name)
			continue
		}
		chk(printResult(os.Stdout, m.Name, avg, results[i], flags.perLabel))
		if flags.residual != "" {
			chk(writeResidual(flags.residual, m.Name, results[i], config.Plot))
		}
	}
}

// scoreAll scores the models concurrently.  The results and errors
// are returned in model order.
func scoreAll(truth fs.FS, models []internal.Model, opts score.Options, jobs int) ([]*score.Result, []error) {
	results := make([]*score.Result, len(models))
	errs := make([]error, len(models))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i := range models {
		i := i
		g.Go(func() error {
			a11yeval.Log("scoring %s (%s)", models[i].Name, models[i].Dir)
			results[i], errs[i] = score.Score(truth, os.DirFS(models[i].Dir), opts)
			return nil
		})
	}
	g.Wait()
	return results, errs
}

func logDiagnostics(name string, res *score.Result) {
	if res == nil || !a11yeval.LogEnabled() {
		return
	}
	for _, d := range res.Diagnostics {
		a11yeval.Log("%s: %s", name, d)
	}
}

func printResult(out io.Writer, name string, avg score.Average, res *score.Result, perLabel bool) error {
	f := formater{out: out}
	f.printf("%s/%s pr %f\n", name, avg, res.Precision)
	f.printf("%s/%s re %f\n", name, avg, res.Recall)
	f.printf("%s/%s f1 %f\n", name, avg, res.F1)
	if !perLabel {
		return f.err
	}
	for _, l := range res.PerLabel {
		f.printf("%s/%s tp=%d fp=%d tn=%d fn=%d pr=%f re=%f f1=%f\n",
			name, l.Name, l.TP, l.FP, l.TN, l.FN, l.Precision, l.Recall, l.F1)
	}
	return f.err
}

func writeResidual(dir, name string, res *score.Result, size internal.PlotConfig) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("writeResidual %s: %v", dir, err)
	}
	path := filepath.Join(dir, name+".csv")
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writeResidual %s: %v", path, err)
	}
	if err := score.WriteMatrix(out, res.Labels, res.Residual); err != nil {
		out.Close()
		return fmt.Errorf("writeResidual %s: %v", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("writeResidual %s: %v", path, err)
	}
	p, err := plots.Residual(res.Residual, res.Labels, plots.ResidualOptions{
		Title:  name,
		XLabel: "object",
		YLabel: "sample",
	})
	if err != nil {
		return fmt.Errorf("writeResidual %s: %v", name, err)
	}
	return plots.Save(p, plots.Inches(size.Width), plots.Inches(size.Height),
		filepath.Join(dir, name+".png"))
}

type formater struct {
	out io.Writer
	err error
}

func (f *formater) printf(format string, args ...interface{}) {
	if f.err != nil {
		return
	}
	_, err := fmt.Fprintf(f.out, format, args...)
	f.err = err
}

func chk(err error) {
	if err != nil {
		log.Fatalf("error: %v", err)
	}
}
