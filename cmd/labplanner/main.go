// Command labplanner plans an experiment from a YAML plan: it places the new
// samples in boxes, writes the lab packet and saves everything to the
// configured blob store.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/askiada/go-labplanner/internal/blob"
	"github.com/askiada/go-labplanner/internal/config"
	"github.com/askiada/go-labplanner/internal/saver"
	"github.com/askiada/go-labplanner/pkg/labplanner"
	"github.com/askiada/go-labplanner/pkg/labplanner/drawer"
	"github.com/askiada/go-labplanner/pkg/labplanner/labsheet"
	"github.com/askiada/go-labplanner/pkg/labplanner/measure"
	"github.com/askiada/go-labplanner/pkg/labplanner/model"
	"github.com/askiada/go-labplanner/pkg/labplanner/planfile"
)

type options struct {
	plan  string
	prior string
	id    string
	dot   string
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("labplanner", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.plan, "plan", "", "YAML plan of the experiment")
	fs.StringVar(&opts.prior, "prior", "", "blob key of the inventory to extend, overrides the plan")
	fs.StringVar(&opts.id, "id", "", "experiment id, overrides the plan")
	fs.StringVar(&opts.dot, "dot", "", "write the construct graph to this DOT file")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "unable to parse flags")
	}

	if opts.plan == "" {
		return nil, errors.New("-plan must be set")
	}

	return opts, nil
}

// generateID returns a short random id. It ends up on every tube label, so
// only the first group of a UUID is kept.
func generateID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger, args []string, report io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	store, err := blob.Open(ctx, cfg.BlobConfig())
	if err != nil {
		return errors.Wrap(err, "unable to open blob store")
	}

	plan, err := planfile.Load(opts.plan)
	if err != nil {
		return err
	}

	cfs, err := plan.Files()
	if err != nil {
		return errors.Wrapf(err, "invalid plan %s", opts.plan)
	}

	id := opts.id
	if id == "" {
		id = plan.ID
	}

	if id == "" {
		id = generateID()
		logger.WithField("id", id).Info("experiment id generated")
	}

	svr := saver.New(store, saver.WithConcurrency(cfg.UploadConcurrency), saver.WithLogger(logger))

	priorKey := opts.prior
	if priorKey == "" {
		priorKey = plan.Prior
	}

	var prior *model.Inventory
	if priorKey != "" {
		prior, err = svr.LoadInventory(ctx, priorKey)
		if err != nil {
			return err
		}
	}

	msr := measure.NewDefaultMeasure()
	plannerOpts := []model.PlannerOption{labplanner.PlannerLogger(logger), measure.PlannerMeasure(msr)}

	if opts.dot != "" {
		plannerOpts = append(plannerOpts, drawer.PlannerDrawer(drawer.NewDOTDrawer(opts.dot)))
	}

	planner, err := labplanner.New(plannerOpts...)
	if err != nil {
		return errors.Wrap(err, "unable to create planner")
	}

	exp, err := planner.Run(plan.Name, id, cfs, prior)
	if err != nil {
		return errors.Wrapf(err, "unable to plan experiment %s", plan.Name)
	}

	packet, err := labsheet.NewFactory().Run(exp)
	if err != nil {
		return errors.Wrapf(err, "unable to build lab packet of %s", exp.Name)
	}

	if _, err := svr.Save(ctx, exp, packet); err != nil {
		return err
	}

	return measure.Report(report, msr)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("unable to load configuration")
	}

	logger, err := config.NewLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		logrus.WithError(err).Fatal("unable to create logger")
	}

	err = run(context.Background(), cfg, logger, os.Args[1:], os.Stdout)
	if err != nil {
		config.LogError(logger, "labplanner", "run", os.Args[1:], err)
		os.Exit(1)
	}
}
