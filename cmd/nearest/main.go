// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command nearest places the jobs of a scenario file onto a mesh, or replays
// them as a first-come, first-served workload.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/petenewcomb/nearest-go"
	"github.com/petenewcomb/nearest-go/internal/scenario"
	"github.com/petenewcomb/nearest-go/internal/sim"
	"github.com/petenewcomb/nearest-go/mesh"
	"github.com/petenewcomb/nearest-go/otnearest"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("nearest", "Communication-aware job placement on mesh machines")

	verbose = app.Flag("verbose", "log each allocation attempt").Short('v').Bool()
	trace   = app.Flag("trace", "write allocation spans to stderr").Bool()
	order   = app.Flag("order", "override the scenario's neighbor order").
		Enum(nearest.OrderSorted.String(), nearest.OrderGreedy.String())

	place           = app.Command("place", "place every job of a scenario in order")
	placeScenario   = place.Arg("scenario", "YAML scenario files, later ones overriding earlier ones").Required().ExistingFiles()
	placeKeepFailed = place.Flag("keep-going", "keep placing later jobs after one does not fit").Default("true").Bool()

	simulate         = app.Command("simulate", "replay a scenario's jobs first come, first served")
	simulateScenario = simulate.Arg("scenario", "YAML scenario files, later ones overriding earlier ones").Required().ExistingFiles()

	describe         = app.Command("describe", "describe a scenario's machine and allocator")
	describeScenario = describe.Arg("scenario", "YAML scenario files, later ones overriding earlier ones").Required().ExistingFiles()
)

func main() {
	app.HelpFlag.Short('h')
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	logger, err := newLogger(*verbose)
	app.FatalIfError(err, "cannot create logger")
	defer logger.Sync() //nolint:errcheck
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	if *trace {
		shutdown, err := installTracing(os.Stderr)
		app.FatalIfError(err, "cannot install tracing")
		defer shutdown()
	}

	switch command {
	case place.FullCommand():
		err = runPlace(os.Stdout, logger, *placeScenario, *placeKeepFailed)
	case simulate.FullCommand():
		err = runSimulate(os.Stdout, logger, *simulateScenario)
	case describe.FullCommand():
		err = runDescribe(os.Stdout, *describeScenario)
	}
	app.FatalIfError(err, "%s", command)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}

func installTracing(w io.Writer) (func(), error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)
	return func() {
		_ = tp.Shutdown(context.Background())
	}, nil
}

// load reads the scenario and builds its machine and allocator.
func load(paths []string, logger *zap.Logger) (*scenario.Scenario, *mesh.Mesh, *nearest.Allocator, error) {
	s, err := scenario.Load(paths...)
	if err != nil {
		return nil, nil, nil, err
	}
	if *order != "" {
		if err := s.Allocator.Order.UnmarshalText([]byte(*order)); err != nil {
			return nil, nil, nil, errors.Wrap(err, "invalid --order")
		}
	}
	m := s.Mesh()
	a := nearest.New(m, s.Allocator, nearest.WithLogger(logger))
	return s, m, a, nil
}

func runPlace(w io.Writer, logger *zap.Logger, paths []string, keepGoing bool) error {
	s, m, a, err := load(paths, logger)
	if err != nil {
		return err
	}
	allocate := otnearest.Instrumented("place", a)
	ctx := context.Background()

	for _, sub := range s.Submissions() {
		alloc, err := allocate(ctx, sub.Job)
		if err != nil {
			if !nearest.IsInfeasible(err) || !keepGoing {
				return errors.Wrapf(err, "placing %s", sub.Name)
			}
			fmt.Fprintf(w, "%s: not placed: %v\n", sub.Name, err)
			continue
		}
		m.Occupy(alloc.Nodes()...)
		fmt.Fprintf(w, "%s: %d tasks, center task %d on node %d, cost %d\n",
			sub.Name, len(alloc.TaskNodes), alloc.CenterTask, alloc.CenterNode, alloc.Cost)
		for task, node := range alloc.TaskNodes {
			fmt.Fprintf(w, "  task %d -> node %d %v\n", task, node, m.Coordinates(node))
		}
	}
	fmt.Fprintln(w, m)
	return nil
}

func runSimulate(w io.Writer, logger *zap.Logger, paths []string) error {
	s, m, a, err := load(paths, logger)
	if err != nil {
		return err
	}
	report, err := sim.Run(a, m, s.Submissions(), logger)
	if err != nil {
		return err
	}
	for _, rec := range report.Records {
		if !rec.Admitted {
			fmt.Fprintf(w, "%s: rejected at %v\n", rec.Submission, rec.Start)
			continue
		}
		fmt.Fprintf(w, "%s: waited %v, ran %v-%v on %d nodes, cost %d\n",
			rec.Submission, rec.Wait(), rec.Start, rec.Finish, len(rec.Nodes), rec.Cost)
	}
	fmt.Fprintln(w, report)
	return nil
}

func runDescribe(w io.Writer, paths []string) error {
	s, m, a, err := load(paths, zap.NewNop())
	if err != nil {
		return err
	}
	fmt.Fprintln(w, m)
	fmt.Fprintln(w, a.Describe())
	fmt.Fprintf(w, "%d jobs\n", len(s.Jobs))
	return nil
}
