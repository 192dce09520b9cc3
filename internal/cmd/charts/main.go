// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command charts renders the output of BenchmarkAllocate as bar charts, one
// set per job shape, comparing allocation strategies across machine sizes.
package main

import (
	"cmp"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/perf/benchfmt"
	"golang.org/x/perf/benchmath"
	"golang.org/x/perf/benchproc"
	"golang.org/x/perf/benchunit"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// referenceStrategy is the configuration other strategies' costs are
// compared against.
const referenceStrategy = "exhaustive-sorted"

type StrategyKey struct{ benchproc.Key }
type JobKey struct{ benchproc.Key }
type MachineKey struct{ benchproc.Key }

type Data struct {
	Sample  benchmath.Sample
	Summary benchmath.Summary
}

type chart struct {
	Title           string
	YAxisLabel      string
	XAxisLabel      string
	XTickLabels     []string
	SeriesLabels    []string
	SeriesValues    []plotter.Values
	SeriesLabelText [][]string
	YAxisGrowFactor float64
	FileBasename    string
}

func newChart(title, yLabel, basename string, machines, strategies int) *chart {
	return &chart{
		Title:           title,
		XAxisLabel:      "Machine",
		YAxisLabel:      yLabel,
		XTickLabels:     make([]string, machines),
		SeriesLabels:    make([]string, strategies),
		SeriesValues:    make([]plotter.Values, strategies),
		SeriesLabelText: make([][]string, strategies),
		YAxisGrowFactor: 1.2,
		FileBasename:    basename,
	}
}

func setupPlot(c *chart) *plot.Plot {
	p := plot.New()

	p.Title.Text = c.Title
	p.X.Label.Text = c.XAxisLabel
	p.Y.Label.Text = c.YAxisLabel

	p.Title.TextStyle.Color = color.Gray{128}
	p.X.Color = color.Gray{128}
	p.Y.Color = color.Gray{128}
	p.X.Label.TextStyle.Color = color.Gray{128}
	p.Y.Label.TextStyle.Color = color.Gray{128}
	p.X.Tick.Color = color.Gray{128}
	p.Y.Tick.Color = color.Gray{128}
	p.X.Tick.Label.Color = color.Gray{128}
	p.Y.Tick.Label.Color = color.Gray{128}
	p.Legend.TextStyle.Color = color.Gray{128}

	p.NominalX(c.XTickLabels...)

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Padding = 1 * vg.Millimeter
	p.BackgroundColor = color.Transparent

	return p
}

func plotBars(c *chart) error {
	p := setupPlot(c)

	palette, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", max(len(c.SeriesLabels), 3))
	if err != nil {
		return err
	}
	colors := palette.Colors()

	barSpacing := vg.Points(3)
	barWidth := vg.Points(24)

	// Total width of the bar group, center to center.
	groupWidth := (barWidth + barSpacing) * vg.Length(len(c.SeriesValues)-1)

	for i, label := range c.SeriesLabels {
		values := c.SeriesValues[i]
		bc, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return err
		}
		bc.Offset = (barWidth+barSpacing)*vg.Length(i) - groupWidth/2
		bc.Color = colors[i]
		bc.LineStyle.Width = 0

		xys := make(plotter.XYs, len(values))
		for j, v := range values {
			xys[j].X = float64(j)
			xys[j].Y = v
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: c.SeriesLabelText[i]})
		if err != nil {
			return err
		}
		labels.Offset = vg.Point{X: bc.Offset - barWidth/2, Y: vg.Points(4)}
		for j := range labels.TextStyle {
			labels.TextStyle[j] = p.Y.Label.TextStyle
			labels.TextStyle[j].Font.Size *= 0.6
		}

		p.Add(bc, labels)
		p.Legend.Add(label, bc)
	}

	return savePlot(c, p)
}

func savePlot(c *chart, p *plot.Plot) error {
	p.Y.Max *= c.YAxisGrowFactor

	if err := os.MkdirAll("charts", 0755); err != nil {
		return err
	}
	return p.Save(9*vg.Inch, 6*vg.Inch, "charts/"+c.FileBasename+".svg")
}

// machineNodes parses a machine key such as "16x16" into its node count.
func machineNodes(s string) (int, error) {
	n := 1
	for _, dim := range strings.Split(s, "x") {
		d, err := strconv.Atoi(dim)
		if err != nil {
			return 0, fmt.Errorf("invalid machine %q: %w", s, err)
		}
		n *= d
	}
	return n, nil
}

func main() {
	var pp benchproc.ProjectionParser
	strategyP, err := pp.Parse("/strategy", nil)
	if err != nil {
		log.Fatal(err)
	}
	jobP, err := pp.Parse("/job", nil)
	if err != nil {
		log.Fatal(err)
	}
	machineP, err := pp.Parse("/machine", nil)
	if err != nil {
		log.Fatal(err)
	}
	residueP := pp.Residue()

	data := make(map[JobKey]map[MachineKey]map[StrategyKey]map[string]*Data)
	strategyKeySet := make(map[StrategyKey]struct{})
	jobKeySet := make(map[JobKey]struct{})
	machineKeySet := make(map[MachineKey]struct{})
	var residues []benchproc.Key

	benchFiles := &benchfmt.Files{
		Paths:       os.Args[1:],
		AllowStdin:  true,
		AllowLabels: true,
	}
	for benchFiles.Scan() {
		var res *benchfmt.Result
		switch rec := benchFiles.Result(); rec := rec.(type) {
		case *benchfmt.Result:
			res = rec
		case *benchfmt.SyntaxError:
			// Report a non-fatal parse error.
			log.Print(rec)
			continue
		default:
			continue
		}

		jobKey := JobKey{jobP.Project(res)}
		byMachine := data[jobKey]
		if byMachine == nil {
			byMachine = make(map[MachineKey]map[StrategyKey]map[string]*Data)
			data[jobKey] = byMachine
			jobKeySet[jobKey] = struct{}{}
		}
		machineKey := MachineKey{machineP.Project(res)}
		byStrategy := byMachine[machineKey]
		if byStrategy == nil {
			byStrategy = make(map[StrategyKey]map[string]*Data)
			byMachine[machineKey] = byStrategy
			machineKeySet[machineKey] = struct{}{}
		}
		strategyKey := StrategyKey{strategyP.Project(res)}
		byUnit := byStrategy[strategyKey]
		if byUnit == nil {
			byUnit = make(map[string]*Data)
			byStrategy[strategyKey] = byUnit
			strategyKeySet[strategyKey] = struct{}{}
		}
		for _, v := range res.Values {
			d := byUnit[v.Unit]
			if d == nil {
				d = &Data{}
				byUnit[v.Unit] = d
			}
			d.Sample.Values = append(d.Sample.Values, v.Value)
		}
		residues = append(residues, residueP.Project(res))
	}
	if err := benchFiles.Err(); err != nil {
		log.Fatalf("Error reading benchmark files: %v", err)
	}

	nonsingular := benchproc.NonSingularFields(residues)
	if len(nonsingular) > 0 {
		fmt.Printf("warning: results vary in %s\n", nonsingular)
	}

	machineKeys := make([]MachineKey, 0, len(machineKeySet))
	nodes := make(map[MachineKey]int)
	for k := range machineKeySet {
		n, err := machineNodes(k.Get(machineP.Fields()[0]))
		if err != nil {
			log.Fatal(err)
		}
		nodes[k] = n
		machineKeys = append(machineKeys, k)
	}
	slices.SortFunc(machineKeys, func(a, b MachineKey) int {
		return cmp.Compare(nodes[a], nodes[b])
	})

	var referenceKey StrategyKey
	strategyKeys := make([]StrategyKey, 0, len(strategyKeySet))
	for k := range strategyKeySet {
		strategyKeys = append(strategyKeys, k)
		if k.Get(strategyP.Fields()[0]) == referenceStrategy {
			referenceKey = k
		}
	}
	slices.SortFunc(strategyKeys, func(a, b StrategyKey) int {
		return cmp.Compare(a.Get(strategyP.Fields()[0]), b.Get(strategyP.Fields()[0]))
	})

	jobKeys := make([]JobKey, 0, len(jobKeySet))
	for k := range jobKeySet {
		jobKeys = append(jobKeys, k)
	}

	confidence := 0.95
	thresholds := benchmath.DefaultThresholds
	for _, byMachine := range data {
		for _, byStrategy := range byMachine {
			for _, byUnit := range byStrategy {
				for _, d := range byUnit {
					d.Sample = *benchmath.NewSample(d.Sample.Values, &thresholds)
					d.Summary = benchmath.AssumeNothing.Summary(&d.Sample, confidence)
				}
			}
		}
	}

	for _, jobKey := range jobKeys {
		jobName := jobKey.Get(jobP.Fields()[0])

		latencyChart := newChart(fmt.Sprintf("Allocation Latency (%s)", jobName),
			"Seconds / Allocation", jobName+"_latency", len(machineKeys), len(strategyKeys))
		costChart := newChart(fmt.Sprintf("Communication Cost (%s)", jobName),
			"Volume x Hops", jobName+"_cost", len(machineKeys), len(strategyKeys))
		relativeChart := newChart(fmt.Sprintf("Cost vs. %s (%s)", referenceStrategy, jobName),
			"Relative Cost", jobName+"_relative_cost", len(machineKeys), len(strategyKeys))
		allocsChart := newChart(fmt.Sprintf("Allocations Per Placement (%s)", jobName),
			"Allocations / Placement", jobName+"_allocations", len(machineKeys), len(strategyKeys))
		allocsChart.YAxisGrowFactor = 1.6

		charts := []*chart{latencyChart, costChart, relativeChart, allocsChart}
		for i, machineKey := range machineKeys {
			for _, c := range charts {
				c.XTickLabels[i] = machineKey.Get(machineP.Fields()[0])
			}
		}

		for s, strategyKey := range strategyKeys {
			strategyName := strategyKey.Get(strategyP.Fields()[0])
			for _, c := range charts {
				c.SeriesLabels[s] = strategyName
				c.SeriesValues[s] = make(plotter.Values, len(machineKeys))
				c.SeriesLabelText[s] = make([]string, len(machineKeys))
			}

			for i, machineKey := range machineKeys {
				byUnit := data[jobKey][machineKey][strategyKey]
				if byUnit == nil {
					log.Fatalf("no results for job=%s/machine=%s/strategy=%s",
						jobName, machineKey.Get(machineP.Fields()[0]), strategyName)
				}

				set := func(c *chart, unit string) *Data {
					d := byUnit[unit]
					if d == nil {
						log.Fatalf("no %s for job=%s/strategy=%s", unit, jobName, strategyName)
					}
					c.SeriesValues[s][i] = d.Summary.Center
					c.SeriesLabelText[s][i] = formatSummary(&d.Summary, benchunit.ClassOf(unit))
					return d
				}
				set(latencyChart, "sec/op")
				set(allocsChart, "allocs/op")
				cost := set(costChart, "cost/op")

				ref := data[jobKey][machineKey][referenceKey]["cost/op"]
				if ref == nil || ref.Summary.Center == 0 {
					continue
				}
				y := cost.Summary.Center / ref.Summary.Center
				relativeChart.SeriesValues[s][i] = y
				relativeChart.SeriesLabelText[s][i] = fmt.Sprintf("%.2fx", y)
			}
		}

		for _, c := range charts {
			if err := plotBars(c); err != nil {
				log.Fatalf("Error creating chart: %v", err)
			}
		}
	}

	fmt.Println("Charts generated successfully in the 'charts' directory.")
}

func formatRatio(n, d float64) string {
	switch {
	case d == 0:
		if n == 0 {
			return "0%"
		}
		return fmt.Sprintf("%.2g", n)
	case math.Abs(n/d) < 1:
		return fmt.Sprintf("%.2g%%", math.Round(100*n/d))
	default:
		return fmt.Sprintf("%.2gx", n/d)
	}
}

func formatSummary(s *benchmath.Summary, class benchunit.Class) string {
	center := benchunit.Scale(s.Center, class)
	plus := formatRatio(s.Hi-s.Center, s.Center)
	minus := formatRatio(s.Center-s.Lo, s.Center)
	if plus == minus {
		return fmt.Sprintf("%s\n+/-%s", center, plus)
	}
	return fmt.Sprintf("%s\n+%s -%s", center, plus, minus)
}
