package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pwptrace/pwptrace/pwp"
	"github.com/pwptrace/pwptrace/pwp/config"
	"github.com/pwptrace/pwptrace/pwp/ingest"
)

var (
	graphPath string
	csvPath   string
	outPath   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a graph spec over a CSV trace and dump the observed signals",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		spec, err := config.LoadGraphSpec(graphPath)
		if err != nil {
			logrus.Fatalf("loading graph spec: %v", err)
		}
		if err := spec.Validate(); err != nil {
			logrus.Fatalf("invalid graph spec: %v", err)
		}
		logrus.Infof("loaded graph: %d source(s), %d node(s), %d observed variable(s)",
			len(spec.Sources), len(spec.Nodes), len(spec.Observe))

		samples, err := ingest.ReadCSV(csvPath)
		if err != nil {
			logrus.Fatalf("reading csv: %v", err)
		}
		logrus.Infof("read %d sample(s) from %s", len(samples), csvPath)

		_, sources, signals, err := config.Build(spec)
		if err != nil {
			logrus.Fatalf("building graph: %v", err)
		}

		if err := driveSamples(spec, sources, samples); err != nil {
			logrus.Fatalf("running graph: %v", err)
		}

		if err := writeSignals(outPath, spec.Observe, signals); err != nil {
			logrus.Fatalf("writing output: %v", err)
		}
		logrus.Infof("wrote %d observed signal(s) to %s", len(signals), outPath)
	},
}

func driveSamples(spec *config.GraphSpec, sources map[string]config.Source, samples []ingest.Sample) error {
	for i, src := range spec.Sources {
		receiver, ok := sources[src.Variable]
		if !ok {
			continue
		}
		for _, s := range samples {
			value := s.Value
			if i == 1 {
				if !s.HasTwo {
					continue
				}
				value = s.Value2
			}
			if err := receiver.Receive(s.Time, value); err != nil {
				return fmt.Errorf("variable %q at t=%g: %w", src.Variable, s.Time, err)
			}
		}
	}
	return nil
}

func writeSignals(path string, observed []string, signals map[string]*pwp.Signal) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write([]string{"variable", "time", "value"}); err != nil {
		return err
	}
	for _, variable := range observed {
		signal := signals[variable]
		times, values := signal.Points()
		for i := range times {
			row := []string{
				variable,
				strconv.FormatFloat(times[i], 'g', -1, 64),
				strconv.FormatFloat(values[i], 'g', -1, 64),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func init() {
	runCmd.Flags().StringVar(&graphPath, "graph", "", "Path to the graph spec YAML file")
	runCmd.Flags().StringVar(&csvPath, "csv", "", "Path to the input CSV trace")
	runCmd.Flags().StringVar(&outPath, "out", "out.csv", "Path to write observed signal points to")
	runCmd.MarkFlagRequired("graph")
	runCmd.MarkFlagRequired("csv")
}
