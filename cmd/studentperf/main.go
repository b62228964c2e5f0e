package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sparshsharma0303/MLProject/pkg/artifact"
	"github.com/sparshsharma0303/MLProject/pkg/config"
	"github.com/sparshsharma0303/MLProject/pkg/data"
	"github.com/sparshsharma0303/MLProject/pkg/ingest"
	"github.com/sparshsharma0303/MLProject/pkg/logging"
	"github.com/sparshsharma0303/MLProject/pkg/pipeline"
	"github.com/sparshsharma0303/MLProject/pkg/transform"
)

// app bundles what every subcommand needs once flags are parsed.
type app struct {
	cfg    *config.Config
	fs     afero.Fs
	out    io.Writer
	logger *slog.Logger
	schema pipeline.Schema
	closer io.Closer
}

func (a *app) setup() error {
	var w io.Writer = os.Stdout
	if a.cfg.LogFile != "" {
		if err := a.fs.MkdirAll(filepath.Dir(a.cfg.LogFile), 0o755); err != nil {
			return errors.Wrap(err, "create log directory")
		}
		f, err := a.fs.OpenFile(a.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrap(err, "open log file")
		}
		a.closer = f
		w = io.MultiWriter(os.Stdout, f)
	}
	a.logger = logging.New(logging.Config{Level: a.cfg.LogLevel, Format: a.cfg.LogFormat}, w)

	schema, err := a.cfg.Schema(a.fs)
	if err != nil {
		return err
	}
	a.schema = schema
	return nil
}

func (a *app) teardown() {
	if a.closer != nil {
		a.closer.Close()
	}
}

func ingestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest SOURCE_CSV",
		Short: "copy a raw dataset into the artifact directory and split it into train and test files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := &ingest.DataIngestion{
				Config: ingest.Config{ArtifactDir: a.cfg.ArtifactDir, TestRatio: a.cfg.TestRatio, Seed: a.cfg.Seed},
				Schema: a.schema,
				Fs:     a.fs,
				Logger: a.logger,
			}
			p, err := d.Run(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, p.Train)
			fmt.Fprintln(a.out, p.Test)
			return nil
		},
	}
}

func transformCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "transform TRAIN_CSV TEST_CSV",
		Short: "fit the preprocessor on the train file, transform both files and save the preprocessor",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := transform.New(
				transform.WithConfig(transform.Config{PreprocessorPath: a.cfg.PreprocessorPath()}),
				transform.WithSchema(a.schema),
				transform.WithFs(a.fs),
				transform.WithLogger(a.logger),
			)
			train, test, path, err := d.Run(args[0], args[1])
			if err != nil {
				return err
			}

			pre, err := artifact.Load(a.fs, path)
			if err != nil {
				return err
			}
			target, err := a.schema.Target()
			if err != nil {
				return err
			}
			names := append(pre.FeatureNames(), target)
			dir := filepath.Dir(path)
			if err := data.WriteMatrixCSV(a.fs, filepath.Join(dir, "train_array.csv"), names, train); err != nil {
				return err
			}
			if err := data.WriteMatrixCSV(a.fs, filepath.Join(dir, "test_array.csv"), names, test); err != nil {
				return err
			}
			fmt.Fprintln(a.out, path)
			return nil
		},
	}
}

func applyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "apply PREPROCESSOR INPUT_CSV OUTPUT_CSV",
		Short: "transform a file with a saved preprocessor",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pre, err := artifact.Load(a.fs, args[0])
			if err != nil {
				return err
			}
			df, err := data.ReadCSV(a.fs, args[1], a.schema)
			if err != nil {
				return err
			}
			m, err := pre.Transform(df)
			if err != nil {
				return err
			}
			a.logger.Info("applied preprocessor", "preprocessor", args[0], "rows", df.Nrow())
			return data.WriteMatrixCSV(a.fs, args[2], pre.FeatureNames(), m)
		},
	}
}

func rootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "studentperf",
		Short:         "data preparation for the student performance model",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.ArtifactDir, "artifact-dir", a.cfg.ArtifactDir, "directory for generated files")
	flags.StringVar(&a.cfg.PreprocessorFile, "preprocessor-file", a.cfg.PreprocessorFile, "file name of the fitted preprocessor")
	flags.StringVar(&a.cfg.SchemaFile, "schema", a.cfg.SchemaFile, "YAML schema file (default: student performance columns)")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "debug, info, warn or error")
	flags.StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "text or json")
	flags.StringVar(&a.cfg.LogFile, "log-file", a.cfg.LogFile, "also write logs to this file")
	flags.Float64Var(&a.cfg.TestRatio, "test-ratio", a.cfg.TestRatio, "fraction of rows held out by ingest")
	flags.Int64Var(&a.cfg.Seed, "seed", a.cfg.Seed, "shuffle seed used by ingest")

	root.AddCommand(ingestCmd(a), transformCmd(a), applyCmd(a))
	return root
}

func main() {
	a := &app{cfg: config.Load(), fs: afero.NewOsFs(), out: os.Stdout}
	if err := rootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		a.teardown()
		os.Exit(1)
	}
}
