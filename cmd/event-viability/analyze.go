package main

import (
	"io"
	"os"

	"github.com/iwvelando/event-viability/internal/evaluation"
	"github.com/iwvelando/event-viability/pkg/constants"
	"github.com/iwvelando/event-viability/pkg/output"
	"github.com/iwvelando/event-viability/pkg/validation"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outputFormat string
	outputPath   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Evaluate every active scenario and print the viability report",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := setup()
		if err != nil {
			return err
		}

		format := conf.Output.Format
		if outputFormat != "" {
			format = outputFormat
		}
		if format == "" {
			format = constants.OutputFormatPretty
		}
		if err := validation.ValidateOutputFormat(format); err != nil {
			return err
		}

		path := conf.Output.Path
		if outputPath != "" {
			path = outputPath
		}
		if format == constants.OutputFormatXLSX && path == "" {
			return eris.Errorf("the %s output format requires --out or output.path", format)
		}

		for _, warning := range conf.ValidateConfiguration() {
			logger.Warn("Configuration warning: "+warning,
				zap.String("op", "main.analyze"),
			)
		}

		batch, err := evaluation.Evaluate(cmd.Context(), logger, conf)
		if err != nil {
			return err
		}

		if err := writeOutput(cmd.OutOrStdout(), path, format, batch); err != nil {
			return err
		}

		if failed := len(batch.Results) - len(batch.Succeeded()); failed > 0 {
			return eris.Errorf("%d of %d scenarios could not be evaluated", failed, len(batch.Results))
		}
		return nil
	},
}

func writeOutput(stdout io.Writer, path, format string, batch evaluation.Batch) (err error) {
	if path == "" {
		return output.Write(stdout, format, batch)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "failed to create output file")
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	if err := output.Write(f, format, batch); err != nil {
		return err
	}
	logger.Info("report written",
		zap.String("op", "main.analyze"),
		zap.String("path", path),
		zap.String("format", format),
	)
	return nil
}

func init() {
	analyzeCmd.Flags().StringVarP(&outputFormat, "output-format", "f", "", "type of output override: pretty, csv, json, xlsx")
	analyzeCmd.Flags().StringVarP(&outputPath, "out", "o", "", "write the report to this file instead of stdout")
	rootCmd.AddCommand(analyzeCmd)
}
