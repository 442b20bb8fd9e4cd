package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"careerfit-workers/internal/careerfit"
	"careerfit-workers/internal/common/metrics"
	"careerfit-workers/internal/models"
	"careerfit-workers/internal/predictor"
)

// dataset is the file format read by predict. userId is optional.
type dataset struct {
	UserID models.UserID `json:"userId"`
	models.UserData
}

type predictOutput struct {
	UserID       string                       `json:"userId,omitempty"`
	Predictions  []careerfit.CareerPrediction `json:"predictions"`
	AnalysisDate string                       `json:"analysisDate"`
}

func newPredictCmd() *cobra.Command {
	var (
		file string
		topN int
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Rank careers for a JSON dataset without touching any backend",
		Example: `  careerfit predict --file data.json
  cat data.json | careerfit predict --file -`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := readDataset(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			svc := predictor.NewService(nil, newLogger(nil),
				predictor.WithEngine(careerfit.NewEngine(careerfit.WithTopN(topN))),
			)
			result := svc.PredictFromData(cmd.Context(), ds.UserID.String(), ds.UserData, metrics.SourceCLI)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(predictOutput{
				UserID:       ds.UserID.String(),
				Predictions:  result.Predictions,
				AnalysisDate: result.AnalysisDate,
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "dataset file, - for stdin")
	cmd.Flags().IntVar(&topN, "top", careerfit.DefaultTopN, "number of careers to print")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readDataset(stdin io.Reader, file string) (*dataset, error) {
	var r io.Reader = stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("opening dataset: %w", err)
		}
		defer f.Close()
		r = f
	}

	var ds dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	return &ds, nil
}
