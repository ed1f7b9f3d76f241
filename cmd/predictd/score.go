package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aetherdrive/prediction-service/internal/application/dto"
	"github.com/aetherdrive/prediction-service/internal/application/usecase"
	"github.com/aetherdrive/prediction-service/internal/infrastructure/messaging"
	"github.com/aetherdrive/prediction-service/internal/presentation/rest"
)

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score [file]",
		Short: "Score a JSON payload from a file or stdin",
		Long:  "Read one JSON payload from the given file, or from stdin when no file or \"-\" is given, and print the response POST /predict would return.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScore,
	}
}

func runScore(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening payload: %w", err)
		}
		defer f.Close()
		in = f
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))

	value, err := rest.DecodePayload(in)
	if err != nil {
		logger.Warn("payload replaced by empty object", "reason", err.Error())
	}

	predict, err := newPredict(messaging.NewLogPublisher(logger), usecase.Telemetry{Logger: logger})
	if err != nil {
		return err
	}

	resp, err := predict.Execute(cmd.Context(), dto.NewPredictRequest(value, ""))
	if err != nil {
		return err
	}
	return rest.EncodeJSON(cmd.OutOrStdout(), resp)
}
