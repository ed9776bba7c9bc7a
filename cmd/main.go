package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/studyplan-backend/internal/app"
)

var rootCmd = &cobra.Command{
	Use:           "studyplan",
	Short:         "Weekly study schedule API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := app.LoadEnvFile(); err != nil {
			return fmt.Errorf("loading env file: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	log, err := app.NewLogger()
	if err != nil {
		return err
	}
	a, err := app.New(ctx, log)
	if err != nil {
		log.Error("app init failed", "error", err)
		log.Sync()
		return err
	}
	defer a.Close()
	return a.Run(ctx)
}
