package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yungbote/studyplan-backend/internal/app"
	"github.com/yungbote/studyplan-backend/internal/clients/redis"
	"github.com/yungbote/studyplan-backend/internal/data/db"
	"github.com/yungbote/studyplan-backend/internal/modules/schedule"
	"github.com/yungbote/studyplan-backend/internal/platform/authtoken"
)

// --- serve ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

// --- migrate ---

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the postgres tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := app.NewLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg := app.LoadConfig(nil)
		if cfg.DataBackend != app.BackendPostgres {
			return fmt.Errorf("migrate only applies to DATA_BACKEND=%s (got %q)", app.BackendPostgres, cfg.DataBackend)
		}
		pg, err := db.NewPostgresService(log, cfg.Postgres)
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		defer pg.Close()
		if err := pg.AutoMigrateAll(); err != nil {
			return fmt.Errorf("migrating: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}

// --- invalidate ---

var invalidateCmd = &cobra.Command{
	Use:   "invalidate <user-id>",
	Short: "Drop a user's cached weekly schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q: %w", args[0], err)
		}
		log, err := app.NewLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg := app.LoadConfig(nil)
		if cfg.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required; the in-process cache lives inside the server")
		}
		rc, err := redis.NewClient(cmd.Context(), log, cfg.Redis)
		if err != nil {
			return err
		}
		defer rc.Close()

		if err := schedule.NewRedisCache(rc.Redis()).Invalidate(cmd.Context(), userID); err != nil {
			return fmt.Errorf("invalidating %s: %w", schedule.CacheKey(userID), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "invalidated %s\n", schedule.CacheKey(userID))
		return nil
	},
}

// --- token ---

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Mint a development access token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q: %w", args[0], err)
		}
		role, _ := cmd.Flags().GetString("role")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		cfg := app.LoadConfig(nil)
		codec, err := authtoken.NewCodec(cfg.JWTSecretKey, ttl)
		if err != nil {
			return err
		}
		tok, err := codec.Issue(userID, role)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("role", "student", "role claim to embed")
	tokenCmd.Flags().Duration("ttl", time.Hour, "token lifetime")

	rootCmd.AddCommand(serveCmd, migrateCmd, invalidateCmd, tokenCmd)
}
