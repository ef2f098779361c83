// landingctl is the operational CLI for the landing site database:
// seeding the admin user and sample content, and resetting the admin
// password from a trusted shell instead of the HTTP endpoint.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"landing-api/internal/config"
	"landing-api/internal/db"
)

func main() {
	root := &cobra.Command{
		Use:   "landingctl",
		Short: "Operational tasks for the landing site database",
	}
	root.AddCommand(seedCmd(), resetAdminCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context) (*db.Store, config.Config, error) {
	cfg := config.Load()
	store, err := db.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, cfg, fmt.Errorf("db connect: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, cfg, fmt.Errorf("schema setup: %w", err)
	}
	return store, cfg, nil
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the admin user, sample posts, and a sample contact submission",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			store, cfg, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash admin password: %w", err)
			}

			adminCreated, postsCreated, err := store.Initialize(ctx, string(hash))
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			if !adminCreated {
				fmt.Println("admin user already exists, nothing to do")
				return nil
			}

			sub, err := store.CreateContactSubmission(ctx,
				"John Doe",
				"john.doe@example.com",
				"Hello! I'm interested in learning more about your services. This is a sample contact submission.",
			)
			if err != nil {
				return fmt.Errorf("seed contact submission: %w", err)
			}

			fmt.Printf("created admin user, %d sample posts, and contact submission %s\n", postsCreated, sub.ID)
			return nil
		},
	}
}

func resetAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-admin",
		Short: "Reset the admin password to ADMIN_PASSWORD",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			store, cfg, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash admin password: %w", err)
			}
			user, err := store.UpsertUserPassword(ctx, db.AdminUsername, string(hash))
			if err != nil {
				return fmt.Errorf("reset admin: %w", err)
			}
			fmt.Printf("reset password for %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}
}
