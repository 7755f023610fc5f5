package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AlibekovAA/stride/internal/common/bootstrap"
	"github.com/AlibekovAA/stride/internal/dataset"
	"github.com/AlibekovAA/stride/internal/reminder"
)

// storeOpener returns the dataset together with the configured streak
// timezone. Tests swap it for an in-memory snapshot.
type storeOpener func(ctx context.Context) (dataset.Snapshot, *time.Location, error)

func openStore(ctx context.Context) (dataset.Snapshot, *time.Location, error) {
	app, err := bootstrap.NewStoreApp(ctx, "stridectl", nil)
	if err != nil {
		return dataset.Snapshot{}, nil, err
	}
	defer app.Close()

	return app.Store.Load(ctx), app.Config.Location, nil
}

func dueCmd(open storeOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List open tasks whose deadline falls inside the reminder window",
		RunE: func(cmd *cobra.Command, args []string) error {
			window, _ := cmd.Flags().GetDuration("window")
			at, _ := cmd.Flags().GetString("at")

			snap, loc, err := open(cmd.Context())
			if err != nil {
				return err
			}

			now := time.Now()
			if at != "" {
				now, err = time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at value %q: %w", at, err)
				}
			}

			due := reminder.DueSoon(snap, now, window)
			return writeYAML(cmd.OutOrStdout(), dueView(due, loc))
		},
	}

	cmd.Flags().Duration("window", reminder.DefaultWindow, "Look-ahead window")
	cmd.Flags().String("at", "", "Evaluate as of this RFC3339 instant instead of now")

	return cmd
}

func usersCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "Show every user with their streak and task counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, loc, err := open(cmd.Context())
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), usersView(snap, loc))
		},
	}
}

func dumpCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the whole dataset without password hashes",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, loc, err := open(cmd.Context())
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), dumpView(snap, loc))
		},
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return enc.Close()
}
