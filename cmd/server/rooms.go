package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"ecotrivia/backend/internal/config"
	"ecotrivia/backend/internal/room"

	"github.com/spf13/cobra"
)

// withAdminStore runs fn against a store that belongs to no user.
func withAdminStore(cmd *cobra.Command, fn func(context.Context, *room.Store) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return runAdmin(cmd.Context(), cfg, fn)
}

func runAdmin(ctx context.Context, cfg *config.Config, fn func(context.Context, *room.Store) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	b, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	opts, err := b.roomOptions(cfg)
	if err != nil {
		return err
	}
	opts.ClientID = "admin"
	opts.TickInterval = 0
	opts.Logger = slog.Default()
	store := room.New(b.port, b.bus, opts)
	defer store.Close()

	if err := store.Sync(ctx); err != nil {
		return err
	}
	return fn(ctx, store)
}

func newRoomsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "Inspect and manage the shared rooms.",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every persisted room.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withAdminStore(cmd, func(_ context.Context, s *room.Store) error {
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tNAME\tSTATE\tPLAYERS\tPRIVATE\tUPDATED")
					for _, r := range s.Rooms() {
						fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%t\t%s\n",
							r.ID, r.Name, r.State, len(r.Players), r.MaxPlayers, r.IsPrivate, r.UpdatedAt.Format(time.RFC3339))
					}
					return w.Flush()
				})
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Remove a room regardless of its players.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withAdminStore(cmd, func(ctx context.Context, s *room.Store) error {
					if err := s.DeleteRoom(ctx, args[0]); err != nil {
						return err
					}
					slog.Info("room deleted", "room", args[0])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Remove every room, including a collection that no longer decodes.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withAdminStore(cmd, func(ctx context.Context, s *room.Store) error {
					return s.Reset(ctx)
				})
			},
		},
	)
	return cmd
}

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run one garbage collection pass over the rooms.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAdminStore(cmd, func(ctx context.Context, s *room.Store) error {
				removed, err := s.Sweep(ctx)
				if err != nil {
					return err
				}
				slog.Info("sweep finished", "removed", len(removed))
				return nil
			})
		},
	}
}
