package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/storybuilder/internal/config"
	"github.com/at-ishikawa/storybuilder/internal/datasync"
	"github.com/at-ishikawa/storybuilder/internal/storage"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migration commands",
	}
	cmd.AddCommand(newMigrateStorageCommand())
	return cmd
}

func newMigrateStorageCommand() *cobra.Command {
	var (
		to             string
		toDirectory    string
		toSQLitePath   string
		dryRun         bool
		updateExisting bool
	)

	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Copy the project from the configured storage into another backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if to == config.BackendMemory {
				return fmt.Errorf("--to %s would discard the copy; choose file, sqlite or mysql", config.BackendMemory)
			}

			destCfg := cfg.Storage
			destCfg.Backend = to
			if toDirectory != "" {
				destCfg.Directory = toDirectory
			}
			if toSQLitePath != "" {
				destCfg.SQLitePath = toSQLitePath
			}
			if destCfg == cfg.Storage {
				return fmt.Errorf("the destination is the configured storage; set --to or a different location")
			}

			source, closeSource, err := storage.Open(ctx, cfg.Storage, cfg.Database)
			if err != nil {
				return fmt.Errorf("storage.Open(%s) > %w", cfg.Storage.Backend, err)
			}
			defer func() {
				err = errors.Join(err, closeSource())
			}()

			destination, closeDestination, err := storage.Open(ctx, destCfg, cfg.Database)
			if err != nil {
				return fmt.Errorf("storage.Open(%s) > %w", destCfg.Backend, err)
			}
			defer func() {
				err = errors.Join(err, closeDestination())
			}()

			importer := datasync.NewImporter(source, destination, out)
			opts := datasync.ImportOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			}
			result, err := importer.ImportProject(ctx, opts)
			if err != nil {
				return fmt.Errorf("importer.ImportProject() > %w", err)
			}

			fmt.Fprintln(out, "\nMigration Summary:")
			if opts.DryRun {
				fmt.Fprintln(out, "  (dry-run mode, no changes made)")
			}
			fmt.Fprintf(out, "  Keys: %d new, %d skipped, %d updated, %d unchanged, %d missing\n",
				result.KeysNew, result.KeysSkipped, result.KeysUpdated, result.KeysUnchanged, result.KeysMissing)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", config.BackendSQLite, "Destination backend. Options: file, sqlite, mysql")
	cmd.Flags().StringVar(&toDirectory, "to-directory", "", "Directory of the file backend destination")
	cmd.Flags().StringVar(&toSQLitePath, "to-sqlite-path", "", "Database file of the sqlite backend destination")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the destination")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Overwrite keys that already exist in the destination")
	return cmd
}
