package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"radicaltutor/internal/config"
	"radicaltutor/internal/content"
	"radicaltutor/internal/service"
	"radicaltutor/internal/session"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Radical Tutor session backup tool",
		Long: `Export, import or reset the learner's session document, and check a
content catalog before deploying it.

The session store is selected with the same environment variables as the
server (STORE_BACKEND, SESSION_FILE, DB_PATH, DATABASE_URL, REDIS_ADDR, ...).

Examples:
  backup export
  backup export --output mybackup.json
  backup import --input backup.json
  backup reset --yes
  backup validate-catalog ./data/radicals.json
`,
		SilenceUsage: true,
	}

	cmd.AddCommand(exportCmd(), importCmd(), resetCmd(), validateCatalogCmd())
	return cmd
}

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the session document to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Generate default filename if not provided
			if output == "" {
				output = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
			}

			// Ensure directory exists
			if dir := filepath.Dir(output); dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			return withBackupService(cmd.Context(), func(ctx context.Context, svc *service.BackupService) error {
				log.Printf("Exporting session to: %s", output)
				return svc.Export(ctx, output)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	return cmd
}

func importCmd() *cobra.Command {
	var (
		input string
		yes   bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the session document with a backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(input); err != nil {
				return fmt.Errorf("input file %s: %w", input, err)
			}
			if !yes && !confirm(cmd, "WARNING: This will replace the current session. Type 'yes' to confirm: ") {
				log.Println("Import cancelled")
				return nil
			}

			return withBackupService(cmd.Context(), func(ctx context.Context, svc *service.BackupService) error {
				return svc.Import(ctx, input)
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file path (required)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func resetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the session document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd, "WARNING: This will delete all recorded progress. Type 'yes' to confirm: ") {
				log.Println("Reset cancelled")
				return nil
			}

			return withBackupService(cmd.Context(), func(ctx context.Context, svc *service.BackupService) error {
				return svc.Reset(ctx)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func validateCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-catalog [path]",
		Short: "Check a content catalog (default: CATALOG_PATH)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			} else {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				path = cfg.CatalogPath
			}

			catalog, err := content.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d radicals, %d practice items, %d quiz questions\n",
				path, len(catalog.Radicals), len(catalog.Practice), len(catalog.Quiz))

			issues := content.Lint(catalog)
			for _, issue := range issues {
				fmt.Fprintf(out, "  warning: %s\n", issue)
			}
			if len(issues) == 0 {
				fmt.Fprintln(out, "  no issues found")
			}
			return nil
		},
	}
}

func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}
	return config.Load()
}

// withBackupService opens the configured session store for the duration of fn
func withBackupService(parent context.Context, fn func(context.Context, *service.BackupService) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, closer, err := session.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	return fn(ctx, service.NewBackupService(session.NewManager(store)))
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	return strings.TrimSpace(answer) == "yes"
}
