package cmd

import (
	"fmt"

	"blogwizard/internal/storage"
	"blogwizard/pkg/config"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated session directories",
	Long:  `Remove all article session directories from the output directory.`,
	RunE:  runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	count, err := storage.Clean(cfg.Output.Dir)
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d session(s) from %s\n", count, cfg.Output.Dir)
	return nil
}
