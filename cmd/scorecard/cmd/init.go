package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avenirlabs/scorecard-ai/internal/config"
	"github.com/avenirlabs/scorecard-ai/internal/fsutil"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .scorecard.yaml",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false,
		"overwrite an existing config file")
}

func runInit(_ *cobra.Command, _ []string) error {
	path := ".scorecard.yaml"
	if cfgFile != "" {
		path = cfgFile
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := fsutil.WriteFileAtomic(path, []byte(config.DefaultConfigYAML), 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	fmt.Println("Set OPENAI_API_KEY or GROQ_API_KEY, then run 'scorecard doctor'.")
	return nil
}
