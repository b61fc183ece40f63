package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/avenirlabs/scorecard-ai/internal/diagnostics"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check provider connectivity and host health",
	Long:  "Probe every configured provider and print host facts.",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	manager, err := newManager(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("Checking providers...")
	fmt.Println()

	rep := diagnostics.Run(ctx, manager)
	for _, check := range rep.Providers {
		if check.OK {
			fmt.Printf("  ✓ %s\n", check.Name)
			continue
		}
		fmt.Printf("  ✗ %s: %s\n", check.Name, check.Error)
	}

	fmt.Println()
	fmt.Println("Host:")
	fmt.Printf("  %s/%s, %d threads", rep.Host.OS, rep.Host.Arch, rep.Host.CPUThreads)
	if rep.Host.CPUModel != "" {
		fmt.Printf(" (%s)", rep.Host.CPUModel)
	}
	fmt.Println()
	if rep.Host.MemTotalMB > 0 {
		fmt.Printf("  memory: %.0f MB used of %.0f MB (%.0f%%)\n",
			rep.Host.MemUsedMB, rep.Host.MemTotalMB, rep.Host.MemPercent)
	}
	if rep.Host.DiskTotalGB > 0 {
		fmt.Printf("  disk:   %.1f GB used of %.1f GB (%.0f%%)\n",
			rep.Host.DiskUsedGB, rep.Host.DiskTotalGB, rep.Host.DiskPercent)
	}
	if rep.Host.LoadAvg1 > 0 {
		fmt.Printf("  load:   %.2f %.2f %.2f\n",
			rep.Host.LoadAvg1, rep.Host.LoadAvg5, rep.Host.LoadAvg15)
	}

	fmt.Println()
	if !rep.Healthy {
		fmt.Println("No provider is reachable. Set an API key (e.g. OPENAI_API_KEY) or start a local backend.")
		return fmt.Errorf("doctor found no usable provider")
	}
	fmt.Printf("At least one provider is up. (checked in %s)\n", rep.Elapsed.Round(time.Millisecond))
	return nil
}
