package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/avenirlabs/scorecard-ai/internal/assessment"
	"github.com/avenirlabs/scorecard-ai/internal/core"
	"github.com/avenirlabs/scorecard-ai/internal/tui"
)

var (
	assessAuto     bool
	assessPersona  string
	assessName     string
	assessCompany  string
	assessIndustry string
	assessEmail    string
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run an assessment in the terminal",
	Long: `Run an AI-maturity assessment. Interactive by default; --auto answers
every question in a persona's voice and goes straight to the report.

Examples:
  # Interactive assessment
  scorecard assess --company "Acme Corp" --industry retail

  # Headless persona run
  scorecard assess --auto --persona Leader`,
	RunE: runAssess,
}

func init() {
	rootCmd.AddCommand(assessCmd)

	assessCmd.Flags().BoolVar(&assessAuto, "auto", false,
		"answer automatically in the persona's voice")
	assessCmd.Flags().StringVar(&assessPersona, "persona", "",
		"persona for --auto (Dabbler, Enabler, Leader; default from config)")
	assessCmd.Flags().StringVar(&assessName, "name", "", "respondent name")
	assessCmd.Flags().StringVar(&assessCompany, "company", "", "company name")
	assessCmd.Flags().StringVar(&assessIndustry, "industry", "", "industry")
	assessCmd.Flags().StringVar(&assessEmail, "email", "", "contact email")
}

func runAssess(_ *cobra.Command, _ []string) error {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	manager, err := newManager(cfg, logger)
	if err != nil {
		return err
	}

	store, err := newReportStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	sessions := newSessionStore(cfg)
	defer sessions.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := manager.Initialize(ctx); err != nil {
		return fmt.Errorf("no provider available: %w", err)
	}
	logger.Info("provider ready", "current", manager.Current())

	controller := assessment.NewController(manager, sessions, store,
		assessment.WithLogger(logger),
		assessment.WithMaxQuestions(cfg.Assessment.MaxQuestions),
		assessment.WithHardCap(cfg.Assessment.HardCap),
	)

	lead := core.LeadInfo{
		Name:     assessName,
		Company:  assessCompany,
		Industry: assessIndustry,
		Email:    assessEmail,
	}

	var rep *core.Report
	if assessAuto {
		rep, err = runAutoAssessment(ctx, controller, lead, cfg.Assessment.DefaultPersona)
	} else {
		rep, err = tui.Run(controller, lead)
	}
	if err != nil {
		return err
	}
	if rep == nil {
		// Interactive run ended before a report was generated.
		return nil
	}

	fmt.Printf("Assessment complete.\n")
	fmt.Printf("  tier:      %s\n", rep.Tier)
	fmt.Printf("  questions: %d\n", len(rep.History))
	fmt.Printf("  report:    %s\n", rep.ID)
	fmt.Printf("\nView it with: scorecard report show %s\n", rep.ID)
	return nil
}

func runAutoAssessment(ctx context.Context, controller *assessment.Controller, lead core.LeadInfo, defaultPersona string) (*core.Report, error) {
	personaName := assessPersona
	if personaName == "" {
		personaName = defaultPersona
	}
	persona := core.ParseTier(personaName)
	if !persona.Known() {
		return nil, fmt.Errorf("unknown persona %q (want Dabbler, Enabler or Leader)", personaName)
	}

	sess, err := controller.Start(ctx, lead)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Running %s persona against session %s\n", persona, sess.ID)

	if sess.Pending != nil {
		if err := controller.AutoComplete(ctx, sess.ID, persona); err != nil {
			return nil, err
		}
	}
	return controller.GenerateReport(ctx, sess.ID)
}
