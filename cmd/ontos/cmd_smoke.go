package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ontos-ai/ontos/internal/config"
	"github.com/ontos-ai/ontos/internal/judge"
	"github.com/ontos-ai/ontos/internal/provider"
	"github.com/ontos-ai/ontos/internal/skill"
	"github.com/ontos-ai/ontos/internal/smoke"
)

func newSmokeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smoke <skill-path>",
		Short: "Smoke-test a skill against a live model provider",
		Long: `Generate test prompts from the skill metadata, send each to the
configured provider, and judge whether the responses actually used the
skill. Requires a provider credential in the environment or a config
file; static evaluation (ontos eval) never needs one.`,
		Args:          cobra.ExactArgs(1),
		RunE:          runSmoke,
		SilenceErrors: true,
	}
	cmd.Flags().String("provider", "", "Provider name (default from config)")
	cmd.Flags().String("judge", "", "Judge mode: rule | llm | hybrid (default from config)")
	cmd.Flags().Int("count", 0, "Number of test prompts (default from config)")
	cmd.Flags().String("format", "text", "Output format: text | json | markdown")
	return cmd
}

func runSmoke(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	providerName, _ := cmd.Flags().GetString("provider")
	judgeFlag, _ := cmd.Flags().GetString("judge")
	count, _ := cmd.Flags().GetInt("count")

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if providerName == "" {
		providerName = cfg.Settings.Provider
	}
	if judgeFlag == "" {
		judgeFlag = cfg.Settings.JudgeMode
	}
	if count == 0 {
		count = cfg.Settings.PromptCount
	}

	mode, err := judge.ParseMode(judgeFlag)
	if err != nil {
		return &config.Error{Detail: err.Error()}
	}

	pc, err := cfg.ProviderConfig(providerName)
	if err != nil {
		return err
	}
	client, err := provider.New(pc)
	if err != nil {
		return err
	}
	if !client.HasCredential() {
		spec, _ := cfg.Provider(providerName)
		return &config.Error{Detail: fmt.Sprintf(
			"provider %q has no credential: set %s or add it to a config file",
			providerName, spec.CredentialEnvVar)}
	}

	doc, err := loadSkillArg(args[0])
	if err != nil {
		return err
	}

	j := &judge.Judge{Mode: mode}
	if mode != judge.ModeRule {
		j.Model = &judge.ModelJudge{Provider: client}
	}

	runner := &smoke.Runner{
		Provider:    client,
		Judge:       j,
		PromptCount: count,
	}
	report, err := runner.Run(cmd.Context(), doc)
	if err != nil {
		return err
	}

	out, err := renderSmokeReport(report, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)

	if !report.Passed {
		return &TestFailureError{Message: report.Summary}
	}
	return nil
}

// loadSkillArg accepts a skill directory or a SKILL.md path.
func loadSkillArg(target string) (*skill.Document, error) {
	dirs, err := evalTargets(target, false)
	if err != nil {
		return nil, err
	}
	return skill.Load(dirs[0])
}
