package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	wetwire "github.com/lex00/wetwire-stacks-go"
	"github.com/lex00/wetwire-stacks-go/internal/lint"
	"github.com/lex00/wetwire-stacks-go/manifest"
)

func newLintCmd() *cobra.Command {
	var (
		outputFormat string
		rules        []string
	)

	cmd := &cobra.Command{
		Use:   "lint <manifest>",
		Short: "Check a manifest for configuration issues",
		Long: `Lint checks a stack manifest for configurations that build but deviate
from the secure baseline or known platform limits.

Rules:
    WST001: Zone count must stay within the private subnet tier offset
    WST002: Bucket overrides that weaken the secure baseline
    WST003: Wildcard principals in role trust policies
    WST004: Alarms with no actions configured
    WST005: No Name tag defined; generated default will apply

Examples:
    wetwire-stacks lint stack.yaml
    wetwire-stacks lint stack.yaml --rules WST002,WST003`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(args[0], outputFormat, rules)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().StringSliceVar(&rules, "rules", nil, "Rules to enable (default: all)")

	return cmd
}

func runLint(manifestPath, format string, rules []string) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	result := lint.Lint(m, lint.Options{EnabledRules: rules})

	lintResult := wetwire.LintResult{Success: result.Success}
	for _, issue := range result.Issues {
		lintResult.Issues = append(lintResult.Issues, wetwire.LintIssue{
			Component: issue.Component,
			Severity:  string(issue.Severity),
			Message:   issue.Message,
			Rule:      issue.Rule,
		})
	}

	return outputLintResult(lintResult, format)
}

func outputLintResult(result wetwire.LintResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.Success {
			fmt.Println("No issues found")
			return nil
		}
		for _, issue := range result.Issues {
			fmt.Printf("%s [%s] %s: %s\n", issue.Rule, issue.Severity, issue.Component, issue.Message)
		}
		fmt.Printf("\n%d issue(s) found\n", len(result.Issues))

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		os.Exit(1)
	}

	return nil
}
