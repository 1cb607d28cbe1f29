package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	wetwire "github.com/lex00/wetwire-stacks-go"
	"github.com/lex00/wetwire-stacks-go/internal/validation"
	"github.com/lex00/wetwire-stacks-go/manifest"
	"github.com/lex00/wetwire-stacks-go/stack"
)

// newValidateCmd creates the "validate" subcommand: build the template and
// run cfn-lint over it.
func newValidateCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Build the template and validate it with cfn-lint",
		Long: `Validate expands the manifest and checks the rendered template.

Checks performed:
  - Manifest schema and component config validity (during build)
  - Reference and dependency consistency (during build)
  - CloudFormation correctness via cfn-lint

Examples:
    wetwire-stacks validate stack.yaml
    wetwire-stacks validate stack.yaml --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runValidate(manifestPath, format string) error {
	result := wetwire.ValidateResult{}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return outputValidateResult(result, format)
	}

	s, err := manifest.Build(m)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return outputValidateResult(result, format)
	}

	tmpl, err := s.Template()
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return outputValidateResult(result, format)
	}
	result.Resources = len(tmpl.Resources)

	data, err := stack.ToJSON(tmpl)
	if err != nil {
		return err
	}

	lintResult, err := validation.LintTemplate(data)
	if err != nil {
		return err
	}
	result.Errors = append(result.Errors, lintResult.Errors...)
	result.Warnings = append(result.Warnings, lintResult.Warnings...)
	result.Success = len(result.Errors) == 0

	return outputValidateResult(result, format)
}

func outputValidateResult(result wetwire.ValidateResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.Success {
			fmt.Printf("Validation passed: %d resources OK\n", result.Resources)
			return nil
		}

		fmt.Println("Validation FAILED:")
		for _, errMsg := range result.Errors {
			fmt.Printf("  ERROR: %s\n", errMsg)
		}
		for _, warnMsg := range result.Warnings {
			fmt.Printf("  WARNING: %s\n", warnMsg)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		os.Exit(1)
	}

	return nil
}
