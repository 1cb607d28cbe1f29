package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lex00/wetwire-stacks-go/differ"
)

func newDiffCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "diff <template1> <template2>",
		Short: "Compare two rendered templates",
		Long: `Diff semantically compares two CloudFormation templates (JSON or YAML)
and reports added, removed, and modified resources.

Examples:
    wetwire-stacks diff old.json new.json
    wetwire-stacks diff old.yaml new.json --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args[0], args[1], outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runDiff(beforePath, afterPath, format string) error {
	result, err := differ.CompareFiles(beforePath, afterPath)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.Diff.Empty() {
			fmt.Println("No differences")
			return nil
		}

		for _, entry := range result.Diff.Added {
			fmt.Printf("+ %s (%s)\n", entry.Resource, entry.Type)
		}
		for _, entry := range result.Diff.Removed {
			fmt.Printf("- %s (%s)\n", entry.Resource, entry.Type)
		}
		for _, entry := range result.Diff.Modified {
			fmt.Printf("~ %s (%s)\n", entry.Resource, entry.Type)
			for _, change := range entry.Changes {
				fmt.Printf("    %s\n", change)
			}
		}
		fmt.Printf("\n%d added, %d removed, %d modified\n",
			result.Summary.Added, result.Summary.Removed, result.Summary.Modified)

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Diff.Empty() {
		os.Exit(2)
	}

	return nil
}
