// Command wetwire-stacks builds CloudFormation templates from stack
// manifests of high-level components with secure defaults.
//
// Usage:
//
//	wetwire-stacks build stack.yaml       Render the template
//	wetwire-stacks validate stack.yaml    Build and run cfn-lint
//	wetwire-stacks lint stack.yaml        Check the manifest for issues
//	wetwire-stacks version                Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wetwire-stacks",
		Short: "Build CloudFormation templates from component manifests",
		Long: `wetwire-stacks builds CloudFormation templates from stack manifests.

A manifest declares named components with secure defaults:

    name: web
    components:
      - name: Core
        type: network
        network:
          cidrBlock: 10.0.0.0/16
          zoneCount: 2

Then render CloudFormation JSON:

    wetwire-stacks build stack.yaml`,
	}

	rootCmd.AddCommand(
		newBuildCmd(),
		newValidateCmd(),
		newLintCmd(),
		newDiffCmd(),
		newGraphCmd(),
		newExportCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("wetwire-stacks %s\n", getVersion())
		},
	}
}
