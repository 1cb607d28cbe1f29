package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lex00/wetwire-stacks-go/ack"
	"github.com/lex00/wetwire-stacks-go/manifest"
)

func newExportCmd() *cobra.Command {
	var (
		namespace  string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "export <manifest>",
		Short: "Export components as ACK Kubernetes resources",
		Long: `Export renders the manifest's network and identity components as AWS
Controllers for Kubernetes (ACK) custom resources. Storage and monitoring
components are skipped.

Examples:
    wetwire-stacks export stack.yaml
    wetwire-stacks export stack.yaml --namespace ack-system -o stack.k8s.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args[0], namespace, outputFile)
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "default", "Namespace for exported objects")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runExport(manifestPath, namespace, outputFile string) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	exporter := &ack.Exporter{Namespace: namespace}
	objects, err := exporter.Export(m)
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		return fmt.Errorf("no exportable components in %s", manifestPath)
	}

	data, err := exporter.RenderYAML(objects)
	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Print(string(data))
		return nil
	}

	return os.WriteFile(outputFile, data, 0o644)
}
