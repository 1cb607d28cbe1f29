package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	wetwire "github.com/lex00/wetwire-stacks-go"
	"github.com/lex00/wetwire-stacks-go/azs"
	"github.com/lex00/wetwire-stacks-go/manifest"
	"github.com/lex00/wetwire-stacks-go/stack"
)

func newBuildCmd() *cobra.Command {
	var (
		outputFormat string
		outputFile   string
		resolveAZs   bool
		region       string
	)

	cmd := &cobra.Command{
		Use:   "build <manifest>",
		Short: "Render the CloudFormation template for a manifest",
		Long: `Build expands the manifest's components and renders the template.

By default subnets select zones with the GetAZs intrinsic at deploy time.
With --resolve-azs the zone names are looked up now and pinned into the
template.

Examples:
    wetwire-stacks build stack.yaml
    wetwire-stacks build stack.yaml -o template.json
    wetwire-stacks build stack.yaml --format yaml
    wetwire-stacks build stack.yaml --resolve-azs --region us-west-2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args[0], outputFormat, outputFile, resolveAZs, region)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&resolveAZs, "resolve-azs", false, "Pin zone names instead of using GetAZs")
	cmd.Flags().StringVar(&region, "region", "", "Region for --resolve-azs (default: AWS config)")

	return cmd
}

func runBuild(cmd *cobra.Command, manifestPath, format, outputFile string, resolveAZs bool, region string) error {
	tmpl, err := buildTemplate(cmd, manifestPath, resolveAZs, region)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("build failed")
	}

	var data []byte
	switch format {
	case "json":
		data, err = stack.ToJSON(tmpl)
	case "yaml":
		data, err = stack.ToYAML(tmpl)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}

	return os.WriteFile(outputFile, data, 0o644)
}

// buildTemplate loads the manifest and expands it into a template,
// optionally pinning availability zones first.
func buildTemplate(cmd *cobra.Command, manifestPath string, resolveAZs bool, region string) (*wetwire.Template, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	var opts []manifest.BuildOption
	if resolveAZs {
		resolver, err := azs.NewResolverForRegion(cmd.Context(), region)
		if err != nil {
			return nil, err
		}
		zones, err := resolver.Zones(cmd.Context())
		if err != nil {
			return nil, err
		}
		opts = append(opts, manifest.WithAvailabilityZones(zones))
	}

	s, err := manifest.Build(m, opts...)
	if err != nil {
		return nil, err
	}

	return s.Template()
}
