// Copyright 2026 The Berth Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package command

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/berth-host/berth/cmd/berth/internal/loader"
	"github.com/berth-host/berth/cmd/berth/internal/view"
	"github.com/berth-host/berth/pkg/compose"
	"github.com/berth-host/berth/pkg/confine"
	"github.com/berth-host/berth/pkg/policy"
	"github.com/berth-host/berth/pkg/ports"
)

type TransformOptions struct {
	Path      string
	Project   string
	StartPort int
	Write     bool
}

func NewTransformCommand(cli *CLI) *cobra.Command {
	var opts TransformOptions

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Rewrite a declaration into its namespaced, confined form",
		Long: Highlight("berth transform -f <path> -p <project>") + "\n\n" +
			"Run a tenant declaration through the full pipeline: validate it,\n" +
			"namespace container names and labels, apply resource and restart\n" +
			"defaults, reassign host ports from the project's allocation, and\n" +
			"confine volume and build paths to the project directory.\n\n" +
			"The confined YAML is printed to stdout; port assignments follow as\n" +
			"comment lines.\n\n" +
			"Examples:\n" +
			"  # Transform a declaration for project john-myapp\n" +
			"  berth transform -f compose.yaml -p john-myapp\n\n" +
			"  # Rewrite the file in place, pinning the port block\n" +
			"  berth transform -f compose.yaml -p john-myapp --start-port 10000 -w\n",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTransform(cmd.Context(), cli, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Path, "file", "f", "", "Path to a declaration file")
	cmd.Flags().StringVarP(&opts.Project, "project", "p", "", "Project namespace, <username>-<appname>")
	cmd.Flags().IntVar(&opts.StartPort, "start-port", 0, "First host port of the project's allocation; 0 leases a block from the platform range")
	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Rewrite the declaration file in place")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("project")

	return cmd
}

func RunTransform(ctx context.Context, cli *CLI, opts TransformOptions) error {
	data, err := loader.LoadDeclaration(opts.Path)
	if err != nil {
		return err
	}

	var lease *ports.Lease
	if opts.StartPort == 0 {
		opts.StartPort = policy.ExternalPortRangeStart
		if n := publishedPorts(data); n > 0 {
			lease, err = cli.Ports.Reserve(opts.Project, n)
			if err != nil {
				return err
			}
			opts.StartPort = lease.Start
		}
	}

	outcome, err := confine.Process(data, opts.Project, opts.StartPort)
	if err != nil {
		if lease != nil {
			cli.Ports.Release(lease.ID)
		}
		// Policy failures carry the full report; render it the same way
		// validate does so the two commands read alike.
		if report, ok := confine.AsViolations(err); ok {
			result := view.ValidateResult{Files: []view.ValidateFile{
				{File: opts.Path, Violations: report.Messages()},
			}}
			view.NewValidateView(cli.Viewer).Render(result)
			return errors.New("")
		}
		return err
	}

	result := view.TransformResult{
		File:     opts.Path,
		YAML:     string(outcome.YAML),
		Services: outcome.Services,
		Written:  opts.Write,
	}
	for _, m := range outcome.PortMappings {
		result.Ports = append(result.Ports, view.PortAssignment{
			Service:  m.Service,
			Internal: m.Internal,
			External: m.External,
			Protocol: m.Protocol,
		})
	}

	if opts.Write {
		if err := os.WriteFile(opts.Path, outcome.YAML, 0o644); err != nil {
			return err
		}
	}

	view.NewTransformView(cli.Viewer).Render(result)
	return nil
}

// publishedPorts counts the host-port bindings a declaration publishes,
// sizing the lease taken for it. Unparseable input counts as zero; the
// pipeline reports the parse failure itself.
func publishedPorts(data []byte) int {
	doc, err := compose.Parse(data)
	if err != nil {
		return 0
	}
	n := 0
	for _, svc := range doc.Services() {
		n += len(svc.PortNodes())
	}
	return n
}
