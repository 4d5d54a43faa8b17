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

	"github.com/spf13/cobra"

	"github.com/berth-host/berth/cmd/berth/internal/loader"
	"github.com/berth-host/berth/cmd/berth/internal/view"
	"github.com/berth-host/berth/pkg/confine"
)

type AnalyzeOptions struct {
	Path string
}

func NewAnalyzeCommand(cli *CLI) *cobra.Command {
	var opts AnalyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Classify a declaration's services as application or infrastructure",
		Long: Highlight("berth analyze -f <path>") + "\n\n" +
			"Classify every service in a declaration as an application or an\n" +
			"infrastructure service (data stores and auxiliary tooling), and\n" +
			"warn when the declaration contains no application at all.\n\n" +
			"Examples:\n" +
			"  # Analyze a declaration\n" +
			"  berth analyze -f compose.yaml\n",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunAnalyze(cmd.Context(), cli, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Path, "file", "f", "", "Path to a declaration file")
	cmd.MarkFlagRequired("file")

	return cmd
}

func RunAnalyze(ctx context.Context, cli *CLI, opts AnalyzeOptions) error {
	data, err := loader.LoadDeclaration(opts.Path)
	if err != nil {
		return err
	}

	doc, err := confine.Parse(data)
	if err != nil {
		return err
	}

	analysis := confine.AnalyzeCompleteness(doc)

	view.NewAnalyzeView(cli.Viewer).Render(view.AnalyzeResult{
		File:               opts.Path,
		Total:              analysis.TotalServices,
		Applications:       analysis.AppServices,
		Infrastructure:     analysis.InfrastructureServices,
		InfrastructureOnly: analysis.InfrastructureOnly,
	})
	return nil
}
