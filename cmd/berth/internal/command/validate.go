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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/berth-host/berth/cmd/berth/internal/loader"
	"github.com/berth-host/berth/cmd/berth/internal/view"
	"github.com/berth-host/berth/pkg/confine"
)

type ValidateOptions struct {
	Path string
}

func NewValidateCommand(cli *CLI) *cobra.Command {
	var opts ValidateOptions

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate tenant declarations against the platform policy",
		Long: Highlight("berth validate -f <path>") + "\n\n" +
			"Validate one or more tenant compose declarations by file or directory.\n\n" +
			"Every policy violation in a declaration is reported, not just the\n" +
			"first. When targeting a directory, all .yaml and .yml files are\n" +
			"validated.\n\n" +
			"Examples:\n" +
			"  # Validate a single declaration\n" +
			"  berth validate -f compose.yaml\n\n" +
			"  # Validate all declarations in a directory\n" +
			"  berth validate -f .\n",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunValidate(cmd.Context(), cli, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Path, "file", "f", "", "Path to a declaration file or directory")
	cmd.MarkFlagRequired("file")

	return cmd
}

func RunValidate(ctx context.Context, cli *CLI, opts ValidateOptions) error {
	results, err := loader.LoadDeclarationsDetailed(opts.Path)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		return fmt.Errorf("no YAML files found in %q", opts.Path)
	}

	resultView := view.ValidateResult{}
	for _, result := range results {
		file := view.ValidateFile{File: result.Path}
		switch {
		case result.Err != nil:
			file.Error = result.Err.Error()
		default:
			doc, err := confine.Parse(result.Data)
			if err != nil {
				file.Error = err.Error()
				break
			}
			if report := confine.Validate(doc); !report.Valid() {
				file.Violations = report.Messages()
			}
		}
		resultView.Files = append(resultView.Files, file)
	}

	view.NewValidateView(cli.Viewer).Render(resultView)
	if resultView.HasErrors() {
		return errors.New("")
	}
	return nil
}
