//go:build ignore
// +build ignore

// Generates website/docs/policy.md, the tenant-facing reference of the
// platform security policy, from the tables in pkg/policy. Run from the
// repository root:
//
//	go run scripts/generate-policy-doc.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/berth-host/berth/pkg/policy"
)

const outputFile = "website/docs/policy.md"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	content := generateMarkdown()

	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(outputFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outputFile, err)
	}

	fmt.Printf("Generated: %s\n", outputFile)
	return nil
}

func generateMarkdown() string {
	var sb strings.Builder

	sb.WriteString("---\n")
	sb.WriteString("sidebar_position: 1\n")
	sb.WriteString("---\n\n")
	sb.WriteString("# Declaration policy\n\n")
	sb.WriteString("Berth validates every compose declaration you deploy against the\n")
	sb.WriteString("platform security policy below, and rewrites accepted declarations\n")
	sb.WriteString("into a confined form. This page is generated from the policy tables;\n")
	sb.WriteString("do not edit it by hand.\n\n")

	sb.WriteString("## Blocked service options\n\n")
	sb.WriteString("Declarations using any of these service options are rejected:\n\n")
	for _, option := range sortedSet(policy.BlockedServiceOptions.UnsortedList()) {
		sb.WriteString(fmt.Sprintf("- `%s`\n", option))
	}
	sb.WriteString("\n")

	sb.WriteString("## Protected host paths\n\n")
	sb.WriteString("Volumes may not mount these host paths or anything under them:\n\n")
	for _, root := range sortedSet(policy.DeniedVolumeSources) {
		sb.WriteString(fmt.Sprintf("- `%s`\n", root))
	}
	sb.WriteString("\n")

	sb.WriteString("## Resource limits\n\n")
	sb.WriteString("| | Default | Maximum |\n")
	sb.WriteString("|---|---|---|\n")
	sb.WriteString(fmt.Sprintf("| CPUs | %s | %s |\n", policy.DefaultCPULimit, policy.MaxCPULimit))
	sb.WriteString(fmt.Sprintf("| Memory | %s | %s |\n\n", policy.DefaultMemoryLimit, policy.MaxMemoryLimit))
	sb.WriteString("Services without declared limits receive the defaults; declared\n")
	sb.WriteString("limits above the maximum are rejected.\n\n")

	sb.WriteString("## Networks\n\n")
	sb.WriteString(fmt.Sprintf("Every service joins the shared platform network `%s`.\n", policy.SharedNetworkName))
	sb.WriteString("It is the only network you may declare `external: true`; additional\n")
	sb.WriteString("private networks are allowed with the default bridge driver.\n\n")

	sb.WriteString("## Data directories\n\n")
	sb.WriteString(fmt.Sprintf("Application volume sources and build contexts are confined under\n`%s`; ", policy.AppVolumePrefix))
	sb.WriteString(fmt.Sprintf("recognized data-store services keep state under `%s`.\n", policy.DataVolumePrefix))
	sb.WriteString("A service whose image name contains one of these is treated as a\ndata store:\n\n")
	for _, image := range sortedSet(policy.DataStoreImages) {
		sb.WriteString(fmt.Sprintf("- `%s`\n", image))
	}
	sb.WriteString("\n")

	sb.WriteString("## Infrastructure images\n\n")
	sb.WriteString("Besides data stores, these image names mark a service as supporting\n")
	sb.WriteString("infrastructure when berth checks whether a declaration contains a\n")
	sb.WriteString("deployable application:\n\n")
	for _, image := range sortedSet(policy.AuxiliaryImages) {
		sb.WriteString(fmt.Sprintf("- `%s`\n", image))
	}

	return sb.String()
}

// sortedSet copies and sorts a table so regenerating the page is
// deterministic regardless of table order.
func sortedSet(entries []string) []string {
	out := make([]string, len(entries))
	copy(out, entries)
	sort.Strings(out)
	return out
}
