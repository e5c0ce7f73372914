package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/ortelius/pdvd-changelog/internal/changelog"
	"github.com/pkg/errors"
)

func render(w io.Writer, format string, result interface{}) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "table":
		return renderTables(w, result)
	}
	return errors.Errorf("unknown output format %q", format)
}

func renderTables(w io.Writer, result interface{}) error {
	switch r := result.(type) {
	case *changelog.NoneChangelog:
		printReleases(w, []changelog.NoneChangelog{*r})
	case *changelog.AggregatedChangelog:
		printArtifacts(w, r.SbomChanges)
		printFindings(w, r.FindingChanges)
	case *changelog.NoneOrganizationChangelog:
		printReleases(w, r.Components)
		printWarnings(w, r.Warnings)
	case *changelog.AggregatedOrganizationChangelog:
		printArtifacts(w, r.SbomChanges)
		printFindings(w, r.FindingChanges)
		printWarnings(w, r.Warnings)
	default:
		return errors.Errorf("cannot render %T as a table", result)
	}
	return nil
}

func printReleases(w io.Writer, components []changelog.NoneChangelog) {
	tw := table.NewWriter()
	tw.SetAllowedRowLength(155)
	tw.AppendHeader(table.Row{"Component", "Branch", "Release", "Compared To", "+Artifacts", "-Artifacts", "+Findings", "-Findings", "Commits"})
	for _, c := range components {
		for _, b := range c.Branches {
			for _, r := range b.Releases {
				tw.AppendRow(table.Row{
					c.ComponentName, b.BranchName, r.Release.Version, r.ComparedTo.Version,
					len(r.SbomChanges.Added), len(r.SbomChanges.Removed),
					r.FindingChanges.AppearedCount, r.FindingChanges.ResolvedCount,
					len(r.Commits),
				})
			}
		}
	}
	fmt.Fprintln(w, tw.Render())
}

func printArtifacts(w io.Writer, changes changelog.SbomChangesWithAttribution) {
	tw := table.NewWriter()
	tw.SetAllowedRowLength(155)
	tw.AppendHeader(table.Row{"Artifact", "Net", "Added In", "Removed In"})
	for _, a := range changes.Artifacts {
		net := "-"
		if a.IsNetAdded {
			net = "added"
		} else if a.IsNetRemoved {
			net = "removed"
		}
		tw.AppendRow(table.Row{a.Purl, net, attributions(a.AddedIn), attributions(a.RemovedIn)})
	}
	tw.AppendFooter(table.Row{"Total", "", changes.TotalAdded, changes.TotalRemoved})
	fmt.Fprintln(w, tw.Render())
}

func printFindings(w io.Writer, changes changelog.FindingChangesWithAttribution) {
	tw := table.NewWriter()
	tw.SetAllowedRowLength(155)
	tw.AppendHeader(table.Row{"Kind", "ID", "Subject", "Status", "Appeared In", "Resolved In", "Organization"})
	for _, v := range changes.Vulnerabilities {
		tw.AppendRow(findingRow("vulnerability", v.VulnID, v.Purl, v.FindingAttribution))
	}
	for _, v := range changes.Violations {
		tw.AppendRow(findingRow("violation", v.Type, v.Purl, v.FindingAttribution))
	}
	for _, v := range changes.Weaknesses {
		tw.AppendRow(findingRow("weakness", v.CweID, v.Location, v.FindingAttribution))
	}
	tw.AppendFooter(table.Row{"Total", "", "", "", changes.TotalAppeared, changes.TotalResolved, ""})
	fmt.Fprintln(w, tw.Render())
}

func findingRow(kind, id, subject string, a changelog.FindingAttribution) table.Row {
	status := "transient"
	switch {
	case a.IsNetAppeared:
		status = "appeared"
	case a.IsNetResolved:
		status = "resolved"
	case a.IsStillPresent:
		status = "present"
	}
	return table.Row{kind, id, subject, status, attributions(a.AppearedIn), attributions(a.ResolvedIn), orgContext(a.OrgContext)}
}

func orgContext(ctx *changelog.OrgLevelContext) string {
	if ctx == nil {
		return ""
	}
	var flags []string
	if ctx.IsNewToOrganization {
		flags = append(flags, "new")
	}
	if ctx.WasPreviouslyReported {
		flags = append(flags, "previously reported")
	}
	if ctx.IsFullyResolved {
		flags = append(flags, "fully resolved")
	}
	if ctx.IsPartiallyResolved {
		flags = append(flags, "partially resolved")
	}
	if ctx.IsInheritedInAllComponents {
		flags = append(flags, "inherited")
	}
	return text.WrapSoft(strings.Join(flags, ", "), 30)
}

func attributions(list []changelog.ComponentAttribution) string {
	parts := make([]string, 0, len(list))
	for _, a := range list {
		parts = append(parts, fmt.Sprintf("%s/%s@%s", a.ComponentName, a.BranchName, a.ReleaseVersion))
	}
	return strings.Join(parts, "\n")
}

func printWarnings(w io.Writer, warnings []changelog.Warning) {
	if len(warnings) == 0 {
		return
	}
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Excluded Component", "Code", "Reason"})
	for _, warning := range warnings {
		tw.AppendRow(table.Row{warning.ComponentName, warning.Code, text.WrapText(warning.Message, 80)})
	}
	fmt.Fprintln(w, tw.Render())
}
