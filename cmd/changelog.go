package cmd

import (
	"time"

	"github.com/google/uuid"
	"github.com/ortelius/pdvd-changelog/internal/changelog"
	"github.com/ortelius/pdvd-changelog/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewChangelogCommand computes a single changelog against the configured database.
func NewChangelogCommand() *cobra.Command {
	changelogCmd := &cobra.Command{
		Use:   "changelog",
		Short: "Compute a changelog and print it",
	}
	changelogCmd.PersistentFlags().String("org", "", "Organization uuid (required)")
	changelogCmd.PersistentFlags().String("mode", string(changelog.ModeNone), "NONE or AGGREGATED")
	changelogCmd.PersistentFlags().String("timeZone", "", "IANA time zone used to render dates")
	changelogCmd.PersistentFlags().StringP("output", "o", "json", "Output format: json or table")

	releasesCmd := &cobra.Command{
		Use:   "releases <release1> <release2>",
		Short: "Compare two releases of a component",
		Args:  cobra.ExactArgs(2),
		RunE:  runReleases,
	}

	componentCmd := &cobra.Command{
		Use:   "component <componentUuid>",
		Short: "Changes of a component within a date range",
		Args:  cobra.ExactArgs(1),
		RunE:  runComponent,
	}
	componentCmd.Flags().String("branch", "", "Restrict to one branch uuid")
	addRangeFlags(componentCmd)

	orgCmd := &cobra.Command{
		Use:   "org",
		Short: "Changes of every component of an organization within a date range",
		Args:  cobra.NoArgs,
		RunE:  runOrg,
	}
	orgCmd.Flags().String("perspective", "", "Restrict to components visible from this perspective uuid")
	addRangeFlags(orgCmd)

	changelogCmd.AddCommand(releasesCmd, componentCmd, orgCmd)
	return changelogCmd
}

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "Start of the range, ISO-8601 (required)")
	cmd.Flags().String("to", "", "End of the range, ISO-8601 (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
}

func runReleases(cmd *cobra.Command, args []string) error {
	req := changelog.ReleasePairRequest{Mode: modeFlag(cmd), TimeZone: stringFlag(cmd, "timeZone")}
	var err error
	if req.OrgUUID, err = uuidFlag(cmd, "org"); err != nil {
		return err
	}
	if req.Release1, err = parseUUID("release1", args[0]); err != nil {
		return err
	}
	if req.Release2, err = parseUUID("release2", args[1]); err != nil {
		return err
	}

	rt, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	result, err := rt.service.ComponentChangelog(cmd.Context(), req)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), stringFlag(cmd, "output"), result)
}

func runComponent(cmd *cobra.Command, args []string) error {
	req := changelog.ComponentDateRequest{Mode: modeFlag(cmd), TimeZone: stringFlag(cmd, "timeZone")}
	var err error
	if req.OrgUUID, err = uuidFlag(cmd, "org"); err != nil {
		return err
	}
	if req.ComponentUUID, err = parseUUID("componentUuid", args[0]); err != nil {
		return err
	}
	if branch := stringFlag(cmd, "branch"); branch != "" {
		id, err := parseUUID("branch", branch)
		if err != nil {
			return err
		}
		req.BranchUUID = &id
	}
	if req.DateFrom, req.DateTo, err = rangeFlags(cmd); err != nil {
		return err
	}

	rt, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	result, err := rt.service.ComponentChangelogByDate(cmd.Context(), req)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), stringFlag(cmd, "output"), result)
}

func runOrg(cmd *cobra.Command, _ []string) error {
	req := changelog.OrganizationDateRequest{Mode: modeFlag(cmd), TimeZone: stringFlag(cmd, "timeZone")}
	var err error
	if req.OrgUUID, err = uuidFlag(cmd, "org"); err != nil {
		return err
	}
	if perspective := stringFlag(cmd, "perspective"); perspective != "" {
		id, err := parseUUID("perspective", perspective)
		if err != nil {
			return err
		}
		req.PerspectiveUUID = &id
	}
	if req.DateFrom, req.DateTo, err = rangeFlags(cmd); err != nil {
		return err
	}

	rt, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	result, err := rt.service.OrganizationChangelogByDate(cmd.Context(), req)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), stringFlag(cmd, "output"), result)
}

func stringFlag(cmd *cobra.Command, name string) string {
	value, _ := cmd.Flags().GetString(name)
	return value
}

func modeFlag(cmd *cobra.Command) changelog.Mode {
	return changelog.Mode(stringFlag(cmd, "mode"))
}

func uuidFlag(cmd *cobra.Command, name string) (uuid.UUID, error) {
	return parseUUID(name, stringFlag(cmd, name))
}

func parseUUID(name, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "--%s", name)
	}
	return id, nil
}

func rangeFlags(cmd *cobra.Command) (time.Time, time.Time, error) {
	from, err := util.ParseTimestamp(stringFlag(cmd, "from"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, "--from")
	}
	to, err := util.ParseTimestamp(stringFlag(cmd, "to"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, "--to")
	}
	return from, to, nil
}
