package main

import (
	"fmt"
	"strconv"

	"github.com/deppfellow/issuetrack/internal/errs"
	"github.com/deppfellow/issuetrack/internal/lib/utils"
	"github.com/deppfellow/issuetrack/internal/model"
	"github.com/spf13/cobra"
)

func newUserCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "user <username>",
		Short: "Look up a user by exact username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.repos.Users.FindUserByUsername(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if user == nil {
				return errs.NewNotFoundError(fmt.Sprintf("no user named %q", args[0]), nil)
			}
			return utils.PrintJSON(cmd.OutOrStdout(), user)
		},
	}
}

func newIssuesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "issues <user-id>",
		Short: "List issues a user created, resolves or verifies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}
			issues, err := c.repos.Issues.FindIssuesForUser(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), issues)
		},
	}
}

func newSearchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "search <pattern>",
		Short: "Search issue titles (pattern is wrapped in % unless already wrapped)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			issues, err := c.repos.Issues.SearchIssuesByTitle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), issues)
		},
	}
}

// issueFlags binds the writable issue fields to a command's flags.
type issueFlags struct {
	title       string
	creator     int64
	resolver    int64
	verifier    int64
	description string
}

func (f *issueFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.title, "title", "", "issue title")
	flags.Int64Var(&f.creator, "creator", 0, "creator user id")
	flags.Int64Var(&f.resolver, "resolver", 0, "resolver user id (0 for none)")
	flags.Int64Var(&f.verifier, "verifier", 0, "verifier user id (0 for none)")
	flags.StringVar(&f.description, "description", "", "issue description")
}

func (f *issueFlags) input(cmd *cobra.Command) model.IssueInput {
	in := model.IssueInput{Title: f.title, CreatorID: f.creator}
	if f.resolver != 0 {
		in.ResolverID = &f.resolver
	}
	if f.verifier != 0 {
		in.VerifierID = &f.verifier
	}
	if cmd.Flags().Changed("description") {
		in.Description = &f.description
	}
	return in
}

func newAddCmd(c *cli) *cobra.Command {
	f := &issueFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an issue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ok, err := c.repos.Issues.AddIssue(cmd.Context(), f.input(cmd))
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), map[string]bool{"added": ok})
		},
	}
	f.bind(cmd)
	return cmd
}

func newUpdateCmd(c *cli) *cobra.Command {
	f := &issueFlags{}
	cmd := &cobra.Command{
		Use:   "update <issue-id>",
		Short: "Overwrite every field of an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			issueID, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := c.repos.Issues.UpdateIssue(cmd.Context(), issueID, f.input(cmd))
			if err != nil {
				return err
			}
			issue, err := c.repos.Issues.GetIssue(cmd.Context(), issueID)
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), map[string]any{"updated": ok, "issue": issue})
		},
	}
	f.bind(cmd)
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewValidationError(fmt.Sprintf("invalid id %q", s),
			[]errs.FieldError{{Field: "id", Error: "must be a positive integer"}})
	}
	return id, nil
}
