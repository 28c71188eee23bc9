package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/deppfellow/issuetrack/internal/harness"
	"github.com/deppfellow/issuetrack/internal/lib/utils"
	"github.com/deppfellow/issuetrack/internal/schema"
	"github.com/spf13/cobra"
)

var builtinSchemas = map[string]func() string{
	"issuetracker": schema.IssueTracker,
	"restaurant":   schema.Restaurant,
}

type ddlFlags struct {
	path    string
	builtin string
}

func (f *ddlFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "ddl", "", "DDL file (defaults to harness.ddl_path)")
	cmd.Flags().StringVar(&f.builtin, "builtin", "", "use an embedded schema: issuetracker or restaurant")
}

func (f *ddlFlags) load(c *cli) (string, error) {
	if f.builtin != "" {
		ddl, ok := builtinSchemas[f.builtin]
		if !ok {
			return "", fmt.Errorf("unknown builtin schema %q", f.builtin)
		}
		return ddl(), nil
	}

	path := f.path
	if path == "" {
		path = c.app.Config.Harness.DDLPath
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading ddl: %w", err)
	}
	return string(b), nil
}

func newSchemaCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect and reset DDL schemas",
	}
	cmd.AddCommand(newSchemaTablesCmd(c), newSchemaResetCmd(c))
	return cmd
}

func newSchemaTablesCmd(c *cli) *cobra.Command {
	f := &ddlFlags{}
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List the tables a DDL script creates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ddl, err := f.load(c)
			if err != nil {
				return err
			}
			tables, err := harness.ParseTablesString(ddl)
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), tables)
		},
	}
	f.bind(cmd)
	return cmd
}

func newSchemaResetCmd(c *cli) *cobra.Command {
	f := &ddlFlags{}
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop every table the DDL creates and run the DDL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ddl, err := f.load(c)
			if err != nil {
				return err
			}

			// With harness.drop_on_close set this only proves the DDL applies cleanly.
			h, err := harness.New(cmd.Context(), c.app.DB, ddl, harness.OptionsFromConfig(c.app.Config.Harness))
			if err != nil {
				return err
			}
			defer closeInto(cmd.Context(), &err, h)

			columns := make(map[string][]string, len(h.Tables()))
			for _, table := range h.Tables() {
				columns[table] = h.Catalog().Columns(table)
			}
			return utils.PrintJSON(cmd.OutOrStdout(), columns)
		},
	}
	f.bind(cmd)
	return cmd
}

// closeInto closes c and joins its error into *err. The close runs even
// when ctx is already cancelled.
func closeInto(ctx context.Context, err *error, c interface{ Close(context.Context) error }) {
	*err = errors.Join(*err, c.Close(context.WithoutCancel(ctx)))
}
