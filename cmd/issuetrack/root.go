package main

import (
	"fmt"

	"github.com/deppfellow/issuetrack/internal/app"
	"github.com/deppfellow/issuetrack/internal/config"
	"github.com/deppfellow/issuetrack/internal/errs"
	"github.com/deppfellow/issuetrack/internal/logger"
	"github.com/deppfellow/issuetrack/internal/repository"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// cli carries what every subcommand needs once the root pre-run has loaded it.
type cli struct {
	credentials string
	verify      bool

	app   *app.App
	repos *repository.Repositories
	log   *zerolog.Logger
	txn   *newrelic.Transaction
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "issuetrack",
		Short:         "Issue tracker data access and schema tool",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.credentials, "credentials", "", "JSON credentials file (host, port, database, user, password)")
	flags.BoolVar(&c.verify, "verify", false, "connect once at startup to check the configuration")

	root.AddCommand(
		newUserCmd(c),
		newIssuesCmd(c),
		newSearchCmd(c),
		newAddCmd(c),
		newUpdateCmd(c),
		newSchemaCmd(c),
	)

	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	cfg, err := config.Load(config.Options{CredentialsFile: c.credentials})
	if err != nil {
		return err
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return err
	}
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	// One transaction per invocation; nrpgx5 hangs its segments off the
	// transaction carried in the command context.
	if nrApp := loggerService.GetApplication(); nrApp != nil {
		c.txn = nrApp.StartTransaction(cmd.CommandPath())
		cmd.SetContext(newrelic.NewContext(cmd.Context(), c.txn))
		log = logger.WithTraceContext(log, c.txn)
	}
	c.log = &log

	c.app, err = app.New(cmd.Context(), cfg, c.log, loggerService, c.verify)
	if err != nil {
		return fmt.Errorf("initializing: %w", err)
	}
	c.repos = repository.NewRepositories(c.app)

	return nil
}

// finish records the command's outcome and flushes New Relic.
// It is called once after Execute returns, whether or not init ran.
func (c *cli) finish(err error) {
	if err != nil && c.log != nil {
		c.log.Error().Err(err).Str("kind", string(errs.KindOf(err))).Msg("command failed")
	}
	if c.txn != nil {
		if err != nil {
			c.txn.NoticeError(err)
		}
		c.txn.End()
	}
	if c.app != nil {
		c.app.Shutdown()
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	switch errs.KindOf(err) {
	case errs.KindValidation, errs.KindParse:
		return 2
	case errs.KindNotFound:
		return 3
	case errs.KindConnectivity:
		return 4
	case errs.KindConstraint, errs.KindNoRowsAffected:
		return 5
	default:
		return 1
	}
}
