// Package cli implements the insightone command line explorer.
package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/insightone/insightone-mcp/internal/catalog"
	"github.com/insightone/insightone-mcp/internal/config"
	"github.com/insightone/insightone-mcp/internal/indexer"
	"github.com/insightone/insightone-mcp/internal/logging"
	"github.com/insightone/insightone-mcp/internal/query"
	"github.com/insightone/insightone-mcp/internal/search"
	"github.com/insightone/insightone-mcp/pkg/explorer"
)

// Version is printed by --version.
const Version = "0.3.0"

// app holds what the subcommands share. It is built in PersistentPreRunE,
// after flags and the env file are known.
type app struct {
	cfg      *config.Config
	store    *catalog.Store
	search   *search.SearchEngine
	executor *explorer.Executor
	query    *query.Engine

	logCleanup func() error
}

type rootFlags struct {
	envFile     string
	apiURL      string
	catalogFile string
	logLevel    string
}

func RootCmd() *cobra.Command {
	a := &app{}
	f := &rootFlags{}

	root := &cobra.Command{
		Use:           "insightone",
		Short:         "Browse and call InsightOne API endpoints",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, f)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logCleanup != nil {
				return a.logCleanup()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&f.envFile, "env-file", ".env", "Env file loaded before reading the environment (ignored when missing)")
	flags.StringVar(&f.apiURL, "api-url", "", "API base URL (default: $INSIGHTONE_API_URL)")
	flags.StringVar(&f.catalogFile, "catalog-file", "", "Read the catalog from a JSON or YAML snapshot")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(
		newEndpointsCmd(a),
		newSearchCmd(a),
		newDescribeCmd(a),
		newCurlCmd(a),
		newCallCmd(a),
		newOpenAPICmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, f *rootFlags) error {
	if f.envFile != "" {
		// Variables already set in the environment win over the file.
		if err := godotenv.Load(f.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	cfg := config.Load()
	if f.apiURL != "" {
		cfg.APIBaseURL = f.apiURL
	}
	if f.catalogFile != "" {
		cfg.CatalogFile = f.catalogFile
	}

	logCfg := cfg.Logging()
	if cmd.Flags().Changed("log-level") || os.Getenv("LOG_LEVEL") == "" {
		logCfg.Level, _ = cmd.Flags().GetString("log-level")
	}
	cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return err
	}
	a.logCleanup = cleanup

	c := cfg.NewClient()
	load := catalog.FromClient(c)
	if cfg.CatalogFile != "" {
		load = catalog.FromFile(cfg.CatalogFile)
	}

	idx := indexer.New()
	a.cfg = cfg
	a.store = catalog.NewStore(load, catalog.OnLoad(idx.Rebuild))
	a.search = search.New(idx, a.store, cfg.DefaultSearchLimit, cfg.MaxSearchLimit)
	a.executor = explorer.NewExecutor(c.BaseURL(), explorer.WithHTTPClient(c.HTTPClient()))
	a.query = query.NewEngine(query.DefaultMaxResults)
	return nil
}

// token returns the flag value, falling back to INSIGHTONE_USER_TOKEN.
func (a *app) token(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.UserToken
}
