package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Build info (set via ldflags).
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	// Global flags.
	logLevel  string
	logFormat string
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	a := &app{log: log, out: os.Stdout}

	rootCmd := &cobra.Command{
		Use:   "glprojects",
		Short: "GitLab projects API client",
		Long: `glprojects drives the GitLab projects API from the command line.

Connection settings come from --config or from GITLAB_URL and GITLAB_TOKEN.
With --dry-run the request that would be sent is printed instead.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)

			switch logFormat {
			case "json":
				log.SetFormatter(&logrus.JSONFormatter{})
			default:
				log.SetFormatter(&logrus.TextFormatter{
					FullTimestamp: true,
				})
			}

			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level (trace, debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"Log format (text, json)")
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "",
		"Path to configuration file (defaults to GITLAB_URL/GITLAB_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&a.dryRun, "dry-run", false,
		"Print requests instead of sending them")
	rootCmd.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "",
		"Write API metrics in Prometheus text format to this file on exit")

	rootCmd.AddCommand(newProjectCmds(a)...)
	rootCmd.AddCommand(
		newMembersCmd(a),
		newHooksCmd(a),
		newKeysCmd(a),
		newLabelsCmd(a),
		newServicesCmd(a),
		newForkRelationCmd(a),
		newVersionCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
