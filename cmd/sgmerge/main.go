package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sgmodkit/sgmerge/internal/app"
	"github.com/sgmodkit/sgmerge/internal/config"
	"github.com/sgmodkit/sgmerge/internal/manifest"
	"github.com/sgmodkit/sgmerge/internal/utils"
	"github.com/sgmodkit/sgmerge/pkg/version"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sgmerge",
	Short: "Merge Shadowrocket modules into a single file",
	Long: `sgmerge fetches the module sources listed in a YAML manifest, filters
each one by its drop tokens, de-duplicates rules per section, merges MITM
hostnames, and writes a single combined .sgmodule file.

Sources can be remote URLs or local files; individual source failures are
reported but never abort the run.`,
	Version: version.Short(),
	Args:    cobra.NoArgs,
	RunE:    run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.sgmerge/config.yaml)")
	rootCmd.PersistentFlags().StringP("input", "i", "rule.yml", "Manifest file (YAML or JSON)")
	rootCmd.PersistentFlags().StringP("output", "o", config.DefaultOutputPath, "Output module file")
	rootCmd.PersistentFlags().String("name", "", "Override the #!name header")
	rootCmd.PersistentFlags().String("desc", "", "Override the #!desc header")
	rootCmd.PersistentFlags().Bool("prefer-local", false, "Use a local copy of a URL's filename when present")
	rootCmd.PersistentFlags().Int("retries", config.DefaultRetries, "Retries per source after the first attempt")
	rootCmd.PersistentFlags().Duration("timeout", config.DefaultTimeout, "Request timeout")
	rootCmd.PersistentFlags().Float64("backoff-base", config.DefaultBackoffBase, "Exponential backoff base in seconds")
	rootCmd.PersistentFlags().IntP("concurrency", "j", config.DefaultWorkers, "Number of concurrent fetches")
	rootCmd.PersistentFlags().String("proxy", "", "Proxy URL for remote fetches")
	rootCmd.PersistentFlags().String("user-agent", "", "Custom User-Agent")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Disable the fetch cache")
	rootCmd.PersistentFlags().Duration("cache-ttl", 24*time.Hour, "Cache TTL")
	rootCmd.PersistentFlags().Bool("refresh-cache", false, "Clear the fetch cache before running")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Merge without writing the output file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.path", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("output.dry_run", rootCmd.PersistentFlags().Lookup("dry-run"))
	_ = viper.BindPFlag("fetch.prefer_local", rootCmd.PersistentFlags().Lookup("prefer-local"))
	_ = viper.BindPFlag("fetch.retries", rootCmd.PersistentFlags().Lookup("retries"))
	_ = viper.BindPFlag("fetch.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("fetch.backoff_base", rootCmd.PersistentFlags().Lookup("backoff-base"))
	_ = viper.BindPFlag("fetch.workers", rootCmd.PersistentFlags().Lookup("concurrency"))
	_ = viper.BindPFlag("fetch.proxy_url", rootCmd.PersistentFlags().Lookup("proxy"))
	_ = viper.BindPFlag("fetch.user_agent", rootCmd.PersistentFlags().Lookup("user-agent"))
	_ = viper.BindPFlag("cache.ttl", rootCmd.PersistentFlags().Lookup("cache-ttl"))

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if verbose {
		logLevel = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  "pretty",
		Verbose: verbose,
	})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}

	input, _ := cmd.Flags().GetString("input")
	name, _ := cmd.Flags().GetString("name")
	desc, _ := cmd.Flags().GetString("desc")
	refreshCache, _ := cmd.Flags().GetBool("refresh-cache")

	m, err := manifest.NewLoader().Load(utils.ExpandPath(input))
	if err != nil {
		return fmt.Errorf("failed to load manifest %s: %w", input, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Info().Msg("Shutting down gracefully...")
		cancel()
	}()

	aggregator, err := app.NewAggregator(app.AggregatorOptions{
		Config:       cfg,
		Name:         name,
		Desc:         desc,
		ShowProgress: !verbose,
		RefreshCache: refreshCache,
		Logger:       log,
	})
	if err != nil {
		return fmt.Errorf("failed to create aggregator: %w", err)
	}
	defer aggregator.Close()

	summary, err := aggregator.Run(ctx, m)
	if err != nil {
		return err
	}

	if summary.Failed() > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d of %d sources failed:\n", summary.Failed(), summary.TotalRules)
		for _, f := range summary.Failures {
			fmt.Fprintf(os.Stderr, "  - %s: %s\n", f.Source, f.Error)
		}
	}

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
