package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/bacitit/internal/logging"
	"github.com/ppiankov/bacitit/internal/model"
)

const version = "bacitit v0.1.0"

var (
	cfgFile string
	verbose bool
	logger  *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bacitit",
	Short: "Bacitit - numeral generator for an auxiliary language",
	Long: `Bacitit derives the ten digit words of an auxiliary language from the
words the world's most spoken languages already use for them.

Each digit becomes a consonant-vowel-consonant syllable. Consonants are
scored by the share of speakers whose own word for the digit contains them,
and no consonant may start two digits or end two digits, so every digit
stays distinguishable by either of its consonants alone.

The search reports every assignment that scores at least as well as all
assignments found before it.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Log.Level, cfg.Log.Format, cfg.Output.Verbose)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of Bacitit.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.bacitit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".bacitit"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// BACITIT_SEARCH_TIMEOUT overrides search.timeout, and so on
	viper.SetEnvPrefix("BACITIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so environment variables can reach it
func setDefaults(cfg *model.Config) {
	viper.SetDefault("search.consonants", cfg.Search.Consonants)
	viper.SetDefault("search.vowels", cfg.Search.Vowels)
	viper.SetDefault("search.candidates", cfg.Search.Candidates)
	viper.SetDefault("search.order", cfg.Search.Order)
	viper.SetDefault("search.timeout", cfg.Search.Timeout)
	viper.SetDefault("search.max_states", cfg.Search.MaxStates)
	viper.SetDefault("search.progress_interval", cfg.Search.ProgressInterval)

	viper.SetDefault("output.verbose", cfg.Output.Verbose)
	viper.SetDefault("output.include_footer", cfg.Output.IncludeFooter)
	viper.SetDefault("output.json", cfg.Output.JSON)
	viper.SetDefault("output.markdown", cfg.Output.Markdown)
	viper.SetDefault("output.html", cfg.Output.HTML)

	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.ttl", cfg.Cache.TTL)

	viper.SetDefault("log.level", cfg.Log.Level)
	viper.SetDefault("log.format", cfg.Log.Format)
}

// loadConfig merges defaults, config file and environment into a Config
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
