package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/dxcoder/internal/exitcode"
	"github.com/ppiankov/dxcoder/internal/logging"
	"github.com/ppiankov/dxcoder/internal/model"
)

// version is set at build time
var version = "dev"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dxcoder",
	Short: "dxcoder - clinical documentation to ICD-10-CM diagnosis codes",
	Long: `dxcoder reads free-form or semi-structured clinical documentation and
assigns one principal ICD-10-CM diagnosis code plus secondary codes.

Every code carries its rationale, the guideline it follows, the documented
fact that triggered it, and the rule that produced it. Corrections made
while validating the code set are logged, and anything the documentation
does not support is reported as a warning rather than guessed.

dxcoder is deterministic: the same document always yields the same codes.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// ExitError carries the process exit code for a failed command
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitErr(code int, format string, args ...any) error {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for dxcoder.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dxcoder %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.dxcoder/config.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.String("log-format", "text", "log format: text or json")
	pf.Bool("fallback", true, "assign a low-confidence catch-all code when no rule fires")
	pf.Bool("specificity", true, "correct organism-specific codes against the raw text")
	pf.Bool("context", false, "include the extracted clinical context in results")
	pf.Bool("cache", true, "memoize results by document text")
	pf.String("cache-dir", "", "persist cached results in this directory")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("output.log_format", pf.Lookup("log-format"))
	_ = viper.BindPFlag("coding.fallback", pf.Lookup("fallback"))
	_ = viper.BindPFlag("coding.specificity", pf.Lookup("specificity"))
	_ = viper.BindPFlag("coding.include_context", pf.Lookup("context"))
	_ = viper.BindPFlag("cache.enabled", pf.Lookup("cache"))
	_ = viper.BindPFlag("cache.dir", pf.Lookup("cache-dir"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.ToolConfig())

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".dxcoder"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match DXCODER_*, e.g.
	// DXCODER_CODING_FALLBACK=false
	viper.SetEnvPrefix("DXCODER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so env vars resolve without a config file
func setDefaults(d *model.Config) {
	viper.SetDefault("coding.fallback", d.Coding.Fallback)
	viper.SetDefault("coding.specificity", d.Coding.Specificity)
	viper.SetDefault("coding.include_context", d.Coding.IncludeContext)
	viper.SetDefault("coding.max_input_bytes", d.Coding.MaxInputBytes)
	viper.SetDefault("coding.max_lines", d.Coding.MaxLines)
	viper.SetDefault("coding.max_line_length", d.Coding.MaxLineLength)
	viper.SetDefault("cache.enabled", d.Cache.Enabled)
	viper.SetDefault("cache.ttl", d.Cache.TTL)
	viper.SetDefault("cache.dir", d.Cache.Dir)
	viper.SetDefault("concurrency.workers", d.Concurrency.Workers)
	viper.SetDefault("rate_limiting.requests_per_second", d.RateLimiting.RequestsPerSecond)
	viper.SetDefault("rate_limiting.burst_size", d.RateLimiting.BurstSize)
	viper.SetDefault("output.verbose", d.Output.Verbose)
	viper.SetDefault("output.log_format", d.Output.LogFormat)
	viper.SetDefault("output.markdown", d.Output.Markdown)
}

// loadConfig resolves the layered configuration: flags, env, file, defaults
func loadConfig() (*model.Config, error) {
	cfg := model.ToolConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, exitErr(exitcode.UsageError, "invalid configuration: %w", err)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, &ExitError{Code: exitcode.UsageError, Err: err}
	}
	return cfg, nil
}

func validateConfig(cfg *model.Config) error {
	switch cfg.Output.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", cfg.Output.LogFormat)
	}
	if cfg.Coding.MaxInputBytes <= 0 {
		return fmt.Errorf("coding.max_input_bytes must be positive")
	}
	if cfg.Concurrency.Workers < 0 {
		return fmt.Errorf("concurrency.workers must not be negative")
	}
	if cfg.RateLimiting.RequestsPerSecond < 0 {
		return fmt.Errorf("rate_limiting.requests_per_second must not be negative")
	}
	return nil
}

func newLogger(cfg *model.Config) zerolog.Logger {
	return logging.Setup(cfg.Output.LogFormat, cfg.Output.Verbose)
}
