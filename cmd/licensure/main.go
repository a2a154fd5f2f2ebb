package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ochairo/licensure/internal/domain/entities"
	"github.com/ochairo/licensure/internal/domain/interfaces"
	"github.com/ochairo/licensure/internal/external-adapters/logging"
	"github.com/ochairo/licensure/internal/external-adapters/yaml"
)

// VERSION is set at build time with -ldflags "-X main.VERSION=..."
var VERSION = "0.0.0-dev"

const (
	envPrefix          = "LICENSURE"
	settingsFileName   = ".licensure"
	defaultProjectVers = "1.0.0"
)

// Exit codes
const (
	exitOK        = 0
	exitError     = 1
	exitUsage     = 2
	exitViolation = 3
)

// usageError marks errors caused by invalid command line usage
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

// violationError is returned when a --fail-on condition is met
type violationError struct {
	violations []string
}

func (e violationError) Error() string {
	return "policy violations: " + strings.Join(e.violations, "; ")
}

type rootFlags struct {
	settingsFile      string
	policyPath        string
	outputDir         string
	verbose           int
	logJSON           bool
	keyring           string
	requireSignatures bool
	projectName       string
	projectVersion    string
	failOn            []string
}

// cli carries the state shared by all subcommands of one invocation
type cli struct {
	flags  rootFlags
	stdout io.Writer
	stderr io.Writer
	logger interfaces.Logger
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and maps the outcome to an exit code
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)

	var usage usageError
	var violation violationError
	switch {
	case errors.As(err, &usage), strings.HasPrefix(err.Error(), "unknown command"):
		_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", root.CommandPath())
		return exitUsage
	case errors.As(err, &violation):
		return exitViolation
	default:
		return exitError
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr, logger: &interfaces.NoOpLogger{}}

	rootCmd := &cobra.Command{
		Use:   "licensure",
		Short: "Merge CycloneDX SBOMs and check third-party license compliance",
		Long: `licensure merges the CycloneDX SBOMs of a multi-ecosystem project (npm, Cargo,
Python) into one document, categorizes the licenses it finds against a licensing
policy, and assembles the third-party license text file.

Settings are read from flags, LICENSURE_* environment variables and an optional
.licensure.yaml in the working directory, in that order of precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.initConfig,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&c.flags.settingsFile, "config", "",
		"settings file (default .licensure.yaml in the working directory)")
	pf.StringVarP(&c.flags.policyPath, "policy", "p", yaml.DefaultPolicyFile,
		"licensing configuration file (YAML or JSON)")
	pf.StringVarP(&c.flags.outputDir, "output-dir", "o", ".",
		"directory for generated artifacts")
	pf.CountVarP(&c.flags.verbose, "verbose", "v",
		"increase log verbosity (repeat for more)")
	pf.BoolVar(&c.flags.logJSON, "log-json", false,
		"write logs as JSON objects")
	pf.StringVar(&c.flags.keyring, "keyring", "",
		"OpenPGP public keyring (file or https URL) used to verify <sbom>.asc/.sig signatures")
	pf.BoolVar(&c.flags.requireSignatures, "require-signatures", false,
		"fail when an input SBOM has no detached signature")
	pf.StringVar(&c.flags.projectName, "project-name", "",
		"project name recorded in the merged SBOM (default: working directory name)")
	pf.StringVar(&c.flags.projectVersion, "project-version", defaultProjectVers,
		"project version recorded in the merged SBOM")
	pf.StringSliceVar(&c.flags.failOn, "fail-on", nil,
		"exit with code 3 when findings match: counsel, uncategorized, missing")

	rootCmd.AddCommand(
		newMergeCmd(c),
		newReportCmd(c),
		newNoticeCmd(c),
		newRunCmd(c),
		newSchemaCmd(c),
		newVersionCmd(c),
	)
	return rootCmd
}

// initConfig fills every flag not set on the command line from the
// environment or the settings file, then builds the logger
func (c *cli) initConfig(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if c.flags.settingsFile != "" {
		v.SetConfigFile(c.flags.settingsFile)
	} else {
		v.SetConfigName(settingsFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || c.flags.settingsFile != "" {
			return fmt.Errorf("failed to read settings: %w", err)
		}
	}

	var applyErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if applyErr != nil || f.Changed || f.Name == "config" || !v.IsSet(f.Name) {
			return
		}
		value := v.GetString(f.Name)
		if f.Value.Type() == "stringSlice" {
			value = strings.Join(v.GetStringSlice(f.Name), ",")
		}
		if err := f.Value.Set(value); err != nil {
			applyErr = usageError{err: fmt.Errorf("invalid value %q for %s: %w", value, f.Name, err)}
		}
	})
	if applyErr != nil {
		return applyErr
	}

	if c.flags.logJSON {
		c.logger = logging.NewJSONLogger(c.stderr, c.flags.verbose)
	} else {
		c.logger = logging.NewLogger(c.stderr, c.flags.verbose)
	}
	return nil
}

// project returns the identity recorded in the merged SBOM
func (c *cli) project() entities.ProjectIdentity {
	name := c.flags.projectName
	if name == "" {
		if wd, err := os.Getwd(); err == nil {
			name = filepath.Base(wd)
		}
	}
	return entities.ProjectIdentity{Name: name, Version: c.flags.projectVersion}
}

// requireInputs rejects invocations without SBOM paths as usage errors
func requireInputs(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return usageError{err: errors.New("at least one SBOM file is required")}
	}
	return nil
}
