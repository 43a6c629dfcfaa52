// Package cmd provides the root command and CLI setup for logtidy.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/metaneutrons/logtidy/internal/adapter"
	"github.com/metaneutrons/logtidy/internal/controller"
	"github.com/metaneutrons/logtidy/internal/domain"
	m "github.com/metaneutrons/logtidy/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var schemeStore adapter.SchemeStore
var mappingStore adapter.MappingStore
var buildRunner adapter.BuildRunnerAdapter
var ui controller.UI
var workflow domain.Workflow

// schemeFlag points at a category scheme YAML file; empty selects the
// built-in table.
var schemeFlag string

// verboseFlag switches file logging to debug level.
var verboseFlag bool

// logFileFlag overrides the log file location.
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	schemeStore = adapter.NewSchemeStore()
	mappingStore = adapter.NewMappingStore()
	buildRunner = adapter.NewLocalBuildRunnerAdapter()
	workflow = domain.NewWorkflow(
		fsAdapter,
		schemeStore,
		mappingStore,
		buildRunner,
		ui,
	)
}

const rootLongDescription = `logtidy is a maintenance toolkit for codebases that use LoggerMessage
logging annotations. It renumbers the numeric EventIds embedded in those
annotations into disjoint per-category ranges, verifies global uniqueness,
and carries the surrounding cleanup utilities (cleanup analysis, document
splitting, rule-based text patching).

The first positional argument of the scanning commands is the project root
(default: current directory).`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logtidy",
		Short: "EventId maintenance toolkit",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&schemeFlag, schemeFlagName, "s",
			viper.GetString(schemeFlagName),
			"category scheme YAML file (default: built-in table)",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(schemeFlagName), schemeFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, "log-file", viper.GetString(logFilenameKey), "log file location")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("log-file"), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// The exit code distinguishes uniqueness-collision failures (2) from every
// other error (1).
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var collision *domain.CollisionError
	if errors.As(err, &collision) {
		os.Exit(2)
	}

	os.Exit(1)
}

// projectRoot resolves the optional positional project-root argument.
func projectRoot(args []string) m.Path {
	if len(args) > 0 {
		return m.Path(args[0])
	}

	return "."
}

func extensions() []string {
	return viper.GetStringSlice(extensionsConfigKey)
}
