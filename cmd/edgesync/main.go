// Edgesync - declarative configuration for Ubiquiti EdgeSwitch
//
// Desired VLANs, interface attributes and voice VLAN settings are read from
// the YAML configuration; edgesync compares them with the running
// configuration and prints the commands that close the gap. Nothing is sent
// to the switch unless --write is given.
//
// Examples:
//
//	edgesync --target 10.0.0.2 vlan               # VLAN plan for one switch
//	edgesync --target 10.0.0.2 apply --write      # apply every section
//	edgesync --all apply --write --save           # every switch, then save
//	edgesync --target 10.0.0.2 show ports         # observed membership
//	edgesync watch --write                        # re-apply on link traps
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/carlosrabelo/edgesync/internal/infrastructure/metrics"
	"github.com/carlosrabelo/edgesync/internal/util"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	// Switch selection
	configPath  string
	target      string
	allSwitches bool

	// Run options
	writeMode    bool
	saveMode     bool
	verbosity    int
	platformName string
	parallel     int

	// Output options
	jsonOutput  bool
	logFile     string
	metricsFile string

	logCloser io.Closer
	recorder  *metrics.Recorder
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("Error:"), err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "edgesync",
	Short:             "Declarative VLAN, interface and voice configuration for EdgeSwitch",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Edgesync reconciles EdgeSwitch VLANs, interface attributes and voice VLAN
settings against the desired state in config.yaml.

Runs are dry by default: the command plan is printed, never sent.
Use --write to apply it and --save to persist the running configuration.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFlags(); err != nil {
			return err
		}
		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			color.NoColor = true
		}

		util.SetVerbosity(verbosity)
		if jsonOutput {
			util.SetJSONFormat()
		}
		if logFile != "" {
			logCloser = util.AddLogFile(logFile)
		}
		recorder = metrics.NewRecorder()
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			defer logCloser.Close()
		}
		return recorder.WriteTextfile(metricsFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file (default: search ./, $XDG_CONFIG_HOME/edgesync/, /etc/edgesync/)")
	rootCmd.PersistentFlags().StringVarP(&target, "target", "t", "", "Switch target (must match a target in the YAML configuration)")
	rootCmd.PersistentFlags().BoolVarP(&allSwitches, "all", "a", false, "Run against every switch in the configuration")

	rootCmd.PersistentFlags().BoolVarP(&writeMode, "write", "w", false, "Apply changes (disables sandbox mode)")
	rootCmd.PersistentFlags().BoolVarP(&saveMode, "save", "s", false, "Save the running configuration after changes (requires --write)")
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbose", "v", 0, "Verbosity level: 0=none, 1=debug logs, 2=raw switch output, 3=debug+raw output")
	rootCmd.PersistentFlags().StringVar(&platformName, "platform", "", "Override the switch platform (edgeswitch or auto)")
	rootCmd.PersistentFlags().IntVar(&parallel, "parallel", 4, "Switches processed at once with --all")

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results and logs as JSON")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to this file (rotated)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-textfile", "", "Write run metrics to this file in Prometheus text format")

	rootCmd.AddGroup(
		&cobra.Group{ID: "reconcile", Title: "Reconciliation:"},
		&cobra.Group{ID: "query", Title: "Observed State:"},
	)
	for _, cmd := range []*cobra.Command{vlanCmd, interfaceCmd, voiceCmd, applyCmd, watchCmd} {
		cmd.GroupID = "reconcile"
		rootCmd.AddCommand(cmd)
	}
	showCmd.GroupID = "query"
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(versionCmd)
}

func validateFlags() error {
	if verbosity < 0 || verbosity > 3 {
		return errors.New("--verbose must be 0, 1, 2, or 3")
	}
	if saveMode && !writeMode {
		return errors.New("--save requires --write: use -ws to apply and save")
	}
	if allSwitches && target != "" {
		return errors.New("--target and --all are mutually exclusive")
	}
	if parallel < 1 {
		return errors.New("--parallel must be at least 1")
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
	},
}

func versionString() string {
	if version == "dev" {
		return "edgesync dev build"
	}
	return fmt.Sprintf("edgesync %s (built %s)", version, buildTime)
}
