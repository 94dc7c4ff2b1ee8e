package cli

import (
	"flag"
)

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	Port       int
	ConfigPath string
	Verbose    bool
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags() *ServeFlags {
	flags := &ServeFlags{}
	flag.IntVar(&flags.Port, "port", 0, "Port to listen on (overrides config)")
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Path to config file")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// ReconcileFlags holds the CLI flags for the one-shot reconcile command.
type ReconcileFlags struct {
	SideAPath  string
	SideBPath  string
	ConfigPath string
	Threshold  float64
	Save       bool
	JSONOutput bool
	Verbose    bool
}

// ParseReconcileFlags parses command line flags for the reconcile command.
func ParseReconcileFlags() *ReconcileFlags {
	flags := &ReconcileFlags{}
	flag.StringVar(&flags.SideAPath, "side-a", "", "Path to side A records (JSON array)")
	flag.StringVar(&flags.SideBPath, "side-b", "", "Path to side B records (JSON array)")
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Path to config file")
	flag.Float64Var(&flags.Threshold, "threshold", 0, "Minimum match score (overrides config)")
	flag.BoolVar(&flags.Save, "save", false, "Persist the run to the database")
	flag.BoolVar(&flags.JSONOutput, "json", false, "Emit the full result as JSON")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Log every scored comparison")
	flag.Parse()
	return flags
}
