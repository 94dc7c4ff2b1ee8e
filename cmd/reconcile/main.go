package main

import (
	"fmt"
	"os"

	"github.com/amajor13/sme-recon-mvp/internal/cli"
	"github.com/amajor13/sme-recon-mvp/internal/infrastructure/config"
)

func main() {
	flags := cli.ParseReconcileFlags()
	cfg := config.LoadOrEnvWithPath(flags.ConfigPath)

	if err := cli.RunReconcile(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
