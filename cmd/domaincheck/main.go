// domaincheck checks domain names against a blocklist of forbidden domains,
// treating every subdomain of a forbidden domain as forbidden too.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/p4th0r/domaincheck/internal/cli"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd(version)
	rootCmd.Version = version

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "[domaincheck] Error: %v\n", err)
		os.Exit(1)
	}
}
