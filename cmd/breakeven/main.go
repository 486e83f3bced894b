// Command breakeven compares a hybrid car with a fuel-only car and reports
// when the hybrid's price premium is paid back by fuel savings.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rshade/breakeven/internal/cli"
	"github.com/rshade/breakeven/pkg/version"
)

func run(ctx context.Context, args []string) error {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:])
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.ExitCode(err))
}
