// Command beloved is the command-line front end of the beloved companion.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/roach88/beloved/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := cli.NewRootCommand(cli.Deps{})
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return
	}

	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		// Flag and argument errors from cobra itself.
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(cli.ExitCommandError)
	}
	if exitErr.Code == cli.ExitCommandError && exitErr.Err == nil {
		fmt.Fprintln(os.Stderr, "Error:", exitErr.Message)
	}
	stop()
	os.Exit(exitErr.Code)
}
