// Command arcstrata lays out dependency treebanks as arc diagrams.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/arcstrata/internal/cli"
	"github.com/matzehuels/arcstrata/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	stop()

	code := errors.ExitCode(err)
	if code != errors.ExitOK && code != errors.ExitInterrupted {
		fmt.Fprintln(os.Stderr, "Error:", errors.UserMessage(err))
	}
	os.Exit(code)
}
