package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/matzehuels/autogen/internal/cli"
	"github.com/matzehuels/autogen/pkg/buildinfo"
	"github.com/matzehuels/autogen/pkg/errors"
)

func main() {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(buildinfo.String()),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
		fang.WithErrorHandler(printError),
	)
	if err != nil {
		if stderrors.Is(err, context.Canceled) || errors.Is(err, errors.ErrCodeAborted) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		os.Exit(1)
	}
}

// printError shows the user-facing message without the error code prefix.
func printError(w io.Writer, _ fang.Styles, err error) {
	fmt.Fprintf(w, "Error: %s\n", errors.UserMessage(err))
}
