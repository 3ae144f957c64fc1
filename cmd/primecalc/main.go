package main

import (
	"context"
	"fmt"
	"os"

	"github.com/primecalc/primecalc/internal/app"
	apperrors "github.com/primecalc/primecalc/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "primecalc:", err)
		os.Exit(apperrors.ExitCodeFor(err))
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}
