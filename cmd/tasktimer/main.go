package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/tasktimer/cmd/tasktimer/commands"
	"git.home.luguber.info/inful/tasktimer/internal/foundation/errors"
	"git.home.luguber.info/inful/tasktimer/internal/version"
)

func main() {
	var cli commands.CLI
	kctx := kong.Parse(&cli,
		kong.Name("tasktimer"),
		kong.Description("Time code sections and commands, then report per-task averages."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, kctx, &cli)
	stop()

	if err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}

func run(ctx context.Context, kctx *kong.Context, cli *commands.CLI) error {
	g, err := cli.Setup(ctx, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}
	return kctx.Run(g)
}
