package main

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Odds        OddsCmd          `cmd:"" help:"Probability of finishing with a given Razz rank"`
	Table       TableCmd         `cmd:"" help:"Probability of every final Razz rank"`
	Evaluate    EvaluateCmd      `cmd:"" help:"Razz rank of a complete seven-card hand"`
	VersionInfo VersionCmd       `cmd:"version" help:"Print the version and exit"`
}

func newParser(cli *CLI, ctx context.Context, out io.Writer, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("razz"),
		kong.Description("Monte-Carlo odds for seven-card Razz"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.BindTo(out, (*io.Writer)(nil)),
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	ctx, stop := setupSignalHandler()
	defer stop()

	var cli CLI
	parser, err := newParser(&cli, ctx, os.Stdout)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = kctx.Run(&cli.Globals)
	kctx.FatalIfErrorf(err)
}
