package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Run one style-vs-style session"`
	Sweep    SweepCmd         `cmd:"" help:"Run a grid of sessions across variants, table sizes and style mixes"`
	Analyze  AnalyzeCmd       `cmd:"" help:"Summarize saved sessions and aggregate across them"`
	Plan     PlanCmd          `cmd:"" help:"Sample-size planning and style comparisons"`
	Report   ReportCmd        `cmd:"" help:"Render saved sessions as an HTML report"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("scenario-analyzer"),
		kong.Description("Style-calibrated Omaha simulation and outcome analytics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
