package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "delta").
		WithSynopsis("delta [opts] command [opts]").
		WithDescription(mainDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return deltaMain(cfg, cc, args)
		}).
		WithSubs(
			DiffCommand(cfg),
			ApplyCommand(cfg),
			RebaseCommand(cfg),
			PathsCommand(cfg),
			ExcludeCommand(cfg))
}

const mainDescription = `delta computes, applies and merges structural changes between JSON or
YAML documents.

Changes are written as JSON objects mirroring the document: "$$deleted"
removes a key, plain values replace, and list operations are keyed "[N]"
(modify or delete the item at N in the original list) and "[+N]" (insert
at N in the resulting list).

Environment

  DELTA_OUTPUT  json or yaml, the default output format
  DELTA_COLOR   auto, always or never
  DELTA_DEBUG   log debug information when true

Variables are also read from a .env file in the working directory.`

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "i",
		Aliases:     []string{"ignore"},
		Description: "ignore changes at and below a path (repeatable)",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.ignoreOpt), "(path)"),
	})
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff [-i path]... [-jsonpatch] a b").
		WithDescription("print the change turning document a into document b").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			args, err := cfg.Diff.Parse(cc, args)
			if err != nil {
				return err
			}
			return diff(cfg, cc.Out, args)
		})
}

func ApplyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Apply, "apply").
		WithAliases("a", "ap").
		WithSynopsis("apply [-strict] doc change").
		WithDescription("apply a change to a document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			args, err := cfg.Apply.Parse(cc, args)
			if err != nil {
				return err
			}
			return apply(cfg, cc.Out, args)
		})
}

func RebaseCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RebaseConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Rebase, "rebase").
		WithAliases("r", "merge").
		WithSynopsis("rebase [-conflicts] [-show] source local remote").
		WithDescription(rebaseDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			args, err := cfg.Rebase.Parse(cc, args)
			if err != nil {
				return err
			}
			return rebase(cfg, cc.Out, args)
		})
}

const rebaseDescription = `rebase merges local and remote, two revisions of source.

Edits touching different paths are combined. When both revisions edit
overlapping paths, local wins in the printed result and rebase exits with
status 1. Use -conflicts to print the conflict bundle (baseline and both
conflicting states) or -show for a line diff of the two conflicting states.`

func PathsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PathsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Paths, "paths").
		WithAliases("p", "pa").
		WithSynopsis("paths change").
		WithDescription("list the paths touched by a change").
		WithRun(func(cc *cli.Context, args []string) error {
			args, err := cfg.Paths.Parse(cc, args)
			if err != nil {
				return err
			}
			return paths(cfg, cc.Out, args)
		})
}

func ExcludeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ExcludeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Exclude, "exclude").
		WithAliases("x", "ex").
		WithSynopsis("exclude change path...").
		WithDescription("remove paths from a change").
		WithRun(func(cc *cli.Context, args []string) error {
			args, err := cfg.Exclude.Parse(cc, args)
			if err != nil {
				return err
			}
			return exclude(cfg, cc.Out, args)
		})
}
