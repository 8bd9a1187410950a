package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/brunoga/delta"
	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, w io.Writer, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := readValue(args[0])
	if err != nil {
		return err
	}
	b, err := readValue(args[1])
	if err != nil {
		return err
	}

	opts := make([]delta.DiffOption, len(cfg.Ignore))
	for i, p := range cfg.Ignore {
		opts[i] = delta.IgnorePath(p)
	}
	c := delta.Diff(a, b, opts...)
	theLog.Debug("diff", "paths", len(delta.Paths(c)))

	if cfg.JSONPatch {
		data, err := delta.ToJSONPatch(a, c)
		if err != nil {
			return err
		}
		if c.Kind() == delta.KindReplace {
			theLog.Debug("whole document replaced, skipping json patch check")
		} else if err := checkJSONPatch(a, delta.Apply(a, c), data); err != nil {
			return err
		}
		var ops any
		if err := json.Unmarshal(data, &ops); err != nil {
			return err
		}
		return cfg.write(w, ops)
	}
	return cfg.writeChange(w, c)
}

// checkJSONPatch applies the exported operations to a with an independent
// RFC 6902 implementation and verifies the outcome is want.
func checkJSONPatch(a, want any, data []byte) error {
	p, err := jsonpatch.DecodePatch(data)
	if err != nil {
		return fmt.Errorf("decode json patch: %w", err)
	}
	doc, err := json.Marshal(a)
	if err != nil {
		return err
	}
	out, err := p.Apply(doc)
	if err != nil {
		return fmt.Errorf("apply json patch: %w", err)
	}
	got, err := delta.DecodeValue(out)
	if err != nil {
		return err
	}
	if !delta.Equal(got, want) {
		return fmt.Errorf("json patch does not reproduce %v", want)
	}
	theLog.Debug("json patch verified", "ops", len(p))
	return nil
}

func apply(cfg *ApplyConfig, w io.Writer, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: apply requires 2 args, got %v", cli.ErrUsage, args)
	}
	doc, err := readValue(args[0])
	if err != nil {
		return err
	}
	c, err := readChange(args[1])
	if err != nil {
		return err
	}
	if !cfg.Strict {
		return cfg.write(w, delta.Apply(doc, c))
	}
	res, err := delta.ApplyChecked(doc, c)
	if err != nil {
		return fmt.Errorf("error applying %s: %w", args[1], err)
	}
	return cfg.write(w, res)
}

func rebase(cfg *RebaseConfig, w io.Writer, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: rebase requires 3 args, got %v", cli.ErrUsage, args)
	}
	var docs [3]any
	for i, arg := range args {
		v, err := readValue(arg)
		if err != nil {
			return err
		}
		docs[i] = v
	}

	res := delta.Rebase(docs[0], docs[1], docs[2])
	if res.Conflict == nil {
		theLog.Debug("rebase", "conflict", false)
		return cfg.write(w, res.Result)
	}
	theLog.Debug("rebase", "conflict", true,
		"local", delta.Paths(res.Conflict.Local.Conflicts),
		"remote", delta.Paths(res.Conflict.Remote.Conflicts))

	var err error
	switch {
	case cfg.Show:
		err = showConflict(w, res.Conflict, cfg.useColor(w))
	case cfg.Conflicts:
		var bundle any
		bundle, err = conflictBundle(res.Conflict)
		if err == nil {
			err = cfg.write(w, bundle)
		}
	default:
		err = cfg.write(w, res.Result)
	}
	if err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

// conflictBundle lays out a conflict for printing.
func conflictBundle(c *delta.Conflict) (map[string]any, error) {
	side := func(s delta.Side) (map[string]any, error) {
		conflicts, err := changeValue(s.Conflicts)
		if err != nil {
			return nil, err
		}
		differences, err := changeValue(s.Differences)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"conflicts":   conflicts,
			"differences": differences,
			"paths":       delta.Paths(s.Conflicts),
			"result":      s.Merge.Result,
		}, nil
	}
	local, err := side(c.Local)
	if err != nil {
		return nil, err
	}
	remote, err := side(c.Remote)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"baseline": c.Baseline,
		"local":    local,
		"remote":   remote,
	}, nil
}

func paths(cfg *PathsConfig, w io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: paths requires 1 arg, got %v", cli.ErrUsage, args)
	}
	c, err := readChange(args[0])
	if err != nil {
		return err
	}
	for _, p := range delta.Paths(c) {
		if p == "" {
			p = "."
		}
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}

func exclude(cfg *ExcludeConfig, w io.Writer, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: exclude requires a change and paths", cli.ErrUsage)
	}
	c, err := readChange(args[0])
	if err != nil {
		return err
	}
	return cfg.writeChange(w, delta.Exclude(c, args[1:]...))
}
