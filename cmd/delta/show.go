package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/brunoga/delta"
	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	yamlv3 "gopkg.in/yaml.v3"
)

// showConflict prints a line diff from the local conflict state to the remote
// one, with the conflicting paths of each side as a header.
func showConflict(w io.Writer, c *delta.Conflict, useColor bool) error {
	local, err := yamlv3.Marshal(c.Local.Merge.Result)
	if err != nil {
		return fmt.Errorf("error encoding local state: %w", err)
	}
	remote, err := yamlv3.Marshal(c.Remote.Merge.Result)
	if err != nil {
		return fmt.Errorf("error encoding remote state: %w", err)
	}

	del, ins, hdr := fmt.Sprint, fmt.Sprint, fmt.Sprint
	if useColor {
		del = colorFunc(color.FgRed)
		ins = colorFunc(color.FgGreen)
		hdr = colorFunc(color.Bold)
	}

	fmt.Fprintln(w, hdr("--- local  ", strings.Join(delta.Paths(c.Local.Conflicts), " ")))
	fmt.Fprintln(w, hdr("+++ remote ", strings.Join(delta.Paths(c.Remote.Conflicts), " ")))
	for _, line := range lineDiff(string(local), string(remote)) {
		switch line.op {
		case diffmatchpatch.DiffDelete:
			fmt.Fprintln(w, del("-"+line.text))
		case diffmatchpatch.DiffInsert:
			fmt.Fprintln(w, ins("+"+line.text))
		default:
			fmt.Fprintln(w, " "+line.text)
		}
	}
	return nil
}

func colorFunc(attr color.Attribute) func(...any) string {
	c := color.New(attr)
	c.EnableColor()
	return c.SprintFunc()
}

type diffLine struct {
	op   diffmatchpatch.Operation
	text string
}

func lineDiff(a, b string) []diffLine {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var out []diffLine
	for _, d := range diffs {
		for _, text := range strings.SplitAfter(d.Text, "\n") {
			if text == "" {
				continue
			}
			out = append(out, diffLine{op: d.Type, text: strings.TrimSuffix(text, "\n")})
		}
	}
	return out
}
