package ple

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	dumpIndentSpacing = 2
	dumpIndentChar    = " "

	// Rendering recursion is capped so a cyclic rule still produces
	// output instead of exhausting the stack.
	maxRenderDepth = 20
)

// Dump produces an indented, multi-line trace of the operator and its
// parameters, one line per node:
//
//	+ and (name="both") #42
//	  + regex (pattern="^ORDER") #17
//	  + regex (pattern="markman") #18
//
// A debugging aid only; evaluation never consults it.
func (o *Operator) Dump() string {
	var sb strings.Builder
	o.dump(&sb, 0)
	return sb.String()
}

func (o *Operator) dump(sb *strings.Builder, indent int) {
	if indent >= maxRenderDepth {
		return
	}
	var details []string
	if o.Name != "" {
		details = append(details, fmt.Sprintf("name=%q", o.Name))
	}
	if o.Kind == Regex {
		details = append(details, fmt.Sprintf("pattern=%q", o.Pattern))
	}
	sb.WriteString(strings.Repeat(dumpIndentChar, dumpIndentSpacing*indent))
	sb.WriteString("+ ")
	sb.WriteString(string(o.Kind))
	if len(details) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(details, ", "))
		sb.WriteString(")")
	}
	if o.ID != "" {
		sb.WriteString(" #")
		sb.WriteString(o.ID)
	}
	sb.WriteString("\n")
	for _, p := range o.params {
		p.dump(sb, indent+1)
	}
}

// label is the short form used in tree rendering.
func (o *Operator) label() string {
	switch {
	case o.Kind == Regex:
		return fmt.Sprintf("%s(%s)", o.Kind, o.Pattern)
	case o.Name != "":
		return fmt.Sprintf("%s %q", o.Kind, o.Name)
	default:
		return string(o.Kind)
	}
}

// Tree returns a tree representation of the operator hierarchy using
// box-drawing characters.
//
// Example output:
//
//	and "both"
//	├── regex(^ORDER)
//	└── regex(markman)
func (o *Operator) Tree() string {
	if o == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(o.label())
	sb.WriteString("\n")
	o.buildTree(&sb, "", 0)
	return sb.String()
}

func (o *Operator) buildTree(sb *strings.Builder, prefix string, depth int) {
	if depth >= maxRenderDepth {
		return
	}
	for i, p := range o.params {
		last := i == len(o.params)-1
		connector, childPrefix := "├── ", "│   "
		if last {
			connector, childPrefix = "└── ", "    "
		}
		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString(p.label())
		sb.WriteString("\n")
		p.buildTree(sb, prefix+childPrefix, depth+1)
	}
}

// String returns a tabular summary of the operator hierarchy, with
// parameters indented under their parents in evaluation order.
func (o *Operator) String() string {
	tw := table.NewWriter()
	tw.SetTitle("\nOPERATORS\n")
	tw.AppendHeader(table.Row{"Operator", "Name", "Pattern", "Params", "ID"})

	for _, r := range o.toRows(0) {
		tw.AppendRow(r)
	}

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)
	return tw.Render()
}

func (o *Operator) toRows(n int) []table.Row {
	if n >= maxRenderDepth {
		return nil
	}
	indent := strings.Repeat("  ", n)
	rows := []table.Row{{
		fmt.Sprintf("%s%s", indent, o.Kind),
		o.Name,
		o.Pattern,
		fmt.Sprintf("%d", len(o.params)),
		o.ID,
	}}
	for _, p := range o.params {
		rows = append(rows, p.toRows(n+1)...)
	}
	return rows
}
