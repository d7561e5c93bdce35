package icv

import (
	"fmt"
	"strings"
)

// Options carries the pass-through run configuration. Technology and
// ProcessNode appear verbatim in the output header and have no effect on
// translation itself.
type Options struct {
	Technology  string
	ProcessNode string
	RunOptions  bool // emit the run_options preamble
}

// DefaultOptions returns the generator defaults.
func DefaultOptions() Options {
	return Options{
		Technology:  "Generic",
		ProcessNode: "180nm",
		RunOptions:  true,
	}
}

// Generate serializes a translation result into an ICV rule deck. Calling
// it twice with the same result and options yields byte-identical output.
func Generate(res *Result, opts Options) string {
	g := &generator{res: res, opts: opts}
	return g.generate()
}

type generator struct {
	res  *Result
	opts Options
}

func (g *generator) generate() string {
	var b strings.Builder

	b.WriteString("// ICV DRC rules translated from SVRF\n")
	fmt.Fprintf(&b, "// Technology: %s\n", g.opts.Technology)
	fmt.Fprintf(&b, "// Process node: %s\n", g.opts.ProcessNode)
	fmt.Fprintf(&b, "// Layers: %d\n", len(g.res.LayerDecls))
	fmt.Fprintf(&b, "// Rules: %d translated of %d\n\n", g.res.Translated(), g.res.Total)

	if g.opts.RunOptions {
		b.WriteString(g.generateRunOptions())
	}
	b.WriteString(g.generateLayers())
	b.WriteString(g.generateRules())

	return b.String()
}

func (g *generator) generateRunOptions() string {
	var b strings.Builder
	b.WriteString("// Run Options\n")
	b.WriteString("run_options {\n")
	b.WriteString("    layout_file = \"layout.gds\";\n")
	b.WriteString("    output_dir = \"./icv_results\";\n")
	b.WriteString("    temp_dir = \"./icv_temp\";\n")
	b.WriteString("    report_file = \"drc_report.txt\";\n")
	b.WriteString("    summary_file = \"drc_summary.txt\";\n")
	b.WriteString("    error_limit = 1000;\n")
	b.WriteString("    verbose = true;\n")
	b.WriteString("}\n\n")
	return b.String()
}

func (g *generator) generateLayers() string {
	var b strings.Builder
	b.WriteString("// Layer Definitions\n")
	for _, decl := range g.res.LayerDecls {
		b.WriteString(decl)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

func (g *generator) generateRules() string {
	var b strings.Builder
	for _, tr := range g.res.Rules {
		fmt.Fprintf(&b, "// Rule: %s\n", tr.Name)
		if tr.Description != "" {
			fmt.Fprintf(&b, "// Description: %s\n", tr.Description)
		}
		if len(tr.Check.Conjuncts) == 2 {
			// rectangle patterns report the length and width checks as
			// independent rule blocks
			g.writeRuleBlock(&b, strings.ToLower(tr.Name)+"_part1", tr.Check.Conjuncts[0], tr.message()+" (length)")
			g.writeRuleBlock(&b, strings.ToLower(tr.Name)+"_part2", tr.Check.Conjuncts[1], tr.message()+" (width)")
		} else {
			g.writeRuleBlock(&b, strings.ToLower(tr.Name), tr.Check.Expr, tr.message())
		}
	}
	return b.String()
}

func (g *generator) writeRuleBlock(b *strings.Builder, name, expr, message string) {
	fmt.Fprintf(b, "rule %s {\n", name)
	fmt.Fprintf(b, "    check_rule = %s;\n", expr)
	fmt.Fprintf(b, "    error_message = %q;\n", message)
	b.WriteString("}\n\n")
}

// message is the error text shown by the checking engine when the rule
// fires: the description when present, otherwise the rule name.
func (tr *TranslatedRule) message() string {
	if tr.Description != "" {
		return tr.Description
	}
	return tr.Name
}
