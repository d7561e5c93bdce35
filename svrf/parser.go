package svrf

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Parser accumulates one deck across any number of Feed calls. A Parser
// is owned by a single parse invocation; it keeps no process-wide state,
// so independent parses may run concurrently. Feeding the deck line by
// line, in chunks, or all at once yields an identical model.
type Parser struct {
	deck *Deck
	line int // absolute line number of the last fed line

	// rule-block accumulation
	inBlock    bool
	blockName  string
	blockStart int
	blockLines []string
	braceDepth int
	sawBrace   bool

	// candidate rule name seen on its own line, waiting for a brace
	pendingName string
	pendingLine int

	layerAt  map[string]int // layer name -> index in deck.Layers
	ruleAt   map[string]int // rule name -> index in deck.Rules
	finished bool
}

// NewParser creates a parser for one deck.
func NewParser() *Parser {
	return &Parser{
		deck:    &Deck{},
		layerAt: make(map[string]int),
		ruleAt:  make(map[string]int),
	}
}

// Parse parses a whole deck held in memory.
func Parse(text string) *Deck {
	p := NewParser()
	p.Feed(strings.Split(text, "\n"))
	return p.Finish()
}

// Feed consumes the next chunk of lines. Malformed constructs are recorded
// as diagnostics; Feed never fails on deck content. Feeding after Finish
// returns ErrParserFinished.
func (p *Parser) Feed(lines []string) error {
	if p.finished {
		return ErrParserFinished
	}
	for _, line := range lines {
		p.line++
		if p.inBlock {
			p.feedBlockLine(line)
			continue
		}
		p.classifyLine(line)
	}
	return nil
}

// Finish closes the parse and returns the deck. An open rule block at end
// of input is reported as an unterminated-block error and its partial
// content discarded. Unresolved layer references are flagged as warnings
// here, once the full set of definitions is known.
func (p *Parser) Finish() *Deck {
	if p.finished {
		return p.deck
	}
	p.finished = true

	if p.inBlock {
		p.errorf(p.blockStart, "unterminated rule block %q", p.blockName)
		p.inBlock = false
		p.blockLines = nil
	}
	p.resolveReferences()
	return p.deck
}

// classifyLine dispatches one line outside any rule block. Priority:
// include, primary layer, derived layer assignment, rule-block start.
func (p *Parser) classifyLine(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "//") {
		return
	}

	switch {
	case strings.HasPrefix(line, "INCLUDE"):
		p.parseInclude(line)
	case strings.HasPrefix(line, "LAYOUT"):
		// layout system declaration, nothing to model
	case firstField(line) == "LAYER":
		p.parseLayerDefinition(line)
	case isAssignment(line):
		p.parseDerivedLayer(line)
	case unquotedBraceIndex(line) >= 0:
		p.beginBlock(line)
	case identPattern.MatchString(line):
		// possibly a rule name with its brace on a later line
		p.pendingName = line
		p.pendingLine = p.line
		return
	}
	p.pendingName = ""
}

var includePattern = regexp.MustCompile(`^INCLUDE\s+"([^"]+)"`)

func (p *Parser) parseInclude(line string) {
	m := includePattern.FindStringSubmatch(line)
	if m == nil {
		p.errorf(p.line, "malformed include directive: %s", line)
		return
	}
	p.deck.Includes = append(p.deck.Includes, m[1])
}

func (p *Parser) parseLayerDefinition(line string) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		p.errorf(p.line, "unparsable layer definition: %s", line)
		return
	}
	name := fields[1]
	gds, err := strconv.Atoi(fields[2])
	if err != nil {
		p.errorf(p.line, "unparsable layer definition: GDS number %q is not an integer", fields[2])
		return
	}
	p.addLayer(&Layer{Name: name, GDSNumber: gds, SourceLine: p.line})
}

func (p *Parser) parseDerivedLayer(line string) {
	eq := assignmentIndex(line)
	name := strings.TrimSpace(line[:eq])
	expr := strings.TrimSpace(line[eq+1:])

	if !identPattern.MatchString(name) {
		p.errorf(p.line, "unparsable derived-layer assignment: bad layer name %q", name)
		return
	}
	if err := ValidateExpression(expr); err != nil {
		p.errorf(p.line, "unparsable derived-layer expression for %s: %v", name, err)
		return
	}
	p.addLayer(&Layer{Name: name, Expression: expr, SourceLine: p.line})
}

// addLayer appends a layer, applying the last-definition-wins policy on
// duplicate names: the new definition replaces the old one in place, so
// declaration order follows first occurrence.
func (p *Parser) addLayer(l *Layer) {
	if i, dup := p.layerAt[l.Name]; dup {
		p.warnf(l.SourceLine, "duplicate layer %q redefines line %d definition", l.Name, p.deck.Layers[i].SourceLine)
		p.deck.Layers[i] = l
		return
	}
	p.layerAt[l.Name] = len(p.deck.Layers)
	p.deck.Layers = append(p.deck.Layers, l)
}

// beginBlock starts rule-block accumulation at a line containing the
// opening brace. The rule name is the text before the brace, or the
// pending bare identifier from the previous line.
func (p *Parser) beginBlock(line string) {
	brace := unquotedBraceIndex(line)
	name := strings.TrimSpace(line[:brace])
	start := p.line
	if name == "" && p.pendingName != "" {
		name = p.pendingName
		start = p.pendingLine
	}
	if name == "" {
		p.errorf(p.line, "rule block without a name")
	}

	p.inBlock = true
	p.blockName = name
	p.blockStart = start
	p.blockLines = nil
	p.braceDepth = 0
	p.sawBrace = false
	if p.pendingName != "" {
		p.blockLines = append(p.blockLines, p.pendingName)
	}
	p.feedBlockLine(line)
}

// feedBlockLine accumulates one line of an open rule block, tracking the
// running brace balance. Braces inside quoted strings do not count. The
// block completes exactly when an opening brace has been seen and the
// balance returns to zero.
func (p *Parser) feedBlockLine(raw string) {
	line := strings.TrimSpace(raw)
	if line != "" {
		p.blockLines = append(p.blockLines, line)
	}
	opens, closes := countBraces(raw)
	if opens > 0 {
		p.sawBrace = true
	}
	p.braceDepth += opens - closes
	if p.sawBrace && p.braceDepth <= 0 {
		p.inBlock = false
		p.completeBlock()
	}
}

var descriptionPattern = regexp.MustCompile(`@\s*"([^"]*)"`)

// completeBlock classifies the accumulated block body and records the rule.
func (p *Parser) completeBlock() {
	content := strings.Join(p.blockLines, " ")
	p.blockLines = nil
	if p.blockName == "" {
		// already reported by beginBlock; nothing worth keeping
		return
	}

	rule := &Rule{
		Name:       p.blockName,
		SourceLine: p.blockStart,
		RawText:    content,
	}
	if m := descriptionPattern.FindStringSubmatch(content); m != nil {
		rule.Description = m[1]
	}

	match, ok := classifyRule(content)
	if !ok {
		rule.Category = Unknown
		p.warnf(p.blockStart, "unrecognized rule content in %q: %s", rule.Name, content)
	} else {
		rule.Category = match.Category
		rule.PrimaryLayer = match.PrimaryLayer
		rule.SecondaryLayer = match.SecondaryLayer
		rule.Operator = match.Operator
		rule.Value = match.Value
		rule.ExtraParams = match.Extra
		p.checkValue(rule)
	}
	p.addRule(rule)
}

// checkValue flags semantically questionable constraint values. They parse
// fine and still translate; the warning is for user follow-up.
func (p *Parser) checkValue(r *Rule) {
	if r.Value < 0 {
		p.warnf(r.SourceLine, "rule %q has negative constraint value %g", r.Name, r.Value)
	} else if r.Value > 1e4 {
		p.warnf(r.SourceLine, "rule %q has implausibly large constraint value %g", r.Name, r.Value)
	}
}

func (p *Parser) addRule(r *Rule) {
	if i, dup := p.ruleAt[r.Name]; dup {
		p.warnf(r.SourceLine, "duplicate rule %q redefines line %d definition", r.Name, p.deck.Rules[i].SourceLine)
		p.deck.Rules[i] = r
		return
	}
	p.ruleAt[r.Name] = len(p.deck.Rules)
	p.deck.Rules = append(p.deck.Rules, r)
}

// resolveReferences checks every derived-layer expression against the full
// set of layer names. Forward references are fine; names defined nowhere
// in the deck are warnings, not errors, since they may live in an included
// deck that is resolved externally.
func (p *Parser) resolveReferences() {
	defined := make(map[string]bool, len(p.deck.Layers))
	for _, l := range p.deck.Layers {
		defined[l.Name] = true
	}
	for _, l := range p.deck.Layers {
		if l.IsPrimary() {
			continue
		}
		for _, ref := range expressionRefs(l.Expression) {
			if !defined[ref] {
				p.warnf(l.SourceLine, "layer %q references undefined layer %q", l.Name, ref)
			}
		}
	}
}

func (p *Parser) errorf(line int, format string, args ...any) {
	p.deck.Diagnostics = append(p.deck.Diagnostics, Diagnostic{
		Severity: SeverityError,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (p *Parser) warnf(line int, format string, args ...any) {
	p.deck.Diagnostics = append(p.deck.Diagnostics, Diagnostic{
		Severity: SeverityWarning,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	})
}

// countBraces counts opening and closing braces outside quoted strings.
// Quoted strings do not span lines in the source grammar.
func countBraces(line string) (opens, closes int) {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			if inQuote && i+1 < len(line) {
				i++ // skip escaped character
			}
		case '"':
			inQuote = !inQuote
		case '{':
			if !inQuote {
				opens++
			}
		case '}':
			if !inQuote {
				closes++
			}
		}
	}
	return opens, closes
}

func firstField(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// unquotedBraceIndex returns the index of the first opening brace outside
// quoted strings, or -1.
func unquotedBraceIndex(line string) int {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			if inQuote && i+1 < len(line) {
				i++
			}
		case '"':
			inQuote = !inQuote
		case '{':
			if !inQuote {
				return i
			}
		}
	}
	return -1
}

// isAssignment reports whether the line is a derived-layer assignment:
// a bare '=' not part of a comparison operator, with no rule-block brace.
func isAssignment(line string) bool {
	if strings.ContainsRune(line, '{') {
		return false
	}
	return assignmentIndex(line) >= 0
}

// assignmentIndex returns the position of the assignment '=', or -1. An
// '=' adjacent to '=', '<', '>', or '!' belongs to a comparison operator.
func assignmentIndex(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != '=' {
			continue
		}
		if i+1 < len(line) && line[i+1] == '=' {
			i++ // skip the second half of ==
			continue
		}
		if i > 0 && strings.ContainsRune("<>=!", rune(line[i-1])) {
			continue
		}
		return i
	}
	return -1
}
