package stripper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/hdrstrip/pkg/errors"
)

// Rule names, in application order.
const (
	RuleRemoveHeaders   = "remove-headers"
	RuleRemoveEntry     = "remove-entry"
	RuleRemoveEmpty     = "remove-empty-headers"
	RuleReindentClosing = "reindent-content-type"
)

// Target describes the header entry the rules are compiled for.
type Target struct {
	// Header is the header key as written in the object literal
	Header string
	// Object and Field form the accessor on the value side (user?.id)
	Object string
	Field  string
	// Indent is the number of spaces put before the closing brace by the
	// re-indent rule
	Indent int
	// ContentType is the sibling header value the re-indent rule looks for
	ContentType string
}

// DefaultTarget returns the x-user-id / user.id target.
func DefaultTarget() Target {
	return Target{
		Header:      "x-user-id",
		Object:      "user",
		Field:       "id",
		Indent:      8,
		ContentType: "application/json",
	}
}

// Validate checks that every part of the target is usable in a pattern
func (t Target) Validate() error {
	switch {
	case strings.TrimSpace(t.Header) == "":
		return errors.New(errors.ErrInvalidInput, "header name must not be empty")
	case strings.TrimSpace(t.Object) == "":
		return errors.New(errors.ErrInvalidInput, "accessor object must not be empty")
	case strings.TrimSpace(t.Field) == "":
		return errors.New(errors.ErrInvalidInput, "accessor field must not be empty")
	case strings.TrimSpace(t.ContentType) == "":
		return errors.New(errors.ErrInvalidInput, "content type must not be empty")
	case t.Indent < 0:
		return errors.Newf(errors.ErrInvalidInput, "indent must not be negative, got %d", t.Indent)
	}
	return nil
}

// whitespace is the character class written as \s in the rule templates. It
// covers every Unicode space, not just the ASCII ones RE2's \s matches.
const whitespace = `[\t\n\v\f\r\x{1c}-\x{1f}\x{85}\p{Z}]`

// spaced expands \s in a pattern template. It must run before any quoted
// target value is inserted.
func spaced(template string) string {
	return strings.ReplaceAll(template, `\s`, whitespace)
}

// Rule is one global substitution step.
type Rule struct {
	Name        string
	Description string
	Pattern     *regexp.Regexp
	Replacement string
}

// NewRules compiles the four rules for target, in the order they must run.
//
// The entry pattern matches `'<header>': <object>.<field>`, with an
// optional `?` before the dot and an optional `|| ''` default.
func NewRules(target Target) ([]Rule, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	entry := fmt.Sprintf(spaced(`'%s':\s*%s\??\.%s\s*(?:\|\|\s*'')?`),
		regexp.QuoteMeta(target.Header),
		regexp.QuoteMeta(target.Object),
		regexp.QuoteMeta(target.Field),
	)

	specs := []struct {
		name, description, pattern, replacement string
	}{
		{
			name:        RuleRemoveHeaders,
			description: "Delete a headers declaration whose only entry is the target header",
			pattern:     spaced(`headers:\s*\{\s*`) + entry + spaced(`\s*\},?\s*\n`),
		},
		{
			name:        RuleRemoveEntry,
			description: "Delete the target header entry and its leading separator from a larger object",
			pattern:     spaced(`,?\s*\n\s*`) + entry + spaced(`\s*,?`),
		},
		{
			name:        RuleRemoveEmpty,
			description: "Delete headers declarations left empty",
			pattern:     spaced(`headers:\s*\{\s*\},?\s*\n`),
		},
		{
			name:        RuleReindentClosing,
			description: "Drop the trailing comma after a lone Content-Type entry and re-indent the closing brace",
			// ${2} keeps the \r of a CRLF break
			pattern:     spaced(`(\{\s*'Content-Type':\s*'`) + regexp.QuoteMeta(target.ContentType) + spaced(`'),\s*?(\r?)\n\s*\}`),
			replacement: "${1}${2}\n" + strings.Repeat(" ", target.Indent) + "}",
		},
	}

	rules := make([]Rule, 0, len(specs))
	for _, s := range specs {
		re, err := regexp.Compile(s.pattern)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to compile rule %s", s.name)
		}
		rules = append(rules, Rule{
			Name:        s.name,
			Description: s.description,
			Pattern:     re,
			Replacement: s.replacement,
		})
	}
	return rules, nil
}

// DefaultRules returns the rules for DefaultTarget.
func DefaultRules() []Rule {
	rules, err := NewRules(DefaultTarget())
	if err != nil {
		panic(fmt.Sprintf("default rules: %v", err))
	}
	return rules
}

// Stripper applies an ordered list of rules to text.
type Stripper struct {
	rules []Rule
}

// New returns a Stripper running rules in the given order
func New(rules ...Rule) *Stripper {
	return &Stripper{rules: rules}
}

// Default returns a Stripper with DefaultRules
func Default() *Stripper {
	return New(DefaultRules()...)
}

// Rules returns a copy of the rules in application order
func (s *Stripper) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Apply runs every rule over the whole content, each rule seeing the output
// of the previous one. It never fails.
func (s *Stripper) Apply(content string) string {
	for _, r := range s.rules {
		content = r.Pattern.ReplaceAllString(content, r.Replacement)
	}
	return content
}

// RuleResult records how many matches one rule replaced.
type RuleResult struct {
	Name    string `json:"name"`
	Matches int    `json:"matches"`
}

// Report is the outcome of ApplyWithReport.
type Report struct {
	Original string
	Output   string
	Rules    []RuleResult
}

// Changed reports whether the output differs from the original
func (r Report) Changed() bool {
	return r.Original != r.Output
}

// Matches returns the total number of replacements across all rules
func (r Report) Matches() int {
	total := 0
	for _, rr := range r.Rules {
		total += rr.Matches
	}
	return total
}

// ApplyWithReport behaves like Apply and also counts matches per rule.
func (s *Stripper) ApplyWithReport(content string) Report {
	report := Report{Original: content, Rules: make([]RuleResult, 0, len(s.rules))}
	for _, r := range s.rules {
		n := len(r.Pattern.FindAllStringIndex(content, -1))
		if n > 0 {
			content = r.Pattern.ReplaceAllString(content, r.Replacement)
		}
		report.Rules = append(report.Rules, RuleResult{Name: r.Name, Matches: n})
	}
	report.Output = content
	return report
}

var defaultStripper = Default()

// Strip applies the default rules to content.
func Strip(content string) string {
	return defaultStripper.Apply(content)
}
