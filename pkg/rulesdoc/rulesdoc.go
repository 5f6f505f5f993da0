// Package rulesdoc describes the compiled rules as a markdown document,
// shown by the `hdrstrip rules` command.
package rulesdoc

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/hdrstrip/pkg/stripper"
)

// Markdown lists rules in application order with their patterns
func Markdown(rules []stripper.Rule) string {
	var b strings.Builder
	b.WriteString("# Rules\n\n")
	b.WriteString("Applied in this order; each rule replaces every match before the next one runs.\n")

	for i, r := range rules {
		fmt.Fprintf(&b, "\n## %d. %s\n\n%s.\n\n", i+1, r.Name, r.Description)
		fmt.Fprintf(&b, "```\n%s\n```\n\n", r.Pattern.String())
		if r.Replacement == "" {
			b.WriteString("Replacement: *(removed)*\n")
		} else {
			fmt.Fprintf(&b, "Replacement: `%s`\n", strings.ReplaceAll(r.Replacement, "\n", `\n`))
		}
	}
	return b.String()
}
