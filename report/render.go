package report

import (
	"strings"

	"github.com/Python-AI-Solutions/entra-validation-app/cliout"
	"github.com/Python-AI-Solutions/entra-validation-app/entra"
)

// Render prints the ordered report to stdout. In JSON output mode the
// entries are emitted verbatim.
func Render(entries []Entry) error {
	if cliout.IsJSON() {
		return cliout.PrintJSON(entries)
	}

	cliout.Header("Microsoft Entra validation report")
	for _, e := range entries {
		cliout.Plain("%s %s", cliout.StatusBadge(string(e.Status)), e.Name)
		if e.Detail != "" {
			cliout.Plain("%s", indent(e.Detail, "    "))
		}
		cliout.Newline()
	}
	return nil
}

// NeedsBrowserHelperHint reports whether any failure carries the Entra
// single-page-app redemption error, in which case the user should be pointed
// at the browser-helper subcommand.
func NeedsBrowserHelperHint(entries []Entry) bool {
	for _, e := range entries {
		if e.Status == StatusFail && entra.IsSPARedemptionError(e.Detail) {
			return true
		}
	}
	return false
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
