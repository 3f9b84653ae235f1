package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/reoring/glint/conflict"
	"github.com/reoring/glint/i18n"
	"github.com/reoring/glint/syntax"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgLightGreen
	NoteColorFG    = pterm.FgGray
)

const maxBannerLen = 50

// RenderConflicts prints each conflict under a banner naming its code,
// followed by the explanation of every secondary node. It returns the first
// write error.
func RenderConflicts(w io.Writer, cs conflict.Conflicts, tr i18n.Translator) error {
	if tr == nil {
		tr = i18n.Current()
	}
	b := &strings.Builder{}
	for _, c := range cs {
		renderBanner(b, c)
		b.WriteString(c.Explain(tr))
		b.WriteString("\n")
		for i, s := range c.ExplainSecondary(tr) {
			b.WriteString("  ")
			b.WriteString(NoteColorFG.Sprint(describe(c.Secondary[i].Node)))
			b.WriteString(" ")
			b.WriteString(s)
			b.WriteString("\n")
		}
	}
	renderSummary(b, tr, len(cs))
	_, err := io.WriteString(w, b.String())
	return err
}

// renderBanner displays the banner on top of each conflict
func renderBanner(b *strings.Builder, c conflict.Conflict) {
	b.WriteString("\n-- ")
	b.WriteString(ErrorStyleBG.Sprint(c.Code))
	b.WriteString(" ")
	where := describe(c.Primary.Node)
	dashCount := maxBannerLen - len(c.Code) - len(where) - 1
	if dashCount < 1 {
		dashCount = 1
	}
	b.WriteString(strings.Repeat("-", dashCount))
	b.WriteString(" ")
	b.WriteString(InfoColorFG.Sprint(where))
	b.WriteString("\n")
}

func renderSummary(b *strings.Builder, tr i18n.Translator, count int) {
	b.WriteString("\n")
	msg := tr.Message("log.conflicts", map[string]string{"count": fmt.Sprint(count)})
	if count == 0 {
		b.WriteString(SuccessColorFG.Sprint(msg))
	} else {
		b.WriteString(ErrorColorFG.Sprint(msg))
	}
	b.WriteString("\n")
}

func describe(n syntax.Node) string {
	if n == nil {
		return "?"
	}
	return fmt.Sprintf("%s#%d", n.Kind(), n.ID())
}
