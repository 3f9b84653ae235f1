package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pterm/pterm"

	"github.com/reoring/glint/conflict"
	"github.com/reoring/glint/i18n"
	"github.com/reoring/glint/logging"
	"github.com/reoring/glint/syntax"
	"github.com/reoring/glint/types"
)

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]logging.Level{
		"silent": logging.LevelSilent,
		"Debug":  logging.LevelDebug,
		" info ": logging.LevelInfo,
		"trace":  logging.LevelTrace,
	} {
		got, err := logging.ParseLevel(name)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := logging.ParseLevel("loud"); err == nil {
		t.Fatalf("expected an error for an unknown level")
	}
}

func TestLogger_FiltersByLevel(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	var buf bytes.Buffer
	l := logging.New(logging.LevelInfo, &buf)
	l.Debug("hidden detail")
	l.Info("stream created", "creator", 7)
	out := buf.String()
	if strings.Contains(out, "hidden detail") {
		t.Fatalf("debug output leaked at info level: %q", out)
	}
	if !strings.Contains(out, "stream created") {
		t.Fatalf("info output missing: %q", out)
	}
	if !l.Enabled(logging.LevelError) || l.Enabled(logging.LevelTrace) {
		t.Fatalf("Enabled disagrees with level")
	}

	buf.Reset()
	silent := logging.New(logging.LevelSilent, &buf)
	silent.Error("nothing")
	if buf.Len() != 0 {
		t.Fatalf("silent logger wrote %q", buf.String())
	}
}

func TestRenderConflicts(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	tree := syntax.NewTree(syntax.NewBlock(syntax.NewReference("ghost")))
	if err := tree.CacheParents(); err != nil {
		t.Fatalf("CacheParents: %v", err)
	}
	cs := conflict.NewChecker(types.NewContext(tree)).All()

	var buf bytes.Buffer
	if err := logging.RenderConflicts(&buf, cs, i18n.Dictionary("en")); err != nil {
		t.Fatalf("RenderConflicts: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"unknown_name", "nothing is named ghost", "1 conflicts"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output lacks %q:\n%s", want, out)
		}
	}
}
