package help

import (
	"strings"
	"testing"
)

func TestRenderListsKeys(t *testing.T) {
	out, err := Render(60)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("output still carries escape sequences")
	}
	for _, want := range []string{"Views", "previous period", "toggles this help"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q:\n%s", want, out)
		}
	}
}
