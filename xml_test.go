package pemcsv

import (
	"testing"
)

func TestParseXML_Basic(t *testing.T) {
	t.Parallel()
	root := mustParseXML(t, `<root attr="v"><child>text</child></root>`)

	if root.Name != "root" {
		t.Errorf("root name = %q, want root", root.Name)
	}
	if len(root.Attrs) != 1 || root.Attrs[0].Name.Local != "attr" || root.Attrs[0].Value != "v" {
		t.Errorf("unexpected attrs: %+v", root.Attrs)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}
	if root.Children[0].Name != "child" || root.Children[0].Text != "text" {
		t.Errorf("unexpected child: %+v", root.Children[0])
	}
}

func TestParseXML_DirectTextBeforeChildrenOnly(t *testing.T) {
	// WHY: Only text before the first child element counts as the
	// element's direct text; tail text after children must not bleed in.
	t.Parallel()
	root := mustParseXML(t, `<a>lead<b>inner</b>tail</a>`)
	if root.Text != "lead" {
		t.Errorf("root text = %q, want lead", root.Text)
	}
}

func TestParseXML_ChildOrderPreserved(t *testing.T) {
	t.Parallel()
	root := mustParseXML(t, `<r><b>1</b><a>2</a><b>3</b></r>`)
	var names []string
	for _, c := range root.Children {
		names = append(names, c.Name)
	}
	want := []string{"b", "a", "b"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("child order = %v, want %v", names, want)
		}
	}
}

func TestParseXML_Malformed(t *testing.T) {
	t.Parallel()
	for _, doc := range []string{`<a><b></a>`, `<unclosed>`, ``} {
		if _, err := ParseXML(doc); err == nil {
			t.Errorf("ParseXML(%q): expected error", doc)
		}
	}
}

func TestParseXML_EncodingDeclaration(t *testing.T) {
	// WHY: Payloads routinely declare ISO-8859-1 or similar; the
	// charset reader must handle non-UTF-8 declarations.
	t.Parallel()
	root := mustParseXML(t, `<?xml version="1.0" encoding="ISO-8859-1"?><a>ok</a>`)
	if root.Text != "ok" {
		t.Errorf("text = %q, want ok", root.Text)
	}
}

func TestStripNonPrintable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"control bytes removed", "<a>\x00\x01hi\x7f</a>", "<a>hi</a>"},
		{"whitespace kept", "<a>\n\t\rhi</a>", "<a>\n\t\rhi</a>"},
		{"non-ascii removed", "<a>héllo</a>", "<a>hllo</a>"},
		{"clean passthrough", "<a>hi</a>", "<a>hi</a>"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StripNonPrintable(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseXML_CleanupRetryScenario(t *testing.T) {
	// A fragment with embedded control bytes fails strict parsing but
	// succeeds after StripNonPrintable, mirroring the pipeline retry.
	t.Parallel()
	dirty := "<a>\x00<b>1</b></a>"
	if _, err := ParseXML(dirty); err == nil {
		t.Skip("decoder tolerated control byte; cleanup retry not needed")
	}
	root, err := ParseXML(StripNonPrintable(dirty))
	if err != nil {
		t.Fatalf("cleaned parse failed: %v", err)
	}
	if root.Children[0].Text != "1" {
		t.Errorf("unexpected tree after cleanup: %+v", root)
	}
}
