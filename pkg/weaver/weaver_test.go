package weaver

import (
	"strings"
	"testing"
)

func TestInterlinkBasicInsertion(t *testing.T) {
	doc := `<html><body><p>Read our coffee guide before brewing.</p></body></html>`
	out, inserted, err := Interlink(doc, map[string]string{"coffee guide": "https://example.com/coffee-guide"}, 5)
	if err != nil {
		t.Fatalf("Interlink() error = %v", err)
	}
	if len(inserted) != 1 {
		t.Fatalf("inserted %d links, want 1", len(inserted))
	}
	want := `<a href="https://example.com/coffee-guide">coffee guide</a>`
	if !strings.Contains(out, want) {
		t.Errorf("output missing anchor %q:\n%s", want, out)
	}
	if !strings.Contains(out, "before brewing.") {
		t.Errorf("tail text lost:\n%s", out)
	}
	if inserted[0].Term != "coffee guide" || inserted[0].Priority {
		t.Errorf("insertion = %+v", inserted[0])
	}
	if inserted[0].Context != "Read our coffee guide before brewing." {
		t.Errorf("Context = %q", inserted[0].Context)
	}
}

func TestInterlinkCaseInsensitiveWholeWord(t *testing.T) {
	doc := `<html><body><p>Smartphones are not linked but a Smartphone is.</p></body></html>`
	out, inserted, err := Interlink(doc, map[string]string{"smartphone": "https://example.com/phone"}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(inserted) != 1 {
		t.Fatalf("inserted %d links, want 1", len(inserted))
	}
	if !strings.Contains(out, `<a href="https://example.com/phone">Smartphone</a>`) {
		t.Errorf("case of matched text not preserved:\n%s", out)
	}
	if strings.Contains(out, `>Smartphones</a>`) {
		t.Errorf("matched inside a longer word:\n%s", out)
	}
}

func TestInterlinkLongerTermsWin(t *testing.T) {
	doc := `<html><body><p>Our espresso machine buying advice.</p></body></html>`
	terms := map[string]string{
		"espresso":         "https://example.com/espresso",
		"espresso machine": "https://example.com/machine",
	}
	out, inserted, err := Interlink(doc, terms, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(inserted) != 1 {
		t.Fatalf("inserted %d links, want 1", len(inserted))
	}
	if inserted[0].URL != "https://example.com/machine" {
		t.Errorf("linked %q, want the longer phrase target", inserted[0].URL)
	}
	if strings.Contains(out, `href="https://example.com/espresso"`) {
		t.Errorf("shorter term linked inside the longer phrase:\n%s", out)
	}
}

func TestInterlinkFirstOccurrenceOnly(t *testing.T) {
	doc := `<html><body><p>Espresso first.</p><p>Espresso again.</p></body></html>`
	out, inserted, err := Interlink(doc, map[string]string{"espresso": "https://example.com/e"}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(inserted) != 1 {
		t.Fatalf("inserted %d links, want 1", len(inserted))
	}
	if got := strings.Count(out, `href="https://example.com/e"`); got != 1 {
		t.Errorf("anchor appears %d times, want 1:\n%s", got, out)
	}
}

func TestInterlinkSkipsProtectedTags(t *testing.T) {
	doc := `<html><body>` +
		`<h2>espresso</h2>` +
		`<p><a href="/old">espresso</a> stays as is</p>` +
		`<p><code>espresso</code> is code</p>` +
		`<li>but this espresso gets linked</li>` +
		`</body></html>`
	out, inserted, err := Interlink(doc, map[string]string{"espresso": "https://example.com/e"}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(inserted) != 1 {
		t.Fatalf("inserted %d links, want 1", len(inserted))
	}
	if !strings.Contains(out, `<li>but this <a href="https://example.com/e">espresso</a> gets linked</li>`) {
		t.Errorf("list item not linked:\n%s", out)
	}
	if strings.Contains(out, `<code><a`) || strings.Contains(out, `<h2><a`) {
		t.Errorf("protected tag was rewritten:\n%s", out)
	}
}

func TestInterlinkRespectsGlobalCap(t *testing.T) {
	doc := `<html><body>` +
		`<p>alpha here</p><p>beta here</p><p>gamma here</p><p>delta here</p>` +
		`</body></html>`
	terms := map[string]string{
		"alpha": "https://example.com/a",
		"beta":  "https://example.com/b",
		"gamma": "https://example.com/c",
		"delta": "https://example.com/d",
	}
	out, inserted, err := Interlink(doc, terms, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(inserted) != 2 {
		t.Fatalf("inserted %d links, cap is 2", len(inserted))
	}
	if got := strings.Count(out, "<a href="); got != 2 {
		t.Errorf("rendered %d anchors, want 2:\n%s", got, out)
	}
}

func TestInterlinkPriorityTermsComeFirst(t *testing.T) {
	doc := `<p>Priority phrase leads the way.</p><p>Meanwhile, the automatic term waits here.</p>`
	rendered, inserted, err := InterlinkWithPriority(
		doc,
		map[string]string{"automatic term": "https://example.com/auto"},
		[]PriorityTerm{{Term: "Priority phrase", URL: "https://example.com/priority"}},
		5,
	)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rendered, `href="https://example.com/priority"`) {
		t.Errorf("priority anchor missing:\n%s", rendered)
	}
	if !strings.Contains(rendered, `href="https://example.com/auto"`) {
		t.Errorf("automatic anchor missing:\n%s", rendered)
	}
	if len(inserted) != 2 {
		t.Fatalf("inserted %d links, want 2", len(inserted))
	}
	first, second := inserted[0], inserted[1]
	if first.Term != "Priority phrase" || !first.Priority || first.Context != "Priority phrase leads the way." {
		t.Errorf("first insertion = %+v", first)
	}
	if second.Term != "automatic term" || second.Priority || second.Context != "Meanwhile, the automatic term waits here." {
		t.Errorf("second insertion = %+v", second)
	}
}

func TestInterlinkNoTermsReturnsInput(t *testing.T) {
	doc := `<p>untouched</p>`
	out, inserted, err := Interlink(doc, nil, 5)
	if err != nil {
		t.Fatal(err)
	}
	if out != doc {
		t.Errorf("output = %q, want input unchanged", out)
	}
	if len(inserted) != 0 {
		t.Errorf("inserted = %v, want none", inserted)
	}
}
