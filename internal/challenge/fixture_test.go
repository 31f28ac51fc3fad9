package challenge

import (
	"strings"
	"testing"
)

const sampleFixture = `
<div data-test="challenge">
  <h1 data-test="challenge-header">Fill in the blank</h1>
  <span class="katex">
    <annotation encoding="application/x-tex">3+\duoblank{1}=7</annotation>
  </span>
  <input type="text" value=""/>
  <button data-test="challenge-choice">3</button>
  <button data-test="challenge-choice">4</button>
  <iframe srcdoc="&lt;div class=&quot;slider&quot;&gt;&lt;/div&gt;&lt;script&gt;window.challenge={&quot;min&quot;:0}&lt;/script&gt;"></iframe>
</div>`

func TestParseFixture(t *testing.T) {
	c, err := ParseFixture(strings.NewReader(sampleFixture))
	if err != nil {
		t.Fatal(err)
	}

	if c.HeaderText != "fill in the blank" {
		t.Errorf("HeaderText = %q", c.HeaderText)
	}
	if !strings.Contains(c.EquationMarkup, `\duoblank{1}`) {
		t.Errorf("EquationMarkup = %q", c.EquationMarkup)
	}
	if c.TextInput == nil {
		t.Error("TextInput not found")
	}
	if len(c.Choices) != 2 {
		t.Fatalf("choices = %d, want 2", len(c.Choices))
	}
	if c.Choices[1].Text() != "4" {
		t.Errorf("choice 1 text = %q", c.Choices[1].Text())
	}
	if len(c.Widgets) != 1 {
		t.Fatalf("widgets = %d, want 1", len(c.Widgets))
	}
	w := c.Widgets[0]
	if !strings.Contains(w.Markup(), "slider") {
		t.Errorf("widget markup = %q", w.Markup())
	}
	if !strings.Contains(w.ScriptSource(), "window.challenge=") {
		t.Errorf("widget scripts = %q", w.ScriptSource())
	}
}

func TestParseFixture_BareFragment(t *testing.T) {
	c, err := ParseFixture(strings.NewReader(`<p class="challenge-header">Round 41 to the nearest 10</p><input type="text"/>`))
	if err != nil {
		t.Fatal(err)
	}
	if c.HeaderText != "round 41 to the nearest 10" {
		t.Errorf("HeaderText = %q", c.HeaderText)
	}
	if c.TextInput == nil {
		t.Error("TextInput not found")
	}
}
