package extract

import (
	"strings"
	"testing"
)

func TestLines_PreservesHeaderMarkers(t *testing.T) {
	html := `<h2>Ingredients</h2><p>1 cup flour</p>`
	lines := Lines(html)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", lines)
	}
	if !strings.HasPrefix(lines[0], "#") {
		t.Fatalf("expected header marker to survive, got %q", lines[0])
	}
	if !strings.Contains(lines[0], "Ingredients") {
		t.Fatalf("expected header text, got %q", lines[0])
	}
}

func TestLines_UnwrapsListItems(t *testing.T) {
	html := `<ul><li>First item</li><li>Second item</li></ul>`
	lines := Lines(html)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", lines)
	}
	if lines[0] != "First item" || lines[1] != "Second item" {
		t.Fatalf("expected bullets stripped, got %v", lines)
	}
}

func TestLines_KeepsNumberedItems(t *testing.T) {
	html := `<ol><li>Mix the batter.</li><li>Bake it.</li></ol>`
	lines := Lines(html)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", lines)
	}
	if !strings.HasPrefix(lines[0], "1.") {
		t.Fatalf("expected numbered item to keep its marker, got %q", lines[0])
	}
}

func TestLines_DropsLinkTargets(t *testing.T) {
	html := `<p>See <a href="https://example.com/recipe">the original recipe</a> for photos.</p>`
	lines := Lines(html)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %v", lines)
	}
	if strings.Contains(lines[0], "example.com") {
		t.Fatalf("expected link target to be dropped, got %q", lines[0])
	}
	if !strings.Contains(lines[0], "the original recipe") {
		t.Fatalf("expected link text to survive, got %q", lines[0])
	}
}

func TestLines_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "<div></div>"} {
		if lines := Lines(input); len(lines) != 0 {
			t.Fatalf("expected no lines for %q, got %v", input, lines)
		}
	}
}

func TestLinesFromBlocks_NoDoubleCounting(t *testing.T) {
	html := `<div><p>One</p><p>Two</p></div>`
	lines := linesFromBlocks(html)
	if len(lines) != 1 {
		t.Fatalf("expected the outermost block to win, got %v", lines)
	}
	if lines[0] != "One Two" {
		t.Fatalf("unexpected flattened text: %q", lines[0])
	}
}

func TestLinesFromBlocks_SkipsScripts(t *testing.T) {
	html := `<p>Visible</p><script>var hidden = 1;</script>`
	lines := linesFromBlocks(html)
	for _, line := range lines {
		if strings.Contains(line, "hidden") {
			t.Fatalf("expected script content to be skipped, got %v", lines)
		}
	}
}

func TestPlainText_CollapsesBlankRuns(t *testing.T) {
	html := `<p>First paragraph</p><p></p><p></p><p>Second paragraph</p>`
	text := PlainText(html)
	if strings.Contains(text, "\n\n\n") {
		t.Fatalf("expected blank runs collapsed, got %q", text)
	}
	if !strings.Contains(text, "First paragraph") || !strings.Contains(text, "Second paragraph") {
		t.Fatalf("expected both paragraphs, got %q", text)
	}
}

func TestPlainText_KeepsLinkURLs(t *testing.T) {
	html := `<p>From <a href="https://example.com/r">here</a>.</p>`
	text := PlainText(html)
	if !strings.Contains(text, "example.com") {
		t.Fatalf("expected URL preserved for reference, got %q", text)
	}
}

func TestPlainText_EmptyInput(t *testing.T) {
	if got := PlainText(""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestDescription_FirstMeaningfulParagraph(t *testing.T) {
	html := `<p>This is a classic family dessert recipe.</p><p>Other text</p>`
	got := Description(html, 500)
	if got != "This is a classic family dessert recipe." {
		t.Fatalf("unexpected description: %q", got)
	}
}

func TestDescription_SkipsTrivialParagraph(t *testing.T) {
	html := `<p>Hi</p><div>A longer run of visible text that can serve as a description. More follows here.</div>`
	got := Description(html, 500)
	if got == "Hi" || got == "" {
		t.Fatalf("expected fallback past the trivial paragraph, got %q", got)
	}
}

func TestDescription_Truncates(t *testing.T) {
	html := "<p>" + strings.Repeat("word ", 200) + "</p>"
	got := Description(html, 50)
	if len([]rune(got)) > 50 {
		t.Fatalf("expected at most 50 runes, got %d", len([]rune(got)))
	}
}
