package mdview

// Notes:
// - Grammar details beyond the default flag set are covered by the pipeline
//   package; these tests pin the file-to-fragment contract.

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeDoc writes content to a new file in a temp dir and returns its path.
func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func renderFile(t *testing.T, r *Renderer, path string) (string, error) {
	t.Helper()
	return r.Render(context.Background(), RenderRequest{Path: path, Extensions: DefaultExtensions()})
}

// ---------------------------------------------------------------------------
// TestRender - default grammar conformance
// ---------------------------------------------------------------------------

func TestRender_Conformance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "strikethrough",
			input: "~~a~~",
			want:  []string{"<p><del>a</del></p>"},
		},
		{
			name:  "task list",
			input: "- [ ] task",
			want:  []string{`<input disabled="" type="checkbox">`, "task"},
		},
		{
			name:  "autolink",
			input: "https://example.com",
			want:  []string{`<a href="https://example.com">https://example.com</a>`},
		},
		{
			name:  "table",
			input: "| a | b |\n|---|---|\n| 1 | 2 |\n",
			want:  []string{"<table>", "<th>a</th>", "<th>b</th>", "<td>1</td>", "<td>2</td>"},
		},
		{
			name:  "superscript",
			input: "2^10^",
			want:  []string{"<sup>10</sup>"},
		},
		{
			name:  "footnote",
			input: "text[^1]\n\n[^1]: note\n",
			want:  []string{"footnote"},
		},
		{
			name:  "description list",
			input: "term\n: definition\n",
			want:  []string{"<dl>", "<dt>term</dt>", "<dd>definition</dd>"},
		},
	}

	r := NewRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			html, err := renderFile(t, r, writeDoc(t, "doc.md", tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(html, want) {
					t.Errorf("output %q missing %q", html, want)
				}
			}
		})
	}
}

func TestRender_DefaultsOff(t *testing.T) {
	t.Parallel()

	html, err := renderFile(t, NewRenderer(), writeDoc(t, "doc.md", "# Title\n\n\"quoted\" -- text\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "id=") {
		t.Errorf("headings should carry no id: %q", html)
	}
	if !strings.Contains(html, "&quot;quoted&quot; -- text") {
		t.Errorf("typographer should be off: %q", html)
	}
}

func TestRender_Fragment(t *testing.T) {
	t.Parallel()

	html, err := renderFile(t, NewRenderer(), writeDoc(t, "doc.md", "hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<p>hello</p>\n" {
		t.Errorf("got %q, want a bare fragment", html)
	}
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "doc.md", "# A\n\n| x |\n|---|\n| y |\n\n- [x] done\n\nfoo[^n]\n\n[^n]: bar\n")
	r := NewRenderer()

	first, err := renderFile(t, r, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := renderFile(t, r, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("render %d differs:\n%q\n%q", i, first, again)
		}
	}
}

func TestRender_RereadsFile(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "doc.md", "one")
	r := NewRenderer()

	if html, _ := renderFile(t, r, path); html != "<p>one</p>\n" {
		t.Fatalf("got %q", html)
	}
	if err := os.WriteFile(path, []byte("two"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if html, _ := renderFile(t, r, path); html != "<p>two</p>\n" {
		t.Errorf("expected fresh content, got %q", html)
	}
}

func TestRender_Highlight(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "doc.md", "```go\nfunc main() {}\n```\n")

	plain, err := renderFile(t, NewRenderer(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(plain, "chroma") {
		t.Errorf("highlighting should be off by default: %q", plain)
	}

	highlighted, err := renderFile(t, NewRenderer(WithHighlight("")), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(highlighted, `class="chroma"`) {
		t.Errorf("expected chroma markup: %q", highlighted)
	}
}

// ---------------------------------------------------------------------------
// TestRender - errors
// ---------------------------------------------------------------------------

func TestRender_MissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.md")
	html, err := renderFile(t, NewRenderer(), path)

	if html != "" {
		t.Errorf("expected no output, got %q", html)
	}
	if !errors.Is(err, ErrRead) {
		t.Fatalf("expected ErrRead, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in chain, got %v", err)
	}
	if strings.Contains(err.Error(), ErrRead.Error()) {
		t.Errorf("message should be the OS message only, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "missing.md") {
		t.Errorf("message should name the file, got %q", err.Error())
	}

	var re *ReadError
	if !errors.As(err, &re) || re.Path != path {
		t.Errorf("expected *ReadError for %q, got %#v", path, err)
	}
}

func TestRender_Directory(t *testing.T) {
	t.Parallel()

	if _, err := renderFile(t, NewRenderer(), t.TempDir()); !errors.Is(err, ErrRead) {
		t.Errorf("expected ErrRead, got %v", err)
	}
}

func TestRender_InvalidUTF8(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "bad.md", "ok \xff\xfe")
	_, err := renderFile(t, NewRenderer(), path)
	if !errors.Is(err, ErrRead) {
		t.Fatalf("expected ErrRead, got %v", err)
	}
	if !strings.Contains(err.Error(), "valid UTF-8") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestRender_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	read := false
	r := NewRenderer()
	r.readFile = func(string) (string, error) {
		read = true
		return "", nil
	}

	if _, err := r.Render(ctx, RenderRequest{Path: "x.md"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if read {
		t.Error("file should not be read after cancellation")
	}
}

// ---------------------------------------------------------------------------
// TestRender - converter failures
// ---------------------------------------------------------------------------

type failingConverter struct{ err error }

func (f failingConverter) ToHTML(context.Context, string, Extensions) (string, error) {
	return "", f.err
}

func TestRender_ConverterError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	r := NewRenderer()
	r.converter = failingConverter{err: boom}

	_, err := renderFile(t, r, writeDoc(t, "doc.md", "x"))
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped converter error, got %v", err)
	}
	if errors.Is(err, ErrRead) {
		t.Error("conversion failure is not a read error")
	}
}
