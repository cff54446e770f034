package server

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alnah/go-mdview/internal/pipeline"
)

// DefaultTitle is the window title used when none is configured.
const DefaultTitle = "mdview"

// shellData is what the shell template sees.
type shellData struct {
	Title string
	Token string
}

// buildShell executes the shell template and injects css into its <head>.
// The CSS goes in after execution so stylesheet text is never parsed as template syntax.
func buildShell(tmpl, css, title, token string) ([]byte, error) {
	t, err := template.New("shell").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShellTemplate, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, shellData{Title: title, Token: token}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShellTemplate, err)
	}

	var injector pipeline.CSSInjector = &pipeline.CSSInjection{}
	return []byte(injector.InjectCSS(buf.String(), css)), nil
}
