package pipeline

import "strings"

// CSSInjector inserts a stylesheet into a complete HTML document.
type CSSInjector interface {
	InjectCSS(doc, css string) string
}

// CSSInjection injects CSS as a <style> block into the viewer shell document.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into doc.
// Tries </head> first, then after <body>, then prepends.
// CSS content is escaped so it cannot close the style element.
func (s *CSSInjection) InjectCSS(doc, css string) string {
	if css == "" {
		return doc
	}

	block := "<style>" + sanitizeCSS(css) + "</style>"
	lower := strings.ToLower(doc)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return doc[:idx] + block + doc[idx:]
	}

	if idx := strings.Index(lower, "<body"); idx != -1 {
		if closeIdx := strings.Index(doc[idx:], ">"); closeIdx != -1 {
			pos := idx + closeIdx + 1
			return doc[:pos] + block + doc[pos:]
		}
	}

	return block + doc
}

// sanitizeCSS escapes "</" so a stylesheet cannot terminate its <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// Compile-time interface check.
var _ CSSInjector = (*CSSInjection)(nil)
