package analyzers

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// detectLanguage resolves a lowercase language name from the filename using
// the chroma lexer registry, falling back to the bare extension when no
// lexer claims the file.
func detectLanguage(filename string) string {
	if lx := lexers.Match(filepath.Base(filename)); lx != nil {
		return strings.ToLower(lx.Config().Name)
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}
