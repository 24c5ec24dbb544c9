package syntax

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// Language pairs a tree-sitter grammar with its highlight query.
type Language struct {
	Name       string
	Extensions []string
	Grammar    *sitter.Language
	Highlights []byte
}

var goHighlights = []byte(`
(comment) @comment
(interpreted_string_literal) @string
(raw_string_literal) @string
(rune_literal) @string
(int_literal) @number
(float_literal) @number
(type_identifier) @type
(function_declaration name: (identifier) @function)
(method_declaration name: (field_identifier) @function)
(call_expression function: (identifier) @function.call)
[
  "break" "case" "const" "continue" "default" "defer" "else" "for"
  "func" "go" "if" "import" "interface" "package" "range" "return"
  "struct" "switch" "type" "var"
] @keyword
`)

var languages = []*Language{
	{
		Name:       "go",
		Extensions: []string{".go"},
		Grammar:    golang.GetLanguage(),
		Highlights: goHighlights,
	},
}

// ForFile returns the language registered for the file's extension, or nil.
func ForFile(path string) *Language {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil
	}
	for _, l := range languages {
		for _, e := range l.Extensions {
			if e == ext {
				return l
			}
		}
	}
	return nil
}

// ByName looks a language up by its name.
func ByName(name string) *Language {
	for _, l := range languages {
		if l.Name == name {
			return l
		}
	}
	return nil
}
