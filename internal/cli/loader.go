package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/roach88/tdl/internal/ir"
	"github.com/roach88/tdl/internal/parse"
)

// SourceExt is the extension of definition files found in directories.
const SourceExt = ".tdl"

// StdinName is the source name used for input read from stdin.
const StdinName = "<stdin>"

// Source is one input text and the name it is reported under.
type Source struct {
	Name string
	Text string
}

// Position locates a byte offset in a source. Line and Column are 1-based;
// Column counts runes.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// PositionOf returns the position of offset within text.
func PositionOf(text string, offset int) Position {
	if offset > len(text) {
		offset = len(text)
	}
	before := text[:offset]
	line := strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return Position{
		Offset: offset,
		Line:   line,
		Column: utf8.RuneCountInString(before[lineStart:]) + 1,
	}
}

// LoadError represents an error that occurred while reading or parsing input.
type LoadError struct {
	Code    string
	Message string
	Source  string    // empty when the error is not tied to one input
	Pos     *Position // set for syntax errors
	Rule    string    // failing rule for syntax errors
}

func (e *LoadError) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Source, e.Pos.Line, e.Pos.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Details returns the structured error payload for JSON output.
func (e *LoadError) Details() any {
	if e.Pos == nil {
		return nil
	}
	return map[string]any{
		"source": e.Source,
		"offset": e.Pos.Offset,
		"line":   e.Pos.Line,
		"column": e.Pos.Column,
		"rule":   e.Rule,
	}
}

// ReadSources reads the input named by path: "-" reads stdin, a directory
// yields every SourceExt file below it in lexical order, anything else is
// read as a single file.
func ReadSources(path string, stdin io.Reader) ([]Source, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading stdin: %v", err)}
		}
		return []Source{{Name: StdinName, Text: string(data)}}, nil
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing path: %v", err)}
	}

	files := []string{path}
	if info.IsDir() {
		files, err = FindSourceFiles(path)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
		}
		if len(files) == 0 {
			return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no %s files found in %s", SourceExt, path)}
		}
	}

	sources := make([]Source, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading %s: %v", file, err)}
		}
		sources = append(sources, Source{Name: file, Text: string(data)})
	}
	return sources, nil
}

// FindSourceFiles walks the directory and returns all SourceExt file paths.
func FindSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == SourceExt {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// ParseResult is the outcome of parsing one source.
type ParseResult struct {
	Source      string
	Definitions []ir.TypeDef
	Remaining   string
}

// ParseSource parses src. With all set every definition must parse and
// the whole text must be consumed; otherwise only the first definition,
// after any leading whitespace, is parsed and the rest is returned as
// Remaining.
//
// Syntax errors are returned as *LoadError carrying the position of the
// input the parser could not consume.
func ParseSource(src Source, all bool) (*ParseResult, error) {
	result := &ParseResult{Source: src.Name, Definitions: []ir.TypeDef{}}

	var (
		rest string
		err  error
	)
	if all {
		result.Definitions, rest, err = parse.All(src.Text)
	} else {
		var def ir.TypeDef
		def, rest, err = parse.ParseTypeDef(parse.SkipLineSpace(src.Text))
		if err == nil {
			result.Definitions = append(result.Definitions, def)
		}
	}
	result.Remaining = rest

	if err != nil {
		rule := ""
		var syntaxErr *parse.SyntaxError
		if errors.As(err, &syntaxErr) {
			rule = syntaxErr.Rule
		}
		// The rules return the cursor they were given, so rest starts at the
		// failing declaration. Skip its leading whitespace for the report.
		failAt := len(src.Text) - len(parse.SkipLineSpace(rest))
		pos := PositionOf(src.Text, failAt)
		return result, &LoadError{
			Code:    ErrCodeSyntax,
			Message: err.Error(),
			Source:  src.Name,
			Pos:     &pos,
			Rule:    rule,
		}
	}
	return result, nil
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No source files found
	ErrCodeReadFailed  = "E004" // Input could not be read
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeRender      = "E006" // Export rendering failed
	ErrCodeWriteFailed = "E007" // File write error

	// Parse errors
	ErrCodeSyntax = "E201" // Input does not match the grammar
	ErrCodeImport = "E202" // CUE input could not be converted

	// Check errors
	ErrCodeInvalid = "E401" // Definitions failed validation

	// Catalog errors
	ErrCodeCatalog        = "E301" // Catalog could not be opened or written
	ErrCodeCatalogMissing = "E302" // Name not recorded in the catalog
)

// asLoadError converts err to a *LoadError, wrapping unknown errors in a
// generic one.
func asLoadError(err error) *LoadError {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr
	}
	return &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
}
