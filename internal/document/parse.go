package document

import (
	"errors"
	"regexp"
	"strings"
)

// Sentinel errors for document parsing.
var (
	ErrMissingTitle      = errors.New("missing title")
	ErrMalformedMetadata = errors.New("malformed metadata")
)

// Syntax identifies how a document declares its metadata.
type Syntax int

const (
	// SyntaxKeyValue is a leading key:value block ended by a blank line,
	// optionally wrapped in an HTML comment.
	SyntaxKeyValue Syntax = iota
	// SyntaxYAML is a YAML block fenced by --- lines.
	SyntaxYAML
	// SyntaxTOML is a TOML table fenced by +++ lines.
	SyntaxTOML
)

func (s Syntax) String() string {
	switch s {
	case SyntaxYAML:
		return "yaml"
	case SyntaxTOML:
		return "toml"
	default:
		return "keyvalue"
	}
}

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// DetectSyntax inspects the first line of src.
func DetectSyntax(src string) Syntax {
	first, _, _ := strings.Cut(src, "\n")
	switch strings.TrimRight(first, " \t\r") {
	case yamlDelimiter:
		return SyntaxYAML
	case tomlDelimiter:
		return SyntaxTOML
	default:
		return SyntaxKeyValue
	}
}

// Parse splits src into its Metadata and body. Line endings are normalized
// to \n before anything else. A document without a non-empty title fails
// with ErrMissingTitle; anything the decoder rejects, including unknown
// keys, fails with ErrMalformedMetadata.
func Parse(src string) (Metadata, string, error) {
	src = crlfOrCR.ReplaceAllString(src, "\n")

	var (
		meta Metadata
		body string
		err  error
	)
	switch DetectSyntax(src) {
	case SyntaxYAML, SyntaxTOML:
		meta, body, err = parseDelimited(src)
	default:
		meta, body, err = parseKeyValue(src)
	}
	if err != nil {
		return Metadata{}, "", err
	}

	meta.Title = strings.TrimSpace(meta.Title)
	if meta.Title == "" {
		return Metadata{}, "", ErrMissingTitle
	}
	return meta, body, nil
}
