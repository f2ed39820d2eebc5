package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/alnah/go-md2site/internal/codec"
)

const (
	yamlDelimiter = "---"
	tomlDelimiter = "+++"
)

// Both formats decode strictly so a typo in a key fails the document
// instead of being silently dropped.
var delimitedFormats = []*frontmatter.Format{
	frontmatter.NewFormat(yamlDelimiter, yamlDelimiter, codec.UnmarshalYAMLStrict),
	frontmatter.NewFormat(tomlDelimiter, tomlDelimiter, codec.UnmarshalTOMLStrict),
}

// parseDelimited handles --- YAML and +++ TOML front matter.
func parseDelimited(src string) (Metadata, string, error) {
	var meta Metadata
	body, err := frontmatter.MustParse(strings.NewReader(src), &meta, delimitedFormats...)
	switch {
	case errors.Is(err, codec.ErrNilData):
		return Metadata{}, "", ErrMissingTitle
	case err != nil:
		return Metadata{}, "", fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	return meta, strings.TrimPrefix(string(body), "\n"), nil
}
