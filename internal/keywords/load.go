package keywords

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// Parse decodes a YAML catalog. Unknown fields are rejected.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Catalog{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return c, nil
}

// EmbeddedCatalog returns the catalog compiled into the binary.
func EmbeddedCatalog() (Catalog, error) {
	return Parse(embeddedCatalog)
}

// LoadEmbedded builds a registry from the compiled-in catalog.
func LoadEmbedded() (*Registry, error) {
	c, err := EmbeddedCatalog()
	if err != nil {
		return nil, err
	}
	return NewRegistry(c)
}
