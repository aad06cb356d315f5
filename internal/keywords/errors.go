package keywords

import "errors"

var (
	ErrInvalidIndustry = errors.New("invalid industry")
	ErrInvalidCatalog  = errors.New("invalid keyword catalog")
	ErrCatalogNotFound = errors.New("keyword catalog not found")
)
