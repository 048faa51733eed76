package catalog

import "errors"

var (
	ErrCatalogNotFound = errors.New("catalog document not found")
	ErrCatalogCorrupt  = errors.New("catalog document malformed")
	ErrVersionConflict = errors.New("catalog modified concurrently")
)
