package catalog

import "errors"

var (
	ErrCatalogUnreadable = errors.New("catalog unreadable")
	ErrInvalidCatalog    = errors.New("invalid catalog")
)
