package catalog

import "errors"

// ErrEmptyDocument is returned by BuildAndSort when the registry document
// has no elements at all (not even a root).
var ErrEmptyDocument = errors.New("catalog: registry document has no root element")
