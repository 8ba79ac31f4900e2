package search

import "errors"

var errEmptyTerm = errors.New("empty search term")
