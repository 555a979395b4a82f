package tree

import "errors"

var (
	ErrAVLOutOfRange      = errors.New("[avl-map] key out of range")
	ErrAVLInvalidIterator = errors.New("[avl-map] invalid iterator")
)
