package yacache

import "errors"

var (
	ErrKeyNotFound = errors.New("[CACHE] key not found")

	ErrFailedToSet    = errors.New("[CACHE] failed to set value")
	ErrFailedToGet    = errors.New("[CACHE] failed to get value")
	ErrFailedToDelete = errors.New("[CACHE] failed to delete value")
	ErrFailedToPing   = errors.New("[CACHE] failed to ping")
	ErrFailedToClose  = errors.New("[CACHE] failed to close")
)
