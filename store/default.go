package store

import "gorm.io/gorm"

var defaultRegistry *Registry

// Init creates the process-wide registry backed by the given database and
// makes it the default
func Init(db *gorm.DB) *Registry {
	defaultRegistry = NewRegistry(db)
	return defaultRegistry
}

// Default returns the process-wide registry
func Default() *Registry {
	return defaultRegistry
}

// SetDefault sets the process-wide registry (primarily for testing)
func SetDefault(registry *Registry) {
	defaultRegistry = registry
}
