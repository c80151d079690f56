// Package trace provides a small ring-buffer execution recorder and a
// category-gated debug logger. The logger is enabled per category by the
// JR100_DEBUG environment variable; the recorder exists only when a caller
// creates one (internal/machine does so when Config.Trace is set).
package trace

import (
	"log"
	"os"
	"strings"
	"sync"
)

var (
	categoriesOnce sync.Once
	categories     map[string]bool
)

func loadCategories() map[string]bool {
	categoriesOnce.Do(func() {
		categories = make(map[string]bool)
		value := os.Getenv("JR100_DEBUG")
		if value == "" {
			return
		}
		for _, part := range strings.Split(value, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part != "" {
				categories[part] = true
			}
		}
	})
	return categories
}

// Enabled reports whether category (or "all") was named in JR100_DEBUG.
func Enabled(category string) bool {
	cats := loadCategories()
	if len(cats) == 0 {
		return false
	}
	if cats["all"] {
		return true
	}
	return cats[strings.ToLower(category)]
}

// Logf writes a "[JR100][category] message" line via the standard logger
// if category is enabled; otherwise it is a no-op.
func Logf(category, format string, args ...any) {
	if !Enabled(category) {
		return
	}
	log.Printf("[JR100][%s] "+format, append([]any{category}, args...)...)
}
