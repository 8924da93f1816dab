package service

import (
	"strings"

	"golang.org/x/text/cases"
)

// containsFold reports whether needle occurs in any of the fields under
// Unicode case folding, so "ÅSA" matches "åsa".
func containsFold(needle string, fields ...string) bool {
	fold := cases.Fold()
	n := fold.String(strings.TrimSpace(needle))
	for _, f := range fields {
		if strings.Contains(fold.String(f), n) {
			return true
		}
	}
	return false
}
