package textutil

import "regexp"

// slugUnsafe matches every character that is not safe in a filename.
var slugUnsafe = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Slug derives a filesystem-safe name from a free-form company name by
// replacing every character outside [A-Za-z0-9_-] with an underscore.
//
// The mapping is total but not injective: distinct names such as "A B" and
// "A/B" collapse to the same slug. This is an accepted limitation; company
// names are expected to be distinguishable after slugging.
func Slug(name string) string {
	return slugUnsafe.ReplaceAllString(name, "_")
}
