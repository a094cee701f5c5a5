package main

import "strings"

// canonicalizeChannel folds a channel name to the form used as a map key in
// the Channel Registry, so channel lookups are case-insensitive (spec.md
// §3, §9). Nicknames are deliberately NOT folded the same way: spec.md §9
// pins nick comparison as exact-case ("a known RFC deviation"), so the
// Client Registry's nickname view is keyed on the nick exactly as given.
// Grounded on the teacher's util.go canonicalizeNick, generalized here to
// channels only.
func canonicalizeChannel(name string) string {
	return strings.ToLower(name)
}

// isValidChannelName implements spec.md §4.4's JOIN validity rule:
// "must start with '#' and contain none of {space, comma, BEL (0x07)}",
// and additionally rejects a bare "#" with nothing after it.
// This is more permissive than the teacher's util.go, which instead
// restricts channel names to an alphanumeric-plus-punctuation charset; we
// follow the spec's literal rule rather than the teacher's stricter one.
func isValidChannelName(name string) bool {
	if !strings.HasPrefix(name, "#") {
		return false
	}
	if len(name) < 2 {
		return false
	}
	return !strings.ContainsAny(name, " ,\x07")
}
