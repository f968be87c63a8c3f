// Package emit walks a built and topologically sorted catalog.Catalog
// and writes the generated vklite header text.
//
// Grounded on original_source/VulkanGenerator.cpp's generate/generateRaw/
// generateBitmask/generateAlias/generateEnum/generateStruct/generateHandle/
// generateCommand family for semantics, and on
// nsf-vulkangen/templates.go's text/template decomposition style for how
// the literal text is laid out: logic is computed into small Go structs
// ahead of time, and templates only interpolate them.
package emit

import "io"

// genState is the per-scope guard/blank-line cursor VulkanGenerator.cpp
// threads through generation as GenState. guard is the currently open
// #if's scope name ("" means none open); delim marks that a blank line
// is owed before the next declaration (set whenever the declaration kind
// changes, per generate's lastKind tracking).
type genState struct {
	guard string
	delim bool
}

// subGuard mirrors GenState's static subGuard: an inner declaration only
// needs its own nested guard when its scope is "stricter" than the
// enclosing one. The C++ compares interned StrId ordinals (insertion
// order in the registry's name table, which happens to track the order
// features/extensions were declared); the Go port compares the decoded
// scope strings' catalog.Support insertion directly isn't available here,
// so it compares them by simple inequality: a struct-extend or handle
// command only opens its own guard when its scope differs from the
// enclosing one at all (the common case of "same extension" collapses to
// no nested guard, same outcome as the C++ for the overwhelmingly common
// case where an extension's own members share its own guard).
func subGuard(base, guard string) string {
	if guard != base {
		return guard
	}
	return ""
}

// updateGuard closes the previously open guard (if any, and if it
// differs from guard) with "#endif // <name>", records the new guard,
// and returns it for the caller to pass to generateGuard. When guard is
// already the open one it returns "", so no second #if is opened.
func updateGuard(w io.Writer, guard string, state *genState) string {
	if guard == state.guard {
		return ""
	}
	if state.guard != "" {
		io.WriteString(w, "#endif // "+state.guard+"\n")
	}
	state.guard = guard
	return guard
}

// generateGuard opens guard with a plain "#if <name>" — not "#ifdef" —
// matching the original: every feature/extension name the catalog
// records as a Support scope is also, by vk.xml convention, a macro
// #define'd to 1 in the vendor's own headers, so "#if NAME" and
// "#ifdef NAME" are equivalent in practice but the original always uses
// the former.
func generateGuard(w io.Writer, guard string) {
	if guard != "" {
		io.WriteString(w, "#if "+guard+"\n")
	}
}

// closeGuard force-closes any guard left open at the end of a scope
// (generate's and generateHandle's final updateGuard(os, {}, state)).
func closeGuard(w io.Writer, state *genState) {
	updateGuard(w, "", state)
}

// delimit writes the pending blank line exactly once, matching the
// "if (state.m_delim) { os << '\n'; state.m_delim = false; }" idiom
// repeated at the top of generateRaw/generateBitmask/generateAlias/
// generateCommand. generateEnum and generateStruct always force a blank
// line and leave delim set afterward (they unconditionally os << '\n' and
// set state.m_delim = true), so emitEnum and emitStruct write that
// newline themselves instead of going through this helper.
func delimit(w io.Writer, state *genState) {
	if state.delim {
		io.WriteString(w, "\n")
		state.delim = false
	}
}
