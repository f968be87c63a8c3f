package emit

import (
	"io"
	"log/slog"

	"github.com/jamboree/vklitegen/internal/catalog"
	"github.com/jamboree/vklitegen/internal/regview"
)

// Generate walks cat.TypeIDs (expected to already be topologically
// sorted — spec.md §4.8's orchestrator does this before calling here)
// and writes the vklite.hpp text to w, followed by every global
// command as a free function — a direct port of Builder::generate.
// log receives per-declaration diagnostics (malformed enum names);
// nil is valid and discards them.
func Generate(w io.Writer, ctx *regview.Context, cat *catalog.Catalog, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	t := newIDs(ctx)
	ew := &errWriter{w: w}
	w = ew

	io.WriteString(w, "#ifndef VKLITE_VULKAN_HPP\n#define VKLITE_VULKAN_HPP\n\n#include \"core.hpp\"\n\nnamespace vklite {\n")

	state := &genState{}
	lastKind := catalog.Raw
	for _, id := range cat.TypeIDs {
		if id.Kind != lastKind {
			lastKind = id.Kind
			state.delim = true
		}
		switch id.Kind {
		case catalog.Raw:
			emitRaw(w, cat.Raws[id.Index], cat, state)
		case catalog.Enum:
			emitEnum(w, ctx, t, cat.Enums[id.Index], cat, state, log)
		case catalog.Bitmask:
			emitBitmask(w, cat.Bitmasks[id.Index], cat, state)
		case catalog.Alias:
			emitAlias(w, cat.Aliases[id.Index], cat, state)
		case catalog.Struct:
			emitStruct(w, ctx, t, cat.Structs[id.Index], cat, state)
		case catalog.Handle:
			emitHandle(w, ctx, cat.Handles[id.Index], cat, state)
		}
	}

	state.delim = true
	for _, cmd := range cat.GlobalCommands {
		emitCommand(w, ctx, cmd, "", "", cat, state)
	}
	closeGuard(w, state)

	io.WriteString(w, "}\n\n#endif // VKLITE_VULKAN_HPP\n")
	return ew.err
}

// errWriter latches the first write error so the per-declaration emit
// functions (none of which return an error themselves, matching the
// teacher's templates.go where execution errors are likewise only
// checked at the top-level Execute call) don't need individual checks —
// every subsequent Write becomes a no-op once one fails.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
