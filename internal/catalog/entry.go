package catalog

import (
	"log/slog"

	"github.com/jamboree/vklitegen/internal/regview"
)

// BuildAndSort walks ctx's root element into a Catalog and topologically
// orders its TypeIDs in place (spec.md §4.8's builder+sort stage of the
// orchestrator). The returned Cycle is non-empty only if the dependency
// graph had one; it is diagnostic, not fatal — the Catalog's TypeIDs are
// still fully populated and ready for the emitter.
func BuildAndSort(ctx *regview.Context, log *slog.Logger) (*Catalog, Cycle, error) {
	root, ok := ctx.RootElement()
	if !ok {
		return nil, Cycle{}, ErrEmptyDocument
	}
	b := NewBuilder(ctx, log)
	cat := b.Process(root)
	cycle := TopologicalSort(cat.TypeIDs, cat.Name, b.Deps())
	return cat, cycle, nil
}
