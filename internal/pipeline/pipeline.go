// Package pipeline wires the four stages spec.md §4.8 describes for the
// build step — mmap the registry blob, parse it into a regview.Context,
// build and topologically sort the catalog, emit the header — into the
// single Run entry point cmd/vklitegen calls. Grounded on
// VulkanGenerator.cpp's main (load → newContext → generate) and
// nsf-vulkangen/generator.go's main (read input, write output), with
// error wrapping and diagnostic logging in the hivekit/cmd style.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jamboree/vklitegen/internal/catalog"
	"github.com/jamboree/vklitegen/internal/emit"
	"github.com/jamboree/vklitegen/internal/mmfile"
	"github.com/jamboree/vklitegen/internal/regview"
)

// Run reads the registry blob at inputPath, builds and sorts the
// catalog, and writes the generated vklite header to outputPath. log
// receives per-stage diagnostics (dependency cycles, malformed enum
// names); nil is valid and discards them.
func Run(inputPath, outputPath string, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	data, cleanup, err := mmfile.Map(inputPath)
	if err != nil {
		return fmt.Errorf("pipeline: mapping %s: %w", inputPath, err)
	}
	defer func() {
		if cerr := cleanup(); cerr != nil {
			log.Warn("unmapping input failed", "path", inputPath, "error", cerr)
		}
	}()

	ctx, err := regview.Open(data)
	if err != nil {
		return fmt.Errorf("pipeline: opening %s: %w", inputPath, err)
	}

	cat, cycle, err := catalog.BuildAndSort(ctx, log)
	if err != nil {
		return fmt.Errorf("pipeline: building catalog from %s: %w", inputPath, err)
	}
	if !cycle.Empty() {
		log.Warn("dependency cycle in registry; emission order may be unstable", "members", cycle.Members)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("pipeline: creating %s: %w", outputPath, err)
	}
	defer f.Close()

	if err := emit.Generate(f, ctx, cat, log); err != nil {
		return fmt.Errorf("pipeline: writing %s: %w", outputPath, err)
	}
	return nil
}
