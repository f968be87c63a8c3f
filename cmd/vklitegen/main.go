// Command vklitegen reads the binary registry blob stage A produces
// and writes vklite's generated Vulkan C++ binding header — the stage
// B build step spec.md §1 scopes this repository to.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jamboree/vklitegen/internal/pipeline"
	"github.com/spf13/cobra"
)

var verbose bool

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vklitegen <input.bin> <output.hpp>",
		Short: "Generate the vklite Vulkan C++ binding header from a registry blob",
		Long: `vklitegen reads the binary registry blob produced by the stage-A
XML-to-binary converter and writes a type-safe C++ binding header in
vklite's style: enum classes, RAII-free struct wrappers, and thin
handle methods over the raw vkXxx entry points.`,
		Version:       "0.1.0",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelInfo
			}
			log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			return pipeline.Run(args[0], args[1], log)
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at info level instead of warn (dependency-cycle and malformed-name warnings are logged either way)")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
