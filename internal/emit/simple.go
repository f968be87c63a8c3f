package emit

import (
	"fmt"
	"io"

	"github.com/jamboree/vklitegen/internal/catalog"
)

// emitRaw ports generateRaw: an opaque Vulkan type passed through
// unwrapped.
func emitRaw(w io.Writer, info catalog.TypeInfo, cat *catalog.Catalog, state *genState) {
	guardName, ok := cat.IsSupported(info.Name)
	if !ok {
		return
	}
	guard := updateGuard(w, guardName, state)
	delimit(w, state)
	generateGuard(w, guard)
	fmt.Fprintf(w, "using %s = Vk%s;\n", info.Name, info.Name)
}

// emitAlias ports generateAlias: a type declared identical to another
// already-wrapped type.
func emitAlias(w io.Writer, info catalog.AliasInfo, cat *catalog.Catalog, state *genState) {
	guardName, ok := cat.IsSupported(info.Name)
	if !ok {
		return
	}
	guard := updateGuard(w, guardName, state)
	delimit(w, state)
	generateGuard(w, guard)
	fmt.Fprintf(w, "using %s = %s;\n", info.Name, info.Target)
}

// emitBitmask ports generateBitmask: a flags type with no associated
// bit-value enum wraps its underlying integer directly; one with an
// enum wraps as FlagSet<Enum, Underlying> and gets a free operator| for
// combining two bare enum values into a FlagSet.
func emitBitmask(w io.Writer, info catalog.BitmaskInfo, cat *catalog.Catalog, state *genState) {
	guardName, ok := cat.IsSupported(info.Name)
	if !ok {
		return
	}
	_, enumSupported := cat.IsSupported(info.Enum)
	if info.Enum == "" || !enumSupported {
		guard := updateGuard(w, guardName, state)
		delimit(w, state)
		generateGuard(w, guard)
		fmt.Fprintf(w, "using %s = %s;\n", info.Name, info.Underlying)
		return
	}
	guard := updateGuard(w, guardName, state)
	io.WriteString(w, "\n")
	state.delim = true
	generateGuard(w, guard)
	fmt.Fprintf(w, "using %s = FlagSet<%s, %s>;\n", info.Name, info.Enum, info.Underlying)
	fmt.Fprintf(w, "constexpr %s operator|(%s a, %s b) noexcept { return %s(%s(a) | %s(b)); }\n",
		info.Name, info.Enum, info.Enum, info.Name, info.Underlying, info.Underlying)
}
