package emit

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jamboree/vklitegen/internal/catalog"
	"github.com/jamboree/vklitegen/internal/names"
	"github.com/jamboree/vklitegen/internal/regview"
)

// resultValue records one non-alias Result enumerator, collected while
// the enum body itself is emitted, for the trailing getResultText
// switch.
type resultValue struct {
	name  string
	guard string
}

// emitEnum ports generateEnum: an `enum class` over the <enums> block's
// <enum> children plus any values a feature/extension injected via
// EnumExtends, and — only for the Result enum — a getResultText(Result)
// free function switching over every non-alias value (spec.md §7's
// supplemented runtime-diagnostics feature).
func emitEnum(w io.Writer, ctx *regview.Context, t ids, info catalog.TypeInfo, cat *catalog.Catalog, state *genState, log *slog.Logger) {
	guardName, ok := cat.IsSupported(info.Name)
	if !ok {
		return
	}
	match, ok := names.MatchName(info.Name)
	if !ok {
		log.Warn("bad enum name", "name", info.Name)
		return
	}
	isResult := info.Name == "Result"
	elem := ctx.GetElement(info.Elem)
	isBitmask := false
	if v, ok := attrStr(ctx, elem, t.typ); ok {
		isBitmask = v == "bitmask"
	}
	stem := match.Stem
	if isBitmask {
		trimmed, ok := strings.CutSuffix(stem, "FlagBits")
		if !ok {
			log.Warn("bad bitmask enum name", "name", info.Name)
			return
		}
		stem = trimmed
	}
	prefix := EnumPrefix(stem, match.Digits, isResult)

	guard := updateGuard(w, guardName, state)
	io.WriteString(w, "\n")
	state.delim = true
	generateGuard(w, guard)

	var width string
	if bits, ok := attrStr(ctx, elem, t.bitwidth); ok {
		width = "uint" + bits + "_t"
	} else if isBitmask {
		width = "uint32_t"
	} else {
		width = "int32_t"
	}
	fmt.Fprintf(w, "enum class %s : %s {\n", info.Name, width)

	var results []resultValue
	writeValue := func(e regview.Element, extGuard string, st *genState) (name string, ok bool) {
		if hasAttr(ctx, e, t.deprecated) {
			return "", false
		}
		rawName, ok := attrStr(ctx, e, t.name)
		if !ok {
			return "", false
		}
		if !strings.HasPrefix(rawName, prefix) {
			return "", false
		}
		eName, ok := EnumValueName(cat.VendorTags, prefix, match.Vendor, isBitmask, rawName)
		if !ok {
			return "", false
		}
		guardEnum := updateGuard(w, extGuard, st)
		generateGuard(w, guardEnum)
		if comment, ok := attrStr(ctx, e, t.comment); ok {
			fmt.Fprintf(w, "  // %s\n", comment)
		}
		fmt.Fprintf(w, "  %s = %s,\n", eName, rawName)
		return eName, true
	}

	stateEnum := &genState{}
	for _, n := range ctx.Children(elem) {
		if n.Kind() != regview.NodeElement {
			continue
		}
		child := ctx.GetElement(n.AsElement())
		if child.Tag != t.enumTag {
			continue
		}
		eName, ok := writeValue(child, "", stateEnum)
		if !ok {
			continue
		}
		if isResult && !hasAttr(ctx, child, t.alias) {
			results = append(results, resultValue{name: eName})
		}
	}

	uniqueIds := make(map[string]struct{})
	for _, ee := range cat.EnumExtends[info.Name] {
		child := ctx.GetElement(ee.Elem)
		rawName, ok := attrStr(ctx, child, t.name)
		if !ok {
			continue
		}
		sub, ok := strings.CutPrefix(rawName, prefix)
		if !ok {
			continue
		}
		if _, dup := uniqueIds[sub]; dup {
			continue
		}
		uniqueIds[sub] = struct{}{}
		eName, ok := writeValue(child, subGuard(guardName, ee.Guard), stateEnum)
		if !ok {
			continue
		}
		if isResult && !hasAttr(ctx, child, t.alias) {
			results = append(results, resultValue{name: eName, guard: ee.Guard})
		}
	}
	closeGuard(w, stateEnum)
	io.WriteString(w, "};\n")

	if isResult {
		io.WriteString(w, "\ninline const char* getResultText(Result r) noexcept {\n  using enum Result;\n  switch (r) {\n")
		stateResult := &genState{}
		for _, r := range results {
			guardResult := updateGuard(w, r.guard, stateResult)
			generateGuard(w, guardResult)
			fmt.Fprintf(w, "  case %s: return \"%s\";\n", r.name, r.name[1:])
		}
		closeGuard(w, stateResult)
		io.WriteString(w, "  default: return \"\";\n  }\n}\n")
	}
}
