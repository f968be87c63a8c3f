package emit

import (
	"strings"

	"github.com/jamboree/vklitegen/internal/names"
)

// EnumPrefix computes the "VK_..._" prefix every value of enum stem
// must carry before it can be converted into a wrapped identifier —
// grounded on generateEnum's prefix construction (camelToCapital(stem)
// plus an optional digit-run segment). Result itself is the one
// exception: its values (VK_SUCCESS, VK_NOT_READY, ...) carry no
// stem-derived segment, only the bare "VK_" prefix.
func EnumPrefix(stem, digits string, isResult bool) string {
	if isResult {
		return "VK_"
	}
	prefix := "VK_" + names.CamelToUpperSnake(stem)
	if digits != "" {
		prefix += "_" + digits
	}
	return prefix + "_"
}

// EnumValueName converts a raw <enum> "name" attribute value (e.g.
// "VK_CULL_MODE_FRONT_BIT") into its wrapped identifier (e.g.
// "eFrontBit"), given the owning enum's computed prefix, its own vendor
// suffix (so a value whose vendor tag matches the enum's own isn't
// redundantly re-suffixed), and whether the enum is bitmask-shaped (in
// which case a trailing "_BIT" becomes the leading "b" instead of "e").
// ok is false when rawName doesn't carry the expected prefix at all —
// generateEnum silently skips such values.
//
// Grounded on generateEnum's per-value lambda: prefix-strip, vendor-tag
// strip via getExt, "_BIT"-strip-and-b-prefix for bitmasks, then
// UpperSnakeToLowerCamel, re-appending the vendor tag only if it differs
// from the enum's own.
func EnumValueName(vt names.VendorTags, prefix, enumExt string, isBitmask bool, rawName string) (string, bool) {
	sub, ok := strings.CutPrefix(rawName, prefix)
	if !ok {
		return "", false
	}
	ext := vt.VendorSuffix(sub)
	if ext != "" {
		sub = strings.TrimSuffix(sub, "_"+ext)
	}
	lead := "e"
	if isBitmask {
		if trimmed, ok := strings.CutSuffix(sub, "_BIT"); ok {
			lead = "b"
			sub = trimmed
		}
	}
	eName := lead + names.UpperSnakeToLowerCamel(sub)
	if enumExt != ext {
		eName += ext
	}
	return eName, true
}

// FunctionName derives a command's wrapped method/function name from its
// vk-stripped raw name (e.g. "CreateInstance") and the owning handle's
// name (empty for a global/free function) — a direct port of
// generateFnName. Get* commands drop the "Get" and any immediately
// following occurrence of typeName; Destroy* commands drop the "Destroy"
// and collapse to the bare "destroy" when the remainder is exactly
// typeName; every other command has typeName's leading occurrence
// stripped and its first remaining letter lowercased. In all three
// cases a trailing occurrence of typeName is also stripped.
func FunctionName(typeName, name string) string {
	var head, rest string
	switch {
	case strings.HasPrefix(name, "Get"):
		head = "get"
		rest = strings.TrimPrefix(name, "Get")
		rest = strings.TrimPrefix(rest, typeName)
	case strings.HasPrefix(name, "Destroy"):
		head = "destroy"
		rest = strings.TrimPrefix(name, "Destroy")
		if rest == typeName {
			rest = ""
		}
	default:
		rest = strings.TrimPrefix(name, typeName)
		if rest == "" {
			return ""
		}
		head = strings.ToLower(rest[:1])
		rest = rest[1:]
	}
	if typeName != "" {
		rest = strings.TrimSuffix(rest, typeName)
	}
	return head + rest
}
