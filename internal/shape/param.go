package shape

import (
	"strings"

	"github.com/jamboree/vklitegen/internal/catalog"
	"github.com/jamboree/vklitegen/internal/regview"
)

// ParamInfo is one command parameter, shaped for emission.
type ParamInfo struct {
	Name     string
	Type     string
	Cast     string // non-empty: std::bit_cast<Cast>(...) wraps the argument
	AddPtr   bool   // by-reference parameter: pass &name at the call site
	IsArr    bool
	Optional bool
	Tag      VarTag
}

func renamePtrName(name string) string {
	if strings.HasPrefix(name, "p") && len(name) > 1 {
		rest := name[1:]
		return strings.ToLower(rest[:1]) + rest[1:]
	}
	return name
}

// buildParamInfo is a direct port of VulkanGenerator.cpp's
// generateParam. outCandidate is the raw (not Vk-stripped) pointed-to
// type name when this parameter qualifies as a liftable single output
// pointer (non-optional, non-array, no len attribute); isOutCandidate
// is false otherwise — the caller resets the candidate on every
// parameter, so only the last parameter's candidate (if it qualifies)
// survives, mirroring the original's per-iteration reset.
func buildParamInfo(ctx *regview.Context, t ids, param regview.Element, cat *catalog.Catalog) (info ParamInfo, outCandidate string, isOutCandidate bool) {
	_, hasOptionalAttr := attr(ctx, param, t.optional)
	optionalVal, _ := attrStr(ctx, param, t.optional)
	v := getVarInfo(ctx, t, param)

	rawType := v.Type
	isPtr := strings.HasSuffix(v.TypeSuffix, "*")
	addCast := false
	castType := rawType
	if stripped, ok := strings.CutPrefix(rawType, "Vk"); ok {
		castType = stripped
		addCast = !cat.IsRaw(stripped)
	}

	info.Name = v.Name
	info.IsArr = v.Array != ""
	var typeBuilder strings.Builder
	if info.IsArr {
		typeBuilder.WriteString("std::span<")
	}
	typeBuilder.WriteString(v.TypePrefix)
	typeBuilder.WriteString(castType)
	info.Optional = hasOptionalAttr && optionalVal == "true"

	_, hasLen := attr(ctx, param, t.length)
	typeSuffix := v.TypeSuffix
	if isPtr && !hasLen {
		if !hasOptionalAttr && strings.HasPrefix(v.TypePrefix, "const") && rawType != "void" {
			info.Name = renamePtrName(info.Name)
			info.AddPtr = true
			typeBuilder.WriteString("&")
			typeSuffix = ""
		}
		if !info.Optional && !info.IsArr {
			outCandidate = rawType
			isOutCandidate = true
		}
	}
	typeBuilder.WriteString(typeSuffix)
	if info.IsArr {
		typeBuilder.WriteString(", ")
		typeBuilder.WriteString(v.Array)
		typeBuilder.WriteString(">")
	}
	info.Type = typeBuilder.String()

	if addCast {
		var castBuilder strings.Builder
		castBuilder.WriteString(v.TypePrefix)
		castBuilder.WriteString(rawType)
		castBuilder.WriteString(typeSuffix)
		if info.AddPtr || info.IsArr {
			castBuilder.WriteString("*")
		}
		info.Cast = castBuilder.String()
	}
	return info, outCandidate, isOutCandidate
}
