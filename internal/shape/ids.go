// Package shape turns the element shapes the catalog only pointed at
// (struct <member>s, command <param>s) into the emitter's view of each
// one: a reconstructed type/name/array/comment breakdown, the C++-facing
// wrapped type, cast requirements, optionality, and the object-pair and
// count+pointer collapses spec.md §4.6 describes.
//
// Grounded on original_source/VulkanGenerator.cpp's getVarInfo/
// getMemberInfo/generateParam/generateCommand (struct- and
// command-shaping is one connected algorithm there). Casts are
// represented as a single Cast string per member/param rather than the
// teacher's five-converter-kind design in converters.go — see
// DESIGN.md's "Member/parameter shaper" entry for why.
package shape

import "github.com/jamboree/vklitegen/internal/regview"

const noSuchStrID = regview.StrID(0xffffffff)

// ids caches the element/attribute name ids the shaper consults,
// resolved once per document (same idiom as internal/catalog/tags.go).
type ids struct {
	typ, name, enum, comment regview.StrID
	optional, values, length regview.StrID
	returnedonly, api        regview.StrID
	deprecated               regview.StrID
	param, proto, member     regview.StrID
}

func newIDs(ctx *regview.Context) ids {
	u := func(s string) regview.StrID {
		if id, ok := ctx.GetUnique(s); ok {
			return id
		}
		return noSuchStrID
	}
	return ids{
		typ: u("type"), name: u("name"), enum: u("enum"), comment: u("comment"),
		optional: u("optional"), values: u("values"), length: u("len"),
		returnedonly: u("returnedonly"), api: u("api"), deprecated: u("deprecated"),
		param: u("param"), proto: u("proto"), member: u("member"),
	}
}

func attr(ctx *regview.Context, e regview.Element, id regview.StrID) (regview.StrID, bool) {
	return regview.FindAttr(ctx.Attrs(e), id)
}

func attrStr(ctx *regview.Context, e regview.Element, id regview.StrID) (string, bool) {
	v, ok := attr(ctx, e, id)
	if !ok {
		return "", false
	}
	return ctx.GetString(v), true
}

// checkAPI mirrors catalog's api/deprecated filter (spec.md §4.3),
// applied here to <member>/<param> elements the same way
// VulkanGenerator.cpp's checkApi is reused for both.
func checkAPI(ctx *regview.Context, ids ids, e regview.Element) bool {
	if api, ok := attrStr(ctx, e, ids.api); ok {
		if !commaListContains(api, "vulkan") {
			return false
		}
	}
	_, deprecated := attr(ctx, e, ids.deprecated)
	return !deprecated
}

func commaListContains(list, value string) bool {
	for {
		i := indexByte(list, ',')
		if i < 0 {
			return list == value
		}
		if list[:i] == value {
			return true
		}
		list = list[i+1:]
	}
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}
