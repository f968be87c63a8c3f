package emit

import "github.com/jamboree/vklitegen/internal/regview"

// ids caches the element/attribute name ids this package consults,
// resolved once per document — the same idiom as internal/catalog's
// tagIDs and internal/shape's ids.
type ids struct {
	name, typ, comment, enumTag regview.StrID
	deprecated, structextends   regview.StrID
	returnedonly, alias         regview.StrID
	bitwidth                    regview.StrID
}

const noSuchStrID = regview.StrID(0xffffffff)

func newIDs(ctx *regview.Context) ids {
	u := func(s string) regview.StrID {
		if id, ok := ctx.GetUnique(s); ok {
			return id
		}
		return noSuchStrID
	}
	return ids{
		name: u("name"), typ: u("type"), comment: u("comment"), enumTag: u("enum"),
		deprecated: u("deprecated"), structextends: u("structextends"),
		returnedonly: u("returnedonly"), alias: u("alias"),
		bitwidth: u("bitwidth"),
	}
}

func attrStr(ctx *regview.Context, e regview.Element, id regview.StrID) (string, bool) {
	v, ok := regview.FindAttr(ctx.Attrs(e), id)
	if !ok {
		return "", false
	}
	return ctx.GetString(v), true
}

func hasAttr(ctx *regview.Context, e regview.Element, id regview.StrID) bool {
	_, ok := regview.FindAttr(ctx.Attrs(e), id)
	return ok
}
