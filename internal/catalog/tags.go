package catalog

import "github.com/jamboree/vklitegen/internal/regview"

// noSuchStrID is returned in place of a unique-string id that never
// appears in the document at all; using it as an attribute-name id in a
// comparison is guaranteed to never match, since every real StrID is a
// small offset into the strings segment.
const noSuchStrID = regview.StrID(0xffffffff)

func unique(ctx *regview.Context, s string) regview.StrID {
	if id, ok := ctx.GetUnique(s); ok {
		return id
	}
	return noSuchStrID
}

// tagIDs caches the attribute/tag name ids used throughout the builder,
// resolved once against the document's unique-string index (grounded on
// original_source/VulkanGenerator.cpp's Builder, which resolves the same
// set of names as const StrId fields at construction).
type tagIDs struct {
	tags, tag             regview.StrID
	enums, enum           regview.StrID
	types, typ            regview.StrID
	category, name, alias regview.StrID
	member, comment       regview.StrID
	bitvalues, requires   regview.StrID
	require, deprecated   regview.StrID
	deprecatedby, bitwidth regview.StrID
	returnedonly          regview.StrID
	extensions, extension regview.StrID
	number, extends       regview.StrID
	feature, structextends regview.StrID
	depends, values       regview.StrID
	optional, parent      regview.StrID
	commands, command     regview.StrID
	proto, param          regview.StrID
	length, api           regview.StrID
	apitype, supported    regview.StrID
	platform, protect     regview.StrID
	remove, objtypeenum   regview.StrID
	provisional           regview.StrID
}

func newTagIDs(ctx *regview.Context) tagIDs {
	u := func(s string) regview.StrID { return unique(ctx, s) }
	return tagIDs{
		tags: u("tags"), tag: u("tag"),
		enums: u("enums"), enum: u("enum"),
		types: u("types"), typ: u("type"),
		category: u("category"), name: u("name"), alias: u("alias"),
		member: u("member"), comment: u("comment"),
		bitvalues: u("bitvalues"), requires: u("requires"),
		require: u("require"), deprecated: u("deprecated"),
		deprecatedby: u("deprecatedby"), bitwidth: u("bitwidth"),
		returnedonly: u("returnedonly"),
		extensions:   u("extensions"), extension: u("extension"),
		number: u("number"), extends: u("extends"),
		feature: u("feature"), structextends: u("structextends"),
		depends: u("depends"), values: u("values"),
		optional: u("optional"), parent: u("parent"),
		commands: u("commands"), command: u("command"),
		proto: u("proto"), param: u("param"),
		length: u("len"), api: u("api"),
		apitype: u("apitype"), supported: u("supported"),
		platform: u("platform"), protect: u("protect"),
		remove: u("remove"), objtypeenum: u("objtypeenum"),
		provisional: u("provisional"),
	}
}
