package catalog

import (
	"io"
	"log/slog"
	"strings"

	"github.com/jamboree/vklitegen/internal/names"
	"github.com/jamboree/vklitegen/internal/regview"
)

// Builder walks a registry document once and produces a Catalog. It is
// grounded end to end on original_source/VulkanGenerator.cpp's Builder
// struct: one pass over the root element's children, dispatching on tag,
// classifying every <types>/<type> declaration by its category attribute,
// and accumulating the feature/extension scoping and command-to-handle
// maps as it goes.
type Builder struct {
	ctx  *regview.Context
	log  *slog.Logger
	ids  tagIDs
	dep  *Deps
	cat  Catalog

	vendorTags []string

	// scope processing scratch (spec.md §4.3 "Scope processing")
	scopes           map[string]struct{}
	internalFeatures map[string]regview.ElemID

	// command alias resolution scratch: proto name -> (first-param
	// type name, element). Populated as non-alias <command>s are
	// processed; consulted when an alias <command> is processed.
	commandProtos map[string]commandProtoEntry
}

type commandProtoEntry struct {
	firstParamType string // Vk-stripped; "" if the command has no typed first param
	elem           regview.ElemID
}

// NewBuilder constructs a Builder over ctx. log receives diagnostics for
// malformed names and dropped references (spec.md §7); nil is valid and
// discards them.
func NewBuilder(ctx *regview.Context, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	b := &Builder{
		ctx:              ctx,
		log:              log,
		ids:              newTagIDs(ctx),
		dep:              NewDeps(),
		scopes:           make(map[string]struct{}),
		internalFeatures: make(map[string]regview.ElemID),
		commandProtos:    make(map[string]commandProtoEntry),
	}
	b.cat.Support = make(map[string]string)
	b.cat.StructExtends = make(map[string][]StructExtendEntry)
	b.cat.EnumExtends = make(map[string][]EnumExtendEntry)
	b.cat.HandleCommands = make(map[string][]CommandInfo)
	b.cat.byName = make(map[string]TypeID)
	b.cat.rawNames = make(map[string]struct{})
	b.cat.structNames = make(map[string]struct{})
	b.cat.enumOrFlagNames = make(map[string]struct{})
	return b
}

func (b *Builder) deps() *Deps { return b.dep }

// Process walks root's children in document order and returns the
// populated Catalog. It does not run the topological sort: call
// TopologicalSort(cat.TypeIDs, cat.Name, b.Deps()) separately.
func (b *Builder) Process(root regview.Element) *Catalog {
	for _, node := range b.ctx.Children(root) {
		if node.Kind() != regview.NodeElement {
			continue
		}
		id := node.AsElement()
		elem := b.ctx.GetElement(id)
		switch elem.Tag {
		case b.ids.types:
			b.processTypesBlock(elem)
		case b.ids.enums:
			b.processEnumsBlock(elem, id)
		case b.ids.tags:
			b.processTagsBlock(elem)
		case b.ids.feature:
			b.processFeatureTopLevel(elem, id)
		case b.ids.extensions:
			b.processExtensionsBlock(elem)
		case b.ids.commands:
			b.processCommandsBlock(elem)
		}
	}
	b.cat.VendorTags = names.NewVendorTags(b.vendorTags)
	return &b.cat
}

// Deps returns the dependency oracle accumulated during Process.
func (b *Builder) Deps() *Deps { return b.dep }

// --- helpers shared across all process* files in this package ---

func (b *Builder) str(id regview.StrID) string { return b.ctx.GetString(id) }

func (b *Builder) attr(e regview.Element, nameID regview.StrID) (regview.StrID, bool) {
	return regview.FindAttr(b.ctx.Attrs(e), nameID)
}

func (b *Builder) attrStr(e regview.Element, nameID regview.StrID) (string, bool) {
	v, ok := b.attr(e, nameID)
	if !ok {
		return "", false
	}
	return b.str(v), true
}

func (b *Builder) childText(e regview.Element, tagID regview.StrID) (string, bool) {
	id, ok := b.ctx.ChildElementText(e, tagID)
	if !ok {
		return "", false
	}
	return b.str(id), true
}

func stripPrefix(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return "", false
	}
	return strings.TrimPrefix(s, prefix), true
}

// childElem is one element-kind child, carrying both its id (for storing
// on catalog entries) and its decoded Element (for reading attrs/text).
type childElem struct {
	id   regview.ElemID
	elem regview.Element
}

// forEachChild calls fn for every child of e tagged tagID, in order.
func (b *Builder) forEachChild(e regview.Element, tagID regview.StrID, fn func(childElem)) {
	for _, n := range b.ctx.Children(e) {
		if n.Kind() != regview.NodeElement {
			continue
		}
		id := n.AsElement()
		child := b.ctx.GetElement(id)
		if child.Tag == tagID {
			fn(childElem{id: id, elem: child})
		}
	}
}

// forEachElementChild calls fn for every element-kind child of e,
// regardless of tag.
func (b *Builder) forEachElementChild(e regview.Element, fn func(childElem)) {
	for _, n := range b.ctx.Children(e) {
		if n.Kind() != regview.NodeElement {
			continue
		}
		id := n.AsElement()
		fn(childElem{id: id, elem: b.ctx.GetElement(id)})
	}
}

func (b *Builder) processTagsBlock(elem regview.Element) {
	b.forEachChild(elem, b.ids.tag, func(c childElem) {
		if name, ok := b.attrStr(c.elem, b.ids.name); ok {
			b.vendorTags = append(b.vendorTags, name)
		}
	})
}

func (b *Builder) processTypesBlock(elem regview.Element) {
	b.forEachChild(elem, b.ids.typ, func(c childElem) {
		category, ok := b.attrStr(c.elem, b.ids.category)
		if !ok {
			return
		}
		switch category {
		case "struct":
			b.processStructType(c)
		case "union":
			b.processUnionType(c)
		case "basetype":
			b.processBaseType(c)
		case "handle":
			b.processHandleType(c)
		case "enum":
			b.processEnumType(c)
		case "bitmask":
			b.processBitmaskType(c)
		}
	})
}

// processEnumsBlock registers the Enum entry for a top-level <enums
// name="VkFoo" ...> block — the full value-bearing declaration, as
// opposed to the forward-declaring <type category="enum"> (see
// processEnumType).
func (b *Builder) processEnumsBlock(elem regview.Element, id regview.ElemID) {
	rawName, ok := b.attrStr(elem, b.ids.name)
	if !ok {
		return
	}
	name, ok := stripPrefix(rawName, "Vk")
	if !ok {
		return
	}
	tid := TypeID{Kind: Enum, Index: uint32(len(b.cat.Enums))}
	b.cat.Enums = append(b.cat.Enums, TypeInfo{Name: name, Elem: id})
	b.cat.TypeIDs = append(b.cat.TypeIDs, tid)
	b.cat.byName[name] = tid
}

func (b *Builder) addRaw(name string) {
	id := TypeID{Kind: Raw, Index: uint32(len(b.cat.Raws))}
	b.cat.Raws = append(b.cat.Raws, TypeInfo{Name: name})
	b.cat.TypeIDs = append(b.cat.TypeIDs, id)
	b.cat.byName[name] = id
	b.cat.rawNames[name] = struct{}{}
}

func (b *Builder) processAlias(target, name string) {
	aliasName, ok := stripPrefix(target, "Vk")
	if !ok {
		return
	}
	b.deps().Insert(aliasName, name)
	id := TypeID{Kind: Alias, Index: uint32(len(b.cat.Aliases))}
	b.cat.Aliases = append(b.cat.Aliases, AliasInfo{Name: name, Target: aliasName})
	b.cat.TypeIDs = append(b.cat.TypeIDs, id)
	b.cat.byName[name] = id
}

func (b *Builder) processStructType(c childElem) {
	elem := c.elem
	rawName, ok := b.attrStr(elem, b.ids.name)
	if !ok {
		return
	}
	name, ok := stripPrefix(rawName, "Vk")
	if !ok {
		return
	}
	if aliasAttr, ok := b.attrStr(elem, b.ids.alias); ok {
		b.processAlias(aliasAttr, name)
	} else if strings.HasPrefix(name, "Base") {
		b.addRaw(name)
	} else {
		b.forEachChild(elem, b.ids.member, func(m childElem) {
			if typeTxt, ok := b.childText(m.elem, b.ids.typ); ok {
				if memberType, ok := stripPrefix(typeTxt, "Vk"); ok && memberType != name {
					b.deps().Insert(memberType, name)
				}
			}
		})
		id := TypeID{Kind: Struct, Index: uint32(len(b.cat.Structs))}
		b.cat.Structs = append(b.cat.Structs, StructInfo{Name: name, Elem: c.id})
		b.cat.TypeIDs = append(b.cat.TypeIDs, id)
		b.cat.byName[name] = id
		b.cat.structNames[name] = struct{}{}
	}
	if structextendsAttr, ok := b.attrStr(elem, b.ids.structextends); ok {
		for _, extended := range strings.Split(structextendsAttr, ",") {
			extendedName, ok := stripPrefix(extended, "Vk")
			if !ok {
				continue
			}
			b.deps().Insert(extendedName, name)
			b.cat.StructExtends[extendedName] = append(
				b.cat.StructExtends[extendedName],
				StructExtendEntry{Elem: c.id},
			)
		}
	}
}

func (b *Builder) processUnionType(c childElem) {
	if rawName, ok := b.attrStr(c.elem, b.ids.name); ok {
		if name, ok := stripPrefix(rawName, "Vk"); ok {
			b.addRaw(name)
		}
	}
}

func (b *Builder) processBaseType(c childElem) {
	if nameTxt, ok := b.childText(c.elem, b.ids.name); ok {
		if name, ok := stripPrefix(nameTxt, "Vk"); ok {
			b.addRaw(name)
		}
	}
}

func (b *Builder) processHandleType(c childElem) {
	elem := c.elem
	if nameTxt, ok := b.childText(elem, b.ids.name); ok {
		name, ok := stripPrefix(nameTxt, "Vk")
		if !ok {
			return
		}
		parent, _ := b.attrStr(elem, b.ids.parent)
		if parent != "" {
			parent, _ = stripPrefix(parent, "Vk")
		}
		objType, _ := b.attrStr(elem, b.ids.objtypeenum)
		if objType != "" {
			b.deps().Insert("ObjectType", name)
		}
		if _, ok := b.cat.HandleCommands[name]; !ok {
			b.cat.HandleCommands[name] = nil
		}
		id := TypeID{Kind: Handle, Index: uint32(len(b.cat.Handles))}
		b.cat.Handles = append(b.cat.Handles, HandleInfo{
			Name: name, Elem: c.id, Parent: parent, ObjectTypeEnum: objType,
		})
		b.cat.TypeIDs = append(b.cat.TypeIDs, id)
		b.cat.byName[name] = id
		return
	}
	rawName, ok := b.attrStr(elem, b.ids.name)
	if !ok {
		return
	}
	name, ok := stripPrefix(rawName, "Vk")
	if !ok {
		return
	}
	if aliasAttr, ok := b.attrStr(elem, b.ids.alias); ok {
		b.processAlias(aliasAttr, name)
	}
}

func (b *Builder) processEnumType(c childElem) {
	rawName, ok := b.attrStr(c.elem, b.ids.name)
	if !ok {
		return
	}
	name, ok := stripPrefix(rawName, "Vk")
	if !ok {
		return
	}
	b.cat.enumOrFlagNames[name] = struct{}{}
	if aliasAttr, ok := b.attrStr(c.elem, b.ids.alias); ok {
		b.processAlias(aliasAttr, name)
	}
}

func (b *Builder) processBitmaskType(c childElem) {
	elem := c.elem
	if !b.checkAPI(elem) {
		return
	}
	rawName, hasName := b.attrStr(elem, b.ids.name)
	if aliasAttr, ok := b.attrStr(elem, b.ids.alias); ok {
		if hasName {
			if name, ok := stripPrefix(rawName, "Vk"); ok {
				b.cat.enumOrFlagNames[name] = struct{}{}
				b.processAlias(aliasAttr, name)
			}
		}
		return
	}
	enumTypeAttr, ok := b.attrStr(elem, b.ids.bitvalues)
	if !ok {
		enumTypeAttr, _ = b.attrStr(elem, b.ids.requires)
	}
	nameTxt, ok := b.childText(elem, b.ids.name)
	if !ok {
		return
	}
	name, ok := stripPrefix(nameTxt, "Vk")
	if !ok {
		return
	}
	typeTxt, ok := b.childText(elem, b.ids.typ)
	if !ok {
		return
	}
	underlying, ok := stripPrefix(typeTxt, "Vk")
	if !ok {
		return
	}
	b.cat.enumOrFlagNames[name] = struct{}{}
	info := BitmaskInfo{Name: name, Underlying: underlying}
	if enumTypeAttr != "" {
		if enumType, ok := stripPrefix(enumTypeAttr, "Vk"); ok {
			info.Enum = enumType
			b.deps().Insert(enumType, name)
		}
	}
	id := TypeID{Kind: Bitmask, Index: uint32(len(b.cat.Bitmasks))}
	b.cat.Bitmasks = append(b.cat.Bitmasks, info)
	b.cat.TypeIDs = append(b.cat.TypeIDs, id)
	b.cat.byName[name] = id
}
