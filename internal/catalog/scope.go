package catalog

import "github.com/jamboree/vklitegen/internal/regview"

// checkAPI implements spec.md §4.3's api/deprecated filter, shared by
// <feature>, <require>, <bitmask> type declarations, and <command>: the
// element is rejected if it declares an `api` attribute that doesn't list
// "vulkan", or if it carries a `deprecated` attribute at all (regardless
// of value).
func (b *Builder) checkAPI(e regview.Element) bool {
	if api, ok := b.attrStr(e, b.ids.api); ok {
		if !commaListContains(api, "vulkan") {
			return false
		}
	}
	_, deprecated := b.attr(e, b.ids.deprecated)
	return !deprecated
}

func commaListContains(list, value string) bool {
	for {
		item, rest, found := cutComma(list)
		if item == value {
			return true
		}
		if !found {
			return false
		}
		list = rest
	}
}

func cutComma(s string) (item, rest string, found bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

// processFeatureTopLevel handles a <feature> element encountered directly
// under the registry root: it filters on api/deprecated, defers
// apitype="internal" features into b.internalFeatures until some other
// feature names them via `depends`, and otherwise processes it as a
// scope named by its `name` attribute.
func (b *Builder) processFeatureTopLevel(elem regview.Element, id regview.ElemID) {
	if !b.checkAPI(elem) {
		return
	}
	guard, ok := b.attrStr(elem, b.ids.name)
	if !ok {
		return
	}
	if apitype, ok := b.attrStr(elem, b.ids.apitype); ok && apitype == "internal" {
		b.internalFeatures[guard] = id
		return
	}
	b.processFeature(elem, guard)
}

// processFeature processes one feature scope: transitively pulling in any
// apitype="internal" feature it `depends` on (under this feature's own
// guard, per original_source/VulkanGenerator.cpp's processFeature), then
// its <require> list, then its <remove> list.
func (b *Builder) processFeature(elem regview.Element, guard string) {
	if depends, ok := b.attrStr(elem, b.ids.depends); ok {
		for _, item := range splitComma(depends) {
			if dep, ok := b.internalFeatures[item]; ok {
				delete(b.internalFeatures, item)
				depElem := b.ctx.GetElement(dep)
				b.processFeature(depElem, guard)
			}
		}
	}
	b.processRequireList(elem, guard)
	b.forEachChild(elem, b.ids.remove, func(c childElem) {
		b.processRemoveBlock(c.elem)
	})
}

// processRemoveBlock deletes every <type>/<command> named inside a
// <remove> block from Support, unconditionally (spec.md §4.3, §3
// invariants: "a later <remove> deletes the entry entirely").
func (b *Builder) processRemoveBlock(remove regview.Element) {
	b.forEachElementChild(remove, func(c childElem) {
		switch c.elem.Tag {
		case b.ids.typ:
			if name, ok := b.attrStr(c.elem, b.ids.name); ok {
				if stripped, ok := stripPrefix(name, "Vk"); ok {
					delete(b.cat.Support, stripped)
				}
			}
		case b.ids.command:
			if name, ok := b.attrStr(c.elem, b.ids.name); ok {
				if stripped, ok := stripPrefix(name, "vk"); ok {
					delete(b.cat.Support, stripped)
				}
			}
		}
	})
}

// processRequireList processes every <require> child of elem (a feature
// or an accepted extension), registering guard as an accepted scope
// first so a later sibling's `depends` can reference it.
func (b *Builder) processRequireList(elem regview.Element, guard string) {
	b.scopes[guard] = struct{}{}
	b.forEachChild(elem, b.ids.require, func(c childElem) {
		req := c.elem
		if !b.checkAPI(req) {
			return
		}
		if depends, ok := b.attrStr(req, b.ids.depends); ok {
			for _, item := range splitComma(depends) {
				if _, ok := b.scopes[item]; !ok {
					return
				}
			}
		}
		b.forEachElementChild(req, func(child childElem) {
			ce := child.elem
			switch ce.Tag {
			case b.ids.enum:
				if extends, ok := b.attrStr(ce, b.ids.extends); ok {
					if extendsName, ok := stripPrefix(extends, "Vk"); ok {
						b.cat.EnumExtends[extendsName] = append(
							b.cat.EnumExtends[extendsName],
							EnumExtendEntry{Elem: child.id, Guard: guard},
						)
					}
				}
			case b.ids.typ:
				if name, ok := b.attrStr(ce, b.ids.name); ok {
					if stripped, ok := stripPrefix(name, "Vk"); ok {
						b.setSupport(stripped, guard)
					}
				}
			case b.ids.command:
				if name, ok := b.attrStr(ce, b.ids.name); ok {
					if stripped, ok := stripPrefix(name, "vk"); ok {
						b.setSupport(stripped, guard)
					}
				}
			}
		})
	})
}

func (b *Builder) setSupport(name, guard string) {
	if _, ok := b.cat.Support[name]; !ok {
		b.cat.Support[name] = guard
	}
}

// processExtensionsBlock processes every child <extension> of an
// <extensions> block: an extension is accepted iff its `supported` list
// contains "vulkan" and it carries neither `deprecatedby` nor
// `provisional`.
func (b *Builder) processExtensionsBlock(elem regview.Element) {
	b.forEachChild(elem, b.ids.extension, func(c childElem) {
		ext := c.elem
		supported, ok := b.attrStr(ext, b.ids.supported)
		if !ok || !commaListContains(supported, "vulkan") {
			return
		}
		if _, ok := b.attr(ext, b.ids.deprecatedby); ok {
			return
		}
		if _, ok := b.attr(ext, b.ids.provisional); ok {
			return
		}
		guard, ok := b.attrStr(ext, b.ids.name)
		if !ok {
			return
		}
		b.processRequireList(ext, guard)
	})
}

func splitComma(s string) []string {
	var out []string
	for {
		item, rest, found := cutComma(s)
		out = append(out, item)
		if !found {
			return out
		}
		s = rest
	}
}
