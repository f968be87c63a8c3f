package catalog

import "github.com/jamboree/vklitegen/internal/regview"

// processCommandsBlock records every <command> child, in document order
// (spec.md §3: "HandleCommands order follows document order of
// commands; alias commands append to the same list as their target.").
func (b *Builder) processCommandsBlock(elem regview.Element) {
	b.forEachChild(elem, b.ids.command, func(c childElem) {
		b.processCommand(c)
	})
}

// processCommand implements spec.md §4.3's command processing: a
// non-alias command is classified by its first parameter's type (handle
// vs. global), recorded for later alias resolution, and — for handle
// commands — every other parameter naming a *different* known handle
// adds a handle-to-handle ordering edge. An alias command is resolved
// against the proto-name map built by earlier non-alias commands and
// appended to whichever list its target belongs to.
//
// Where original_source/VulkanGenerator.cpp's alias path assumes the
// target's first-param type is always a registered handle once it is
// non-empty (an unchecked map access), this checks explicitly and falls
// back to GlobalCommands — the only well-defined outcome when a command's
// first parameter names something other than a handle.
func (b *Builder) processCommand(c childElem) {
	elem := c.elem
	if !b.checkAPI(elem) {
		return
	}
	if aliasAttr, ok := b.attrStr(elem, b.ids.alias); ok {
		name, ok := b.attrStr(elem, b.ids.name)
		if !ok {
			return
		}
		name, ok = stripPrefix(name, "vk")
		if !ok {
			return
		}
		target, ok := b.commandProtos[aliasAttr]
		if !ok {
			return
		}
		info := CommandInfo{Name: name, Elem: target.elem}
		b.appendCommand(target.firstParamType, info)
		return
	}

	children := elemChildrenElements(b.ctx, elem)
	if len(children) < 2 {
		return
	}
	proto := children[0]
	if proto.elem.Tag != b.ids.proto {
		return
	}
	firstParam := children[1]
	if firstParam.elem.Tag != b.ids.param {
		return
	}
	rawName, ok := b.childText(proto.elem, b.ids.name)
	if !ok {
		return
	}
	name, ok := stripPrefix(rawName, "vk")
	if !ok {
		return
	}
	firstParamType, _ := b.childText(firstParam.elem, b.ids.typ)
	b.commandProtos[rawName] = commandProtoEntry{firstParamType: firstParamType, elem: c.id}

	info := CommandInfo{Name: name, Elem: c.id}
	objType := b.appendCommand(firstParamType, info)
	if objType == "" {
		return
	}
	for _, p := range children[2:] {
		if p.elem.Tag != b.ids.param {
			continue
		}
		typeTxt, ok := b.childText(p.elem, b.ids.typ)
		if !ok {
			continue
		}
		otherType, ok := stripPrefix(typeTxt, "Vk")
		if !ok || otherType == objType || !b.cat.IsHandle(otherType) {
			continue
		}
		b.deps().Insert(otherType, objType)
	}
}

// appendCommand routes info to the handle named by rawFirstParamType (if
// it strips a "Vk" prefix and names a known handle) or to GlobalCommands
// otherwise. It returns the handle name info was routed to, or "" for a
// global command.
func (b *Builder) appendCommand(rawFirstParamType string, info CommandInfo) string {
	if rawFirstParamType != "" {
		if objType, ok := stripPrefix(rawFirstParamType, "Vk"); ok {
			if _, known := b.cat.HandleCommands[objType]; known {
				b.cat.HandleCommands[objType] = append(b.cat.HandleCommands[objType], info)
				return objType
			}
		}
	}
	b.cat.GlobalCommands = append(b.cat.GlobalCommands, info)
	return ""
}

// elemChildrenElements returns only the element-kind children of e, each
// paired with its ElemID, in document order.
func elemChildrenElements(ctx *regview.Context, e regview.Element) []childElem {
	var out []childElem
	for _, n := range ctx.Children(e) {
		if n.Kind() != regview.NodeElement {
			continue
		}
		id := n.AsElement()
		out = append(out, childElem{id: id, elem: ctx.GetElement(id)})
	}
	return out
}
