package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/jamboree/vklitegen/internal/catalog"
	"github.com/jamboree/vklitegen/internal/regview"
	"github.com/jamboree/vklitegen/internal/shape"
)

// accessorName derives the get/set suffix from a member or parameter
// name — a direct port of generateMemberName: a pointer-shaped name
// drops its leading run of 'p' characters verbatim (so "pQueueFamilyIndices"
// becomes "QueueFamilyIndices"), otherwise the bare name's first letter
// is capitalized.
func accessorName(name string, isPtr bool) string {
	if isPtr {
		i := 0
		for i < len(name) && name[i] == 'p' {
			i++
		}
		if i != 0 {
			return name[i:]
		}
	}
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// writeMemberInit ports generateMemberInit: wraps name(+subName) in a
// std::bit_cast<...> back to the raw Vk type unless the member is
// struct-by-reference (which never casts on write; a reference to the
// wrapped type already converts implicitly).
func writeMemberInit(w io.Writer, m shape.MemberInfo, name, subName string) {
	addCast := m.AddCast && !m.IsStruct
	if addCast {
		fmt.Fprintf(w, "std::bit_cast<%sVk%s%s>(", m.TypePrefix, m.Type, m.TypeSuffix)
	}
	io.WriteString(w, name)
	io.WriteString(w, subName)
	if addCast {
		io.WriteString(w, ")")
	}
}

// writeMemberSetSlot ports generateMemberSetSlot.
func writeMemberSetSlot(w io.Writer, m shape.MemberInfo) {
	if m.IsArr {
		if m.IsStr {
			fmt.Fprintf(w, "const auto len = std::max<std::size_t>(%s - 1, value.size()); ", m.Array)
		}
		fmt.Fprintf(w, "std::memcpy(&this->%s, value.data(), ", m.Name)
		if m.IsStr {
			fmt.Fprintf(w, "len); this->%s[len] = '\\0'", m.Name)
		} else {
			io.WriteString(w, "value.size_bytes())")
		}
		return
	}
	fmt.Fprintf(w, "this->%s = ", m.Name)
	writeMemberInit(w, m, "value", m.SlaveName)
}

// writeMemberGetSlot ports generateMemberGetSlot.
func writeMemberGetSlot(w io.Writer, m shape.MemberInfo) {
	if m.IsArr {
		if m.AddCast {
			fmt.Fprintf(w, "%s(std::bit_cast<const %s%s%s*>(&this->%s), %s)",
				m.NewType, m.TypePrefix, m.Type, m.TypeSuffix, m.Name, m.Array)
		} else {
			fmt.Fprintf(w, "this->%s", m.Name)
		}
		return
	}
	if m.AddCast {
		if m.IsStruct {
			fmt.Fprintf(w, "static_cast<const %s%s%s&>(", m.TypePrefix, m.Type, m.TypeSuffix)
		} else {
			fmt.Fprintf(w, "std::bit_cast<%s%s%s>(", m.TypePrefix, m.Type, m.TypeSuffix)
		}
		fmt.Fprintf(w, "this->%s)", m.Name)
		return
	}
	fmt.Fprintf(w, "this->%s", m.Name)
}

// renderMember ports generateMember: the get/set pair for members[i],
// or (for the Master entry of a collapsed object pair) the composite
// get/set over its preceding Slave slots.
func renderMember(w io.Writer, members []shape.MemberInfo, i int, returnedonly bool) {
	m := members[i]
	if m.Tag == shape.Slave {
		return
	}
	if m.Comment != "" {
		fmt.Fprintf(w, "  // %s\n", m.Comment)
	}
	isComposite := m.Tag == shape.Master
	name := accessorName(m.Name, m.IsPtr)
	if !returnedonly {
		fmt.Fprintf(w, "  void set%s(%s value) { ", name, m.NewType)
		if isComposite {
			for j, slot := range shape.MasterSlots(members, i) {
				if j > 0 {
					io.WriteString(w, "; ")
				}
				writeMemberSetSlot(w, slot)
			}
		} else {
			writeMemberSetSlot(w, m)
		}
		io.WriteString(w, "; }\n")
	}
	fmt.Fprintf(w, "  %s get%s() const { return ", m.NewType, name)
	if isComposite {
		io.WriteString(w, "{")
		for j, slot := range shape.MasterSlots(members, i) {
			if j > 0 {
				io.WriteString(w, ", ")
			}
			writeMemberGetSlot(w, slot)
		}
		io.WriteString(w, "}")
	} else {
		writeMemberGetSlot(w, m)
	}
	io.WriteString(w, "; }\n")
}

// renderMembers ports generateStruct's two-pass required-then-optional
// member loop, including the blank line that separates it from the
// constructors above (written only when there's at least one member
// left to render) and the one between the required and optional runs.
func renderMembers(w io.Writer, members []shape.MemberInfo, returnedonly bool) {
	var required, optional []int
	for i, m := range members {
		if m.ValuesAttr != "" {
			continue
		}
		if m.Optional {
			optional = append(optional, i)
		} else {
			required = append(required, i)
		}
	}
	if len(required) == 0 && len(optional) == 0 {
		return
	}
	io.WriteString(w, "\n")
	for _, i := range required {
		renderMember(w, members, i, returnedonly)
	}
	if len(optional) > 0 {
		if len(required) > 0 {
			io.WriteString(w, "\n")
		}
		for _, i := range optional {
			renderMember(w, members, i, returnedonly)
		}
	}
}

// emitStruct ports generateStruct end to end: the wrapper type
// declaration, default and (when every member is required) all-required
// constructors, get/set pairs, and the pNext-chain attach machinery.
func emitStruct(w io.Writer, ctx *regview.Context, t ids, info catalog.StructInfo, cat *catalog.Catalog, state *genState) {
	guardName, ok := cat.IsSupported(info.Name)
	if !ok {
		return
	}
	elem := ctx.GetElement(info.Elem)
	returnedonly := hasAttr(ctx, elem, t.returnedonly)
	members := shape.StructMembers(ctx, elem, cat, returnedonly)

	guard := updateGuard(w, guardName, state)
	io.WriteString(w, "\n")
	state.delim = true
	generateGuard(w, guard)
	if comment, ok := attrStr(ctx, elem, t.comment); ok {
		fmt.Fprintf(w, "// %s\n", comment)
	}
	fmt.Fprintf(w, "struct %s : Vk%s {\n", info.Name, info.Name)

	fmt.Fprintf(w, "  %s() noexcept : Vk%s{", info.Name, info.Name)
	delim := false
	for _, m := range members {
		if m.ValuesAttr == "" {
			continue
		}
		if delim {
			io.WriteString(w, ", ")
		}
		delim = true
		fmt.Fprintf(w, ".%s = %s", m.Name, m.ValuesAttr)
	}
	io.WriteString(w, "} {}\n")

	allRequired := !returnedonly && len(members) > 0
	for _, m := range members {
		if m.Optional || m.ValuesAttr != "" || m.Tag == shape.Slave {
			allRequired = false
			break
		}
	}
	if allRequired {
		fmt.Fprintf(w, "  %s(", info.Name)
		delim = false
		for _, m := range members {
			if delim {
				io.WriteString(w, ", ")
			}
			delim = true
			fmt.Fprintf(w, "%s %s", m.NewType, m.Name)
		}
		fmt.Fprintf(w, ") noexcept : Vk%s{", info.Name)
		delim = false
		for _, m := range members {
			if m.IsArr || m.Tag != shape.Normal {
				continue
			}
			if delim {
				io.WriteString(w, ", ")
			}
			delim = true
			fmt.Fprintf(w, ".%s = ", m.Name)
			writeMemberInit(w, m, m.Name, "")
		}
		io.WriteString(w, "} {")
		any := false
		for _, m := range members {
			if !m.IsArr && m.Tag != shape.Master {
				continue
			}
			any = true
			fmt.Fprintf(w, " set%s(%s);", accessorName(m.Name, m.IsPtr), m.Name)
		}
		if any {
			io.WriteString(w, " ")
		}
		io.WriteString(w, "}\n")
	}

	renderMembers(w, members, returnedonly)

	extends := cat.StructExtends[info.Name]
	if len(extends) > 0 {
		io.WriteString(w, "\n")
		stateExt := &genState{}
		for _, e := range extends {
			extElem := ctx.GetElement(e.Elem)
			rawName, ok := attrStr(ctx, extElem, t.name)
			if !ok {
				continue
			}
			name, ok := strings.CutPrefix(rawName, "Vk")
			if !ok {
				continue
			}
			supportExt, ok := cat.IsSupported(name)
			if !ok {
				continue
			}
			guardExt := updateGuard(w, subGuard(guard, supportExt), stateExt)
			generateGuard(w, guardExt)
			head := ""
			if len(cat.StructExtends[name]) > 0 {
				head = "Head"
			}
			fmt.Fprintf(w, "  void attach%s(struct %s&);\n", head, name)
		}
		closeGuard(w, stateExt)
	}
	io.WriteString(w, "};\n")

	if list, ok := attrStr(ctx, elem, t.structextends); ok {
		stateExt := &genState{}
		for _, rawType := range strings.Split(list, ",") {
			typ, ok := strings.CutPrefix(rawType, "Vk")
			if !ok {
				continue
			}
			supportExt, ok := cat.IsSupported(typ)
			if !ok {
				continue
			}
			guardExt := updateGuard(w, subGuard(guard, supportExt), stateExt)
			generateGuard(w, guardExt)
			head := ""
			if len(extends) > 0 {
				head = "Head"
			}
			fmt.Fprintf(w, "inline void %s::attach%s(%s& ext) { ", typ, head, info.Name)
			if len(extends) == 0 {
				io.WriteString(w, "ext.pNext = const_cast<void*>(pNext); ")
			}
			io.WriteString(w, "pNext = &ext; }\n")
		}
		closeGuard(w, stateExt)
	}
}
