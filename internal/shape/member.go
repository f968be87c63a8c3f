package shape

import (
	"strings"

	"github.com/jamboree/vklitegen/internal/catalog"
	"github.com/jamboree/vklitegen/internal/regview"
)

// VarTag marks a member or parameter's role in an object-pair collapse
// (spec.md §4.6: "Two consecutive members {objectType, objectHandle} ⇒
// collapse into a single Object master with two slave slots").
type VarTag uint8

const (
	Normal VarTag = iota
	Slave
	Master
)

// MemberInfo is one struct member, shaped for emission.
type MemberInfo struct {
	VarInfo

	NewType    string // the wrapped C++ type emitted in getters/setters
	SlaveName  string // ".type" / ".handle" — which slot of a collapsed Object this is
	ValuesAttr string // non-empty: constant the default constructor pre-writes; member then hidden
	Optional   bool
	AddCast    bool // true: the boundary needs a std::bit_cast<Vk...>(...)
	IsPtr      bool
	IsArr      bool
	IsStr      bool // fixed char array ⇒ string_view
	IsStruct   bool // bare known-struct type by value ⇒ const-ref parameter
	Tag        VarTag
	SlotCount  int // valid when Tag == Master: how many preceding entries it addresses
}

// membersToSkip are pNext-chain and fixed-matrix/array members the
// emitter never exposes as plain get/set pairs (pNext is handled by the
// attach machinery; the others are raw arrays with no useful wrapper).
var membersToSkip = map[string]bool{
	"pNext": true, "matrix": true, "ppGeometries": true, "ppUsageCounts": true,
}

// buildMemberInfo is a direct port of VulkanGenerator.cpp's
// getMemberInfo: reconstruct the VarInfo, then derive every shaping
// flag and the getter/setter-facing NewType string.
func buildMemberInfo(ctx *regview.Context, t ids, elem regview.Element, cat *catalog.Catalog) MemberInfo {
	v := getVarInfo(ctx, t, elem)
	info := MemberInfo{VarInfo: v}
	_, info.Optional = attr(ctx, elem, t.optional)
	info.ValuesAttr, _ = attrStr(ctx, elem, t.values)

	if stripped, ok := strings.CutPrefix(info.Type, "Vk"); ok {
		info.Type = stripped
		info.AddCast = !cat.IsRaw(stripped)
	}
	info.IsPtr = strings.HasSuffix(info.TypeSuffix, "*")
	info.IsArr = info.Array != ""

	var b strings.Builder
	if info.IsArr && info.Type == "char" {
		info.IsStr = true
		info.NewType = "std::string_view"
		return info
	}
	if info.IsArr {
		b.WriteString("std::span<const ")
	} else {
		info.IsStruct = info.TypePrefix == "" && info.TypeSuffix == "" && cat.IsStruct(info.Type)
	}
	if info.IsStruct {
		b.WriteString("const ")
		b.WriteString(info.Type)
		b.WriteString("&")
	} else {
		b.WriteString(info.TypePrefix)
		b.WriteString(info.Type)
		b.WriteString(info.TypeSuffix)
	}
	if info.IsArr {
		b.WriteString(", ")
		b.WriteString(info.Array)
		b.WriteString(">")
	}
	info.NewType = b.String()
	return info
}

// isAnyOptional reports whether any of the comma-separated names in
// list names a member already in members that is itself Optional
// (spec.md §4.6: "len referencing other-parameter names ⇒ if any
// referenced name is marked optional, mark this parameter optional
// too").
func isAnyOptional(members []MemberInfo, list string) bool {
	for {
		i := indexByte(list, ',')
		item := list
		rest := ""
		found := i >= 0
		if found {
			item = list[:i]
			rest = list[i+1:]
		}
		for _, m := range members {
			if m.Name == item && m.Optional {
				return true
			}
		}
		if !found {
			return false
		}
		list = rest
	}
}

// StructMembers walks elem's <member> children into shaped MemberInfo
// entries, applying the returnedonly count+pointer collapse or the
// Bool32/len-optional defaulting, and the objectType/objectHandle pair
// collapse — grounded on VulkanGenerator.cpp's generateStruct member
// loop (lines ~826-879).
func StructMembers(ctx *regview.Context, elem regview.Element, cat *catalog.Catalog, returnedOnly bool) []MemberInfo {
	t := newIDs(ctx)
	var members []MemberInfo
	for _, n := range ctx.Children(elem) {
		if n.Kind() != regview.NodeElement {
			continue
		}
		child := ctx.GetElement(n.AsElement())
		if child.Tag != t.member {
			continue
		}
		if !checkAPI(ctx, t, child) {
			continue
		}
		name, ok := ctx.ChildElementText(child, t.name)
		if !ok {
			continue
		}
		nameStr := ctx.GetString(name)
		if membersToSkip[nameStr] {
			continue
		}
		info := buildMemberInfo(ctx, t, child, cat)

		if returnedOnly {
			if info.IsArr && len(members) > 0 && strings.HasSuffix(info.Name, "s") {
				prev := members[len(members)-1]
				if strings.HasSuffix(prev.Name, "Count") &&
					info.Name[:len(info.Name)-1] == prev.Name[:len(prev.Name)-5] {
					info.NewType = strings.TrimSuffix(info.NewType, ", "+info.Array+">") + ">"
					info.Array = prev.Name
					members = members[:len(members)-1]
				}
			}
		} else if !info.Optional {
			switch {
			case info.NewType == "Bool32":
				info.Optional = true
			default:
				if lenAttr, ok := attrStr(ctx, child, t.length); ok {
					info.Optional = isAnyOptional(members, lenAttr)
				}
			}
		}

		if len(members) > 0 && info.Name == "objectHandle" && info.NewType == "uint64_t" {
			prev := &members[len(members)-1]
			if prev.Name == "objectType" && prev.NewType == "ObjectType" {
				prev.SlaveName = ".type"
				prev.Tag = Slave
				info.SlaveName = ".handle"
				info.Tag = Slave
				members = append(members, info)
				members = append(members, MemberInfo{
					VarInfo:   VarInfo{Name: "object"},
					NewType:   "Object",
					Tag:       Master,
					SlotCount: 2,
				})
				continue
			}
		}
		members = append(members, info)
	}
	return members
}

// VisibleMembers filters out members hidden from get/set emission:
// those carrying a ValuesAttr (pre-written by the default constructor,
// spec.md §4.6) and Slave-tagged members (they surface only through
// their Master's composite accessor) — grounded on generateStruct's
// std::erase_if over m_valuesAttr and generateMember's early Slave
// return.
func VisibleMembers(members []MemberInfo) []MemberInfo {
	var out []MemberInfo
	for _, m := range members {
		if m.ValuesAttr != "" || m.Tag == Slave {
			continue
		}
		out = append(out, m)
	}
	return out
}

// RequiredThenOptional splits VisibleMembers(members) into the two
// emission passes generateStruct uses: required members first, then
// optional members — grounded on generateStruct's two-pass
// std::erase_if (non-optional members drain first, then the optional
// remainder).
func RequiredThenOptional(members []MemberInfo) (required, optional []MemberInfo) {
	for _, m := range VisibleMembers(members) {
		if m.Optional {
			optional = append(optional, m)
		} else {
			required = append(required, m)
		}
	}
	return required, optional
}

// MasterSlots returns the SlotCount entries in the full (unfiltered)
// members slice immediately preceding the Master-tagged entry at idx —
// the bounds-checked Go equivalent of generateMember's `&info -
// slotCount` back-look into the preceding slave slots.
func MasterSlots(members []MemberInfo, idx int) []MemberInfo {
	m := members[idx]
	start := idx - m.SlotCount
	if start < 0 {
		start = 0
	}
	return members[start:idx]
}

