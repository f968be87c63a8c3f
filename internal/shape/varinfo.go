package shape

import (
	"strings"

	"github.com/jamboree/vklitegen/internal/regview"
)

// VarInfo is the raw decomposition of a <member> or <param> element's
// ordered children: the bare text preceding the <type> child, the
// <type> child's own text, the trimmed text between <type> and the next
// marker, the <name> child's text, and either a fixed-array bound (a
// "[N]" text suffix, or an <enum> child naming a constant) or an inline
// <comment>.
type VarInfo struct {
	TypePrefix string
	Type       string
	TypeSuffix string
	Name       string
	Array      string
	Comment    string
}

// getVarInfo is a direct port of VulkanGenerator.cpp's getVarInfo: a
// single pass over elem's children, tracking a small state machine over
// which marker (none yet / just saw <type> / just saw <name> / done)
// the next text node should be attributed to.
func getVarInfo(ctx *regview.Context, t ids, elem regview.Element) VarInfo {
	const (
		awaitType = iota
		awaitTypeSuffix
		awaitNameSuffix
		done
	)
	var info VarInfo
	state := awaitType
	for _, n := range ctx.Children(elem) {
		if n.Kind() == regview.NodeText {
			str := ctx.GetString(n.AsText())
			switch state {
			case awaitType:
				info.TypePrefix = str
			case awaitTypeSuffix:
				info.TypeSuffix = strings.TrimRight(str, " \t\r\n")
			case awaitNameSuffix:
				if strings.HasPrefix(str, "[") && strings.HasSuffix(str, "]") {
					info.Array = str[1 : len(str)-1]
				}
			}
			state = done
			continue
		}
		child := ctx.GetElement(n.AsElement())
		text, _ := ctx.GetText(child)
		str := ctx.GetString(text)
		switch child.Tag {
		case t.typ:
			state = awaitTypeSuffix
			info.Type = str
		case t.name:
			state = awaitNameSuffix
			info.Name = str
		case t.enum:
			state = done
			info.Array = str
		case t.comment:
			state = done
			info.Comment = str
		}
	}
	return info
}
