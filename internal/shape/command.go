package shape

import (
	"strings"

	"github.com/jamboree/vklitegen/internal/catalog"
	"github.com/jamboree/vklitegen/internal/regview"
)

// CommandShape is one <command> element, shaped for emission as either
// a free function (global command) or a method (handle command).
type CommandShape struct {
	Name       string // vk-stripped, e.g. "CreateInstance"
	ReturnType string // vk-stripped raw proto return type, e.g. "Result", "void"
	Params     []ParamInfo

	UseRet   bool // ReturnType == "Result": wrap the return in Ret<T> when UseOut
	UseOut   bool // the last parameter was lifted to the return side
	OutType  string
	OutParam ParamInfo
}

// BuildCommand shapes elem (a <command> element already known to be
// supported) into a CommandShape. skipFirstParam is true for handle
// methods: the receiver parameter (the handle itself, passed as
// this->handle at the call site) is never part of Params — grounded on
// generateCommand's extra childP++ "if (!typeName.empty())".
func BuildCommand(ctx *regview.Context, elem regview.Element, cat *catalog.Catalog, skipFirstParam bool) CommandShape {
	t := newIDs(ctx)
	var shape CommandShape

	children := elemChildren(ctx, elem)
	if len(children) == 0 || children[0].Tag != t.proto {
		return shape
	}
	rawReturn, _ := ctx.ChildElementText(children[0], t.typ)
	shape.ReturnType, _ = strings.CutPrefix(ctx.GetString(rawReturn), "Vk")

	paramElems := children[1:]
	if skipFirstParam && len(paramElems) > 0 {
		paramElems = paramElems[1:]
	}

	var outType string
	for _, p := range paramElems {
		if p.Tag != t.param {
			continue
		}
		if !checkAPI(ctx, t, p) {
			continue
		}
		info, outCandidate, isOutCandidate := buildParamInfo(ctx, t, p, cat)
		if lenAttr, ok := attrStr(ctx, p, t.length); ok && !info.Optional {
			info.Optional = isAnyOptionalParam(shape.Params, lenAttr)
		}

		if len(shape.Params) > 0 && info.Name == "objectHandle" && info.Type == "uint64_t" {
			prev := &shape.Params[len(shape.Params)-1]
			if prev.Name == "objectType" && prev.Type == "ObjectType" {
				prev.Name, prev.Tag = "object.type", Slave
				info.Name, info.Tag = "object.handle", Slave
				shape.Params = append(shape.Params, info)
				shape.Params = append(shape.Params, ParamInfo{Name: "object", Type: "Object", Tag: Master})
				outType = ""
				if isOutCandidate {
					outType = outCandidate
				}
				continue
			}
		}

		shape.Params = append(shape.Params, info)
		outType = ""
		if isOutCandidate {
			outType = outCandidate
		}
	}

	if outType != "" && len(shape.Params) > 0 {
		shape.UseRet = shape.ReturnType == "Result"
		if shape.UseRet || shape.ReturnType == "void" {
			last := shape.Params[len(shape.Params)-1]
			if strings.Count(last.Type, "*") > 1 {
				shape.UseOut = true
				shape.OutParam = last
				cast := last.Cast
				if cast == "" {
					cast = last.Type
				}
				shape.OutType = strings.TrimSuffix(cast, "*")
				shape.Params = shape.Params[:len(shape.Params)-1]
			} else if stripped, ok := strings.CutPrefix(outType, "Vk"); ok {
				if cat.IsHandle(stripped) || cat.IsRaw(stripped) || cat.IsEnumOrFlag(stripped) {
					shape.UseOut = true
					shape.OutType = stripped
					shape.OutParam = last
					shape.Params = shape.Params[:len(shape.Params)-1]
				}
			} else if outType != "void" {
				shape.UseOut = true
				shape.OutType = outType
				shape.OutParam = last
				shape.Params = shape.Params[:len(shape.Params)-1]
			}
		}
	}

	AdjustOptionalForTrailingDefaults(shape.Params)
	return shape
}

// isAnyOptionalParam is isAnyOptional's ParamInfo counterpart.
func isAnyOptionalParam(params []ParamInfo, list string) bool {
	for {
		i := indexByte(list, ',')
		item := list
		rest := ""
		found := i >= 0
		if found {
			item = list[:i]
			rest = list[i+1:]
		}
		for _, p := range params {
			if p.Name == item && p.Optional {
				return true
			}
		}
		if !found {
			return false
		}
		list = rest
	}
}

// AdjustOptionalForTrailingDefaults enforces that only a trailing run
// of parameters may carry a default: any "optional" parameter that
// isn't part of that trailing run is demoted back to required, except
// pAllocator, which keeps its default regardless of position (spec.md
// §4.7's "optional parameters moved after required" presupposes exactly
// this demotion; grounded on generateCommand lines ~1209-1218). Exported
// for direct testing alongside BuildCommand, which calls it internally.
func AdjustOptionalForTrailingDefaults(params []ParamInfo) {
	n := len(params)
	lastNonOpt := n
	for lastNonOpt > 0 {
		lastNonOpt--
		if !params[lastNonOpt].Optional {
			break
		}
	}
	for i := 0; i < lastNonOpt; i++ {
		if params[i].Optional && params[i].Name != "pAllocator" {
			params[i].Optional = false
		}
	}
}

// RequiredThenOptional splits shape.Params into the two emission
// passes generateCommand uses: required (and slave) parameters in
// document order, then optional (non-slave) parameters in document
// order. Slave-tagged parameters are omitted from both passes — they
// surface only as part of their Master's composite get/set.
func (s CommandShape) RequiredThenOptional() (required, optional []ParamInfo) {
	for _, p := range s.Params {
		if p.Tag == Slave {
			continue
		}
		if p.Optional {
			optional = append(optional, p)
		} else {
			required = append(required, p)
		}
	}
	return required, optional
}

// CallArgs returns the parameters passed to the underlying vkXxx call,
// in document order: every parameter except the synthetic Master
// "object" entry (its two Slave slots are passed individually instead —
// grounded on generateCommand's call-site loop, which skips only
// VarTag::Master, not VarTag::Slave).
func (s CommandShape) CallArgs() []ParamInfo {
	var out []ParamInfo
	for _, p := range s.Params {
		if p.Tag == Master {
			continue
		}
		out = append(out, p)
	}
	return out
}

func elemChildren(ctx *regview.Context, e regview.Element) []regview.Element {
	var out []regview.Element
	for _, n := range ctx.Children(e) {
		if n.Kind() != regview.NodeElement {
			continue
		}
		out = append(out, ctx.GetElement(n.AsElement()))
	}
	return out
}
