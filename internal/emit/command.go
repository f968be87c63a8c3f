package emit

import (
	"fmt"
	"io"

	"github.com/jamboree/vklitegen/internal/catalog"
	"github.com/jamboree/vklitegen/internal/regview"
	"github.com/jamboree/vklitegen/internal/shape"
)

// emitCommand ports generateCommand: renders cmdInfo as either a free
// inline function (typeName == "") or a handle method (typeName is the
// owning handle's name, rendered const with the receiver's handle
// passed implicitly as the first call argument). baseGuard is the
// enclosing handle's guard (empty for global commands); state is the
// guard/delim cursor scoped to this function's siblings (the top-level
// state for globals, a fresh per-handle state for methods — see
// emitHandle).
func emitCommand(w io.Writer, ctx *regview.Context, cmdInfo catalog.CommandInfo, typeName, baseGuard string, cat *catalog.Catalog, state *genState) {
	supportName, ok := cat.IsSupported(cmdInfo.Name)
	if !ok {
		return
	}
	elem := ctx.GetElement(cmdInfo.Elem)
	cs := shape.BuildCommand(ctx, elem, cat, typeName != "")

	guard := updateGuard(w, subGuard(baseGuard, supportName), state)
	delimit(w, state)
	generateGuard(w, guard)

	if typeName == "" {
		io.WriteString(w, "inline ")
	} else {
		io.WriteString(w, "  ")
	}
	switch {
	case cs.UseOut && cs.UseRet:
		fmt.Fprintf(w, "Ret<%s> ", cs.OutType)
	case cs.UseOut:
		fmt.Fprintf(w, "%s ", cs.OutType)
	default:
		fmt.Fprintf(w, "%s ", cs.ReturnType)
	}

	io.WriteString(w, FunctionName(typeName, cmdInfo.Name))
	io.WriteString(w, "(")
	required, optional := cs.RequiredThenOptional()
	delim := false
	for _, p := range required {
		if delim {
			io.WriteString(w, ", ")
		}
		delim = true
		fmt.Fprintf(w, "%s %s", p.Type, p.Name)
	}
	for _, p := range optional {
		if delim {
			io.WriteString(w, ", ")
		}
		delim = true
		fmt.Fprintf(w, "%s %s = {}", p.Type, p.Name)
	}
	io.WriteString(w, ") ")
	if typeName != "" {
		io.WriteString(w, "const ")
	}
	io.WriteString(w, "{ ")

	suffix := ")"
	switch {
	case cs.UseOut:
		fmt.Fprintf(w, "%s value; ", cs.OutType)
		if cs.UseRet {
			io.WriteString(w, "return {Result(")
			suffix = ")), value}"
		} else {
			suffix = "); return value"
		}
	case cs.ReturnType == "Result":
		io.WriteString(w, "return Result(")
		suffix = "))"
	case cs.ReturnType != "void":
		io.WriteString(w, "return ")
	}

	fmt.Fprintf(w, "vk%s(", cmdInfo.Name)
	delim = false
	if typeName != "" {
		io.WriteString(w, "this->handle")
		delim = true
	}
	for _, p := range cs.CallArgs() {
		if delim {
			io.WriteString(w, ", ")
		}
		delim = true
		if p.Cast != "" {
			fmt.Fprintf(w, "std::bit_cast<%s>(", p.Cast)
		}
		if p.AddPtr {
			io.WriteString(w, "&")
		}
		io.WriteString(w, p.Name)
		if p.IsArr {
			io.WriteString(w, ".data()")
		}
		if p.Cast != "" {
			io.WriteString(w, ")")
		}
	}
	if cs.UseOut {
		if delim {
			io.WriteString(w, ", ")
		}
		if cs.OutParam.Cast == "" {
			io.WriteString(w, "&value")
		} else {
			fmt.Fprintf(w, "std::bit_cast<%s>(&value)", cs.OutParam.Cast)
		}
	}
	io.WriteString(w, suffix)
	io.WriteString(w, "; }\n")
}

// emitHandle ports generateHandle: the handle wrapper struct, deriving
// from Handle<VkX, ObjectType::eX>, with one method per command the
// catalog recorded against this handle name.
func emitHandle(w io.Writer, ctx *regview.Context, info catalog.HandleInfo, cat *catalog.Catalog, state *genState) {
	guardName, ok := cat.IsSupported(info.Name)
	if !ok {
		return
	}
	guard := updateGuard(w, guardName, state)
	delimit(w, state)
	generateGuard(w, guard)
	fmt.Fprintf(w, "struct %s : Handle<Vk%s, ObjectType::e%s> {", info.Name, info.Name, info.Name)

	stateMethod := &genState{delim: true}
	for _, cmd := range cat.HandleCommands[info.Name] {
		emitCommand(w, ctx, cmd, info.Name, guard, cat, stateMethod)
	}
	closeGuard(w, stateMethod)
	io.WriteString(w, "};\n")
}
