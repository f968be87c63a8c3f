package shape_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jamboree/vklitegen/internal/catalog"
	"github.com/jamboree/vklitegen/internal/regview"
	"github.com/jamboree/vklitegen/internal/regviewtest"
	"github.com/jamboree/vklitegen/internal/shape"
	"github.com/stretchr/testify/require"
)

func attr(name, value string) regviewtest.Attr { return regviewtest.Attr{Name: name, Value: value} }

func nameElem(s string) regviewtest.Child {
	return regviewtest.El(regviewtest.E("name", nil, regviewtest.Txt(s)))
}

func typeElem(s string) regviewtest.Child {
	return regviewtest.El(regviewtest.E("type", nil, regviewtest.Txt(s)))
}

// openRoot builds root into a binary document and returns both the
// Context and the document's root Element, for tests that exercise
// shape functions directly on a hand-built <member>/<command> tree.
func openRoot(t *testing.T, root *regviewtest.Elem) (*regview.Context, regview.Element) {
	t.Helper()
	data := regviewtest.Build(root)
	ctx, err := regview.Open(data)
	require.NoError(t, err)
	elem, ok := ctx.RootElement()
	require.True(t, ok)
	return ctx, elem
}

// buildCatalog builds a minimal catalog registering Bool32 as raw,
// Extent2D as a struct and Instance as a handle — enough for the
// cast/struct-by-reference/handle-recognition rules the shape package
// consults. Classification doesn't depend on feature/extension scoping
// (internal/catalog/builder.go classifies straight from <types>), so no
// <feature> block is needed here.
func buildCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	root := regviewtest.E("registry", nil,
		regviewtest.El(regviewtest.E("types", nil,
			regviewtest.El(regviewtest.E("type",
				[]regviewtest.Attr{attr("category", "basetype")},
				regviewtest.Txt("uint32_t "), nameElem("VkBool32"),
			)),
			regviewtest.El(regviewtest.E("type",
				[]regviewtest.Attr{attr("category", "struct"), attr("name", "VkExtent2D")},
				regviewtest.El(regviewtest.E("member", nil, regviewtest.Txt("uint32_t "), nameElem("width"))),
				regviewtest.El(regviewtest.E("member", nil, regviewtest.Txt("uint32_t "), nameElem("height"))),
			)),
			regviewtest.El(regviewtest.E("type",
				[]regviewtest.Attr{attr("category", "handle"), attr("objtypeenum", "VK_OBJECT_TYPE_INSTANCE")},
				nameElem("VkInstance"),
			)),
		)),
	)
	data := regviewtest.Build(root)
	ctx, err := regview.Open(data)
	require.NoError(t, err)
	cat, _, err := catalog.BuildAndSort(ctx, nil)
	require.NoError(t, err)
	return cat
}

// VarInfo itself is unexported; its state-machine reconstruction
// (prefix text / <type> / suffix text / <name> / array-or-comment) is
// exercised throughout the MemberInfo and ParamInfo tests below, which
// all depend on it producing the right TypePrefix/Type/TypeSuffix/Name/
// Array breakdown from interleaved text and element children.

// --- MemberInfo / StructMembers ---

func structRoot(t *testing.T, members ...regviewtest.Child) (*regview.Context, regview.Element) {
	return openRoot(t, regviewtest.E("type",
		[]regviewtest.Attr{attr("category", "struct"), attr("name", "VkFixture")},
		members...,
	))
}

func TestStructMembersStructByValueBecomesConstRef(t *testing.T) {
	cat := buildCatalog(t)
	ctx, root := structRoot(t,
		regviewtest.El(regviewtest.E("member", nil, typeElem("VkExtent2D"), nameElem("extent"))),
	)
	members := shape.StructMembers(ctx, root, cat, false)
	require.Len(t, members, 1)
	m := members[0]
	require.Equal(t, "const Extent2D&", m.NewType)
	require.True(t, m.IsStruct)
	require.True(t, m.AddCast)
	require.False(t, m.IsPtr)
	require.False(t, m.IsArr)
}

func TestStructMembersCharArrayBecomesStringView(t *testing.T) {
	cat := buildCatalog(t)
	ctx, root := structRoot(t,
		regviewtest.El(regviewtest.E("member", nil, typeElem("char"), nameElem("deviceName"), regviewtest.Txt("[256]"))),
	)
	members := shape.StructMembers(ctx, root, cat, false)
	require.Len(t, members, 1)
	require.True(t, members[0].IsStr)
	require.Equal(t, "std::string_view", members[0].NewType)
}

func TestStructMembersOtherArrayBecomesSpan(t *testing.T) {
	cat := buildCatalog(t)
	ctx, root := structRoot(t,
		regviewtest.El(regviewtest.E("member", nil, typeElem("uint32_t"), nameElem("values"), regviewtest.Txt("[4]"))),
	)
	members := shape.StructMembers(ctx, root, cat, false)
	require.Len(t, members, 1)
	require.Equal(t, "std::span<const uint32_t, 4>", members[0].NewType)
}

func TestStructMembersBool32ImpliesOptional(t *testing.T) {
	cat := buildCatalog(t)
	ctx, root := structRoot(t,
		regviewtest.El(regviewtest.E("member", nil, typeElem("VkBool32"), nameElem("flag"))),
	)
	members := shape.StructMembers(ctx, root, cat, false)
	require.Len(t, members, 1)
	require.Equal(t, "Bool32", members[0].NewType)
	require.True(t, members[0].Optional)
	require.False(t, members[0].AddCast) // Bool32 is raw, no cast needed
}

func TestStructMembersLenReferencingOptionalMemberPropagatesOptional(t *testing.T) {
	cat := buildCatalog(t)
	ctx, root := structRoot(t,
		regviewtest.El(regviewtest.E("member",
			[]regviewtest.Attr{attr("optional", "true")},
			typeElem("uint32_t"), nameElem("count"))),
		regviewtest.El(regviewtest.E("member",
			[]regviewtest.Attr{attr("len", "count")},
			typeElem("float"), nameElem("pValues"), regviewtest.Txt("[4]"))),
	)
	members := shape.StructMembers(ctx, root, cat, false)
	require.Len(t, members, 2)
	require.True(t, members[0].Optional)
	require.True(t, members[1].Optional)
}

func TestStructMembersObjectPairCollapse(t *testing.T) {
	cat := buildCatalog(t)
	ctx, root := structRoot(t,
		regviewtest.El(regviewtest.E("member", nil, typeElem("VkObjectType"), nameElem("objectType"))),
		regviewtest.El(regviewtest.E("member", nil, typeElem("uint64_t"), nameElem("objectHandle"))),
	)
	members := shape.StructMembers(ctx, root, cat, false)
	require.Len(t, members, 3)
	require.Equal(t, shape.Slave, members[0].Tag)
	require.Equal(t, ".type", members[0].SlaveName)
	require.Equal(t, shape.Slave, members[1].Tag)
	require.Equal(t, ".handle", members[1].SlaveName)
	require.Equal(t, shape.Master, members[2].Tag)
	require.Equal(t, "object", members[2].Name)
	require.Equal(t, "Object", members[2].NewType)
	require.Equal(t, 2, members[2].SlotCount)

	required, optional := shape.RequiredThenOptional(members)
	require.Empty(t, optional)
	require.Len(t, required, 1) // the two Slave slots are hidden; the synthetic Master "object" entry is the only visible, non-optional member
	require.Equal(t, "object", required[0].Name)
}

func TestStructMembersReturnedOnlyCountPointerCollapse(t *testing.T) {
	cat := buildCatalog(t)
	ctx, root := structRoot(t,
		regviewtest.El(regviewtest.E("member", nil, typeElem("uint32_t"), nameElem("commandCount"))),
		regviewtest.El(regviewtest.E("member", nil, typeElem("VkCommandBuffer"), nameElem("commands"), regviewtest.Txt("[4]"))),
	)
	members := shape.StructMembers(ctx, root, cat, true)
	require.Len(t, members, 1)
	require.Equal(t, "commands", members[0].Name)
	require.Equal(t, "commandCount", members[0].Array)
	require.NotContains(t, members[0].NewType, "4")
}

func TestVisibleMembersHidesValuesAndSlave(t *testing.T) {
	members := []shape.MemberInfo{
		{VarInfo: shape.VarInfo{Name: "sType"}, ValuesAttr: "VK_STRUCTURE_TYPE_APPLICATION_INFO"},
		{VarInfo: shape.VarInfo{Name: "objectType"}, Tag: shape.Slave},
		{VarInfo: shape.VarInfo{Name: "width"}},
	}
	require.Equal(t, []shape.MemberInfo{members[2]}, shape.VisibleMembers(members))
}

// --- ParamInfo / BuildCommand ---

func commandRoot(t *testing.T, proto *regviewtest.Elem, params ...*regviewtest.Elem) (*regview.Context, regview.Element) {
	children := make([]regviewtest.Child, 0, len(params)+1)
	children = append(children, regviewtest.El(proto))
	for _, p := range params {
		children = append(children, regviewtest.El(p))
	}
	return openRoot(t, regviewtest.E("command", nil, children...))
}

func protoElem(retType, name string) *regviewtest.Elem {
	return regviewtest.E("proto", nil, typeElem(retType), nameElem(name))
}

func paramElem(attrs []regviewtest.Attr, children ...regviewtest.Child) *regviewtest.Elem {
	return regviewtest.E("param", attrs, children...)
}

// TestBuildCommandLiftsOutputParameterAndKeepsTrailingOptional mirrors
// vkCreateInstance: a const-ref input, an optional pAllocator, and a
// plain output-handle pointer that gets lifted to the return side
// (spec.md §4.6/§4.7).
func TestBuildCommandLiftsOutputParameterAndKeepsTrailingOptional(t *testing.T) {
	cat := buildCatalog(t)
	ctx, root := commandRoot(t,
		protoElem("VkResult", "vkCreateInstance"),
		paramElem(nil, regviewtest.Txt("const "), typeElem("VkInstanceCreateInfo"), regviewtest.Txt("*"), nameElem("pCreateInfo")),
		paramElem([]regviewtest.Attr{attr("optional", "true")}, regviewtest.Txt("const "), typeElem("VkAllocationCallbacks"), regviewtest.Txt("*"), nameElem("pAllocator")),
		paramElem(nil, typeElem("VkInstance"), regviewtest.Txt("*"), nameElem("pInstance")),
	)
	cs := shape.BuildCommand(ctx, root, cat, false)

	require.Equal(t, "Result", cs.ReturnType)
	require.True(t, cs.UseRet)
	require.True(t, cs.UseOut)
	require.Equal(t, "Instance", cs.OutType)
	require.Equal(t, "pInstance", cs.OutParam.Name)

	// The full parameter shape (every field at once) is easier to read
	// as a single diff than a page of individual field assertions.
	want := []shape.ParamInfo{
		{Name: "createInfo", Type: "const InstanceCreateInfo&", Cast: "const VkInstanceCreateInfo*", AddPtr: true},
		{Name: "pAllocator", Type: "const AllocationCallbacks*", Cast: "const VkAllocationCallbacks*", Optional: true},
	}
	if diff := cmp.Diff(want, cs.Params); diff != "" {
		t.Errorf("cs.Params mismatch (-want +got):\n%s", diff)
	}

	required, optional := cs.RequiredThenOptional()
	require.Len(t, required, 1)
	require.Equal(t, "createInfo", required[0].Name)
	require.Len(t, optional, 1)
	require.Equal(t, "pAllocator", optional[0].Name)

	require.Len(t, cs.CallArgs(), 2)
}

// TestBuildCommandVoidReturnWithSoleOptionalParam mirrors
// vkDestroyInstance's method form (spec.md §4.6 S6): the receiver
// handle is skipped via skipFirstParam, leaving only the trailing
// optional pAllocator, which keeps its default since it's already the
// last parameter.
func TestBuildCommandVoidReturnWithSoleOptionalParam(t *testing.T) {
	cat := buildCatalog(t)
	ctx, root := commandRoot(t,
		protoElem("void", "vkDestroyInstance"),
		paramElem(nil, typeElem("VkInstance"), nameElem("instance")),
		paramElem([]regviewtest.Attr{attr("optional", "true")}, regviewtest.Txt("const "), typeElem("VkAllocationCallbacks"), regviewtest.Txt("*"), nameElem("pAllocator")),
	)
	cs := shape.BuildCommand(ctx, root, cat, true)

	require.Equal(t, "void", cs.ReturnType)
	require.False(t, cs.UseRet)
	require.False(t, cs.UseOut)
	require.Len(t, cs.Params, 1)
	require.Equal(t, "pAllocator", cs.Params[0].Name)
	require.True(t, cs.Params[0].Optional)
}

// TestBuildCommandMultiIndirectionOutput covers the count('*')>1
// special case: a pointer-to-pointer output strips only one level of
// indirection off its cast type when lifted.
func TestBuildCommandMultiIndirectionOutput(t *testing.T) {
	cat := buildCatalog(t)
	ctx, root := commandRoot(t,
		protoElem("VkResult", "vkGetData"),
		paramElem(nil, typeElem("void"), regviewtest.Txt("**"), nameElem("ppData")),
	)
	cs := shape.BuildCommand(ctx, root, cat, false)

	require.True(t, cs.UseOut)
	require.Equal(t, "void*", cs.OutType)
	require.Empty(t, cs.Params)
}

func TestAdjustOptionalForTrailingDefaultsDemotesNonTrailingExceptAllocator(t *testing.T) {
	params := []shape.ParamInfo{
		{Name: "a", Optional: true},
		{Name: "b", Optional: false},
		{Name: "pAllocator", Optional: true},
	}
	shape.AdjustOptionalForTrailingDefaults(params)
	require.False(t, params[0].Optional)
	require.False(t, params[1].Optional)
	require.True(t, params[2].Optional)
}
