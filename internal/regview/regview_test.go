package regview_test

import (
	"testing"

	"github.com/jamboree/vklitegen/internal/regview"
	"github.com/jamboree/vklitegen/internal/regviewtest"
	"github.com/stretchr/testify/require"
)

func TestOpenAndNavigate(t *testing.T) {
	root := regviewtest.E("registry", nil,
		regviewtest.El(regviewtest.E("types", nil,
			regviewtest.El(regviewtest.E("type", []regviewtest.Attr{
				{Name: "category", Value: "basetype"},
				{Name: "alpha", Value: "1"},
			},
				regviewtest.Txt("uint32_t "),
				regviewtest.El(regviewtest.E("name", nil, regviewtest.Txt("VkBool32"))),
			)),
		)),
	)
	data := regviewtest.Build(root)

	ctx, err := regview.Open(data)
	require.NoError(t, err)

	registryTag := ctx.GetElement(0)
	require.Equal(t, "registry", ctx.GetString(registryTag.Tag))

	typesNode := ctx.Children(registryTag)
	require.Len(t, typesNode, 1)
	require.Equal(t, regview.NodeElement, typesNode[0].Kind())

	typesElem := ctx.GetElement(typesNode[0].AsElement())
	require.Equal(t, "types", ctx.GetString(typesElem.Tag))

	typeChildren := ctx.Children(typesElem)
	require.Len(t, typeChildren, 1)
	typeElem := ctx.GetElement(typeChildren[0].AsElement())
	require.Equal(t, "type", ctx.GetString(typeElem.Tag))

	attrs := ctx.Attrs(typeElem)
	require.Len(t, attrs, 2)

	categoryID, ok := ctx.GetUnique("category")
	require.True(t, ok)
	value, ok := regview.FindAttr(attrs, categoryID)
	require.True(t, ok)
	require.Equal(t, "basetype", ctx.GetString(value))

	missingID, ok := ctx.GetUnique("doesnotexist")
	require.False(t, ok)
	require.Zero(t, missingID)
	_, ok = regview.FindAttr(attrs, 0xffffffff)
	require.False(t, ok)

	nameTagID, ok := ctx.GetUnique("name")
	require.True(t, ok)
	nameTextID, ok := ctx.ChildElementText(typeElem, nameTagID)
	require.True(t, ok)
	require.Equal(t, "VkBool32", ctx.GetString(nameTextID))

	// type has two children (text + <name>), so GetText must report absent.
	_, ok = ctx.GetText(typeElem)
	require.False(t, ok)

	// <name> itself has a single text child.
	nameElemChildren := ctx.Children(typeElem)
	var nameElem regview.Element
	for _, c := range nameElemChildren {
		if c.Kind() == regview.NodeElement {
			nameElem = ctx.GetElement(c.AsElement())
		}
	}
	textID, ok := ctx.GetText(nameElem)
	require.True(t, ok)
	require.Equal(t, "VkBool32", ctx.GetString(textID))
}

func TestOpenTruncated(t *testing.T) {
	_, err := regview.Open([]byte{1, 2, 3})
	require.ErrorIs(t, err, regview.ErrTruncated)
}

func TestGetUniqueManyEntries(t *testing.T) {
	// enough attribute names to exercise multiple Eytzinger tree levels.
	names := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}
	var attrs []regviewtest.Attr
	for _, n := range names {
		attrs = append(attrs, regviewtest.Attr{Name: n, Value: n + "-value"})
	}
	root := regviewtest.E("root", attrs)
	data := regviewtest.Build(root)
	ctx, err := regview.Open(data)
	require.NoError(t, err)

	rootElem := ctx.GetElement(0)
	rawAttrs := ctx.Attrs(rootElem)
	for _, n := range names {
		id, ok := ctx.GetUnique(n)
		require.True(t, ok, n)
		v, ok := regview.FindAttr(rawAttrs, id)
		require.True(t, ok, n)
		require.Equal(t, n+"-value", ctx.GetString(v))
	}
}
