package names_test

import (
	"testing"

	"github.com/jamboree/vklitegen/internal/names"
	"github.com/stretchr/testify/require"
)

func TestCamelToUpperSnake(t *testing.T) {
	cases := map[string]string{
		"PipelineDepthStencilStateCreateInfo": "PIPELINE_DEPTH_STENCIL_STATE_CREATE_INFO",
		"Extent2D":                            "EXTENT_2_D",
		"Bool32":                              "BOOL_32",
	}
	for in, want := range cases {
		require.Equal(t, want, names.CamelToUpperSnake(in), in)
	}
}

func TestUpperSnakeToLowerCamel(t *testing.T) {
	cases := map[string]string{
		"PIPELINE_DEPTH_STENCIL_STATE_CREATE_INFO": "PipelineDepthStencilStateCreateInfo",
		"EXTENT_2D": "Extent2D",
	}
	for in, want := range cases {
		require.Equal(t, want, names.UpperSnakeToLowerCamel(in), in)
	}
}

func TestCaseConversionRoundTrips(t *testing.T) {
	// property 6: upper_snake_to_lower_camel(camel_to_upper_snake(s)) == s
	// for stems with no digits and no embedded vendor tag.
	stems := []string{"Extent", "SurfaceCapabilities", "ApplicationInfo", "Bool"}
	for _, s := range stems {
		got := names.UpperSnakeToLowerCamel(names.CamelToUpperSnake(s))
		require.Equal(t, s, got, s)
	}
}

func TestMatchName(t *testing.T) {
	m, ok := names.MatchName("FooBarKHR")
	require.True(t, ok)
	require.Equal(t, "FooBar", m.Stem)
	require.Equal(t, "", m.Digits)
	require.Equal(t, "KHR", m.Vendor)

	m, ok = names.MatchName("Extent2D")
	require.True(t, ok)
	require.Equal(t, "Extent", m.Stem)
	require.Equal(t, "2", m.Digits)
	require.Equal(t, "D", m.Vendor)

	_, ok = names.MatchName("KHR")
	require.False(t, ok)
}

func TestVendorTags(t *testing.T) {
	tags := names.NewVendorTags([]string{"KHR", "EXT", "AMD"})
	require.True(t, tags.Contains("KHR"))
	require.False(t, tags.Contains("NOPE"))
	require.Equal(t, "KHR", tags.VendorSuffix("VK_DEBUG_UTILS_KHR"))
	require.Equal(t, "", tags.VendorSuffix("VK_DEBUG_UTILS"))

	stem, tag := tags.TrimTagSuffix("SurfaceKHR")
	require.Equal(t, "Surface", stem)
	require.Equal(t, "KHR", tag)

	stem, tag = tags.TrimTagSuffix("DebugUtils_EXT")
	require.Equal(t, "DebugUtils", stem)
	require.Equal(t, "EXT", tag)

	stem, tag = tags.TrimTagSuffix("PlainName")
	require.Equal(t, "PlainName", stem)
	require.Equal(t, "", tag)
}
