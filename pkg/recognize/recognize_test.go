package recognize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/testidgen/pkg/recognize"
)

const chakraSource = `import React from "react";
import { Box, Button as ChakraButton, type BoxProps } from "@chakra-ui/react";
import { useForm } from "react-hook-form";

export const Page = () => (
  <Box>
    <ChakraButton />
    <SaveButton />
    <Sidebar />
    <Widgetish />
    <Menu.Item />
    <svg:rect />
  </Box>
);
`

func TestRecognize_FrameworkImports(t *testing.T) {
	t.Parallel()

	res := recognize.Recognize([]byte(chakraSource), false)

	assert.True(t, res.Has(recognize.Chakra))
	assert.False(t, res.Has(recognize.MUI))
	assert.Equal(t, []recognize.Framework{recognize.Chakra}, res.Frameworks())
	assert.Equal(t, []string{"Box", "BoxProps", "ChakraButton"}, res.FrameworkComponents())
	assert.False(t, res.UsedFallback())
}

func TestRecognize_CustomComponents(t *testing.T) {
	t.Parallel()

	res := recognize.Recognize([]byte(chakraSource), false)

	assert.Equal(t, []string{"SaveButton", "Sidebar"}, res.CustomComponents())
	assert.Equal(t, []string{"Menu.Item", "svg:rect"}, res.Namespaced())
}

func TestRecognize_Category(t *testing.T) {
	t.Parallel()

	res := recognize.Recognize([]byte(chakraSource), false)

	assert.Equal(t, recognize.CategoryFramework, res.Category("Box"))
	assert.Equal(t, recognize.CategoryCustom, res.Category("SaveButton"))
	assert.Equal(t, recognize.CategoryHTML, res.Category("div"))
	assert.Equal(t, recognize.CategoryNone, res.Category("Widgetish"))
}

func TestRecognize_FallbackLayoutList(t *testing.T) {
	t.Parallel()

	src := []byte(`export const A = () => <Flex><Spinner /></Flex>;`)

	res := recognize.Recognize(src, false)

	assert.True(t, res.UsedFallback())
	assert.True(t, res.IsFramework("Flex"))
	assert.Equal(t, recognize.CategoryCustom, res.Category("Spinner"))

	htmlOnly := recognize.Recognize(src, true)
	assert.False(t, htmlOnly.UsedFallback())
	assert.Empty(t, htmlOnly.FrameworkComponents())
}

func TestRecognize_MUIDefaultImport(t *testing.T) {
	t.Parallel()

	src := []byte(`import TextField from "@mui/material/TextField";
import Grid, { GridProps } from "@mui/material/Grid";`)

	res := recognize.Recognize(src, false)

	assert.True(t, res.Has(recognize.MUI))
	assert.Equal(t, []string{"Grid", "GridProps", "TextField"}, res.FrameworkComponents())
}

func TestRecognize_HTMLSetIsStatic(t *testing.T) {
	t.Parallel()

	res := recognize.Recognize(nil, false)

	assert.Contains(t, res.HTMLElements(), "button")
	assert.Contains(t, res.HTMLElements(), "h6")
	assert.NotContains(t, res.HTMLElements(), "marquee")
}
