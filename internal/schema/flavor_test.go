package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupSupportedFlavors(t *testing.T) {
	t.Parallel()
	for _, f := range Flavors() {
		t.Run(string(f), func(t *testing.T) {
			t.Parallel()
			d, err := Lookup(f)
			require.NoError(t, err)
			assert.Equal(t, f, d.Flavor)
			assert.NotEmpty(t, d.BaseURL)
			assert.NotEmpty(t, d.RootDocument)
			assert.NotEmpty(t, d.Description)
		})
	}
}

func TestLookupUnsupportedFlavor(t *testing.T) {
	t.Parallel()
	_, err := Lookup("dublin-core")
	require.Error(t, err)

	var unsupported *UnsupportedFlavorError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, Flavor("dublin-core"), unsupported.Flavor)
	assert.Contains(t, err.Error(), "datacite-4.5")
}

func TestRootURL(t *testing.T) {
	t.Parallel()
	d := Definition{BaseURL: "https://example.com/kernel/", RootDocument: "metadata.xsd"}
	assert.Equal(t, "https://example.com/kernel/metadata.xsd", d.RootURL())

	// A base without trailing slash joins the same way.
	d.BaseURL = "https://example.com/kernel"
	assert.Equal(t, "https://example.com/kernel/metadata.xsd", d.RootURL())
}

func TestDefinitionsStableOrder(t *testing.T) {
	t.Parallel()
	first := Definitions()
	second := Definitions()
	require.Equal(t, first, second)
	assert.Len(t, first, 4)
}
