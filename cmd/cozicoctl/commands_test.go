package main

import (
	"bytes"
	"encoding/json"
	"testing"

	appcatalog "github.com/satyaprakrati/cozico/internal/application/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestProductsCommand(t *testing.T) {
	out, err := execute(t, "products", "--category", "shoes", "--sort", "price-asc")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "PRICE")
}

func TestProductsCommandJSON(t *testing.T) {
	out, err := execute(t, "products", "--json", "--filter", "bestsellers")
	require.NoError(t, err)

	var list appcatalog.ProductListResponse
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Equal(t, list.Count, len(list.Products))
	assert.Equal(t, "bestsellers", list.Applied.Filter)
}

func TestProductsCommandRejectsInvertedRange(t *testing.T) {
	_, err := execute(t, "products", "--min-price", "5000", "--max-price", "100")
	assert.Error(t, err)
}

func TestProductCommand(t *testing.T) {
	out, err := execute(t, "product", "classic-oxford-shirt")
	require.NoError(t, err)
	assert.Contains(t, out, "Classic Oxford Shirt")
	assert.Contains(t, out, "sizes")

	_, err = execute(t, "product", "no-such-product")
	assert.Error(t, err)

	_, err = execute(t, "product")
	assert.Error(t, err)
}

func TestCollectionsCommand(t *testing.T) {
	out, err := execute(t, "collections")
	require.NoError(t, err)
	assert.Contains(t, out, "office")
}

func TestSummaryCommand(t *testing.T) {
	out, err := execute(t, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Shoes")
	assert.Contains(t, out, "TOTAL")
}
