package docs_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog/internal/docs"
	"catalog/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAPI_DerivesComponentsFromSchema(t *testing.T) {
	doc := docs.OpenAPI(models.ProductSchema, "1.0.0")

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var parsed struct {
		Paths      map[string]map[string]any `json:"paths"`
		Components struct {
			Schemas map[string]struct {
				Required   []string                  `json:"required"`
				Properties map[string]map[string]any `json:"properties"`
			} `json:"schemas"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(raw, &parsed))

	assert.ElementsMatch(t, []string{"get", "post"}, keys(parsed.Paths["/api/products"]))
	assert.ElementsMatch(t, []string{"get", "put", "patch", "delete"}, keys(parsed.Paths["/api/products/{id}"]))

	product := parsed.Components.Schemas["Product"]
	assert.ElementsMatch(t, []string{"id", "name", "price", "availability"}, keys(product.Properties))
	assert.Equal(t, "number", product.Properties["price"]["type"])
	assert.Equal(t, float64(1e8), product.Properties["price"]["maximum"])
	assert.Equal(t, true, product.Properties["price"]["exclusiveMaximum"])
	assert.Equal(t, true, product.Properties["availability"]["default"])

	assert.Equal(t, []string{"name", "price"}, parsed.Components.Schemas["ProductCreate"].Required)
	assert.Equal(t, []string{"name", "price", "availability"}, parsed.Components.Schemas["ProductUpdate"].Required)
}

func TestRegisterRoutes(t *testing.T) {
	app := fiber.New()
	docs.RegisterRoutes(app, docs.OpenAPI(models.ProductSchema, "test"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs/openapi.json", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), "/docs/openapi.json")
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
