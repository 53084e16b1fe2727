package validation_test

import (
	"encoding/json"
	"testing"

	"catalog/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func body(t *testing.T, raw string) map[string]any {
	t.Helper()
	b, err := validation.ParseBody([]byte(raw))
	require.NoError(t, err)
	return b
}

func msgs(r validation.Result) []string {
	out := make([]string, 0, len(r))
	for _, f := range r {
		out = append(out, f.Path+": "+f.Msg)
	}
	return out
}

func TestValidate_CreateProduct(t *testing.T) {
	v := validation.New()

	testCases := []struct {
		name     string
		body     string
		expected []string
	}{
		{
			name: "empty body accumulates every failing rule",
			body: `{}`,
			expected: []string{
				"name: El nombre de producto no puede ir vacio",
				"price: valor no valido",
				"price: Invalid value",
				"price: Precio no valido",
			},
		},
		{
			name:     "zero price fails only positivity",
			body:     `{"name":"Monitor Curvo","price":0}`,
			expected: []string{"price: Precio no valido"},
		},
		{
			name:     "non numeric price fails type and positivity",
			body:     `{"name":"Monitor Curvo","price":"hola"}`,
			expected: []string{"price: valor no valido", "price: Precio no valido"},
		},
		{
			name:     "negative price",
			body:     `{"name":"Monitor Curvo","price":-3}`,
			expected: []string{"price: Precio no valido"},
		},
		{
			name:     "empty name",
			body:     `{"name":"","price":10}`,
			expected: []string{"name: El nombre de producto no puede ir vacio"},
		},
		{
			name:     "null values count as absent",
			body:     `{"name":null,"price":null}`,
			expected: []string{"name: El nombre de producto no puede ir vacio", "price: valor no valido", "price: Invalid value", "price: Precio no valido"},
		},
		{
			name:     "price that rounds to zero at two decimals",
			body:     `{"name":"x","price":0.001}`,
			expected: []string{"price: Precio no valido"},
		},
		{
			name:     "string price that rounds to zero",
			body:     `{"name":"x","price":"0.004"}`,
			expected: []string{"price: Precio no valido"},
		},
		{
			name:     "price beyond the column range",
			body:     `{"name":"x","price":100000000}`,
			expected: []string{"price: Precio no valido"},
		},
		{
			name:     "price that rounds up past the column range",
			body:     `{"name":"x","price":"99999999.996"}`,
			expected: []string{"price: Precio no valido"},
		},
		{
			name:     "price with an extreme exponent",
			body:     `{"name":"x","price":"1e-400000000"}`,
			expected: []string{"price: valor no valido", "price: Precio no valido"},
		},
		{
			name: "largest price the column holds",
			body: `{"name":"x","price":99999999.99}`,
		},
		{
			name: "price that rounds up to one cent",
			body: `{"name":"x","price":"0.005"}`,
		},
		{
			name: "valid product",
			body: `{"name":"silla gamer","price":50}`,
		},
		{
			name: "numeric string price is accepted",
			body: `{"name":"silla gamer","price":"49.90"}`,
		},
		{
			name: "availability is ignored on create",
			body: `{"name":"silla gamer","price":50,"availability":"nope"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := v.Validate(validation.CreateProductRules, validation.Input{Body: body(t, tc.body)})
			if len(tc.expected) == 0 {
				assert.True(t, res.Valid(), "unexpected failures: %v", msgs(res))
				return
			}
			assert.False(t, res.Valid())
			assert.Equal(t, tc.expected, msgs(res))
		})
	}
}

func TestValidate_UpdateProduct(t *testing.T) {
	v := validation.New()

	t.Run("empty body yields five failures", func(t *testing.T) {
		res := v.Validate(validation.UpdateProductRules, validation.Input{
			Params: map[string]string{"id": "1"},
			Body:   body(t, `{}`),
		})
		assert.Len(t, res, 5)
		assert.Equal(t, "availability", res[4].Path)
		assert.Equal(t, "Valor para disponibilidad no valido", res[4].Msg)
	})

	t.Run("zero price", func(t *testing.T) {
		res := v.Validate(validation.UpdateProductRules, validation.Input{
			Params: map[string]string{"id": "1"},
			Body:   body(t, `{"name":"pc gamer nuevo en caja","price":0,"availability":true}`),
		})
		require.Len(t, res, 1)
		assert.Equal(t, "Precio no valido", res[0].Msg)
		assert.Equal(t, validation.LocationBody, res[0].Location)
	})

	t.Run("price that rounds to zero", func(t *testing.T) {
		res := v.Validate(validation.UpdateProductRules, validation.Input{
			Params: map[string]string{"id": "1"},
			Body:   body(t, `{"name":"pc gamer nuevo en caja","price":0.001,"availability":true}`),
		})
		require.Len(t, res, 1)
		assert.Equal(t, "Precio no valido", res[0].Msg)
	})

	t.Run("invalid id short-circuits body rules", func(t *testing.T) {
		res := v.Validate(validation.UpdateProductRules, validation.Input{
			Params: map[string]string{"id": "not-valid-url"},
			Body:   body(t, `{}`),
		})
		require.Len(t, res, 1)
		assert.Equal(t, validation.MsgInvalidID, res[0].Msg)
		assert.Equal(t, validation.LocationPath, res[0].Location)
		assert.Equal(t, "not-valid-url", res[0].Value)
	})

	t.Run("availability accepts boolean forms", func(t *testing.T) {
		for _, a := range []string{`true`, `false`, `"true"`, `"0"`, `1`} {
			res := v.Validate(validation.UpdateProductRules, validation.Input{
				Params: map[string]string{"id": "7"},
				Body:   body(t, `{"name":"x","price":1,"availability":`+a+`}`),
			})
			assert.True(t, res.Valid(), "availability %s: %v", a, msgs(res))
		}
	})

	t.Run("availability rejects other values", func(t *testing.T) {
		res := v.Validate(validation.UpdateProductRules, validation.Input{
			Params: map[string]string{"id": "7"},
			Body:   body(t, `{"name":"x","price":1,"availability":"yes"}`),
		})
		require.Len(t, res, 1)
		assert.Equal(t, "availability", res[0].Path)
	})
}

func TestValidate_ProductID(t *testing.T) {
	v := validation.New()

	for _, id := range []string{"1", "2000", "-4", "+12"} {
		res := v.Validate(validation.ProductIDRules, validation.Input{Params: map[string]string{"id": id}})
		assert.True(t, res.Valid(), "id %q", id)
	}
	for _, id := range []string{"not-valid", "1.5", "", "99999999999999999999"} {
		res := v.Validate(validation.ProductIDRules, validation.Input{Params: map[string]string{"id": id}})
		require.Len(t, res, 1, "id %q", id)
		assert.Equal(t, validation.MsgInvalidID, res[0].Msg)
	}
}

func TestValidate_IsDeterministic(t *testing.T) {
	v := validation.New()
	in := validation.Input{Params: map[string]string{"id": "3"}, Body: body(t, `{"price":"hola","availability":"maybe"}`)}

	first := v.Validate(validation.UpdateProductRules, in)
	second := v.Validate(validation.UpdateProductRules, in)
	assert.Equal(t, first, second)
	assert.Len(t, first, 4)
}

func TestFailure_JSONShape(t *testing.T) {
	v := validation.New()
	res := v.Validate(validation.CreateProductRules, validation.Input{Body: body(t, `{"name":"a","price":"hola"}`)})
	require.Len(t, res, 2)

	out, err := json.Marshal(res[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"field","value":"hola","msg":"valor no valido","path":"price","location":"body"}`, string(out))

	empty := v.Validate(validation.CreateProductRules, validation.Input{Body: body(t, `{}`)})
	out, err = json.Marshal(empty[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"field","msg":"El nombre de producto no puede ir vacio","path":"name","location":"body"}`, string(out))
}

func TestParseBody(t *testing.T) {
	b, err := validation.ParseBody(nil)
	require.NoError(t, err)
	assert.Empty(t, b)

	b, err = validation.ParseBody([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, b)

	for _, raw := range []string{`[1,2]`, `null`, `{"a":`, `"str"`, `{} {}`} {
		_, err := validation.ParseBody([]byte(raw))
		assert.ErrorIs(t, err, validation.ErrMalformedBody, "body %s", raw)
	}
}

func TestDecodeProduct(t *testing.T) {
	in, err := validation.DecodeProduct(body(t, `{"name":"Zapato","price":"19.99","availability":"false"}`))
	require.NoError(t, err)
	assert.Equal(t, "Zapato", in.Name)
	assert.True(t, decimal.RequireFromString("19.99").Equal(in.Price))
	assert.False(t, in.Availability)

	in, err = validation.DecodeProduct(body(t, `{"name":"Zapato","price":50,"availability":1}`))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(in.Price))
	assert.True(t, in.Availability)

	_, err = validation.DecodeProduct(body(t, `{"name":"Zapato"}`))
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, ok := validation.ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"0", "-1", "abc"} {
		_, ok := validation.ParseID(raw)
		assert.False(t, ok, raw)
	}
}
