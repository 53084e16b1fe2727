package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"catalog/internal/models"

	"github.com/shopspring/decimal"
)

// MsgMalformedBody is reported when the request body is not a JSON object.
const MsgMalformedBody = "Cuerpo de la peticion no valido"

// ErrMalformedBody is returned by ParseBody for input that is not a JSON object.
var ErrMalformedBody = errors.New("request body is not a JSON object")

// MalformedBody is the Result reported for an unparseable body.
func MalformedBody() Result {
	return Result{{Type: "field", Msg: MsgMalformedBody, Location: LocationBody}}
}

// ParseBody decodes a JSON object body. An empty body is an empty object.
func ParseBody(raw []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if body == nil || dec.More() {
		return nil, ErrMalformedBody
	}
	return body, nil
}

// stringify renders a decoded JSON value the way rules inspect it.
func stringify(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

// DecodeProduct converts a body that passed a product rule set into typed input.
func DecodeProduct(body map[string]any) (models.ProductInput, error) {
	var in models.ProductInput
	in.Name = stringify(body["name"])

	price, err := decimal.NewFromString(stringify(body["price"]))
	if err != nil {
		return in, fmt.Errorf("decode price: %w", err)
	}
	in.Price = price

	switch stringify(body["availability"]) {
	case "true", "1":
		in.Availability = true
	}
	return in, nil
}

// ParseID converts a path id that passed IDParam into a primary key.
// ok is false for ids no stored row can carry.
func ParseID(raw string) (id uint, ok bool) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return uint(n), true
}
