// Package docs generates the OpenAPI description of the product API from the
// product schema and serves it together with a Swagger UI page.
package docs

import (
	"math"

	"catalog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Document is an OpenAPI 3 document in its JSON object form.
type Document = map[string]any

// OpenAPI builds the document for the product endpoints described by schema.
func OpenAPI(schema models.Schema, version string) Document {
	idParam := fiber.Map{
		"in":          "path",
		"name":        "id",
		"required":    true,
		"description": "Numeric ID of the product",
		"schema":      fiber.Map{"type": "integer"},
	}
	productResponse := func(description string) fiber.Map {
		return fiber.Map{
			"description": description,
			"content": fiber.Map{"application/json": fiber.Map{"schema": fiber.Map{
				"type":       "object",
				"properties": fiber.Map{"data": ref("Product")},
			}}},
		}
	}
	body := func(name string) fiber.Map {
		return fiber.Map{
			"required": true,
			"content":  fiber.Map{"application/json": fiber.Map{"schema": ref(name)}},
		}
	}
	badRequest := fiber.Map{"description": "Invalid input data", "content": jsonOf(ref("ValidationErrors"))}
	notFound := fiber.Map{"description": "Product not found", "content": jsonOf(ref("NotFound"))}

	return Document{
		"openapi": "3.0.3",
		"info": fiber.Map{
			"title":       "Product Catalog REST API",
			"version":     version,
			"description": "API Docs for Products",
		},
		"tags": []fiber.Map{{"name": "Products", "description": "API operations related to products"}},
		"paths": fiber.Map{
			"/api/products": fiber.Map{
				"get": operation("Get a list of products", "Return a list of products", nil, nil, fiber.Map{
					"200": fiber.Map{
						"description": "Successful response",
						"content": jsonOf(fiber.Map{
							"type":       "object",
							"properties": fiber.Map{"data": fiber.Map{"type": "array", "items": ref("Product")}},
						}),
					},
				}),
				"post": operation("Create a new product", "Create a new product with a name and price", nil, body("ProductCreate"), fiber.Map{
					"201": productResponse("Product created successfully"),
					"400": badRequest,
				}),
			},
			"/api/products/{id}": fiber.Map{
				"get": operation("Get a product by ID", "Return a product based on its unique ID", idParam, nil, fiber.Map{
					"200": productResponse("Product found"),
					"400": badRequest,
					"404": notFound,
				}),
				"put": operation("Update an existing product", "Update the name, price and availability of a product by ID", idParam, body("ProductUpdate"), fiber.Map{
					"200": productResponse("Product updated successfully"),
					"400": badRequest,
					"404": notFound,
				}),
				"patch": operation("Toggle product availability", "Flip the availability of a product by ID", idParam, nil, fiber.Map{
					"200": productResponse("Product availability updated successfully"),
					"400": badRequest,
					"404": notFound,
				}),
				"delete": operation("Delete a product by ID", "Delete a product from the database by its ID", idParam, nil, fiber.Map{
					"200": fiber.Map{
						"description": "Product deleted successfully",
						"content": jsonOf(fiber.Map{
							"type":       "object",
							"properties": fiber.Map{"data": fiber.Map{"type": "string", "example": "Producto Eliminado"}},
						}),
					},
					"400": badRequest,
					"404": notFound,
				}),
			},
		},
		"components": fiber.Map{"schemas": fiber.Map{
			"Product":          productSchema(schema),
			"ProductCreate":    inputSchema(schema.CreateFields(), false),
			"ProductUpdate":    inputSchema(schema.UpdateFields(), true),
			"ValidationErrors": validationErrorsSchema(),
			"NotFound": fiber.Map{
				"type":       "object",
				"properties": fiber.Map{"error": fiber.Map{"type": "string", "example": "Producto no encontrado"}},
			},
		}},
	}
}

func operation(summary, description string, param, requestBody fiber.Map, responses fiber.Map) fiber.Map {
	op := fiber.Map{
		"summary":     summary,
		"description": description,
		"tags":        []string{"Products"},
		"responses":   responses,
	}
	if param != nil {
		op["parameters"] = []fiber.Map{param}
	}
	if requestBody != nil {
		op["requestBody"] = requestBody
	}
	return op
}

func productSchema(schema models.Schema) fiber.Map {
	props := fiber.Map{
		schema.PrimaryKey: fiber.Map{"type": "integer", "description": "The Product ID", "example": 1},
	}
	for _, f := range schema.Fields {
		props[f.Name] = property(f)
	}
	return fiber.Map{"type": "object", "properties": props}
}

// inputSchema describes a request body. allRequired marks every field as
// required, otherwise only fields with Required set.
func inputSchema(fields []models.Field, allRequired bool) fiber.Map {
	props := fiber.Map{}
	required := []string{}
	for _, f := range fields {
		props[f.Name] = property(f)
		if allRequired || f.Required {
			required = append(required, f.Name)
		}
	}
	return fiber.Map{"type": "object", "required": required, "properties": props}
}

func property(f models.Field) fiber.Map {
	p := fiber.Map{}
	switch f.Kind {
	case models.KindString:
		p["type"] = "string"
		if f.Size > 0 {
			p["maxLength"] = f.Size
		}
		if f.Required {
			p["minLength"] = 1
		}
	case models.KindDecimal:
		p["type"] = "number"
		if f.Positive {
			p["exclusiveMinimum"] = true
			p["minimum"] = 0
		}
		if f.Precision > 0 {
			p["exclusiveMaximum"] = true
			p["maximum"] = math.Pow10(f.Precision - f.Scale)
		}
	case models.KindBool:
		p["type"] = "boolean"
	}
	if f.Default != nil {
		p["default"] = f.Default
	}
	if f.Example != nil {
		p["example"] = f.Example
	}
	return p
}

func validationErrorsSchema() fiber.Map {
	return fiber.Map{
		"type": "object",
		"properties": fiber.Map{"errors": fiber.Map{
			"type": "array",
			"items": fiber.Map{
				"type": "object",
				"properties": fiber.Map{
					"type":     fiber.Map{"type": "string", "example": "field"},
					"value":    fiber.Map{},
					"msg":      fiber.Map{"type": "string", "example": "Precio no valido"},
					"path":     fiber.Map{"type": "string", "example": "price"},
					"location": fiber.Map{"type": "string", "enum": []string{"body", "path"}},
				},
			},
		}},
	}
}

func ref(name string) fiber.Map {
	return fiber.Map{"$ref": "#/components/schemas/" + name}
}

func jsonOf(schema fiber.Map) fiber.Map {
	return fiber.Map{"application/json": fiber.Map{"schema": schema}}
}
