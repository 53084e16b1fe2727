package docs

import (
	"github.com/gofiber/fiber/v2"
)

const uiPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Product Catalog API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function () {
      window.ui = SwaggerUIBundle({ url: "/docs/openapi.json", dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>`

// RegisterRoutes serves the Swagger UI page at /docs and doc at /docs/openapi.json.
func RegisterRoutes(router fiber.Router, doc Document) {
	docsRoutes := router.Group("/docs")
	docsRoutes.Get("/", func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.SendString(uiPage)
	})
	docsRoutes.Get("/openapi.json", func(c *fiber.Ctx) error {
		return c.JSON(doc)
	})
}
