package handlers

import (
	"errors"
	"fmt"

	"catalog/internal/middleware"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validation.Validator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	byID := middleware.HandleInputErrors(h.validate, validation.ProductIDRules)

	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", byID, h.HandleGetProductByID)
	productRoutes.Post("/", middleware.HandleInputErrors(h.validate, validation.CreateProductRules), h.HandleCreateProduct)
	productRoutes.Put("/:id", middleware.HandleInputErrors(h.validate, validation.UpdateProductRules), h.HandleUpdateProduct)
	productRoutes.Patch("/:id", byID, h.HandleUpdateAvailability)
	productRoutes.Delete("/:id", byID, h.HandleDeleteProduct)
}

// HandleGetProducts lists every product, newest first.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": products})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok := validation.ParseID(c.Params("id"))
	if !ok {
		return notFound(c)
	}
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return h.failure(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	in, err := validation.DecodeProduct(validatedBody(c))
	if err != nil {
		return fmt.Errorf("decode validated product: %w", err)
	}
	product, err := h.service.CreateProduct(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": product})
}

// HandleUpdateProduct replaces name, price and availability of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := validation.ParseID(c.Params("id"))
	if !ok {
		return notFound(c)
	}
	in, err := validation.DecodeProduct(validatedBody(c))
	if err != nil {
		return fmt.Errorf("decode validated product: %w", err)
	}
	product, err := h.service.UpdateProduct(c.UserContext(), id, in)
	if err != nil {
		return h.failure(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleUpdateAvailability flips the availability of a product.
func (h *ProductHandler) HandleUpdateAvailability(c *fiber.Ctx) error {
	id, ok := validation.ParseID(c.Params("id"))
	if !ok {
		return notFound(c)
	}
	product, err := h.service.ToggleAvailability(c.UserContext(), id)
	if err != nil {
		return h.failure(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := validation.ParseID(c.Params("id"))
	if !ok {
		return notFound(c)
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return h.failure(c, err)
	}
	return c.JSON(fiber.Map{"data": MsgProductDeleted})
}

func (h *ProductHandler) failure(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return notFound(c)
	}
	return err
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": MsgProductNotFound,
	})
}

func validatedBody(c *fiber.Ctx) map[string]any {
	body, _ := c.Locals(middleware.BodyKey).(map[string]any)
	return body
}
