package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"catalog/internal/models"
	"catalog/internal/repositories"
)

// Routing keys of the events published after each successful mutation.
const (
	EventProductCreated             = "product.created"
	EventProductUpdated             = "product.updated"
	EventProductAvailabilityChanged = "product.availability_changed"
	EventProductDeleted             = "product.deleted"
)

// priceScale is the number of decimals the price column keeps.
var priceScale = int32(models.ProductSchema.Field("price").Scale)

// EventPublisher delivers product events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// ProductEvent is the message body of a product event.
type ProductEvent struct {
	Event      string          `json:"event"`
	ProductID  uint            `json:"productId"`
	Product    *models.Product `json:"product,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// ProductService handles business logic related to products.
// Mutations look the product up first and report repositories.ErrProductNotFound
// for unknown IDs; the read-then-write is not guarded against concurrent requests.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAllProducts retrieves all products, newest first.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct stores a new, available product.
func (s *ProductService) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:         in.Name,
		Price:        in.Price.Round(priceScale),
		Availability: true,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, EventProductCreated, product.ID, product)
	return product, nil
}

// UpdateProduct overwrites name, price and availability of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, in models.ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Price = in.Price.Round(priceScale)
	product.Availability = in.Availability
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, EventProductUpdated, product.ID, product)
	return product, nil
}

// ToggleAvailability flips the stored availability of a product.
func (s *ProductService) ToggleAvailability(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Availability = !product.Availability
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, EventProductAvailabilityChanged, product.ID, product)
	return product, nil
}

// DeleteProduct removes an existing product.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, EventProductDeleted, id, nil)
	return nil
}

// publish sends an event if a publisher is configured. Failures are logged
// and never fail the request that caused them.
func (s *ProductService) publish(ctx context.Context, event string, id uint, product *models.Product) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(ProductEvent{
		Event:      event,
		ProductID:  id,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for product %d: %v", event, id, err)
		return
	}
	if err := s.publisher.Publish(ctx, event, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for product %d: %v", event, id, err)
	}
}
