package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/warrantyreminder/internal/client/client"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/models"
)

// WarrantyService wraps the warranty endpoints of the backend. Create and
// Update take an already encoded multipart body.
type WarrantyService interface {
	List(ctx context.Context) ([]models.Warranty, error)
	Search(ctx context.Context, query string) ([]models.Warranty, error)
	Get(ctx context.Context, id string) (*models.Warranty, error)
	Create(ctx context.Context, body *client.RawBody) (*models.Warranty, error)
	Update(ctx context.Context, id string, body *client.RawBody) (*models.Warranty, error)
	Delete(ctx context.Context, id string) error
}

type warrantyService struct {
	client client.Client
}

func NewWarrantyService(c client.Client) WarrantyService {
	return &warrantyService{client: c}
}

func warrantyPath(id string) string {
	return "warranty/" + url.PathEscape(id)
}

func (s *warrantyService) List(ctx context.Context) ([]models.Warranty, error) {
	return s.list(ctx, "warranty")
}

func (s *warrantyService) Search(ctx context.Context, query string) ([]models.Warranty, error) {
	return s.list(ctx, "warranty/search?q="+url.QueryEscape(query))
}

func (s *warrantyService) list(ctx context.Context, path string) ([]models.Warranty, error) {
	var items []models.Warranty
	if err := s.client.Get(ctx, path, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Warranty{}
	}
	return items, nil
}

func (s *warrantyService) Get(ctx context.Context, id string) (*models.Warranty, error) {
	var w models.Warranty
	if err := s.client.Get(ctx, warrantyPath(id), &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *warrantyService) Create(ctx context.Context, body *client.RawBody) (*models.Warranty, error) {
	return s.save(ctx, "warranty/create", body, s.client.Post)
}

func (s *warrantyService) Update(ctx context.Context, id string, body *client.RawBody) (*models.Warranty, error) {
	return s.save(ctx, warrantyPath(id), body, s.client.Put)
}

func (s *warrantyService) save(ctx context.Context, path string, body *client.RawBody,
	send func(ctx context.Context, path string, body any, out any) error) (*models.Warranty, error) {

	var raw json.RawMessage
	if err := send(ctx, path, body, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var w models.Warranty
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode warranty: %w", err)
	}
	return &w, nil
}

func (s *warrantyService) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, warrantyPath(id), nil)
}
