package views

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/warrantyreminder/internal/client/client"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/models"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/services"
)

type fakeWarranties struct {
	mu sync.Mutex

	items     []models.Warranty
	listErr   error
	searchRes []models.Warranty
	searchErr error
	getRes    *models.Warranty
	getErr    error
	deleteErr error

	// block, when set, holds Delete until closed.
	block chan struct{}

	listCalls   int
	searchCalls []string
	deleted     []string
}

var _ services.WarrantyService = (*fakeWarranties)(nil)

func (f *fakeWarranties) List(context.Context) ([]models.Warranty, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Warranty, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeWarranties) Search(_ context.Context, q string) ([]models.Warranty, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls = append(f.searchCalls, q)
	return f.searchRes, f.searchErr
}

func (f *fakeWarranties) Get(context.Context, string) (*models.Warranty, error) {
	return f.getRes, f.getErr
}

func (f *fakeWarranties) Create(context.Context, *client.RawBody) (*models.Warranty, error) {
	return nil, nil
}

func (f *fakeWarranties) Update(context.Context, string, *client.RawBody) (*models.Warranty, error) {
	return nil, nil
}

func (f *fakeWarranties) Delete(_ context.Context, id string) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeWarranties) deleteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deleted)
}
