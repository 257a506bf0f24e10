package cache

import (
	"context"
	"errors"

	"github.com/ikkim/vibecommerce-backend/internal/app/model"
)

// ProductCache holds products previously resolved from the remote catalog.
type ProductCache interface {
	Get(ctx context.Context, productID string) (*model.Product, error)
	Set(ctx context.Context, product *model.Product) error
	SetMany(ctx context.Context, products []model.Product) error
}

var ErrCacheMiss = errors.New("cache miss")

// NoopCache never stores anything; used when Redis is disabled.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (*model.Product, error) { return nil, ErrCacheMiss }
func (NoopCache) Set(context.Context, *model.Product) error           { return nil }
func (NoopCache) SetMany(context.Context, []model.Product) error      { return nil }
