package service

import (
	"context"
	"errors"
	"time"

	"github.com/ikkim/vibecommerce-backend/internal/app/model"
	"github.com/ikkim/vibecommerce-backend/internal/app/repository"
	"github.com/ikkim/vibecommerce-backend/internal/cache"
	"github.com/ikkim/vibecommerce-backend/pkg/fakestore"
	"github.com/ikkim/vibecommerce-backend/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// ProductSource tags where a resolved product came from.
type ProductSource string

const (
	SourceRemote   ProductSource = "remote"
	SourceFallback ProductSource = "fallback"
	SourceAbsent   ProductSource = "absent"
)

// Resolution is the outcome of a catalog lookup. Product is nil only when
// Source is SourceAbsent. RemoteErr keeps the remote failure, if any, so the
// caller can tell "does not exist" from "could not ask".
type Resolution struct {
	Source    ProductSource
	Product   *model.Product
	Cached    bool
	RemoteErr error
}

func (r Resolution) Found() bool {
	return r.Source != SourceAbsent && r.Product != nil
}

// RemoteUnavailable reports whether the remote catalog failed to answer.
func (r Resolution) RemoteUnavailable() bool {
	return r.RemoteErr != nil && fakestore.IsUnavailable(r.RemoteErr)
}

// RemoteCatalog is the remote product source.
type RemoteCatalog interface {
	GetProduct(ctx context.Context, id string) (*fakestore.Product, error)
	ListProducts(ctx context.Context) ([]fakestore.Product, error)
}

type CatalogService interface {
	Resolve(ctx context.Context, productID string) Resolution
	WarmCache(ctx context.Context) (int, error)
}

type catalogService struct {
	remote   RemoteCatalog
	fallback repository.ProductRepository
	cache    cache.ProductCache
	timeout  time.Duration
	group    singleflight.Group
}

// NewCatalogService builds the read-through resolver. remote may be nil, in
// which case only the fallback table is consulted.
func NewCatalogService(
	remote RemoteCatalog,
	fallback repository.ProductRepository,
	productCache cache.ProductCache,
	timeout time.Duration,
) CatalogService {
	if productCache == nil {
		productCache = cache.NoopCache{}
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &catalogService{
		remote:   remote,
		fallback: fallback,
		cache:    productCache,
		timeout:  timeout,
	}
}

func (s *catalogService) Resolve(ctx context.Context, productID string) Resolution {
	logger.Debug("Resolving product", map[string]interface{}{
		"product_id": productID,
	})

	var remoteErr error
	if s.remote != nil {
		product, cached, err := s.fetchRemote(ctx, productID)
		if err == nil {
			return Resolution{Source: SourceRemote, Product: product, Cached: cached}
		}
		remoteErr = err
		logger.Warn("Remote catalog lookup failed, using fallback catalog", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
	}

	product, err := s.fallback.FindByID(productID)
	if err == nil {
		logger.Debug("Product resolved from fallback catalog", map[string]interface{}{
			"product_id": productID,
		})
		return Resolution{Source: SourceFallback, Product: product, RemoteErr: remoteErr}
	}

	logger.Warn("Product not found in remote or fallback catalog", map[string]interface{}{
		"product_id": productID,
	})
	return Resolution{Source: SourceAbsent, RemoteErr: remoteErr}
}

// fetchRemote consults the cache, then the remote API. Concurrent lookups of
// the same id share one remote call.
func (s *catalogService) fetchRemote(ctx context.Context, productID string) (*model.Product, bool, error) {
	if product, err := s.cache.Get(ctx, productID); err == nil {
		return product, true, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn("Product cache read failed", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
	}

	v, err, _ := s.group.Do(productID, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		remoteProduct, err := s.remote.GetProduct(callCtx, productID)
		if err != nil {
			return nil, err
		}
		product := toModelProduct(remoteProduct)

		if err := s.cache.Set(callCtx, product); err != nil {
			logger.Warn("Failed to cache remote product", map[string]interface{}{
				"product_id": productID,
				"error":      err.Error(),
			})
		}
		return product, nil
	})
	if err != nil {
		return nil, false, err
	}

	product := *v.(*model.Product)
	return &product, false, nil
}

// WarmCache loads the whole remote catalog into the cache.
func (s *catalogService) WarmCache(ctx context.Context) (int, error) {
	if s.remote == nil {
		return 0, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	remoteProducts, err := s.remote.ListProducts(callCtx)
	if err != nil {
		return 0, err
	}

	products := make([]model.Product, 0, len(remoteProducts))
	for i := range remoteProducts {
		products = append(products, *toModelProduct(&remoteProducts[i]))
	}

	if err := s.cache.SetMany(ctx, products); err != nil {
		return 0, err
	}

	logger.Info("Catalog cache warmed", map[string]interface{}{
		"count": len(products),
	})
	return len(products), nil
}

func toModelProduct(p *fakestore.Product) *model.Product {
	return &model.Product{
		ID:          p.ID.String(),
		Name:        p.Title,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
	}
}
