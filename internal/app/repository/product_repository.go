package repository

import (
	"errors"

	"github.com/ikkim/vibecommerce-backend/internal/app/model"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRepository is the fallback catalog: a fixed product table that keeps
// the storefront usable when the remote catalog is unreachable.
type ProductRepository interface {
	FindAll() []model.Product
	FindByID(id string) (*model.Product, error)
	Count() int
}

type staticProductRepository struct {
	products []model.Product
	byID     map[string]int
}

// NewProductRepository returns the built-in fallback catalog.
func NewProductRepository() ProductRepository {
	return NewStaticProductRepository(fallbackProducts)
}

// NewStaticProductRepository serves the given products in order.
func NewStaticProductRepository(products []model.Product) ProductRepository {
	repo := &staticProductRepository{
		products: make([]model.Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	copy(repo.products, products)
	for i, p := range repo.products {
		repo.byID[p.ID] = i
	}
	return repo
}

func (r *staticProductRepository) FindAll() []model.Product {
	out := make([]model.Product, len(r.products))
	copy(out, r.products)
	return out
}

func (r *staticProductRepository) FindByID(id string) (*model.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	p := r.products[i]
	return &p, nil
}

func (r *staticProductRepository) Count() int {
	return len(r.products)
}

var fallbackProducts = []model.Product{
	{ID: "1", Name: "Classic Wool Sweater", Price: 299.99, Description: "Premium wool sweater with signature compass badge", Image: "https://images.unsplash.com/photo-1576566588028-4147f3842f27?w=300&h=400&fit=crop", Category: "Knitwear"},
	{ID: "2", Name: "Technical Jacket", Price: 799.99, Description: "Water-resistant technical jacket with multiple pockets", Image: "https://images.unsplash.com/photo-1551028719-00167b16eac5?w=300&h=400&fit=crop", Category: "Outerwear"},
	{ID: "3", Name: "Cotton T-Shirt", Price: 89.99, Description: "Essential cotton t-shirt with minimal branding", Image: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=300&h=400&fit=crop", Category: "Basics"},
	{ID: "4", Name: "Cargo Pants", Price: 349.99, Description: "Functional cargo pants with reinforced knees", Image: "https://images.unsplash.com/photo-1624378439575-d8705ad7ae80?w=300&h=400&fit=crop", Category: "Bottoms"},
	{ID: "5", Name: "Hooded Sweatshirt", Price: 249.99, Description: "Heavyweight cotton hooded sweatshirt", Image: "https://images.unsplash.com/photo-1556821840-3a63f95609a7?w=300&h=400&fit=crop", Category: "Knitwear"},
	{ID: "6", Name: "Nylon Overshirt", Price: 449.99, Description: "Lightweight nylon overshirt with button closure", Image: "https://images.unsplash.com/photo-1596755094514-f87e34085b2c?w=300&h=400&fit=crop", Category: "Shirts"},
	{ID: "7", Name: "Knit Beanie", Price: 119.99, Description: "Ribbed knit beanie with logo patch", Image: "https://images.unsplash.com/photo-1576871337622-98d48d1cf531?w=300&h=400&fit=crop", Category: "Accessories"},
	{ID: "8", Name: "Canvas Backpack", Price: 399.99, Description: "Durable canvas backpack with leather details", Image: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=300&h=400&fit=crop", Category: "Accessories"},
	{ID: "9", Name: "Leather Boots", Price: 599.99, Description: "Premium leather boots with durable sole", Image: "https://images.unsplash.com/photo-1608256246200-53e635b5b65f?w=300&h=400&fit=crop", Category: "Footwear"},
	{ID: "10", Name: "Denim Jacket", Price: 399.99, Description: "Classic denim jacket with vintage wash", Image: "https://images.unsplash.com/photo-1576995853123-5a10305d93c0?w=300&h=400&fit=crop", Category: "Outerwear"},
	{ID: "11", Name: "Wool Scarf", Price: 149.99, Description: "Soft wool scarf in neutral tones", Image: "https://images.unsplash.com/photo-1520903920243-00d872a2d1c9?w=300&h=400&fit=crop", Category: "Accessories"},
	{ID: "12", Name: "Chino Pants", Price: 279.99, Description: "Slim fit chino pants in classic khaki", Image: "https://images.unsplash.com/photo-1473966968600-fa801b869a1a?w=300&h=400&fit=crop", Category: "Bottoms"},
	{ID: "13", Name: "Flannel Shirt", Price: 189.99, Description: "Comfortable flannel shirt with button-down collar", Image: "https://images.unsplash.com/photo-1602810318383-e386cc2a3ccf?w=300&h=400&fit=crop", Category: "Shirts"},
	{ID: "14", Name: "Running Sneakers", Price: 449.99, Description: "Lightweight running sneakers with cushioned sole", Image: "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=300&h=400&fit=crop", Category: "Footwear"},
	{ID: "15", Name: "Leather Belt", Price: 99.99, Description: "Genuine leather belt with metal buckle", Image: "https://images.unsplash.com/photo-1624222247344-550fb60583bb?w=300&h=400&fit=crop", Category: "Accessories"},
	{ID: "16", Name: "Polo Shirt", Price: 129.99, Description: "Classic polo shirt in premium cotton", Image: "https://images.unsplash.com/photo-1586790170083-2f9ceadc732d?w=300&h=400&fit=crop", Category: "Basics"},
	{ID: "17", Name: "Winter Coat", Price: 899.99, Description: "Insulated winter coat with hood", Image: "https://images.unsplash.com/photo-1539533018447-63fcce2678e3?w=300&h=400&fit=crop", Category: "Outerwear"},
	{ID: "18", Name: "Dress Shoes", Price: 549.99, Description: "Elegant leather dress shoes", Image: "https://images.unsplash.com/photo-1614252235316-8c857d38b5f4?w=300&h=400&fit=crop", Category: "Footwear"},
	{ID: "19", Name: "Baseball Cap", Price: 79.99, Description: "Adjustable baseball cap with embroidered logo", Image: "https://images.unsplash.com/photo-1588850561407-ed78c282e89b?w=300&h=400&fit=crop", Category: "Accessories"},
	{ID: "20", Name: "Jogger Pants", Price: 199.99, Description: "Comfortable jogger pants with elastic waist", Image: "https://images.unsplash.com/photo-1506629082955-511b1aa562c8?w=300&h=400&fit=crop", Category: "Bottoms"},
}
