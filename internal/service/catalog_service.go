package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bismillahdumoro-svg/zyracafe/internal/dto"
	"github.com/bismillahdumoro-svg/zyracafe/internal/model"
	"github.com/bismillahdumoro-svg/zyracafe/internal/repository"

	"github.com/google/uuid"
)

// ── Categories ────────────────────────────────────────────────────────────────

type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if existing, err := s.repo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, errors.New("kategori dengan nama tersebut sudah ada")
	}
	category := &model.Category{Name: req.Name}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: category.ID.String(), Name: category.Name}, nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.CategoryResponse{ID: c.ID.String(), Name: c.Name})
	}
	return out, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("kategori tidak ditemukan")
	}
	category.Name = req.Name
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: category.ID.String(), Name: category.Name}, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("kategori tidak ditemukan")
	}
	n, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return errors.New("kategori masih memiliki produk dan tidak dapat dihapus")
	}
	return s.repo.Delete(ctx, id)
}

// ── Products ──────────────────────────────────────────────────────────────────

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	List(ctx context.Context) ([]dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product := &model.Product{
		Name:  req.Name,
		SKU:   req.SKU,
		Price: req.Price,
		Stock: req.Stock,
	}
	if req.CategoryID != "" {
		cid, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("categoryId tidak valid: %w", err)
		}
		product.CategoryID = &cid
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func (s *productService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *toProductResponse(&products[i]))
	}
	return out, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produk tidak ditemukan")
	}
	return toProductResponse(product), nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produk tidak ditemukan")
	}
	if req.Name != "" {
		product.Name = req.Name
	}
	if req.SKU != "" {
		product.SKU = req.SKU
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.CategoryID != "" {
		cid, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("categoryId tidak valid: %w", err)
		}
		product.CategoryID = &cid
	}
	// Stock is deliberately NOT updatable here — stock changes go through
	// sales or audited stock adjustments only.
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("produk tidak ditemukan")
	}
	n, err := s.repo.CountTransactionItems(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return errors.New("produk sudah memiliki transaksi dan tidak dapat dihapus")
	}
	return s.repo.Delete(ctx, id)
}

func toProductResponse(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:    p.ID.String(),
		Name:  p.Name,
		SKU:   p.SKU,
		Price: p.Price,
		Stock: p.Stock,
	}
	if p.CategoryID != nil {
		resp.CategoryID = p.CategoryID.String()
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}
