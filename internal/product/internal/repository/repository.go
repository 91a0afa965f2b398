// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package repository

import (
	"context"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/eshop/internal/product/internal/domain"
	"github.com/ecodeclub/eshop/internal/product/internal/repository/dao"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (domain.Product, error)
	FindBySN(ctx context.Context, sn string) (domain.Product, error)
	List(ctx context.Context, category, keyword string, offset, limit int) ([]domain.Product, error)
	Total(ctx context.Context, category, keyword string) (int64, error)
	Save(ctx context.Context, p domain.Product) (int64, error)
}

func NewProductRepository(d dao.ProductDAO) ProductRepository {
	return &productRepository{d: d}
}

type productRepository struct {
	d dao.ProductDAO
}

func (p *productRepository) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	res, err := p.d.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	return p.toDomain(res), nil
}

func (p *productRepository) FindBySN(ctx context.Context, sn string) (domain.Product, error) {
	res, err := p.d.FindBySN(ctx, sn)
	if err != nil {
		return domain.Product{}, err
	}
	return p.toDomain(res), nil
}

func (p *productRepository) List(ctx context.Context, category, keyword string, offset, limit int) ([]domain.Product, error) {
	res, err := p.d.List(ctx, category, keyword, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(res, func(idx int, src dao.Product) domain.Product {
		return p.toDomain(src)
	}), nil
}

func (p *productRepository) Total(ctx context.Context, category, keyword string) (int64, error) {
	return p.d.Count(ctx, category, keyword)
}

func (p *productRepository) Save(ctx context.Context, product domain.Product) (int64, error) {
	return p.d.Save(ctx, p.toEntity(product))
}

func (p *productRepository) toDomain(product dao.Product) domain.Product {
	return domain.Product{
		ID:            product.Id,
		SN:            product.SN,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		Category:      product.Category,
		Brand:         product.Brand,
		Image:         product.Image,
		Stock:         product.Stock,
		IsActive:      product.IsActive,
		Ctime:         product.Ctime,
		Utime:         product.Utime,
	}
}

func (p *productRepository) toEntity(product domain.Product) dao.Product {
	return dao.Product{
		Id:            product.ID,
		SN:            product.SN,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		Category:      product.Category,
		Brand:         product.Brand,
		Image:         product.Image,
		Stock:         product.Stock,
		IsActive:      product.IsActive,
	}
}
