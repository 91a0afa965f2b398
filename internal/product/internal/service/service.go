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

package service

import (
	"context"

	"github.com/ecodeclub/eshop/internal/product/internal/domain"
	"github.com/ecodeclub/eshop/internal/product/internal/repository"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=./service.go -package=productmocks -destination=../../mocks/product.mock.go Service
type Service interface {
	FindByID(ctx context.Context, id int64) (domain.Product, error)
	FindBySN(ctx context.Context, sn string) (domain.Product, error)
	List(ctx context.Context, category, keyword string, offset, limit int) ([]domain.Product, int64, error)
	Save(ctx context.Context, p domain.Product) (int64, error)
}

func NewService(repo repository.ProductRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.ProductRepository
}

func (s *service) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) FindBySN(ctx context.Context, sn string) (domain.Product, error) {
	return s.repo.FindBySN(ctx, sn)
}

func (s *service) List(ctx context.Context, category, keyword string, offset, limit int) ([]domain.Product, int64, error) {
	var (
		eg    errgroup.Group
		ps    []domain.Product
		total int64
	)
	eg.Go(func() error {
		var err error
		ps, err = s.repo.List(ctx, category, keyword, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.Total(ctx, category, keyword)
		return err
	})
	return ps, total, eg.Wait()
}

func (s *service) Save(ctx context.Context, p domain.Product) (int64, error) {
	return s.repo.Save(ctx, p)
}
