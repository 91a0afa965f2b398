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

package web

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/eshop/internal/product/internal/domain"
	"github.com/ecodeclub/eshop/internal/product/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/products")
	g.GET("", ginx.W(h.ListProducts))
	g.GET("/:id", ginx.W(h.RetrieveProductDetail))
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

// ListProducts 商品列表, 支持类目和关键字过滤
func (h *Handler) ListProducts(ctx *ginx.Context) (ginx.Result, error) {
	category := ctx.Query("category").StringOrDefault("")
	keyword := ctx.Query("search").StringOrDefault("")
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	ps, total, err := h.svc.List(ctx.Request.Context(), category, keyword, offset, limit)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询商品列表失败: %w", err)
	}
	return ginx.Result{
		Data: ListProductsResp{
			Total: total,
			Products: slice.Map(ps, func(idx int, src domain.Product) Product {
				return newProduct(src)
			}),
		},
	}, nil
}

func (h *Handler) RetrieveProductDetail(ctx *ginx.Context) (ginx.Result, error) {
	id, err := ctx.Param("id").AsInt64()
	if err != nil {
		return notFoundResult, fmt.Errorf("商品ID非法: %w", err)
	}
	p, err := h.svc.FindByID(ctx.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundResult, fmt.Errorf("商品未找到: %w", err)
	}
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询商品失败: %w", err)
	}
	return ginx.Result{Data: newProduct(p)}, nil
}

func newProduct(p domain.Product) Product {
	return Product{
		ID:            p.ID,
		SN:            p.SN,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Category:      p.Category,
		Brand:         p.Brand,
		Image:         p.Image,
		Stock:         p.Stock,
		IsActive:      p.IsActive,
	}
}
