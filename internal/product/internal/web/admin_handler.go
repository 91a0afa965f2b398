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
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/eshop/internal/product/internal/domain"
	"github.com/ecodeclub/eshop/internal/product/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/products")
	g.POST("/save", ginx.B[SaveProductReq](h.SaveProduct))
	g.POST("/list", ginx.B[AdminListProductsReq](h.ListProducts))
}

// SaveProduct 创建或更新商品, ID为0表示创建
func (h *AdminHandler) SaveProduct(ctx *ginx.Context, req SaveProductReq) (ginx.Result, error) {
	if req.Product.Name == "" || req.Product.Price <= 0 || req.Product.Stock < 0 {
		return invalidInputResult, fmt.Errorf("商品信息非法: name=%q", req.Product.Name)
	}
	id, err := h.svc.Save(ctx.Request.Context(), domain.Product{
		ID:            req.Product.ID,
		SN:            req.Product.SN,
		Name:          req.Product.Name,
		Description:   req.Product.Description,
		Price:         req.Product.Price,
		OriginalPrice: req.Product.OriginalPrice,
		Category:      req.Product.Category,
		Brand:         req.Product.Brand,
		Image:         req.Product.Image,
		Stock:         req.Product.Stock,
		IsActive:      req.Product.IsActive,
	})
	if err != nil {
		return systemErrorResult, fmt.Errorf("保存商品失败: %w", err)
	}
	return ginx.Result{Data: SaveProductResp{ID: id}}, nil
}

func (h *AdminHandler) ListProducts(ctx *ginx.Context, req AdminListProductsReq) (ginx.Result, error) {
	ps, total, err := h.svc.List(ctx.Request.Context(), req.Category, req.Keyword, req.Offset, req.Limit)
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
