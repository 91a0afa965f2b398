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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/eshop/internal/order/internal/domain"
	"github.com/ecodeclub/eshop/internal/order/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &AdminHandler{}

// AdminHandler 管理端订单接口
type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/orders")
	g.POST("/list", ginx.B[AdminListOrdersReq](h.ListAllOrders))
	g.POST("/status", ginx.B[UpdateOrderStatusReq](h.UpdateOrderStatus))
	g.POST("/status/override", ginx.BS[OverrideOrderStatusReq](h.OverrideOrderStatus))
}

func (h *AdminHandler) PublicRoutes(_ *gin.Engine) {}

// ListAllOrders 查询全部订单, 支持状态和创建时间过滤
func (h *AdminHandler) ListAllOrders(ctx *ginx.Context, req AdminListOrdersReq) (ginx.Result, error) {
	f := domain.AdminFilter{
		Status:     domain.OrderStatus(req.Status),
		StartCtime: req.StartCtime,
		EndCtime:   req.EndCtime,
	}
	if req.Status != "" && !f.Status.Valid() {
		return invalidStatusResult, fmt.Errorf("订单状态非法: %s", req.Status)
	}
	orders, total, err := h.svc.ListAllOrders(ctx.Request.Context(), req.Offset, req.Limit, f)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询订单列表失败: %w", err)
	}
	return ginx.Result{
		Data: ListOrdersResp{
			Total: total,
			Orders: slice.Map(orders, func(idx int, src domain.Order) Order {
				return toOrderVO(src)
			}),
		},
	}, nil
}

// UpdateOrderStatus 按状态流转表更新订单状态
func (h *AdminHandler) UpdateOrderStatus(ctx *ginx.Context, req UpdateOrderStatusReq) (ginx.Result, error) {
	err := h.svc.UpdateOrderStatus(ctx.Request.Context(), req.OrderID, domain.OrderStatus(req.Status))
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return notFoundResult, fmt.Errorf("订单未找到: %w", err)
	case errors.Is(err, service.ErrInvalidOrderStatus):
		return invalidStatusResult, fmt.Errorf("更新订单状态失败: %w", err)
	case err != nil:
		return systemErrorResult, fmt.Errorf("更新订单状态失败: %w", err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

// OverrideOrderStatus 越过流转表强制设置订单状态, 记录操作者
func (h *AdminHandler) OverrideOrderStatus(ctx *ginx.Context, req OverrideOrderStatusReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.OverrideOrderStatus(ctx.Request.Context(), req.OrderID, domain.OrderStatus(req.Status), sess.Claims().Uid)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return notFoundResult, fmt.Errorf("订单未找到: %w", err)
	case errors.Is(err, service.ErrInvalidOrderStatus):
		return invalidStatusResult, fmt.Errorf("覆写订单状态失败: %w", err)
	case err != nil:
		return systemErrorResult, fmt.Errorf("覆写订单状态失败: %w", err)
	}
	return ginx.Result{Msg: "OK"}, nil
}
