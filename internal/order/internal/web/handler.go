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
	"context"
	"errors"
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/eshop/internal/order/internal/domain"
	"github.com/ecodeclub/eshop/internal/order/internal/service"
	"github.com/ecodeclub/eshop/internal/pkg/sequencenumber"
	"github.com/ecodeclub/eshop/internal/product"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc         service.Service
	productSvc  product.Service
	snGenerator *sequencenumber.Generator
}

func NewHandler(svc service.Service, productSvc product.Service, snGenerator *sequencenumber.Generator) *Handler {
	return &Handler{svc: svc, productSvc: productSvc, snGenerator: snGenerator}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/orders")
	g.POST("", ginx.BS[CreateOrderReq](h.CreateOrder))
	g.POST("/list", ginx.BS[ListOrdersReq](h.ListOrders))
	g.POST("/detail", ginx.BS[RetrieveOrderDetailReq](h.RetrieveOrderDetail))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

// CreateOrder 创建订单, 商品名称和价格以商品库为准,
// 客户端传入的总价仅用于校验
func (h *Handler) CreateOrder(ctx *ginx.Context, req CreateOrderReq, sess session.Session) (ginx.Result, error) {
	items, err := h.getOrderItems(ctx.Request.Context(), req.Items)
	if err != nil {
		return invalidItemResult, fmt.Errorf("构建订单项失败: %w", err)
	}
	order, err := h.svc.CreateOrder(ctx.Request.Context(), domain.Order{
		SN:              h.snGenerator.Generate(),
		BuyerID:         sess.Claims().Uid,
		TotalAmount:     req.TotalAmount,
		Items:           items,
		ShippingAddress: toAddressDomain(req.ShippingAddress),
		ShippingMethod:  req.ShippingMethod,
		Notes:           req.Notes,
	})
	switch {
	case errors.Is(err, service.ErrIncompleteOrder):
		return incompleteOrderResult, fmt.Errorf("订单信息不完整: %w", err)
	case errors.Is(err, service.ErrTotalAmountMismatch):
		return invalidTotalResult, fmt.Errorf("订单总价校验失败: %w", err)
	case err != nil:
		return systemErrorResult, fmt.Errorf("创建订单失败: %w", err)
	}
	return ginx.Result{
		Data: CreateOrderResp{
			Order: toOrderVO(order),
		},
	}, nil
}

func (h *Handler) getOrderItems(ctx context.Context, items []OrderItem) ([]domain.OrderItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("商品信息非法")
	}
	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		p, err := h.productSvc.FindByID(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("商品ID非法: %w", err)
		}
		if it.Quantity < 1 || it.Quantity > p.Stock {
			return nil, fmt.Errorf("商品数量非法")
		}
		orderItems = append(orderItems, domain.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
			Image:     p.Image,
		})
	}
	return orderItems, nil
}

// ListOrders 分页查询用户订单
func (h *Handler) ListOrders(ctx *ginx.Context, req ListOrdersReq, sess session.Session) (ginx.Result, error) {
	orders, total, err := h.svc.ListOrders(ctx.Request.Context(), req.Offset, req.Limit, sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
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

// RetrieveOrderDetail 查看订单详情, 只能查自己的订单
func (h *Handler) RetrieveOrderDetail(ctx *ginx.Context, req RetrieveOrderDetailReq, sess session.Session) (ginx.Result, error) {
	order, err := h.svc.FindOrderByUIDAndID(ctx.Request.Context(), sess.Claims().Uid, req.OrderID)
	if errors.Is(err, service.ErrOrderNotFound) {
		return notFoundResult, fmt.Errorf("订单未找到: %w", err)
	}
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询订单失败: %w", err)
	}
	return ginx.Result{
		Data: RetrieveOrderDetailResp{
			Order: toOrderVO(order),
		},
	}, nil
}

func toOrderVO(order domain.Order) Order {
	return Order{
		ID:          order.ID,
		SN:          order.SN,
		TotalAmount: order.TotalAmount,
		Status:      order.Status.String(),
		Items: slice.Map(order.Items, func(idx int, src domain.OrderItem) OrderItem {
			return OrderItem{
				ProductID: src.ProductID,
				Name:      src.Name,
				Price:     src.Price,
				Quantity:  src.Quantity,
				Image:     src.Image,
			}
		}),
		ShippingAddress: ShippingAddress{
			FirstName: order.ShippingAddress.FirstName,
			LastName:  order.ShippingAddress.LastName,
			Phone:     order.ShippingAddress.Phone,
			Street:    order.ShippingAddress.Street,
			City:      order.ShippingAddress.City,
			State:     order.ShippingAddress.State,
			ZipCode:   order.ShippingAddress.ZipCode,
			Country:   order.ShippingAddress.Country,
		},
		ShippingMethod: order.ShippingMethod,
		ShippingCost:   order.ShippingCost,
		Notes:          order.Notes,
		Ctime:          order.Ctime,
		Utime:          order.Utime,
	}
}

func toAddressDomain(addr ShippingAddress) domain.ShippingAddress {
	return domain.ShippingAddress{
		FirstName: addr.FirstName,
		LastName:  addr.LastName,
		Phone:     addr.Phone,
		Street:    addr.Street,
		City:      addr.City,
		State:     addr.State,
		ZipCode:   addr.ZipCode,
		Country:   addr.Country,
	}
}
