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
	"errors"
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/eshop/internal/order/internal/domain"
	"github.com/ecodeclub/eshop/internal/order/internal/repository/dao"
	"gorm.io/gorm"
)

// ErrOrderNotFound 订单不存在或不属于当前用户, 两种情况对外不可区分
var ErrOrderNotFound = errors.New("订单不存在")

type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	FindByID(ctx context.Context, id int64) (domain.Order, error)
	FindByUIDAndID(ctx context.Context, uid, id int64) (domain.Order, error)
	FindByUIDAndSN(ctx context.Context, uid int64, sn string) (domain.Order, error)
	ListByUID(ctx context.Context, offset, limit int, uid int64) ([]domain.Order, error)
	TotalByUID(ctx context.Context, uid int64) (int64, error)
	ListAll(ctx context.Context, offset, limit int, f domain.AdminFilter) ([]domain.Order, error)
	TotalAll(ctx context.Context, f domain.AdminFilter) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	// CompareAndSetStatus 返回false表示订单当前状态已不是from
	CompareAndSetStatus(ctx context.Context, id int64, from, to domain.OrderStatus) (bool, error)
}

func NewRepository(d dao.OrderDAO) OrderRepository {
	return &orderRepository{d: d}
}

type orderRepository struct {
	d dao.OrderDAO
}

func (o *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	oid, err := o.d.CreateOrder(ctx, o.toOrderEntity(order), o.toOrderItemEntities(order.Items))
	if err != nil {
		return domain.Order{}, fmt.Errorf("创建订单失败: %w", err)
	}
	order.ID = oid
	return order, nil
}

func (o *orderRepository) FindByID(ctx context.Context, id int64) (domain.Order, error) {
	order, err := o.d.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, o.wrapNotFound(err)
	}
	return o.attachItems(ctx, order)
}

func (o *orderRepository) FindByUIDAndID(ctx context.Context, uid, id int64) (domain.Order, error) {
	order, err := o.d.FindByUIDAndID(ctx, uid, id)
	if err != nil {
		return domain.Order{}, o.wrapNotFound(err)
	}
	return o.attachItems(ctx, order)
}

func (o *orderRepository) FindByUIDAndSN(ctx context.Context, uid int64, sn string) (domain.Order, error) {
	order, err := o.d.FindByUIDAndSN(ctx, uid, sn)
	if err != nil {
		return domain.Order{}, o.wrapNotFound(err)
	}
	return o.attachItems(ctx, order)
}

func (o *orderRepository) attachItems(ctx context.Context, order dao.Order) (domain.Order, error) {
	items, err := o.d.FindItemsByOrderID(ctx, order.Id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("查找订单项失败: %w", err)
	}
	return o.toOrderDomain(order, items), nil
}

func (o *orderRepository) wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", ErrOrderNotFound, err)
	}
	return err
}

func (o *orderRepository) ListByUID(ctx context.Context, offset, limit int, uid int64) ([]domain.Order, error) {
	os, err := o.d.List(ctx, offset, limit, uid)
	if err != nil {
		return nil, err
	}
	return o.toOrderDomains(ctx, os)
}

func (o *orderRepository) TotalByUID(ctx context.Context, uid int64) (int64, error) {
	return o.d.Count(ctx, uid)
}

func (o *orderRepository) ListAll(ctx context.Context, offset, limit int, f domain.AdminFilter) ([]domain.Order, error) {
	os, err := o.d.ListAll(ctx, offset, limit, f.Status.String(), f.StartCtime, f.EndCtime)
	if err != nil {
		return nil, err
	}
	return o.toOrderDomains(ctx, os)
}

func (o *orderRepository) TotalAll(ctx context.Context, f domain.AdminFilter) (int64, error) {
	return o.d.CountAll(ctx, f.Status.String(), f.StartCtime, f.EndCtime)
}

func (o *orderRepository) toOrderDomains(ctx context.Context, os []dao.Order) ([]domain.Order, error) {
	res := make([]domain.Order, 0, len(os))
	for _, src := range os {
		order, err := o.attachItems(ctx, src)
		if err != nil {
			return nil, err
		}
		res = append(res, order)
	}
	return res, nil
}

func (o *orderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	return o.d.UpdateStatus(ctx, id, status.String())
}

func (o *orderRepository) CompareAndSetStatus(ctx context.Context, id int64, from, to domain.OrderStatus) (bool, error) {
	rows, err := o.d.UpdateStatusIf(ctx, id, from.String(), to.String())
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (o *orderRepository) toOrderEntity(order domain.Order) dao.Order {
	return dao.Order{
		Id:          order.ID,
		SN:          order.SN,
		BuyerId:     order.BuyerID,
		TotalAmount: order.TotalAmount,
		Status:      order.Status.String(),
		ShippingAddress: dao.ShippingAddress{
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
	}
}

func (o *orderRepository) toOrderItemEntities(items []domain.OrderItem) []dao.OrderItem {
	return slice.Map(items, func(idx int, src domain.OrderItem) dao.OrderItem {
		return dao.OrderItem{
			ProductId: src.ProductID,
			Name:      src.Name,
			Price:     src.Price,
			Quantity:  src.Quantity,
			Image:     src.Image,
		}
	})
}

func (o *orderRepository) toOrderDomain(order dao.Order, items []dao.OrderItem) domain.Order {
	return domain.Order{
		ID:          order.Id,
		SN:          order.SN,
		BuyerID:     order.BuyerId,
		TotalAmount: order.TotalAmount,
		Status:      domain.OrderStatus(order.Status),
		Items: slice.Map(items, func(idx int, src dao.OrderItem) domain.OrderItem {
			return domain.OrderItem{
				OrderID:   src.OrderId,
				ProductID: src.ProductId,
				Name:      src.Name,
				Price:     src.Price,
				Quantity:  src.Quantity,
				Image:     src.Image,
			}
		}),
		ShippingAddress: domain.ShippingAddress{
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
