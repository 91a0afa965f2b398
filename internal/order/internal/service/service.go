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
	"errors"
	"fmt"

	"github.com/ecodeclub/eshop/internal/order/internal/domain"
	"github.com/ecodeclub/eshop/internal/order/internal/event"
	"github.com/ecodeclub/eshop/internal/order/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrOrderNotFound 订单不存在或不属于当前用户
	ErrOrderNotFound = repository.ErrOrderNotFound
	// ErrInvalidOrderStatus 订单当前状态不允许本次操作
	ErrInvalidOrderStatus = errors.New("订单状态非法")
	// ErrIncompleteOrder 缺少订单项、总价或收货地址
	ErrIncompleteOrder = errors.New("订单信息不完整")
	// ErrTotalAmountMismatch 请求总价与订单项之和不一致
	ErrTotalAmountMismatch = errors.New("订单总价校验失败")
)

type Service interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	FindOrderByUIDAndID(ctx context.Context, uid, id int64) (domain.Order, error)
	FindOrderByUIDAndSN(ctx context.Context, uid int64, sn string) (domain.Order, error)
	ListOrders(ctx context.Context, offset, limit int, uid int64) ([]domain.Order, int64, error)
	ListAllOrders(ctx context.Context, offset, limit int, f domain.AdminFilter) ([]domain.Order, int64, error)
	// UpdateOrderStatus 按状态流转表更新订单状态, 非法流转返回ErrInvalidOrderStatus
	UpdateOrderStatus(ctx context.Context, id int64, newStatus domain.OrderStatus) error
	// OverrideOrderStatus 管理员越过流转表强制设置状态, 记录操作者
	OverrideOrderStatus(ctx context.Context, id int64, newStatus domain.OrderStatus, operator int64) error
	// ConfirmOrder 支付成功后把订单从pending置为confirmed,
	// 使用比较并交换, 并发支付只有一个能成功
	ConfirmOrder(ctx context.Context, id int64) error
	// CancelPaidOrder 退款成功后把订单置为cancelled
	CancelPaidOrder(ctx context.Context, id int64) error
}

func NewService(repo repository.OrderRepository, producer event.OrderEventProducer) Service {
	return &service{
		repo:     repo,
		producer: producer,
		logger:   elog.DefaultLogger,
	}
}

type service struct {
	repo     repository.OrderRepository
	producer event.OrderEventProducer
	logger   *elog.Component
}

func (s *service) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if len(order.Items) == 0 || order.TotalAmount <= 0 || order.ShippingAddress.IsEmpty() {
		return domain.Order{}, fmt.Errorf("%w", ErrIncompleteOrder)
	}
	var total int64
	for _, item := range order.Items {
		total += item.Price * item.Quantity
	}
	if total != order.TotalAmount {
		return domain.Order{}, fmt.Errorf("%w: 期望%d, 实际%d", ErrTotalAmountMismatch, total, order.TotalAmount)
	}
	order.Status = domain.StatusPending
	if order.ShippingMethod == "" {
		order.ShippingMethod = "standard"
	}
	return s.repo.CreateOrder(ctx, order)
}

func (s *service) FindOrderByUIDAndID(ctx context.Context, uid, id int64) (domain.Order, error) {
	return s.repo.FindByUIDAndID(ctx, uid, id)
}

func (s *service) FindOrderByUIDAndSN(ctx context.Context, uid int64, sn string) (domain.Order, error) {
	return s.repo.FindByUIDAndSN(ctx, uid, sn)
}

func (s *service) ListOrders(ctx context.Context, offset, limit int, uid int64) ([]domain.Order, int64, error) {
	var (
		eg    errgroup.Group
		os    []domain.Order
		total int64
	)
	eg.Go(func() error {
		var err error
		os, err = s.repo.ListByUID(ctx, offset, limit, uid)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalByUID(ctx, uid)
		return err
	})
	return os, total, eg.Wait()
}

func (s *service) ListAllOrders(ctx context.Context, offset, limit int, f domain.AdminFilter) ([]domain.Order, int64, error) {
	var (
		eg    errgroup.Group
		os    []domain.Order
		total int64
	)
	eg.Go(func() error {
		var err error
		os, err = s.repo.ListAll(ctx, offset, limit, f)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalAll(ctx, f)
		return err
	})
	return os, total, eg.Wait()
}

func (s *service) UpdateOrderStatus(ctx context.Context, id int64, newStatus domain.OrderStatus) error {
	if !newStatus.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidOrderStatus, newStatus)
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !order.Status.CanTransitionTo(newStatus) {
		return fmt.Errorf("%w: %s不允许流转到%s", ErrInvalidOrderStatus, order.Status, newStatus)
	}
	// 基于读到的旧状态做比较并交换, 并发修改时只有一个能成功
	ok, err := s.repo.CompareAndSetStatus(ctx, id, order.Status, newStatus)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: 订单状态已被并发修改", ErrInvalidOrderStatus)
	}
	s.produceStatusChanged(ctx, order, newStatus, 0)
	return nil
}

func (s *service) OverrideOrderStatus(ctx context.Context, id int64, newStatus domain.OrderStatus, operator int64) error {
	if !newStatus.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidOrderStatus, newStatus)
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return err
	}
	s.logger.Warn("管理员覆写订单状态",
		elog.Int64("order_id", id),
		elog.Int64("operator", operator),
		elog.String("old_status", order.Status.String()),
		elog.String("new_status", newStatus.String()))
	s.produceStatusChanged(ctx, order, newStatus, operator)
	return nil
}

func (s *service) ConfirmOrder(ctx context.Context, id int64) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	ok, err := s.repo.CompareAndSetStatus(ctx, id, domain.StatusPending, domain.StatusConfirmed)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: 订单状态不允许支付", ErrInvalidOrderStatus)
	}
	s.produceStatusChanged(ctx, order, domain.StatusConfirmed, 0)
	return nil
}

func (s *service) CancelPaidOrder(ctx context.Context, id int64) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status == domain.StatusCancelled {
		return fmt.Errorf("%w: 订单已取消", ErrInvalidOrderStatus)
	}
	// 基于读到的旧状态做比较并交换, 并发退款只有一个能取消成功
	ok, err := s.repo.CompareAndSetStatus(ctx, id, order.Status, domain.StatusCancelled)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: 订单已取消", ErrInvalidOrderStatus)
	}
	s.produceStatusChanged(ctx, order, domain.StatusCancelled, 0)
	return nil
}

func (s *service) produceStatusChanged(ctx context.Context, order domain.Order, newStatus domain.OrderStatus, operator int64) {
	evt := event.OrderStatusChangedEvent{
		OrderSN:   order.SN,
		BuyerID:   order.BuyerID,
		OldStatus: order.Status.String(),
		NewStatus: newStatus.String(),
		Operator:  operator,
	}
	if err := s.producer.Produce(ctx, evt); err != nil {
		s.logger.Warn("发送订单状态变更事件失败",
			elog.FieldErr(err),
			elog.String("order_sn", order.SN),
			elog.String("new_status", newStatus.String()))
	}
}
