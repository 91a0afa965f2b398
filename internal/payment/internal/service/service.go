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

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/eshop/internal/order"
	"github.com/ecodeclub/eshop/internal/payment/internal/domain"
	"github.com/ecodeclub/eshop/internal/payment/internal/event"
	"github.com/ecodeclub/eshop/internal/payment/internal/gateway"
	"github.com/ecodeclub/eshop/internal/payment/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"
)

var (
	// ErrOrderNotFound 订单不存在或不属于当前用户
	ErrOrderNotFound = order.ErrOrderNotFound
	// ErrInvalidPaymentMethod 不支持的支付方式
	ErrInvalidPaymentMethod = errors.New("支付方式非法")
	// ErrOrderNotPayable 订单不处于待支付状态
	ErrOrderNotPayable = errors.New("订单状态不允许支付")
	// ErrRefundNotAllowed 订单未完成支付, 无法退款
	ErrRefundNotAllowed = errors.New("订单未支付，无法退款")
	// ErrOrderCancelled 订单已取消, 不能重复退款
	ErrOrderCancelled = errors.New("订单已取消")
	// ErrDuplicateRequest 相同请求ID的重复提交
	ErrDuplicateRequest = errors.New("重复请求")
)

//go:generate mockgen -source=./service.go -package=paymentmocks -destination=../../mocks/payment.mock.go Service
type Service interface {
	// Pay 对待支付订单发起扣款, 成功后订单置为confirmed并落支付记录.
	// requestID相同的重复提交只有第一次会扣款
	Pay(ctx context.Context, uid, orderID int64, method domain.Method, requestID string) (domain.Payment, error)
	// PaymentStatus 查询订单的支付状态, 尚未支付时返回pending快照
	PaymentStatus(ctx context.Context, uid, orderID int64) (domain.Payment, error)
	// Refund 对已完成支付的订单退款, 订单随之取消
	Refund(ctx context.Context, uid, orderID int64, reason string) (domain.Payment, error)
	Methods(ctx context.Context) []domain.MethodInfo
}

func NewService(repo repository.PaymentRepository,
	orderSvc order.Service,
	gw gateway.Gateway,
	producer event.PaymentEventProducer,
	cache ecache.Cache) Service {
	return &service{
		repo:     repo,
		orderSvc: orderSvc,
		gateway:  gw,
		producer: producer,
		cache:    cache,
		logger:   elog.DefaultLogger,
	}
}

type service struct {
	repo     repository.PaymentRepository
	orderSvc order.Service
	gateway  gateway.Gateway
	producer event.PaymentEventProducer
	cache    ecache.Cache
	logger   *elog.Component
}

func (s *service) Pay(ctx context.Context, uid, orderID int64, method domain.Method, requestID string) (domain.Payment, error) {
	if !method.Valid() {
		return domain.Payment{}, fmt.Errorf("%w: %s", ErrInvalidPaymentMethod, method)
	}
	if err := s.checkRequestID(ctx, requestID); err != nil {
		return domain.Payment{}, err
	}
	o, err := s.orderSvc.FindOrderByUIDAndID(ctx, uid, orderID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("查找订单失败: %w", err)
	}
	// 先校验订单状态再走网关, 不可支付的订单不能产生扣款
	if o.Status != order.StatusPending {
		return domain.Payment{}, fmt.Errorf("%w: 当前状态%s", ErrOrderNotPayable, o.Status)
	}

	res, err := s.gateway.Capture(ctx, gateway.CaptureRequest{
		OrderSN:        o.SN,
		Amount:         o.TotalAmount,
		Method:         method,
		IdempotencyKey: requestID,
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("网关扣款失败: %w", err)
	}

	// 先落支付记录, uniq_order_id唯一索引保证并发支付只有一个能写入
	pmt, err := s.repo.CreatePayment(ctx, domain.Payment{
		SN:      shortuuid.New(),
		OrderID: o.ID,
		OrderSN: o.SN,
		PayerID: uid,
		Amount:  o.TotalAmount,
		Method:  method,
		Status:  domain.StatusCompleted,
		TxnID:   res.TxnID,
		PaidAt:  res.PaidAt,
	})
	if errors.Is(err, repository.ErrDuplicatePayment) {
		return domain.Payment{}, fmt.Errorf("%w: %s", ErrOrderNotPayable, o.SN)
	}
	if err != nil {
		return domain.Payment{}, fmt.Errorf("保存支付记录失败: %w", err)
	}

	// 确认失败不回滚支付记录, 事件照发, 订单侧消费对账补偿
	if err = s.orderSvc.ConfirmOrder(ctx, o.ID); err != nil {
		s.logger.Warn("确认订单失败, 等待对账补偿",
			elog.FieldErr(err),
			elog.String("order_sn", o.SN))
	}
	s.producePaymentEvent(ctx, pmt)
	return pmt, nil
}

func (s *service) checkRequestID(ctx context.Context, requestID string) error {
	if requestID == "" {
		return fmt.Errorf("%w: 请求ID为空", ErrDuplicateRequest)
	}
	key := fmt.Sprintf("payment:create:%s", requestID)
	val := s.cache.Get(ctx, key)
	if !val.KeyNotFound() {
		return fmt.Errorf("%w: %s", ErrDuplicateRequest, requestID)
	}
	if err := s.cache.Set(ctx, key, requestID, 0); err != nil {
		return fmt.Errorf("缓存请求ID失败: %w", err)
	}
	return nil
}

func (s *service) PaymentStatus(ctx context.Context, uid, orderID int64) (domain.Payment, error) {
	o, err := s.orderSvc.FindOrderByUIDAndID(ctx, uid, orderID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("查找订单失败: %w", err)
	}
	pmt, err := s.repo.FindByOrderID(ctx, o.ID)
	if errors.Is(err, repository.ErrPaymentNotFound) {
		// 尚未发起支付
		return domain.Payment{
			OrderID: o.ID,
			OrderSN: o.SN,
			PayerID: uid,
			Amount:  o.TotalAmount,
			Status:  domain.StatusPending,
		}, nil
	}
	return pmt, err
}

func (s *service) Refund(ctx context.Context, uid, orderID int64, reason string) (domain.Payment, error) {
	o, err := s.orderSvc.FindOrderByUIDAndID(ctx, uid, orderID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("查找订单失败: %w", err)
	}
	if o.Status == order.StatusCancelled {
		return domain.Payment{}, fmt.Errorf("%w: %s", ErrOrderCancelled, o.SN)
	}
	pmt, err := s.repo.FindByOrderID(ctx, o.ID)
	if errors.Is(err, repository.ErrPaymentNotFound) {
		return domain.Payment{}, fmt.Errorf("%w: %s", ErrRefundNotAllowed, o.SN)
	}
	if err != nil {
		return domain.Payment{}, fmt.Errorf("查找支付记录失败: %w", err)
	}
	if pmt.Status != domain.StatusCompleted {
		return domain.Payment{}, fmt.Errorf("%w: 当前支付状态%s", ErrRefundNotAllowed, pmt.Status)
	}
	if reason == "" {
		reason = "客户取消"
	}

	// 先用比较并交换取消订单, 并发退款只有一个能走到网关
	err = s.orderSvc.CancelPaidOrder(ctx, o.ID)
	if errors.Is(err, order.ErrInvalidOrderStatus) {
		return domain.Payment{}, fmt.Errorf("%w: %s", ErrOrderCancelled, o.SN)
	}
	if err != nil {
		return domain.Payment{}, fmt.Errorf("取消订单失败: %w", err)
	}

	res, err := s.gateway.Refund(ctx, gateway.RefundRequest{
		TxnID:  pmt.TxnID,
		Amount: pmt.Amount,
		Reason: reason,
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("网关退款失败: %w", err)
	}
	if err = s.repo.MarkRefunded(ctx, pmt.ID, res.RefundID, reason); err != nil {
		return domain.Payment{}, fmt.Errorf("更新支付记录失败: %w", err)
	}

	pmt.Status = domain.StatusRefunded
	pmt.RefundID = res.RefundID
	pmt.RefundReason = reason
	s.producePaymentEvent(ctx, pmt)
	return pmt, nil
}

func (s *service) Methods(_ context.Context) []domain.MethodInfo {
	return []domain.MethodInfo{
		{ID: domain.MethodAlipay, Name: "支付宝", Desc: "支付宝扫码或余额支付", Icon: "/images/alipay.png", Enabled: true},
		{ID: domain.MethodWechat, Name: "微信支付", Desc: "微信扫码支付", Icon: "/images/wechat.png", Enabled: true},
		{ID: domain.MethodCreditCard, Name: "信用卡", Desc: "支持Visa/MasterCard/银联", Icon: "/images/credit-card.png", Enabled: true},
		{ID: domain.MethodBankTransfer, Name: "银行转账", Desc: "对公转账, 1-3个工作日到账", Icon: "/images/bank.png", Enabled: true},
	}
}

func (s *service) producePaymentEvent(ctx context.Context, pmt domain.Payment) {
	evt := event.PaymentEvent{
		OrderID: pmt.OrderID,
		OrderSN: pmt.OrderSN,
		PayerID: pmt.PayerID,
		TxnID:   pmt.TxnID,
		Status:  pmt.Status.String(),
		Amount:  pmt.Amount,
		PaidAt:  pmt.PaidAt,
	}
	if err := s.producer.Produce(ctx, evt); err != nil {
		s.logger.Warn("发送支付事件失败",
			elog.FieldErr(err),
			elog.String("order_sn", pmt.OrderSN),
			elog.String("status", pmt.Status.String()))
	}
}
