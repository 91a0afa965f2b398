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

	"github.com/ecodeclub/eshop/internal/payment/internal/domain"
	"github.com/ecodeclub/eshop/internal/payment/internal/repository/dao"
	"gorm.io/gorm"
)

var (
	// ErrPaymentNotFound 订单尚无支付记录
	ErrPaymentNotFound = errors.New("支付记录不存在")
	// ErrDuplicatePayment 订单已存在支付记录
	ErrDuplicatePayment = dao.ErrDuplicatePayment
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, pmt domain.Payment) (domain.Payment, error)
	FindByOrderID(ctx context.Context, orderID int64) (domain.Payment, error)
	FindBySN(ctx context.Context, sn string) (domain.Payment, error)
	MarkRefunded(ctx context.Context, id int64, refundID, reason string) error
}

func NewRepository(d dao.PaymentDAO) PaymentRepository {
	return &paymentRepository{dao: d}
}

type paymentRepository struct {
	dao dao.PaymentDAO
}

func (p *paymentRepository) CreatePayment(ctx context.Context, pmt domain.Payment) (domain.Payment, error) {
	entity, err := p.dao.Insert(ctx, p.toEntity(pmt))
	if err != nil {
		return domain.Payment{}, err
	}
	return p.toDomain(entity), nil
}

func (p *paymentRepository) FindByOrderID(ctx context.Context, orderID int64) (domain.Payment, error) {
	entity, err := p.dao.FindByOrderID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Payment{}, ErrPaymentNotFound
	}
	if err != nil {
		return domain.Payment{}, err
	}
	return p.toDomain(entity), nil
}

func (p *paymentRepository) FindBySN(ctx context.Context, sn string) (domain.Payment, error) {
	entity, err := p.dao.FindBySN(ctx, sn)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Payment{}, ErrPaymentNotFound
	}
	if err != nil {
		return domain.Payment{}, err
	}
	return p.toDomain(entity), nil
}

func (p *paymentRepository) MarkRefunded(ctx context.Context, id int64, refundID, reason string) error {
	return p.dao.UpdateRefund(ctx, id, refundID, reason)
}

func (p *paymentRepository) toEntity(pmt domain.Payment) dao.Payment {
	return dao.Payment{
		Id:           pmt.ID,
		SN:           pmt.SN,
		OrderId:      pmt.OrderID,
		OrderSn:      pmt.OrderSN,
		PayerId:      pmt.PayerID,
		Amount:       pmt.Amount,
		Method:       pmt.Method.String(),
		Status:       pmt.Status.String(),
		TxnId:        pmt.TxnID,
		RefundId:     pmt.RefundID,
		RefundReason: pmt.RefundReason,
		PaidAt:       pmt.PaidAt,
	}
}

func (p *paymentRepository) toDomain(pmt dao.Payment) domain.Payment {
	return domain.Payment{
		ID:           pmt.Id,
		SN:           pmt.SN,
		OrderID:      pmt.OrderId,
		OrderSN:      pmt.OrderSn,
		PayerID:      pmt.PayerId,
		Amount:       pmt.Amount,
		Method:       domain.Method(pmt.Method),
		Status:       domain.Status(pmt.Status),
		TxnID:        pmt.TxnId,
		RefundID:     pmt.RefundId,
		RefundReason: pmt.RefundReason,
		PaidAt:       pmt.PaidAt,
		Ctime:        pmt.Ctime,
		Utime:        pmt.Utime,
	}
}
