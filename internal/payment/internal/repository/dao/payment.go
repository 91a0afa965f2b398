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

package dao

import (
	"context"
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
)

// ErrDuplicatePayment 订单已存在支付记录, 由uniq_order_id唯一索引保证
var ErrDuplicatePayment = errors.New("支付记录已存在")

type PaymentDAO interface {
	Insert(ctx context.Context, pmt Payment) (Payment, error)
	FindByOrderID(ctx context.Context, orderID int64) (Payment, error)
	FindBySN(ctx context.Context, sn string) (Payment, error)
	// UpdateRefund 把支付记录置为已退款并记录退款单号
	UpdateRefund(ctx context.Context, id int64, refundID, reason string) error
}

func NewPaymentGORMDAO(db *egorm.Component) PaymentDAO {
	return &PaymentGORMDAO{db: db}
}

type PaymentGORMDAO struct {
	db *egorm.Component
}

func (d *PaymentGORMDAO) Insert(ctx context.Context, pmt Payment) (Payment, error) {
	now := time.Now().UnixMilli()
	pmt.Ctime, pmt.Utime = now, now
	err := d.db.WithContext(ctx).Create(&pmt).Error
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		if me.Number == uniqueIndexErrNo {
			return Payment{}, ErrDuplicatePayment
		}
	}
	return pmt, err
}

func (d *PaymentGORMDAO) FindByOrderID(ctx context.Context, orderID int64) (Payment, error) {
	var res Payment
	err := d.db.WithContext(ctx).Where("order_id = ?", orderID).First(&res).Error
	return res, err
}

func (d *PaymentGORMDAO) FindBySN(ctx context.Context, sn string) (Payment, error) {
	var res Payment
	err := d.db.WithContext(ctx).Where("sn = ?", sn).First(&res).Error
	return res, err
}

func (d *PaymentGORMDAO) UpdateRefund(ctx context.Context, id int64, refundID, reason string) error {
	return d.db.WithContext(ctx).Model(&Payment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        "refunded",
			"refund_id":     refundID,
			"refund_reason": reason,
			"utime":         time.Now().UnixMilli(),
		}).Error
}

type Payment struct {
	Id      int64  `gorm:"primaryKey;autoIncrement;comment:支付自增ID"`
	SN      string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_payment_sn;comment:支付序列号"`
	// 一个订单只允许一条支付记录
	OrderId      int64  `gorm:"not null;uniqueIndex:uniq_order_id;comment:订单自增ID"`
	OrderSn      string `gorm:"type:varchar(255);not null;comment:订单序列号"`
	PayerId      int64  `gorm:"not null;index:idx_payer_id;comment:支付者ID"`
	Amount       int64  `gorm:"not null;comment:支付金额;单位为分"`
	Method       string `gorm:"type:varchar(32);not null;comment:支付方式"`
	Status       string `gorm:"type:varchar(32);not null;default:pending;comment:支付状态"`
	TxnId        string `gorm:"type:varchar(255);comment:网关交易号"`
	RefundId     string `gorm:"type:varchar(255);comment:退款单号"`
	RefundReason string `gorm:"type:varchar(255);comment:退款原因"`
	PaidAt       int64  `gorm:"comment:支付完成时间;毫秒时间戳"`
	Ctime        int64
	Utime        int64
}
