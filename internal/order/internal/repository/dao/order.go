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
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

type OrderDAO interface {
	CreateOrder(ctx context.Context, o Order, items []OrderItem) (int64, error)
	FindByID(ctx context.Context, id int64) (Order, error)
	FindByUIDAndID(ctx context.Context, uid, id int64) (Order, error)
	FindByUIDAndSN(ctx context.Context, uid int64, sn string) (Order, error)
	FindItemsByOrderID(ctx context.Context, orderID int64) ([]OrderItem, error)
	List(ctx context.Context, offset, limit int, uid int64) ([]Order, error)
	Count(ctx context.Context, uid int64) (int64, error)
	ListAll(ctx context.Context, offset, limit int, status string, startCtime, endCtime int64) ([]Order, error)
	CountAll(ctx context.Context, status string, startCtime, endCtime int64) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	// UpdateStatusIf 比较并交换订单状态, 返回受影响的行数,
	// 为0表示前置状态不再成立
	UpdateStatusIf(ctx context.Context, id int64, from, to string) (int64, error)
}

func NewOrderGORMDAO(db *egorm.Component) OrderDAO {
	return &OrderGORMDAO{db: db}
}

type OrderGORMDAO struct {
	db *egorm.Component
}

func (d *OrderGORMDAO) CreateOrder(ctx context.Context, o Order, items []OrderItem) (int64, error) {
	now := time.Now().UnixMilli()
	o.Ctime, o.Utime = now, now
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&o).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderId = o.Id
			items[i].Ctime, items[i].Utime = now, now
		}
		return tx.Create(&items).Error
	})
	return o.Id, err
}

func (d *OrderGORMDAO) FindByID(ctx context.Context, id int64) (Order, error) {
	var res Order
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *OrderGORMDAO) FindByUIDAndID(ctx context.Context, uid, id int64) (Order, error) {
	var res Order
	err := d.db.WithContext(ctx).Where("id = ? AND buyer_id = ?", id, uid).First(&res).Error
	return res, err
}

func (d *OrderGORMDAO) FindByUIDAndSN(ctx context.Context, uid int64, sn string) (Order, error) {
	var res Order
	err := d.db.WithContext(ctx).Where("sn = ? AND buyer_id = ?", sn, uid).First(&res).Error
	return res, err
}

func (d *OrderGORMDAO) FindItemsByOrderID(ctx context.Context, orderID int64) ([]OrderItem, error) {
	var res []OrderItem
	err := d.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) List(ctx context.Context, offset, limit int, uid int64) ([]Order, error) {
	var res []Order
	err := d.db.WithContext(ctx).Where("buyer_id = ?", uid).
		Order("ctime DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) Count(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Order{}).Where("buyer_id = ?", uid).Count(&count).Error
	return count, err
}

func (d *OrderGORMDAO) ListAll(ctx context.Context, offset, limit int, status string, startCtime, endCtime int64) ([]Order, error) {
	var res []Order
	err := d.listAllBuilder(ctx, status, startCtime, endCtime).
		Order("ctime DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) CountAll(ctx context.Context, status string, startCtime, endCtime int64) (int64, error) {
	var count int64
	err := d.listAllBuilder(ctx, status, startCtime, endCtime).Model(&Order{}).Count(&count).Error
	return count, err
}

func (d *OrderGORMDAO) listAllBuilder(ctx context.Context, status string, startCtime, endCtime int64) *gorm.DB {
	builder := d.db.WithContext(ctx)
	if status != "" {
		builder = builder.Where("status = ?", status)
	}
	if startCtime > 0 {
		builder = builder.Where("ctime >= ?", startCtime)
	}
	if endCtime > 0 {
		builder = builder.Where("ctime <= ?", endCtime)
	}
	return builder
}

func (d *OrderGORMDAO) UpdateStatus(ctx context.Context, id int64, status string) error {
	return d.db.WithContext(ctx).Model(&Order{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": status,
			"utime":  time.Now().UnixMilli(),
		}).Error
}

func (d *OrderGORMDAO) UpdateStatusIf(ctx context.Context, id int64, from, to string) (int64, error) {
	res := d.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status": to,
			"utime":  time.Now().UnixMilli(),
		})
	return res.RowsAffected, res.Error
}

type Order struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	SN          string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_order_sn;comment:订单序列号"`
	BuyerId     int64  `gorm:"not null;index:idx_buyer_id;comment:购买者ID"`
	TotalAmount int64  `gorm:"not null;comment:订单总价;单位为分, 999表示9.99元"`
	Status      string `gorm:"type:varchar(32);not null;default:pending;index:idx_order_status;comment:订单状态"`
	// 收货地址快照, 下单后修改地址簿不影响已有订单
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_"`
	ShippingMethod  string          `gorm:"type:varchar(32);not null;default:standard;comment:配送方式"`
	ShippingCost    int64           `gorm:"not null;default:0;comment:运费;单位为分"`
	Notes           string          `gorm:"type:varchar(1024);comment:订单备注"`
	Ctime           int64
	Utime           int64
}

type ShippingAddress struct {
	FirstName string `gorm:"type:varchar(64);comment:收件人名"`
	LastName  string `gorm:"type:varchar(64);comment:收件人姓"`
	Phone     string `gorm:"type:varchar(32);comment:联系电话"`
	Street    string `gorm:"type:varchar(255);comment:街道地址"`
	City      string `gorm:"type:varchar(64);comment:城市"`
	State     string `gorm:"type:varchar(64);comment:省/州"`
	ZipCode   string `gorm:"type:varchar(16);comment:邮编"`
	Country   string `gorm:"type:varchar(64);comment:国家"`
}

type OrderItem struct {
	Id        int64  `gorm:"primaryKey;autoIncrement;comment:订单项自增ID"`
	OrderId   int64  `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	ProductId int64  `gorm:"not null;index:idx_product_id;comment:商品自增ID"`
	Name      string `gorm:"type:varchar(255);not null;comment:商品名称快照"`
	Price     int64  `gorm:"not null;comment:商品单价快照;单位为分"`
	Quantity  int64  `gorm:"not null;comment:购买数量"`
	Image     string `gorm:"type:varchar(512);comment:商品主图快照"`
	Ctime     int64
	Utime     int64
}
