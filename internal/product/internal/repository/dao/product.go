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
)

type ProductDAO interface {
	FindByID(ctx context.Context, id int64) (Product, error)
	FindBySN(ctx context.Context, sn string) (Product, error)
	List(ctx context.Context, category, keyword string, offset, limit int) ([]Product, error)
	Count(ctx context.Context, category, keyword string) (int64, error)
	Save(ctx context.Context, p Product) (int64, error)
}

type ProductGORMDAO struct {
	db *egorm.Component
}

func NewProductGORMDAO(db *egorm.Component) ProductDAO {
	return &ProductGORMDAO{db: db}
}

func (d *ProductGORMDAO) FindByID(ctx context.Context, id int64) (Product, error) {
	var res Product
	err := d.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindBySN(ctx context.Context, sn string) (Product, error) {
	var res Product
	err := d.db.WithContext(ctx).Where("sn = ? AND is_active = ?", sn, true).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) List(ctx context.Context, category, keyword string, offset, limit int) ([]Product, error) {
	var res []Product
	err := d.listBuilder(ctx, category, keyword).
		Order("ctime DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) Count(ctx context.Context, category, keyword string) (int64, error) {
	var count int64
	err := d.listBuilder(ctx, category, keyword).Model(&Product{}).Count(&count).Error
	return count, err
}

func (d *ProductGORMDAO) listBuilder(ctx context.Context, category, keyword string) *egorm.Component {
	builder := d.db.WithContext(ctx).Where("is_active = ?", true)
	if category != "" {
		builder = builder.Where("category = ?", category)
	}
	if keyword != "" {
		pattern := "%" + keyword + "%"
		builder = builder.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	return builder
}

func (d *ProductGORMDAO) Save(ctx context.Context, p Product) (int64, error) {
	now := time.Now().UnixMilli()
	p.Utime = now
	if p.Id == 0 {
		p.Ctime = now
		err := d.db.WithContext(ctx).Create(&p).Error
		return p.Id, err
	}
	err := d.db.WithContext(ctx).Model(&Product{}).
		Where("id = ?", p.Id).
		Updates(map[string]any{
			"name":           p.Name,
			"description":    p.Description,
			"price":          p.Price,
			"original_price": p.OriginalPrice,
			"category":       p.Category,
			"brand":          p.Brand,
			"image":          p.Image,
			"stock":          p.Stock,
			"is_active":      p.IsActive,
			"utime":          now,
		}).Error
	return p.Id, err
}

type Product struct {
	Id            int64  `gorm:"primaryKey;autoIncrement;comment:商品自增ID"`
	SN            string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_product_sn;comment:商品序列号"`
	Name          string `gorm:"type:varchar(255);not null;comment:商品名称"`
	Description   string `gorm:"not null;comment:商品描述"`
	Price         int64  `gorm:"not null;comment:商品单价;单位为分, 999表示9.99元"`
	OriginalPrice int64  `gorm:"not null;comment:商品原价;单位为分"`
	Category      string `gorm:"type:varchar(255);not null;index:idx_product_category;comment:商品类目"`
	Brand         string `gorm:"type:varchar(255);comment:品牌"`
	Image         string `gorm:"type:varchar(512);comment:商品主图"`
	Stock         int64  `gorm:"not null;default:0;comment:库存数量"`
	IsActive      bool   `gorm:"not null;default:true;index:idx_product_active;comment:是否上架"`
	Ctime         int64
	Utime         int64
}
