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

type Product struct {
	ID            int64  `json:"id"`
	SN            string `json:"sn"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"originalPrice,omitempty"`
	Category      string `json:"category"`
	Brand         string `json:"brand,omitempty"`
	Image         string `json:"image,omitempty"`
	Stock         int64  `json:"stock"`
	IsActive      bool   `json:"isActive"`
}

type ListProductsResp struct {
	Total    int64     `json:"total"`
	Products []Product `json:"products"`
}

// SaveProductReq 管理端创建/更新商品
type SaveProductReq struct {
	Product Product `json:"product"`
}

// AdminListProductsReq 管理端分页查询商品
type AdminListProductsReq struct {
	Category string `json:"category,omitempty"`
	Keyword  string `json:"keyword,omitempty"`
	Offset   int    `json:"offset,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

type SaveProductResp struct {
	ID int64 `json:"id"`
}
