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

// CreateOrderReq 创建订单请求
type CreateOrderReq struct {
	Items           []OrderItem     `json:"items"`
	TotalAmount     int64           `json:"totalAmount"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	ShippingMethod  string          `json:"shippingMethod,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

type CreateOrderResp struct {
	Order Order `json:"order"`
}

type OrderItem struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name,omitempty"`
	Price     int64  `json:"price,omitempty"`
	Quantity  int64  `json:"quantity"`
	Image     string `json:"image,omitempty"`
}

type ShippingAddress struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

// ListOrdersReq 分页查询用户自己的订单
type ListOrdersReq struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type ListOrdersResp struct {
	Total  int64   `json:"total"`
	Orders []Order `json:"orders"`
}

// RetrieveOrderDetailReq 获取订单详情
type RetrieveOrderDetailReq struct {
	OrderID int64 `json:"orderId"`
}

type RetrieveOrderDetailResp struct {
	Order Order `json:"order"`
}

type Order struct {
	ID              int64           `json:"id"`
	SN              string          `json:"orderNumber"`
	TotalAmount     int64           `json:"totalAmount"`
	Status          string          `json:"status"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	ShippingMethod  string          `json:"shippingMethod"`
	ShippingCost    int64           `json:"shippingCost"`
	Notes           string          `json:"notes,omitempty"`
	Ctime           int64           `json:"ctime"`
	Utime           int64           `json:"utime"`
}

// AdminListOrdersReq 管理端分页查询订单, 支持状态和创建时间过滤
type AdminListOrdersReq struct {
	Status     string `json:"status,omitempty"`
	StartCtime int64  `json:"startCtime,omitempty"`
	EndCtime   int64  `json:"endCtime,omitempty"`
	Offset     int    `json:"offset,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// UpdateOrderStatusReq 按流转表更新订单状态
type UpdateOrderStatusReq struct {
	OrderID int64  `json:"orderId"`
	Status  string `json:"status"`
}

// OverrideOrderStatusReq 管理员强制覆写订单状态
type OverrideOrderStatusReq struct {
	OrderID int64  `json:"orderId"`
	Status  string `json:"status"`
}
