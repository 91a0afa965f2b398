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

package domain

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing,
		StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal 终态订单不允许再流转
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// transitions 订单状态流转表, 不在表内的流转一律拒绝
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID              int64
	SN              string
	BuyerID         int64
	TotalAmount     int64
	Status          OrderStatus
	Items           []OrderItem
	ShippingAddress ShippingAddress
	ShippingMethod  string
	ShippingCost    int64
	Notes           string
	Ctime           int64
	Utime           int64
}

// OrderItem 商品快照, 下单后商品的修改不影响已有订单
type OrderItem struct {
	OrderID   int64
	ProductID int64
	Name      string
	Price     int64
	Quantity  int64
	Image     string
}

type ShippingAddress struct {
	FirstName string
	LastName  string
	Phone     string
	Street    string
	City      string
	State     string
	ZipCode   string
	Country   string
}

func (a ShippingAddress) IsEmpty() bool {
	return a == ShippingAddress{}
}

// AdminFilter 管理端订单列表的过滤条件, 零值字段不参与过滤
type AdminFilter struct {
	Status     OrderStatus
	StartCtime int64
	EndCtime   int64
}
