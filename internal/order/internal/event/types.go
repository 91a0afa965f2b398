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

package event

const (
	orderEventName   = "order_events"
	paymentEventName = "payment_events"
)

// OrderStatusChangedEvent 订单状态变更事件
type OrderStatusChangedEvent struct {
	OrderSN   string `json:"orderSN"`
	BuyerID   int64  `json:"buyerID"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
	// Operator 管理员覆写状态时记录操作者, 正常流转为0
	Operator int64 `json:"operator,omitempty"`
}

// PaymentEvent 支付模块发出的支付结果事件, 字段定义与支付模块保持一致
type PaymentEvent struct {
	OrderID int64  `json:"orderID"`
	OrderSN string `json:"orderSN"`
	PayerID int64  `json:"payerID"`
	TxnID   string `json:"txnID"`
	Status  string `json:"status"`
	Amount  int64  `json:"amount"`
	PaidAt  int64  `json:"paidAt"`
}
