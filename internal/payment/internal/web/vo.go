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

// CreatePaymentReq 对待支付订单发起扣款
type CreatePaymentReq struct {
	OrderID int64  `json:"orderId"`
	Method  string `json:"method"`
	// RequestID 客户端生成的幂等键, 重复提交不会重复扣款
	RequestID string `json:"requestId"`
}

type CreatePaymentResp struct {
	Payment Payment `json:"payment"`
}

type PaymentStatusResp struct {
	Payment Payment `json:"payment"`
}

// RefundReq 原因为空时默认为客户取消
type RefundReq struct {
	OrderID int64  `json:"orderId"`
	Reason  string `json:"reason,omitempty"`
}

type RefundResp struct {
	Payment Payment `json:"payment"`
}

type Payment struct {
	SN           string `json:"sn,omitempty"`
	OrderID      int64  `json:"orderId"`
	OrderSN      string `json:"orderNumber"`
	Amount       int64  `json:"amount"`
	Method       string `json:"method,omitempty"`
	Status       string `json:"status"`
	TxnID        string `json:"transactionId,omitempty"`
	RefundID     string `json:"refundId,omitempty"`
	RefundReason string `json:"refundReason,omitempty"`
	PaidAt       int64  `json:"paidAt,omitempty"`
}

type MethodsResp struct {
	Methods []Method `json:"methods"`
}

type Method struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Desc    string `json:"desc"`
	Icon    string `json:"icon"`
	Enabled bool   `json:"enabled"`
}
