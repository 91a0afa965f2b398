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

type Method string

const (
	MethodAlipay       Method = "alipay"
	MethodWechat       Method = "wechat"
	MethodCreditCard   Method = "credit_card"
	MethodBankTransfer Method = "bank_transfer"
)

func (m Method) String() string {
	return string(m)
}

func (m Method) Valid() bool {
	switch m {
	case MethodAlipay, MethodWechat, MethodCreditCard, MethodBankTransfer:
		return true
	}
	return false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

func (s Status) String() string {
	return string(s)
}

// Payment 一个订单至多对应一条支付记录
type Payment struct {
	ID      int64
	SN      string
	OrderID int64
	OrderSN string
	PayerID int64
	Amount  int64
	Method  Method
	Status  Status
	// TxnID 支付网关返回的交易号
	TxnID string
	// RefundID 退款后记录退款单号
	RefundID     string
	RefundReason string
	PaidAt       int64
	Ctime        int64
	Utime        int64
}

// MethodInfo 可用支付方式的展示信息
type MethodInfo struct {
	ID      Method
	Name    string
	Desc    string
	Icon    string
	Enabled bool
}
