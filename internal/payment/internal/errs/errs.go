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

package errs

var (
	SystemError          = ErrorCode{Code: 513001, Msg: "系统错误"}
	PaymentNotFound      = ErrorCode{Code: 513002, Msg: "支付记录未找到"}
	InvalidPaymentMethod = ErrorCode{Code: 513003, Msg: "支付方式非法"}
	OrderNotPayable      = ErrorCode{Code: 513004, Msg: "订单状态不允许支付"}
	RefundNotAllowed     = ErrorCode{Code: 513005, Msg: "订单未支付，无法退款"}
	DuplicateRequest     = ErrorCode{Code: 513006, Msg: "重复请求"}
	OrderCancelled       = ErrorCode{Code: 513007, Msg: "订单已取消"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
