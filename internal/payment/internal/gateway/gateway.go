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

package gateway

import (
	"context"

	"github.com/ecodeclub/eshop/internal/payment/internal/domain"
)

type CaptureRequest struct {
	OrderSN string
	Amount  int64
	Method  domain.Method
	// IdempotencyKey 透传给网关, 同一key重复扣款由网关侧拒绝
	IdempotencyKey string
}

type CaptureResult struct {
	TxnID  string
	PaidAt int64
}

type RefundRequest struct {
	TxnID  string
	Amount int64
	Reason string
}

type RefundResult struct {
	RefundID string
}

// Gateway 支付网关. 接入真实渠道(支付宝、微信)时实现该接口
type Gateway interface {
	Capture(ctx context.Context, req CaptureRequest) (CaptureResult, error)
	Refund(ctx context.Context, req RefundRequest) (RefundResult, error)
}
