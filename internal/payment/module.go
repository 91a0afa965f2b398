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

package payment

import (
	"github.com/ecodeclub/eshop/internal/payment/internal/domain"
	"github.com/ecodeclub/eshop/internal/payment/internal/gateway"
	"github.com/ecodeclub/eshop/internal/payment/internal/service"
	"github.com/ecodeclub/eshop/internal/payment/internal/web"
)

type (
	Handler    = web.Handler
	Payment    = domain.Payment
	Method     = domain.Method
	MethodInfo = domain.MethodInfo
	Status     = domain.Status
	Service    = service.Service
	Gateway    = gateway.Gateway
)

const (
	MethodAlipay       = domain.MethodAlipay
	MethodWechat       = domain.MethodWechat
	MethodCreditCard   = domain.MethodCreditCard
	MethodBankTransfer = domain.MethodBankTransfer

	StatusPending   = domain.StatusPending
	StatusCompleted = domain.StatusCompleted
	StatusFailed    = domain.StatusFailed
	StatusRefunded  = domain.StatusRefunded
)

var (
	ErrOrderNotPayable  = service.ErrOrderNotPayable
	ErrRefundNotAllowed = service.ErrRefundNotAllowed
)

type Module struct {
	Hdl *Handler
	Svc Service
}
