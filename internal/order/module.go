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

package order

import (
	"github.com/ecodeclub/eshop/internal/order/internal/consumer"
	"github.com/ecodeclub/eshop/internal/order/internal/domain"
	"github.com/ecodeclub/eshop/internal/order/internal/service"
	"github.com/ecodeclub/eshop/internal/order/internal/web"
)

type (
	Handler              = web.Handler
	AdminHandler         = web.AdminHandler
	ConfirmOrderConsumer = consumer.ConfirmOrderConsumer
	Order                = domain.Order
	OrderItem            = domain.OrderItem
	ShippingAddress      = domain.ShippingAddress
	OrderStatus          = domain.OrderStatus
	Service              = service.Service
)

const (
	StatusPending    = domain.StatusPending
	StatusConfirmed  = domain.StatusConfirmed
	StatusProcessing = domain.StatusProcessing
	StatusShipped    = domain.StatusShipped
	StatusDelivered  = domain.StatusDelivered
	StatusCancelled  = domain.StatusCancelled
)

var (
	ErrOrderNotFound      = service.ErrOrderNotFound
	ErrInvalidOrderStatus = service.ErrInvalidOrderStatus
)

type Module struct {
	Hdl      *Handler
	AdminHdl *AdminHandler
	Svc      Service
	c        *ConfirmOrderConsumer
}
