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

//go:build wireinject

package payment

import (
	"sync"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/eshop/internal/order"
	"github.com/ecodeclub/eshop/internal/payment/internal/event"
	"github.com/ecodeclub/eshop/internal/payment/internal/gateway"
	"github.com/ecodeclub/eshop/internal/payment/internal/repository"
	"github.com/ecodeclub/eshop/internal/payment/internal/repository/dao"
	"github.com/ecodeclub/eshop/internal/payment/internal/service"
	"github.com/ecodeclub/eshop/internal/payment/internal/web"
	"github.com/ecodeclub/eshop/internal/pkg/snowflake"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

func InitModule(db *egorm.Component, q mq.MQ, c ecache.Cache, om *order.Module) (*Module, error) {
	wire.Build(
		InitTablesOnce,
		initGateway,
		repository.NewRepository,
		event.NewPaymentEventProducer,
		service.NewService,
		web.NewHandler,
		wire.FieldsOf(new(*order.Module), "Svc"),
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

var daoOnce = sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.PaymentDAO {
	daoOnce.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
	return dao.NewPaymentGORMDAO(db)
}

func initGateway() (gateway.Gateway, error) {
	idGen, err := snowflake.NewGenerator(1)
	if err != nil {
		return nil, err
	}
	return gateway.NewSimulatedGateway(idGen), nil
}
