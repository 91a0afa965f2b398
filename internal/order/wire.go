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

package order

import (
	"context"
	"sync"

	"github.com/ecodeclub/eshop/internal/order/internal/consumer"
	"github.com/ecodeclub/eshop/internal/order/internal/event"
	"github.com/ecodeclub/eshop/internal/order/internal/repository"
	"github.com/ecodeclub/eshop/internal/order/internal/repository/dao"
	"github.com/ecodeclub/eshop/internal/order/internal/service"
	"github.com/ecodeclub/eshop/internal/order/internal/web"
	"github.com/ecodeclub/eshop/internal/pkg/sequencenumber"
	"github.com/ecodeclub/eshop/internal/product"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

func InitModule(db *egorm.Component, q mq.MQ, pm *product.Module) (*Module, error) {
	wire.Build(
		InitTablesOnce,
		repository.NewRepository,
		event.NewOrderEventProducer,
		service.NewService,
		sequencenumber.NewGenerator,
		initConfirmOrderConsumer,
		web.NewHandler,
		web.NewAdminHandler,
		wire.FieldsOf(new(*product.Module), "Svc"),
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

var daoOnce = sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.OrderDAO {
	daoOnce.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
	return dao.NewOrderGORMDAO(db)
}

func initConfirmOrderConsumer(svc service.Service, q mq.MQ) (*consumer.ConfirmOrderConsumer, error) {
	c, err := consumer.NewConfirmOrderConsumer(svc, q)
	if err != nil {
		return nil, err
	}
	c.Start(context.Background())
	return c, nil
}
