//go:build wireinject

package ioc

import (
	"github.com/ecodeclub/eshop/internal/order"
	"github.com/ecodeclub/eshop/internal/payment"
	"github.com/ecodeclub/eshop/internal/product"
	"github.com/google/wire"
)

var BaseSet = wire.NewSet(InitDB, InitRedis, InitCache, InitMQ)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		product.InitModule,
		wire.FieldsOf(new(*product.Module), "Hdl", "AdminHdl"),
		order.InitModule,
		wire.FieldsOf(new(*order.Module), "Hdl", "AdminHdl"),
		payment.InitModule,
		wire.FieldsOf(new(*payment.Module), "Hdl"),
		InitSession,
		initGinxServer,
		InitAdminServer)
	return new(App), nil
}
