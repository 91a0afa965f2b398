package web

import (
	"github.com/ecodeclub/eshop/internal/order/internal/errs"
	"github.com/ecodeclub/ginx"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	notFoundResult = ginx.Result{
		Code: errs.OrderNotFound.Code,
		Msg:  errs.OrderNotFound.Msg,
	}
	invalidStatusResult = ginx.Result{
		Code: errs.InvalidOrderStatus.Code,
		Msg:  errs.InvalidOrderStatus.Msg,
	}
	incompleteOrderResult = ginx.Result{
		Code: errs.IncompleteOrder.Code,
		Msg:  errs.IncompleteOrder.Msg,
	}
	invalidTotalResult = ginx.Result{
		Code: errs.InvalidTotalAmount.Code,
		Msg:  errs.InvalidTotalAmount.Msg,
	}
	invalidItemResult = ginx.Result{
		Code: errs.InvalidOrderItem.Code,
		Msg:  errs.InvalidOrderItem.Msg,
	}
)
