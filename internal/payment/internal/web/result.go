package web

import (
	"github.com/ecodeclub/eshop/internal/payment/internal/errs"
	"github.com/ecodeclub/ginx"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	notFoundResult = ginx.Result{
		Code: errs.PaymentNotFound.Code,
		Msg:  errs.PaymentNotFound.Msg,
	}
	invalidMethodResult = ginx.Result{
		Code: errs.InvalidPaymentMethod.Code,
		Msg:  errs.InvalidPaymentMethod.Msg,
	}
	orderNotPayableResult = ginx.Result{
		Code: errs.OrderNotPayable.Code,
		Msg:  errs.OrderNotPayable.Msg,
	}
	refundNotAllowedResult = ginx.Result{
		Code: errs.RefundNotAllowed.Code,
		Msg:  errs.RefundNotAllowed.Msg,
	}
	orderCancelledResult = ginx.Result{
		Code: errs.OrderCancelled.Code,
		Msg:  errs.OrderCancelled.Msg,
	}
	duplicateRequestResult = ginx.Result{
		Code: errs.DuplicateRequest.Code,
		Msg:  errs.DuplicateRequest.Msg,
	}
)
