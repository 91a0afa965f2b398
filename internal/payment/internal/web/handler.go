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

package web

import (
	"errors"
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/eshop/internal/payment/internal/domain"
	"github.com/ecodeclub/eshop/internal/payment/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/payment")
	g.POST("/create", ginx.BS[CreatePaymentReq](h.CreatePayment))
	g.GET("/status/:orderId", ginx.S(h.PaymentStatus))
	g.POST("/refund", ginx.BS[RefundReq](h.Refund))
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	server.GET("/payment/methods", ginx.W(h.Methods))
}

// CreatePayment 发起支付
func (h *Handler) CreatePayment(ctx *ginx.Context, req CreatePaymentReq, sess session.Session) (ginx.Result, error) {
	pmt, err := h.svc.Pay(ctx.Request.Context(), sess.Claims().Uid, req.OrderID, domain.Method(req.Method), req.RequestID)
	switch {
	case errors.Is(err, service.ErrInvalidPaymentMethod):
		return invalidMethodResult, fmt.Errorf("支付方式非法: %w", err)
	case errors.Is(err, service.ErrDuplicateRequest):
		return duplicateRequestResult, fmt.Errorf("重复请求: %w", err)
	case errors.Is(err, service.ErrOrderNotFound):
		return notFoundResult, fmt.Errorf("订单未找到: %w", err)
	case errors.Is(err, service.ErrOrderNotPayable):
		return orderNotPayableResult, fmt.Errorf("发起支付失败: %w", err)
	case err != nil:
		return systemErrorResult, fmt.Errorf("发起支付失败: %w", err)
	}
	return ginx.Result{
		Data: CreatePaymentResp{
			Payment: toPaymentVO(pmt),
		},
	}, nil
}

// PaymentStatus 查询订单的支付状态
func (h *Handler) PaymentStatus(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	orderID, err := ctx.Param("orderId").AsInt64()
	if err != nil {
		return notFoundResult, fmt.Errorf("订单ID非法: %w", err)
	}
	pmt, err := h.svc.PaymentStatus(ctx.Request.Context(), sess.Claims().Uid, orderID)
	if errors.Is(err, service.ErrOrderNotFound) {
		return notFoundResult, fmt.Errorf("订单未找到: %w", err)
	}
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询支付状态失败: %w", err)
	}
	return ginx.Result{
		Data: PaymentStatusResp{
			Payment: toPaymentVO(pmt),
		},
	}, nil
}

// Refund 申请退款
func (h *Handler) Refund(ctx *ginx.Context, req RefundReq, sess session.Session) (ginx.Result, error) {
	pmt, err := h.svc.Refund(ctx.Request.Context(), sess.Claims().Uid, req.OrderID, req.Reason)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return notFoundResult, fmt.Errorf("订单未找到: %w", err)
	case errors.Is(err, service.ErrOrderCancelled):
		return orderCancelledResult, fmt.Errorf("退款失败: %w", err)
	case errors.Is(err, service.ErrRefundNotAllowed):
		return refundNotAllowedResult, fmt.Errorf("退款失败: %w", err)
	case err != nil:
		return systemErrorResult, fmt.Errorf("退款失败: %w", err)
	}
	return ginx.Result{
		Data: RefundResp{
			Payment: toPaymentVO(pmt),
		},
	}, nil
}

// Methods 可用支付方式列表
func (h *Handler) Methods(ctx *ginx.Context) (ginx.Result, error) {
	ms := h.svc.Methods(ctx.Request.Context())
	return ginx.Result{
		Data: MethodsResp{
			Methods: slice.Map(ms, func(idx int, src domain.MethodInfo) Method {
				return Method{
					ID:      src.ID.String(),
					Name:    src.Name,
					Desc:    src.Desc,
					Icon:    src.Icon,
					Enabled: src.Enabled,
				}
			}),
		},
	}, nil
}

func toPaymentVO(pmt domain.Payment) Payment {
	return Payment{
		SN:           pmt.SN,
		OrderID:      pmt.OrderID,
		OrderSN:      pmt.OrderSN,
		Amount:       pmt.Amount,
		Method:       pmt.Method.String(),
		Status:       pmt.Status.String(),
		TxnID:        pmt.TxnID,
		RefundID:     pmt.RefundID,
		RefundReason: pmt.RefundReason,
		PaidAt:       pmt.PaidAt,
	}
}
