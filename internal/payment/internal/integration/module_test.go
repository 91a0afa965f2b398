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

//go:build e2e

package integration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/eshop/internal/order"
	orderdao "github.com/ecodeclub/eshop/internal/order/internal/repository/dao"
	"github.com/ecodeclub/eshop/internal/payment/internal/errs"
	"github.com/ecodeclub/eshop/internal/payment/internal/event"
	"github.com/ecodeclub/eshop/internal/payment/internal/gateway"
	"github.com/ecodeclub/eshop/internal/payment/internal/repository"
	"github.com/ecodeclub/eshop/internal/payment/internal/repository/dao"
	"github.com/ecodeclub/eshop/internal/payment/internal/service"
	"github.com/ecodeclub/eshop/internal/payment/internal/web"
	"github.com/ecodeclub/eshop/internal/pkg/sequencenumber"
	"github.com/ecodeclub/eshop/internal/pkg/snowflake"
	"github.com/ecodeclub/eshop/internal/product"
	"github.com/ecodeclub/eshop/internal/test"
	testioc "github.com/ecodeclub/eshop/internal/test/ioc"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

const testUID = int64(234)

func TestPaymentModule(t *testing.T) {
	suite.Run(t, new(PaymentModuleTestSuite))
}

type PaymentModuleTestSuite struct {
	suite.Suite
	server   *egin.Component
	db       *egorm.Component
	mq       mq.MQ
	cache    ecache.Cache
	dao      dao.PaymentDAO
	orderDAO orderdao.OrderDAO
	orderSvc order.Service
	repo     repository.PaymentRepository
	gw       gateway.Gateway
	producer event.PaymentEventProducer
	svc      service.Service
	snGen    *sequencenumber.Generator
}

func (s *PaymentModuleTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	require.NoError(s.T(), dao.InitTables(s.db))
	require.NoError(s.T(), orderdao.InitTables(s.db))
	s.dao = dao.NewPaymentGORMDAO(s.db)
	s.orderDAO = orderdao.NewOrderGORMDAO(s.db)
	s.mq = testioc.InitMQ()
	s.cache = testioc.InitCache()
	s.snGen = sequencenumber.NewGenerator()

	om, err := order.InitModule(s.db, s.mq, s.fakeProductModule())
	require.NoError(s.T(), err)
	s.orderSvc = om.Svc

	idGen, err := snowflake.NewGenerator(1)
	require.NoError(s.T(), err)
	s.gw = gateway.NewSimulatedGateway(idGen)

	s.producer, err = event.NewPaymentEventProducer(s.mq)
	require.NoError(s.T(), err)
	s.repo = repository.NewRepository(s.dao)
	s.svc = service.NewService(s.repo, s.orderSvc, s.gw, s.producer, s.cache)

	handler := web.NewHandler(s.svc)
	econf.Set("server", map[string]any{"contextTimeout": "5s"})
	server := egin.Load("server").Build()
	server.Use(func(ctx *gin.Context) {
		ctx.Set("_session", session.NewMemorySession(session.Claims{
			Uid: testUID,
		}))
	})
	handler.PublicRoutes(server.Engine)
	handler.PrivateRoutes(server.Engine)
	s.server = server
}

func (s *PaymentModuleTestSuite) fakeProductModule() *product.Module {
	return &product.Module{}
}

func (s *PaymentModuleTestSuite) TearDownSuite() {
	require.NoError(s.T(), s.db.Exec("DROP TABLE `payments`").Error)
	require.NoError(s.T(), s.db.Exec("DROP TABLE `orders`").Error)
	require.NoError(s.T(), s.db.Exec("DROP TABLE `order_items`").Error)
}

func (s *PaymentModuleTestSuite) TearDownTest() {
	require.NoError(s.T(), s.db.Exec("TRUNCATE TABLE `payments`").Error)
	require.NoError(s.T(), s.db.Exec("TRUNCATE TABLE `orders`").Error)
	require.NoError(s.T(), s.db.Exec("TRUNCATE TABLE `order_items`").Error)
}

func (s *PaymentModuleTestSuite) createPendingOrder(t *testing.T) int64 {
	t.Helper()
	o, err := s.orderSvc.CreateOrder(context.Background(), order.Order{
		SN:      s.snGen.Generate(),
		BuyerID: testUID,
		Items: []order.OrderItem{
			{ProductID: 100, Name: "机械键盘", Price: 2999, Quantity: 1},
			{ProductID: 101, Name: "鼠标垫", Price: 499, Quantity: 2},
		},
		TotalAmount: 3997,
		ShippingAddress: order.ShippingAddress{
			FirstName: "三",
			LastName:  "张",
			Phone:     "13800000000",
			Street:    "人民路1号",
			City:      "上海",
			State:     "上海",
			ZipCode:   "200000",
			Country:   "中国",
		},
	})
	require.NoError(t, err)
	return o.ID
}

func (s *PaymentModuleTestSuite) requestID() string {
	return fmt.Sprintf("req-%d", time.Now().UnixNano())
}

// 下单-支付-查状态-退款的完整链路
func (s *PaymentModuleTestSuite) TestE2E_支付退款完整链路() {
	t := s.T()
	oid := s.createPendingOrder(t)

	// 支付前查询, 返回pending快照
	statusReq, err := http.NewRequest(http.MethodGet,
		fmt.Sprintf("/payment/status/%d", oid), nil)
	require.NoError(t, err)
	statusRecorder := test.NewJSONResponseRecorder[web.PaymentStatusResp]()
	s.server.ServeHTTP(statusRecorder, statusReq)
	require.Equal(t, 200, statusRecorder.Code)
	snapshot := statusRecorder.MustScan().Data.Payment
	assert.Equal(t, "pending", snapshot.Status)
	assert.Equal(t, int64(3997), snapshot.Amount)

	// 支付
	payReq, err := http.NewRequest(http.MethodPost,
		"/payment/create", iox.NewJSONReader(web.CreatePaymentReq{
			OrderID:   oid,
			Method:    "alipay",
			RequestID: s.requestID(),
		}))
	payReq.Header.Set("content-type", "application/json")
	require.NoError(t, err)
	payRecorder := test.NewJSONResponseRecorder[web.CreatePaymentResp]()
	s.server.ServeHTTP(payRecorder, payReq)
	require.Equal(t, 200, payRecorder.Code)
	pmt := payRecorder.MustScan().Data.Payment
	assert.Equal(t, "completed", pmt.Status)
	assert.Equal(t, "alipay", pmt.Method)
	assert.Contains(t, pmt.TxnID, "TXN")
	assert.NotZero(t, pmt.PaidAt)

	// 订单已确认
	o, err := s.orderDAO.FindByID(context.Background(), oid)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", o.Status)

	// 退款, 原因默认为客户取消
	refundReq, err := http.NewRequest(http.MethodPost,
		"/payment/refund", iox.NewJSONReader(web.RefundReq{OrderID: oid}))
	refundReq.Header.Set("content-type", "application/json")
	require.NoError(t, err)
	refundRecorder := test.NewJSONResponseRecorder[web.RefundResp]()
	s.server.ServeHTTP(refundRecorder, refundReq)
	require.Equal(t, 200, refundRecorder.Code)
	refunded := refundRecorder.MustScan().Data.Payment
	assert.Equal(t, "refunded", refunded.Status)
	assert.Contains(t, refunded.RefundID, "REF")
	assert.Equal(t, "客户取消", refunded.RefundReason)

	// 订单已取消
	o, err = s.orderDAO.FindByID(context.Background(), oid)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", o.Status)

	// 重复退款被拒绝
	refundAgainReq, err := http.NewRequest(http.MethodPost,
		"/payment/refund", iox.NewJSONReader(web.RefundReq{OrderID: oid}))
	refundAgainReq.Header.Set("content-type", "application/json")
	require.NoError(t, err)
	againRecorder := test.NewJSONResponseRecorder[any]()
	s.server.ServeHTTP(againRecorder, refundAgainReq)
	require.Equal(t, 500, againRecorder.Code)
	assert.Equal(t, errs.OrderCancelled.Code, againRecorder.MustScan().Code)
}

func (s *PaymentModuleTestSuite) TestHandler_CreatePaymentFailed() {
	t := s.T()
	oid := s.createPendingOrder(t)

	testCases := []struct {
		name      string
		req       web.CreatePaymentReq
		wantErrNo int
	}{
		{
			name: "支付方式非法",
			req: web.CreatePaymentReq{
				OrderID:   oid,
				Method:    "cash",
				RequestID: s.requestID(),
			},
			wantErrNo: errs.InvalidPaymentMethod.Code,
		},
		{
			name: "请求ID为空",
			req: web.CreatePaymentReq{
				OrderID: oid,
				Method:  "alipay",
			},
			wantErrNo: errs.DuplicateRequest.Code,
		},
		{
			name: "订单不存在",
			req: web.CreatePaymentReq{
				OrderID:   99999,
				Method:    "alipay",
				RequestID: s.requestID(),
			},
			wantErrNo: errs.PaymentNotFound.Code,
		},
	}
	for _, tc := range testCases {
		s.T().Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost,
				"/payment/create", iox.NewJSONReader(tc.req))
			req.Header.Set("content-type", "application/json")
			require.NoError(t, err)
			recorder := test.NewJSONResponseRecorder[any]()
			s.server.ServeHTTP(recorder, req)
			require.Equal(t, 500, recorder.Code)
			assert.Equal(t, tc.wantErrNo, recorder.MustScan().Code)
		})
	}
}

func (s *PaymentModuleTestSuite) TestHandler_相同请求ID不会重复扣款() {
	t := s.T()
	oid := s.createPendingOrder(t)
	requestID := s.requestID()

	body := web.CreatePaymentReq{
		OrderID:   oid,
		Method:    "alipay",
		RequestID: requestID,
	}
	req, err := http.NewRequest(http.MethodPost, "/payment/create", iox.NewJSONReader(body))
	req.Header.Set("content-type", "application/json")
	require.NoError(t, err)
	recorder := test.NewJSONResponseRecorder[web.CreatePaymentResp]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)

	req, err = http.NewRequest(http.MethodPost, "/payment/create", iox.NewJSONReader(body))
	req.Header.Set("content-type", "application/json")
	require.NoError(t, err)
	dupRecorder := test.NewJSONResponseRecorder[any]()
	s.server.ServeHTTP(dupRecorder, req)
	require.Equal(t, 500, dupRecorder.Code)
	assert.Equal(t, errs.DuplicateRequest.Code, dupRecorder.MustScan().Code)
}

// 并发对同一订单扣款, 只有一个能把订单从pending带到confirmed
func (s *PaymentModuleTestSuite) TestService_并发支付只有一个成功() {
	t := s.T()
	oid := s.createPendingOrder(t)

	const concurrency = 5
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(no int) {
			defer wg.Done()
			_, err := s.svc.Pay(context.Background(), testUID, oid,
				"alipay", fmt.Sprintf("concurrent-%d-%d", oid, no))
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, service.ErrOrderNotPayable)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, success)

	// 只有一条支付记录
	pmt, err := s.dao.FindByOrderID(context.Background(), oid)
	require.NoError(t, err)
	assert.Equal(t, "completed", pmt.Status)

	o, err := s.orderDAO.FindByID(context.Background(), oid)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", o.Status)
}

// 不可支付的订单在走到网关之前就被拒绝, 不会产生扣款
func (s *PaymentModuleTestSuite) TestService_不可支付订单不会走到网关() {
	t := s.T()
	oid := s.createPendingOrder(t)
	require.NoError(t, s.orderSvc.ConfirmOrder(context.Background(), oid))

	gw := &countingGateway{inner: s.gw}
	svc := service.NewService(s.repo, s.orderSvc, gw, s.producer, s.cache)
	_, err := svc.Pay(context.Background(), testUID, oid, "alipay", s.requestID())
	assert.ErrorIs(t, err, service.ErrOrderNotPayable)
	assert.Equal(t, int32(0), gw.captures.Load())

	// 没有落支付记录
	_, err = s.dao.FindByOrderID(context.Background(), oid)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// 确认订单写入失败时支付记录不丢, 事件照发, 由消费端补偿确认
func (s *PaymentModuleTestSuite) TestService_确认订单失败时支付记录不丢() {
	t := s.T()
	oid := s.createPendingOrder(t)

	svc := service.NewService(s.repo,
		&confirmFailOrderService{Service: s.orderSvc}, s.gw, s.producer, s.cache)
	pmt, err := svc.Pay(context.Background(), testUID, oid, "alipay", s.requestID())
	require.NoError(t, err)
	assert.Equal(t, "completed", pmt.Status.String())

	row, err := s.dao.FindByOrderID(context.Background(), oid)
	require.NoError(t, err)
	assert.Equal(t, "completed", row.Status)

	// 消费端拿到支付事件后补偿确认订单
	assert.Eventually(t, func() bool {
		o, er := s.orderDAO.FindByID(context.Background(), oid)
		return er == nil && o.Status == "confirmed"
	}, 5*time.Second, 100*time.Millisecond)
}

func (s *PaymentModuleTestSuite) TestHandler_他人订单查不到支付状态() {
	t := s.T()
	o, err := s.orderSvc.CreateOrder(context.Background(), order.Order{
		SN:      s.snGen.Generate(),
		BuyerID: testUID + 1,
		Items: []order.OrderItem{
			{ProductID: 100, Name: "机械键盘", Price: 2999, Quantity: 1},
		},
		TotalAmount: 2999,
		ShippingAddress: order.ShippingAddress{
			FirstName: "四",
			LastName:  "李",
			Phone:     "13900000000",
			Street:    "南京路2号",
			City:      "上海",
			State:     "上海",
			ZipCode:   "200000",
			Country:   "中国",
		},
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet,
		fmt.Sprintf("/payment/status/%d", o.ID), nil)
	require.NoError(t, err)
	recorder := test.NewJSONResponseRecorder[any]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 500, recorder.Code)
	assert.Equal(t, errs.PaymentNotFound.Code, recorder.MustScan().Code)
}

// 并发退款只有一个能把订单取消, 网关只退一次
func (s *PaymentModuleTestSuite) TestService_并发退款只有一个成功() {
	t := s.T()
	oid := s.createPendingOrder(t)

	gw := &countingGateway{inner: s.gw}
	svc := service.NewService(s.repo, s.orderSvc, gw, s.producer, s.cache)
	_, err := svc.Pay(context.Background(), testUID, oid, "alipay", s.requestID())
	require.NoError(t, err)

	const concurrency = 2
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			_, er := svc.Refund(context.Background(), testUID, oid, "")
			if er == nil {
				mu.Lock()
				success++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, er, service.ErrOrderCancelled)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, success)
	assert.Equal(t, int32(1), gw.refunds.Load())

	o, err := s.orderDAO.FindByID(context.Background(), oid)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", o.Status)
	pmt, err := s.dao.FindByOrderID(context.Background(), oid)
	require.NoError(t, err)
	assert.Equal(t, "refunded", pmt.Status)
}

func (s *PaymentModuleTestSuite) TestHandler_未支付订单不能退款() {
	t := s.T()
	oid := s.createPendingOrder(t)

	req, err := http.NewRequest(http.MethodPost,
		"/payment/refund", iox.NewJSONReader(web.RefundReq{OrderID: oid}))
	req.Header.Set("content-type", "application/json")
	require.NoError(t, err)
	recorder := test.NewJSONResponseRecorder[any]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 500, recorder.Code)

	resp := recorder.MustScan()
	assert.Equal(t, errs.RefundNotAllowed.Code, resp.Code)
	assert.Equal(t, "订单未支付，无法退款", resp.Msg)
}

func (s *PaymentModuleTestSuite) TestHandler_Methods() {
	t := s.T()
	req, err := http.NewRequest(http.MethodGet, "/payment/methods", nil)
	require.NoError(t, err)
	recorder := test.NewJSONResponseRecorder[web.MethodsResp]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)

	resp := recorder.MustScan()
	require.Len(t, resp.Data.Methods, 4)
	assert.Equal(t, "alipay", resp.Data.Methods[0].ID)
	assert.Equal(t, "支付宝", resp.Data.Methods[0].Name)
}

// countingGateway 记录网关被调用的次数
type countingGateway struct {
	inner    gateway.Gateway
	captures atomic.Int32
	refunds  atomic.Int32
}

func (g *countingGateway) Capture(ctx context.Context, req gateway.CaptureRequest) (gateway.CaptureResult, error) {
	g.captures.Add(1)
	return g.inner.Capture(ctx, req)
}

func (g *countingGateway) Refund(ctx context.Context, req gateway.RefundRequest) (gateway.RefundResult, error) {
	g.refunds.Add(1)
	return g.inner.Refund(ctx, req)
}

// confirmFailOrderService 模拟确认订单时持久层写入失败
type confirmFailOrderService struct {
	order.Service
}

func (f *confirmFailOrderService) ConfirmOrder(ctx context.Context, id int64) error {
	return errors.New("模拟数据库写入失败")
}
