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
	"fmt"
	"net/http"
	"testing"

	"github.com/ecodeclub/eshop/internal/product/internal/domain"
	"github.com/ecodeclub/eshop/internal/product/internal/errs"
	"github.com/ecodeclub/eshop/internal/product/internal/repository"
	"github.com/ecodeclub/eshop/internal/product/internal/repository/dao"
	"github.com/ecodeclub/eshop/internal/product/internal/service"
	"github.com/ecodeclub/eshop/internal/product/internal/web"
	"github.com/ecodeclub/eshop/internal/test"
	testioc "github.com/ecodeclub/eshop/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestProductModule(t *testing.T) {
	suite.Run(t, new(ProductModuleTestSuite))
}

type ProductModuleTestSuite struct {
	suite.Suite
	server *egin.Component
	db     *egorm.Component
	svc    service.Service
}

func (s *ProductModuleTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	require.NoError(s.T(), dao.InitTables(s.db))
	s.svc = service.NewService(repository.NewRepository(dao.NewProductGORMDAO(s.db)))

	handler := web.NewHandler(s.svc)
	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	handler.PublicRoutes(server.Engine)
	s.server = server
}

func (s *ProductModuleTestSuite) TearDownSuite() {
	require.NoError(s.T(), s.db.Exec("DROP TABLE `products`").Error)
}

func (s *ProductModuleTestSuite) TearDownTest() {
	require.NoError(s.T(), s.db.Exec("TRUNCATE TABLE `products`").Error)
}

func (s *ProductModuleTestSuite) saveProduct(t *testing.T, p domain.Product) int64 {
	t.Helper()
	id, err := s.svc.Save(context.Background(), p)
	require.NoError(t, err)
	return id
}

func (s *ProductModuleTestSuite) TestHandler_ListProducts() {
	t := s.T()
	s.saveProduct(t, domain.Product{
		SN: "SN-KB-001", Name: "机械键盘", Description: "87键红轴",
		Price: 2999, Category: "keyboard", Stock: 10, IsActive: true,
	})
	s.saveProduct(t, domain.Product{
		SN: "SN-MP-001", Name: "鼠标垫", Description: "加大加厚",
		Price: 499, Category: "accessory", Stock: 5, IsActive: true,
	})

	testCases := []struct {
		name      string
		path      string
		wantTotal int64
		wantFirst string
	}{
		{
			name:      "全部商品",
			path:      "/products",
			wantTotal: 2,
		},
		{
			name:      "按类目过滤",
			path:      "/products?category=keyboard",
			wantTotal: 1,
			wantFirst: "机械键盘",
		},
		{
			name:      "按关键字过滤",
			path:      "/products?search=鼠标",
			wantTotal: 1,
			wantFirst: "鼠标垫",
		},
		{
			name:      "无匹配",
			path:      "/products?category=phone",
			wantTotal: 0,
		},
	}
	for _, tc := range testCases {
		s.T().Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, tc.path, nil)
			require.NoError(t, err)
			recorder := test.NewJSONResponseRecorder[web.ListProductsResp]()
			s.server.ServeHTTP(recorder, req)
			require.Equal(t, 200, recorder.Code)
			resp := recorder.MustScan().Data
			assert.Equal(t, tc.wantTotal, resp.Total)
			if tc.wantFirst != "" {
				require.NotEmpty(t, resp.Products)
				assert.Equal(t, tc.wantFirst, resp.Products[0].Name)
			}
		})
	}
}

func (s *ProductModuleTestSuite) TestHandler_RetrieveProductDetail() {
	t := s.T()
	id := s.saveProduct(t, domain.Product{
		SN: "SN-KB-002", Name: "机械键盘", Description: "104键茶轴",
		Price: 3999, Category: "keyboard", Stock: 3, IsActive: true,
	})

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d", id), nil)
	require.NoError(t, err)
	recorder := test.NewJSONResponseRecorder[web.Product]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)
	p := recorder.MustScan().Data
	assert.Equal(t, "机械键盘", p.Name)
	assert.Equal(t, int64(3999), p.Price)
}

func (s *ProductModuleTestSuite) TestHandler_RetrieveProductDetailFailed() {
	t := s.T()
	testCases := []struct {
		name string
		path string
	}{
		{
			name: "商品不存在",
			path: "/products/99999",
		},
		{
			name: "商品ID非法",
			path: "/products/abc",
		},
	}
	for _, tc := range testCases {
		s.T().Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, tc.path, nil)
			require.NoError(t, err)
			recorder := test.NewJSONResponseRecorder[any]()
			s.server.ServeHTTP(recorder, req)
			require.Equal(t, 500, recorder.Code)
			assert.Equal(t, errs.ProductNotFound.Code, recorder.MustScan().Code)
		})
	}
}
