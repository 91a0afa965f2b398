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

package gateway

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ecodeclub/eshop/internal/payment/internal/domain"
	"github.com/ecodeclub/eshop/internal/pkg/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedGateway_Capture(t *testing.T) {
	t.Parallel()
	g := newTestGateway(t)

	res, err := g.Capture(context.Background(), CaptureRequest{
		OrderSN: "ORD1700000000000000001",
		Amount:  3997,
		Method:  domain.MethodAlipay,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.TxnID, "TXN"))
	assert.NotZero(t, res.PaidAt)
}

func TestSimulatedGateway_Capture_交易号不重复(t *testing.T) {
	t.Parallel()
	g := newTestGateway(t)

	seen := make(map[string]struct{})
	for i := 0; i < 10; i++ {
		res, err := g.Capture(context.Background(), CaptureRequest{Amount: 100})
		require.NoError(t, err)
		_, ok := seen[res.TxnID]
		require.False(t, ok)
		seen[res.TxnID] = struct{}{}
	}
}

func TestSimulatedGateway_Capture_超时取消(t *testing.T) {
	t.Parallel()
	g := newTestGateway(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	_, err := g.Capture(ctx, CaptureRequest{Amount: 100})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSimulatedGateway_Refund(t *testing.T) {
	t.Parallel()
	g := newTestGateway(t)

	res, err := g.Refund(context.Background(), RefundRequest{
		TxnID:  "TXN123",
		Amount: 3997,
		Reason: "客户取消",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.RefundID, "REF"))
}

func newTestGateway(t *testing.T) *SimulatedGateway {
	t.Helper()
	idGen, err := snowflake.NewGenerator(1)
	require.NoError(t, err)
	g := NewSimulatedGateway(idGen)
	g.latency = time.Millisecond * 10
	return g
}
