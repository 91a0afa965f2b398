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
	"fmt"
	"time"

	"github.com/ecodeclub/eshop/internal/pkg/snowflake"
)

var _ Gateway = (*SimulatedGateway)(nil)

// SimulatedGateway 模拟网关, 固定延迟后扣款成功.
// 交易号和退款单号使用雪花ID, 多实例部署时不会冲突
type SimulatedGateway struct {
	idGen   *snowflake.Generator
	latency time.Duration
}

func NewSimulatedGateway(idGen *snowflake.Generator) *SimulatedGateway {
	return &SimulatedGateway{idGen: idGen, latency: 100 * time.Millisecond}
}

func (g *SimulatedGateway) Capture(ctx context.Context, req CaptureRequest) (CaptureResult, error) {
	if err := g.sleep(ctx); err != nil {
		return CaptureResult{}, err
	}
	return CaptureResult{
		TxnID:  fmt.Sprintf("TXN%d", g.idGen.Generate()),
		PaidAt: time.Now().UnixMilli(),
	}, nil
}

func (g *SimulatedGateway) Refund(ctx context.Context, req RefundRequest) (RefundResult, error) {
	if err := g.sleep(ctx); err != nil {
		return RefundResult{}, err
	}
	return RefundResult{
		RefundID: fmt.Sprintf("REF%d", g.idGen.Generate()),
	}, nil
}

func (g *SimulatedGateway) sleep(ctx context.Context) error {
	select {
	case <-time.After(g.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
