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

package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ecodeclub/eshop/internal/order/internal/event"
	"github.com/ecodeclub/eshop/internal/order/internal/service"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

const paymentEventName = "payment_events"

// ConfirmOrderConsumer 消费支付结果事件, 作为同步支付链路之外的对账路径,
// 支付成功但订单确认写入失败时由这里补偿
type ConfirmOrderConsumer struct {
	svc      service.Service
	consumer mq.Consumer
	logger   *elog.Component
}

func NewConfirmOrderConsumer(svc service.Service, q mq.MQ) (*ConfirmOrderConsumer, error) {
	const groupID = "order"
	consumer, err := q.Consumer(paymentEventName, groupID)
	if err != nil {
		return nil, err
	}
	return &ConfirmOrderConsumer{
		svc:      svc,
		consumer: consumer,
		logger:   elog.DefaultLogger,
	}, nil
}

func (c *ConfirmOrderConsumer) Start(ctx context.Context) {
	go func() {
		for {
			er := c.Consume(ctx)
			if er != nil {
				c.logger.Error("消费支付事件失败", elog.FieldErr(er))
			}
		}
	}()
}

func (c *ConfirmOrderConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}

	var evt event.PaymentEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}
	if evt.Status != "completed" {
		return nil
	}

	err = c.svc.ConfirmOrder(ctx, evt.OrderID)
	if errors.Is(err, service.ErrInvalidOrderStatus) {
		// 同步链路已经确认过了, 属于正常情况
		return nil
	}
	if err != nil {
		c.logger.Warn("确认订单失败",
			elog.FieldErr(err),
			elog.Int64("order_id", evt.OrderID),
			elog.String("order_sn", evt.OrderSN))
	}
	return err
}
