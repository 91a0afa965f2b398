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

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{name: "待支付到已确认", from: StatusPending, to: StatusConfirmed, want: true},
		{name: "待支付到已取消", from: StatusPending, to: StatusCancelled, want: true},
		{name: "待支付到已发货", from: StatusPending, to: StatusShipped, want: false},
		{name: "待支付到已送达", from: StatusPending, to: StatusDelivered, want: false},
		{name: "已确认到处理中", from: StatusConfirmed, to: StatusProcessing, want: true},
		{name: "已确认到待支付", from: StatusConfirmed, to: StatusPending, want: false},
		{name: "处理中到已发货", from: StatusProcessing, to: StatusShipped, want: true},
		{name: "已发货到已送达", from: StatusShipped, to: StatusDelivered, want: true},
		{name: "已发货到已取消", from: StatusShipped, to: StatusCancelled, want: false},
		{name: "已送达不再流转", from: StatusDelivered, to: StatusCancelled, want: false},
		{name: "已取消不再流转", from: StatusCancelled, to: StatusPending, want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, OrderStatus("refunded").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderStatus_Terminal(t *testing.T) {
	t.Parallel()

	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusShipped.Terminal())
}

func TestShippingAddress_IsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, ShippingAddress{}.IsEmpty())
	assert.False(t, ShippingAddress{City: "上海"}.IsEmpty())
}
