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

package sequencenumber

import (
	"fmt"
	"sync/atomic"
	"time"
)

// TimestampGenerateFunc 定义生成时间戳的函数类型
type TimestampGenerateFunc func(time.Time) int64

const orderPrefix = "ORD"

// Generator 生成订单序列号
// 格式为 前缀 + 毫秒时间戳 + 6位零填充递增序号,
// 序号通过原子自增预留, 并发创建订单不会拿到相同的序号
type Generator struct {
	prefix           string
	timestampGenFunc TimestampGenerateFunc
	seq              atomic.Int64
}

// NewGeneratorWith 创建一个Generator实例, 测试时可注入时间戳函数
func NewGeneratorWith(prefix string, timestampGen TimestampGenerateFunc) *Generator {
	return &Generator{prefix: prefix, timestampGenFunc: timestampGen}
}

// NewGenerator 创建一个生成订单序列号的Generator实例
func NewGenerator() *Generator {
	return NewGeneratorWith(orderPrefix, func(t time.Time) int64 { return t.UnixMilli() })
}

// Generate 生成序列号
func (s *Generator) Generate() string {
	timestamp := s.timestampGenFunc(time.Now())
	seq := s.seq.Add(1) % 1000000
	return fmt.Sprintf("%s%d%06d", s.prefix, timestamp, seq)
}
