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
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	g := NewGeneratorWith("ORD", func(_ time.Time) int64 { return 1700000000000 })
	sn := g.Generate()
	assert.Equal(t, "ORD1700000000000000001", sn)
	assert.True(t, strings.HasPrefix(sn, "ORD"))

	sn2 := g.Generate()
	assert.Equal(t, "ORD1700000000000000002", sn2)
	assert.NotEqual(t, sn, sn2)
}

func TestGenerator_Generate_Concurrent(t *testing.T) {
	t.Parallel()

	g := NewGeneratorWith("ORD", func(_ time.Time) int64 { return 1700000000000 })
	const n = 100
	var wg sync.WaitGroup
	results := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- g.Generate()
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]struct{}, n)
	for sn := range results {
		_, ok := seen[sn]
		require.False(t, ok, "生成了重复的序列号: %s", sn)
		seen[sn] = struct{}{}
	}
	assert.Len(t, seen, n)
}
