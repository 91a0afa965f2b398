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

package snowflake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(1024)
	assert.ErrorIs(t, err, ErrExceedNode)

	g, err := NewGenerator(1)
	require.NoError(t, err)

	id1 := g.Generate()
	id2 := g.Generate()
	assert.NotZero(t, id1)
	assert.NotEqual(t, id1, id2)
}
