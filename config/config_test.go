// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemory_Map(t *testing.T) {
	t.Run("Config.InMemoryMap", func(t *testing.T) {
		n := NewMap(
			KV{Key: "name", Value: NewScalar("x")},
			KV{Key: "count", Value: NewScalar("3")},
		)
		assert.True(t, n.IsMap())
		assert.True(t, n.HasKey("name"))
		assert.False(t, n.HasKey("missing"))

		v, err := n.Get("name")
		require.NoError(t, err)
		assert.Equal(t, "x", v.AsString())

		_, err = n.Get("missing")
		assert.True(t, IsNotFound(err))
	})
}

func TestInMemory_Sequence(t *testing.T) {
	t.Run("Config.InMemorySequence", func(t *testing.T) {
		n := NewSequence(NewScalar("a"), NewScalar("b"))
		assert.True(t, n.IsSequence())
		assert.Equal(t, 2, n.Size())

		v, err := n.GetIndex(1)
		require.NoError(t, err)
		assert.Equal(t, "b", v.AsString())

		_, err = n.GetIndex(5)
		assert.True(t, IsNotFound(err))
	})
}

func TestParseYAML(t *testing.T) {
	t.Run("Config.ParseYAML", func(t *testing.T) {
		doc := `
trigger:
  name: heartbeat
  period: "2 milliseconds"
  action:
    name: root
    type: sequential_actions
    actions:
      - action:
          name: a
          type: log_message
          message: hi
`
		root, err := ParseYAMLString(doc)
		require.NoError(t, err)
		assert.True(t, root.IsMap())

		trig, err := root.Get("trigger")
		require.NoError(t, err)
		name, err := trig.Get("name")
		require.NoError(t, err)
		assert.Equal(t, "heartbeat", name.AsString())

		action, err := trig.Get("action")
		require.NoError(t, err)
		actions, err := action.Get("actions")
		require.NoError(t, err)
		assert.Equal(t, 1, actions.Size())
	})
}

func TestParseYAML_NotFound(t *testing.T) {
	t.Run("Config.ParseYAMLNotFound", func(t *testing.T) {
		root, err := ParseYAMLString("name: x")
		require.NoError(t, err)
		_, err = root.Get("missing")
		assert.True(t, IsNotFound(err))
	})
}
