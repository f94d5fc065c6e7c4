package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJSONDropsInternalKeys(t *testing.T) {
	in := map[string]interface{}{
		"name":      "rule-1",
		"$$hashKey": "object:42",
		"nested": map[string]interface{}{
			"$$watchers": 3,
			"value":      true,
		},
		"list": []interface{}{
			map[string]interface{}{"$$state": "resolved", "id": 7},
		},
	}

	out, err := ToJSON(in)
	require.NoError(t, err)
	assert.NotContains(t, out, "$$hashKey")
	assert.NotContains(t, out, "$$watchers")
	assert.NotContains(t, out, "$$state")
	assert.Contains(t, out, `"name":"rule-1"`)
	assert.Contains(t, out, `"value":true`)
	assert.Contains(t, out, `"id":7`)
}

func TestToJSONPlainValues(t *testing.T) {
	out, err := ToJSON([]int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]", out)

	out, err = ToJSON("hello")
	require.NoError(t, err)
	assert.Equal(t, `"hello"`, out)
}

func TestToJSONStructs(t *testing.T) {
	type note struct {
		Text string `json:"text"`
	}
	out, err := ToJSON(note{Text: "ok"})
	require.NoError(t, err)
	assert.Equal(t, `{"text":"ok"}`, out)
}
