package holiday

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_Aliases(t *testing.T) {
	h, err := Map([]byte(`{"_id":3,"holiday_name":"Pongal","holiday_date":"2024-01-15T00:00:00Z","holiday_type":"Gazetted","day":"Monday"}`))
	require.NoError(t, err)
	assert.Equal(t, Holiday{ID: "3", Name: "Pongal", Date: "2024-01-15", Type: TypePublic}, h)
}

func TestMap_Idempotent(t *testing.T) {
	first, err := Map([]byte(`{"id":"H1","title":"Diwali","date":"2024-10-31","type":"floating","remarks":"Festival of lights"}`))
	require.NoError(t, err)

	encoded, _ := json.Marshal(first)
	second, err := Map(encoded)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	again, _ := json.Marshal(second)
	assert.JSONEq(t, string(encoded), string(again))
}

func TestMap_Rejects(t *testing.T) {
	_, err := Map([]byte(`{"name":"Pongal"}`))
	assert.Error(t, err)

	_, err = Map([]byte(`{"name":"Pongal","date":"2024-01-15","type":"compulsory"}`))
	assert.Error(t, err)
}
