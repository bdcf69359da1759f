package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMap(t *testing.T) {
	type sample struct {
		Name  string  `bson:"name"`
		Count int64   `bson:"count"`
		Rate  float64 `bson:"rate"`
		Empty string  `bson:"empty"`
	}

	m, err := ToMap(sample{Name: "daily_sales", Count: 10, Rate: 0.5})
	require.NoError(t, err)

	assert.Equal(t, "daily_sales", m["name"])
	assert.Equal(t, int64(10), m["count"])
	assert.Equal(t, 0.5, m["rate"])
	// Field rỗng vẫn xuất hiện trong map (không có omitempty)
	assert.Contains(t, m, "empty")
}

func TestToMap_TonTrongBsonTag(t *testing.T) {
	type sample struct {
		ProductID string `bson:"productId"`
	}

	m, err := ToMap(sample{ProductID: "p1"})
	require.NoError(t, err)

	assert.Contains(t, m, "productId")
	assert.NotContains(t, m, "ProductID")
}

func TestToMap_InputKhongMarshalDuoc(t *testing.T) {
	_, err := ToMap(make(chan int))
	assert.Error(t, err)
}
