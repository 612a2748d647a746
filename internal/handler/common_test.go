package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryCtx(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestPageParamsDefaults(t *testing.T) {
	page, size, limit, offset := pageParams(queryCtx("/v1/plays"))
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageSize, size)
	assert.Equal(t, defaultPageSize, limit)
	assert.Equal(t, 0, offset)
}

func TestPageParamsClampsAndOffsets(t *testing.T) {
	page, size, limit, offset := pageParams(queryCtx("/v1/plays?page=3&page_size=50"))
	assert.Equal(t, 3, page)
	assert.Equal(t, maxPageSize, size)
	assert.Equal(t, maxPageSize, limit)
	assert.Equal(t, 2*maxPageSize, offset)

	page, size, _, _ = pageParams(queryCtx("/v1/plays?page=-1&page_size=0"))
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageSize, size)

	page, size, _, _ = pageParams(queryCtx("/v1/plays?page=abc&page_size=xyz"))
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageSize, size)
}

func TestPathID(t *testing.T) {
	c := queryCtx("/v1/plays/12")
	c.SetParamNames("id")
	c.SetParamValues("12")
	id, ok := pathID(c)
	assert.True(t, ok)
	assert.Equal(t, uint64(12), id)

	for _, bad := range []string{"0", "-3", "abc", ""} {
		c := queryCtx("/v1/plays/x")
		c.SetParamNames("id")
		c.SetParamValues(bad)
		_, ok := pathID(c)
		assert.False(t, ok, "value %q", bad)
	}
}

func TestGetUserIDTypeConversions(t *testing.T) {
	for _, tc := range []struct {
		name string
		val  any
	}{
		{"uint64", uint64(42)},
		{"int", int(42)},
		{"int64", int64(42)},
		{"float64", float64(42)}, // JSON numbers from JWT claims
		{"string", "42"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := queryCtx("/")
			c.Set("user_id", tc.val)
			id, err := getUserID(c)
			require.NoError(t, err)
			assert.Equal(t, uint64(42), id)
		})
	}

	c := queryCtx("/")
	_, err := getUserID(c)
	assert.Error(t, err)
}
