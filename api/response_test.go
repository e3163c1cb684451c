// Package api
package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
)

func TestEchoResponse_Build(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	resp := EchoResponse{StatusCode: http.StatusOK, Code: 1000, Msg: "Success"}
	assert.Nil(t, resp.SetData("pong").Build(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pong")
}

func TestGetPagingOption(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/?page=2&limit=10", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	pagination, page, limit := getPagingOption(c)
	assert.Equal(t, 10, pagination.Skip)
	assert.Equal(t, 10, pagination.Limit)
	assert.Equal(t, 2, page)
	assert.Equal(t, 10, limit)

	// no params means unpaginated
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	pagination, _, _ = getPagingOption(c)
	assert.Nil(t, pagination)

	// oversized limit is clamped
	req = httptest.NewRequest(http.MethodGet, "/?page=1&limit=5000", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	pagination, _, _ = getPagingOption(c)
	assert.Equal(t, 100, pagination.Limit)
}
