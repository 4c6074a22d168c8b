package main

import (
	"net/http"
	"testing"

	"pangkas/pkg/visitstats"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestResolveVisitFieldsDerivesPrice(t *testing.T) {
	cat, price, err := resolveVisitFields(visitRequest{Date: "2024-05-01", Time: "09:30", Category: "Anak-anak"})
	assert.NoError(t, err)
	assert.Equal(t, visitstats.CategoryChild, cat)
	assert.Equal(t, int64(18000), price)

	cat, price, err = resolveVisitFields(visitRequest{Date: "2024-05-01", Time: "09:30", Category: "DEWASA"})
	assert.NoError(t, err)
	assert.Equal(t, visitstats.CategoryAdult, cat)
	assert.Equal(t, int64(20000), price)
}

func TestResolveVisitFieldsIgnoresPriceWithoutToggle(t *testing.T) {
	// a typed price without the custom_price toggle is overridden by the table
	_, price, err := resolveVisitFields(visitRequest{Date: "2024-05-01", Time: "09:30", Category: "child", Price: 99999})
	assert.NoError(t, err)
	assert.Equal(t, int64(18000), price)
}

func TestResolveVisitFieldsCustomPrice(t *testing.T) {
	_, price, err := resolveVisitFields(visitRequest{Date: "2024-05-01", Time: "09:30", Category: "adult", Price: 25000, CustomPrice: true})
	assert.NoError(t, err)
	assert.Equal(t, int64(25000), price)

	_, _, err = resolveVisitFields(visitRequest{Date: "2024-05-01", Time: "09:30", Category: "adult", Price: 0, CustomPrice: true})
	assert.Error(t, err)

	_, _, err = resolveVisitFields(visitRequest{Date: "2024-05-01", Time: "09:30", Category: "adult", Price: -500, CustomPrice: true})
	assert.Error(t, err)
}

func TestResolveVisitFieldsValidation(t *testing.T) {
	_, _, err := resolveVisitFields(visitRequest{Date: "01-05-2024", Time: "09:30", Category: "child"})
	assert.Error(t, err)

	_, _, err = resolveVisitFields(visitRequest{Date: "2024-05-01", Time: "9h30", Category: "child"})
	assert.Error(t, err)

	_, _, err = resolveVisitFields(visitRequest{Date: "2024-05-01", Time: "09:30", Category: "senior"})
	assert.Error(t, err)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("test-secret")
	r := gin.New()
	setupRoutes(r)

	for _, path := range []string{"/me", "/visits", "/dashboard/summary", "/dashboard/chart"} {
		resp := performRequest(r, http.MethodGet, path, nil, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.Code, path)
	}

	resp := performRequest(r, http.MethodGet, "/visits", nil, "", map[string]string{"Authorization": "Bearer not-a-token"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
