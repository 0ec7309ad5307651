package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hcnails/studio/internal/models"
)

func TestGetProducts(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "chrome set", "24.99", "M")
	env.seedProduct(t, "french tips", "22.99", "S")

	rec, c := env.doJSONRequest(t, http.MethodGet, "/api/v1/products", nil)
	require.NoError(t, env.Product.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Product `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.EqualValues(t, 2, resp.Meta.Total)
}

func TestGetProductsFeaturedFilter(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "plain set", "19.99", "M")
	featured := env.seedProduct(t, "holo set", "29.99", "M")
	require.NoError(t, env.DB.Model(&featured).Update("is_featured", true).Error)

	rec, c := env.doJSONRequest(t, http.MethodGet, "/api/v1/products?featured=true", nil)
	require.NoError(t, env.Product.GetProducts(c))

	var resp struct {
		Data []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	require.Equal(t, "holo set", resp.Data[0].Name)
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, "chrome set", "24.99", "S", "M")
	id := strconv.Itoa(int(p.ID))

	rec, c := env.doJSONRequest(t, http.MethodGet, "/api/v1/products/"+id, nil)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, env.Product.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "chrome set", got.Name)
	require.Equal(t, models.StringList{"S", "M"}, got.Sizes)

	rec, c = env.doJSONRequest(t, http.MethodGet, "/api/v1/products/999", nil)
	c.SetParamNames("id")
	c.SetParamValues("999")
	require.NoError(t, env.Product.GetProduct(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAndPatchProduct(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{
		"name":           "chrome set",
		"description":    "mirror finish press-ons",
		"price":          "24.99",
		"category":       "press-ons",
		"stock_quantity": 5,
		"sizes":          []string{"S", "M", "L"},
		"tags":           []string{"chrome", "bestseller"},
	}
	rec, c := env.doJSONRequest(t, http.MethodPost, "/api/v1/admin/products", payload)
	require.NoError(t, env.Product.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	id := strconv.Itoa(int(created.ID))

	payload["price"] = "27.99"
	rec, c = env.doJSONRequest(t, http.MethodPatch, "/api/v1/admin/products/"+id, payload)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, env.Product.PatchProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Product
	require.NoError(t, env.DB.First(&updated, created.ID).Error)
	require.Equal(t, "27.99", updated.Price.StringFixed(2))
}

func TestCreateProductRejectsBadPrice(t *testing.T) {
	env := newTestEnv(t)

	for _, price := range []string{"", "free", "-5"} {
		payload := map[string]any{"name": "x", "price": price}
		rec, c := env.doJSONRequest(t, http.MethodPost, "/api/v1/admin/products", payload)
		require.NoError(t, env.Product.CreateProduct(c))
		require.Equal(t, http.StatusBadRequest, rec.Code, "price %q", price)
	}
}
