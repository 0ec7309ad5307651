package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/hcnails/studio/internal/events"
	"github.com/hcnails/studio/internal/models"
	"github.com/hcnails/studio/internal/repository"
	"github.com/hcnails/studio/internal/search"
	"github.com/hcnails/studio/internal/util"
)

type ProductHandler struct {
	DB       *gorm.DB
	Repo     repository.Products
	ES       *elasticsearch.Client
	Producer *events.Producer
	Log      *slog.Logger
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return errorResponse(c, http.StatusBadRequest, errors.New("invalid id"))
	}

	product, err := h.Repo.Get(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errorResponse(c, http.StatusNotFound, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, product)
}

// GetProducts lists the shop, optionally narrowed by category or to
// featured items. A failed read degrades to an empty list rather than an
// error page.
func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	filter := repository.ProductFilter{
		Category: c.QueryParam("category"),
		Featured: c.QueryParam("featured") == "true",
		Offset:   offset,
		Limit:    limit,
	}

	items, total, err := h.Repo.List(c.Request().Context(), filter)
	if err != nil {
		h.Log.Error("product list failed", "error", err)
		items, total = []models.Product{}, 0
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

type productRequest struct {
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Price         string            `json:"price"`
	ImageURL      string            `json:"image_url"`
	Images        models.StringList `json:"images"`
	Category      string            `json:"category"`
	StockQuantity uint              `json:"stock_quantity"`
	IsFeatured    bool              `json:"is_featured"`
	Tags          models.StringList `json:"tags"`
	Sizes         models.StringList `json:"sizes"`
}

func (req *productRequest) apply(p *models.Product) error {
	price, err := parsePrice(req.Price)
	if err != nil {
		return err
	}
	p.Name = req.Name
	p.Description = req.Description
	p.Price = price
	p.ImageURL = req.ImageURL
	p.Images = req.Images
	p.Category = req.Category
	p.StockQuantity = req.StockQuantity
	p.IsFeatured = req.IsFeatured
	p.Tags = req.Tags
	p.Sizes = req.Sizes
	return nil
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var prod models.Product
	if err := req.apply(&prod); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if err := h.DB.WithContext(c.Request().Context()).Create(&prod).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	h.syncIndex(c, &prod)
	publish(c, h.Log, h.Producer, events.TopicProducts, strconv.Itoa(int(prod.ID)), map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var prod models.Product
	if err := h.DB.WithContext(c.Request().Context()).First(&prod, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, err)
	}
	if err := req.apply(&prod); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if err := h.DB.WithContext(c.Request().Context()).Save(&prod).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	h.syncIndex(c, &prod)
	publish(c, h.Log, h.Producer, events.TopicProducts, strconv.Itoa(int(prod.ID)), map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if err := h.DB.WithContext(c.Request().Context()).Delete(&models.Product{}, id).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	if h.ES != nil {
		if err := search.DeleteProduct(c.Request().Context(), h.ES, uint(id)); err != nil {
			h.Log.Error("search index delete failed", "product", id, "error", err)
		}
	}
	publish(c, h.Log, h.Producer, events.TopicProducts, strconv.Itoa(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) syncIndex(c echo.Context, p *models.Product) {
	if h.ES == nil {
		return
	}
	if err := search.IndexProduct(c.Request().Context(), h.ES, p); err != nil {
		h.Log.Error("search index update failed", "product", p.ID, "error", err)
	}
}
