package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/Taraansh/e-commerce/internal/platform/logger"
	"github.com/Taraansh/e-commerce/internal/service"
	"github.com/go-chi/chi/v5"
)

// maxImageSize caps product image uploads at 10 MiB.
const maxImageSize = 10 << 20

type ProductHandler struct {
	products *service.ProductService
	log      logger.Logger
}

func NewProductHandler(products *service.ProductService, log logger.Logger) *ProductHandler {
	return &ProductHandler{products: products, log: log}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, errBadRequest)
		return
	}
	result, err := h.products.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "product created successfully", result)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	skip, _ := strconv.ParseInt(q.Get("skip"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)
	result, err := h.products.List(r.Context(), service.ListProductsQuery{
		Homepage:     q.Get("homepage") == "true",
		Search:       q.Get("search"),
		Category:     q.Get("category"),
		PlatformType: q.Get("platformType"),
		BaseType:     q.Get("baseType"),
		Skip:         skip,
		Limit:        limit,
		SortBy:       q.Get("sortBy"),
		SortOrder:    q.Get("sortOrder"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "products fetched successfully", result)
}

func (h *ProductHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	result, err := h.products.GetOne(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "product fetched successfully", result)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, errBadRequest)
		return
	}
	result, err := h.products.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "product updated successfully", result)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "product deleted successfully", nil)
}

func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeError(w, errBadRequest)
		return
	}
	file, header, err := r.FormFile("productImage")
	if err != nil {
		writeError(w, errBadRequest)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		writeError(w, err)
		return
	}
	url, err := h.products.UploadImage(r.Context(), chi.URLParam(r, "id"), header.Filename, data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "image uploaded successfully", map[string]string{"image": url})
}

func (h *ProductHandler) AddSkus(w http.ResponseWriter, r *http.Request) {
	var input struct {
		SkuDetails []service.SkuInput `json:"skuDetails"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || len(input.SkuDetails) == 0 {
		writeError(w, errBadRequest)
		return
	}
	if err := h.products.AddSkus(r.Context(), chi.URLParam(r, "id"), input.SkuDetails); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "skus added successfully", nil)
}

func (h *ProductHandler) UpdateSku(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateSkuInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, errBadRequest)
		return
	}
	result, err := h.products.UpdateSkuByID(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "skuId"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "sku updated successfully", result)
}

func (h *ProductHandler) DeleteSku(w http.ResponseWriter, r *http.Request) {
	err := h.products.DeleteSkuAndLicenses(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "skuId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "sku deleted successfully", nil)
}

func (h *ProductHandler) AddLicense(w http.ResponseWriter, r *http.Request) {
	var input struct {
		LicenseKey string `json:"licenseKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.LicenseKey == "" {
		writeError(w, errBadRequest)
		return
	}
	result, err := h.products.AddLicense(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "skuId"), input.LicenseKey)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "license added successfully", result)
}

func (h *ProductHandler) ListLicenses(w http.ResponseWriter, r *http.Request) {
	result, err := h.products.ListLicenses(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "skuId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "licenses fetched successfully", result)
}

func (h *ProductHandler) UpdateLicense(w http.ResponseWriter, r *http.Request) {
	var input struct {
		LicenseKey string `json:"licenseKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.LicenseKey == "" {
		writeError(w, errBadRequest)
		return
	}
	result, err := h.products.UpdateLicenseKey(
		r.Context(),
		chi.URLParam(r, "id"),
		chi.URLParam(r, "skuId"),
		chi.URLParam(r, "licenseId"),
		input.LicenseKey,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "license updated successfully", result)
}

func (h *ProductHandler) DeleteLicense(w http.ResponseWriter, r *http.Request) {
	if err := h.products.RemoveLicense(r.Context(), chi.URLParam(r, "licenseId")); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "license deleted successfully", nil)
}

func (h *ProductHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Rating int    `json:"rating"`
		Review string `json:"review"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, errBadRequest)
		return
	}
	user := userFromContext(r.Context())
	result, err := h.products.AddReview(r.Context(), chi.URLParam(r, "id"), input.Rating, input.Review, user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "review added successfully", result)
}

func (h *ProductHandler) RemoveReview(w http.ResponseWriter, r *http.Request) {
	result, err := h.products.RemoveReview(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "reviewId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "review removed successfully", result)
}
