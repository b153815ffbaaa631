package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/relove-market/storefront/internal/catalog"
	"github.com/relove-market/storefront/pkg/request"
	"github.com/relove-market/storefront/pkg/response"
)

// ListProducts implements catalog.ProductLister against the paginated
// product listing. Unset optional filters are omitted from the query
// string entirely.
func (cl *Client) ListProducts(
	c context.Context,
	q catalog.Query,
) (response.ProductPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("size", strconv.Itoa(q.Size))
	if q.Sort != "" {
		query.Set("sort", q.Sort)
	}
	if q.SearchText != "" {
		query.Set("search", q.SearchText)
	}
	if q.CategoryID != nil {
		query.Set("categoryId", strconv.FormatInt(*q.CategoryID, 10))
	}
	if q.MinPrice != nil {
		query.Set("minPrice", q.MinPrice.String())
	}
	if q.MaxPrice != nil {
		query.Set("maxPrice", q.MaxPrice.String())
	}

	page := response.ProductPage{}
	err := cl.do(c, http.MethodGet, "/api/products", query, nil, &page)
	if err != nil {
		return response.ProductPage{}, err
	}
	return page, nil
}

// GetProduct fetches one listing in full.
func (cl *Client) GetProduct(c context.Context, productId int64) (response.Product, error) {
	product := response.Product{}
	path := fmt.Sprintf("/api/products/%d", productId)
	err := cl.do(c, http.MethodGet, path, nil, nil, &product)
	if err != nil {
		return response.Product{}, err
	}
	return product, nil
}

// SellerProducts lists the authenticated seller's own listings.
func (cl *Client) SellerProducts(c context.Context) ([]response.Product, error) {
	products := []response.Product{}
	err := cl.do(c, http.MethodGet, "/api/products/seller", nil, nil, &products)
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (cl *Client) CreateListing(
	c context.Context,
	param request.NewListing,
) (response.Product, error) {
	err := cl.validate.Struct(param)
	if err != nil {
		return response.Product{}, fmt.Errorf("failed validating listing with error=%w", err)
	}
	product := response.Product{}
	err = cl.do(c, http.MethodPost, "/api/products", nil, param, &product)
	if err != nil {
		return response.Product{}, err
	}
	return product, nil
}

func (cl *Client) UpdateListing(
	c context.Context,
	productId int64,
	param request.UpdateListing,
) (response.Product, error) {
	err := cl.validate.Struct(param)
	if err != nil {
		return response.Product{}, fmt.Errorf("failed validating listing with error=%w", err)
	}
	product := response.Product{}
	path := fmt.Sprintf("/api/products/%d", productId)
	err = cl.do(c, http.MethodPut, path, nil, param, &product)
	if err != nil {
		return response.Product{}, err
	}
	return product, nil
}

// UploadListingImages attaches local image files to a listing and
// returns the refreshed listing.
func (cl *Client) UploadListingImages(
	c context.Context,
	productId int64,
	filenames []string,
) (response.Product, error) {
	product := response.Product{}
	path := fmt.Sprintf("/api/products/%d/upload-images", productId)
	err := cl.doMultipart(c, path, "files", filenames, &product)
	if err != nil {
		return response.Product{}, err
	}
	return product, nil
}

// TryOn triggers the server-side virtual try-on for a person photo and a
// product photo, both referenced by storage uri.
func (cl *Client) TryOn(c context.Context, personUri, productUri string) error {
	query := url.Values{}
	query.Set("personUri", personUri)
	query.Set("productUri", productUri)
	return cl.do(c, http.MethodPost, "/api/products/try-on", query, nil, nil)
}

// GetCategories fetches the category tree; nodes nest via subCategories.
func (cl *Client) GetCategories(c context.Context) ([]response.Category, error) {
	categories := []response.Category{}
	err := cl.do(c, http.MethodGet, "/api/categories", nil, nil, &categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}
