package handler

import "shop-server/internal/models"

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type createProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
}

// updateProductRequest is the sparse update payload. Pointer fields tell
// "absent" apart from "set to zero value"; anything outside this allow-list
// is dropped by the decoder.
type updateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
}

func (r updateProductRequest) toUpdate() models.ProductUpdate {
	return models.ProductUpdate{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
}

type presignRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	Size        *int64 `json:"size"`
}
