package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/fnbapp/backend/app/apperror"
	"github.com/fnbapp/backend/app/middlewares"
	"github.com/fnbapp/backend/app/models"
	"github.com/fnbapp/backend/app/repositories"
	"github.com/fnbapp/backend/app/services"
)

const maxPhotoBytes = 5 << 20

type UserHandler struct {
	render      *render.Render
	userRepo    repositories.UserRepositoryImpl
	addressRepo repositories.AddressRepositoryImpl
	blobStore   services.BlobStore
	validator   *validator.Validate
}

func NewUserHandler(
	r *render.Render,
	userRepo repositories.UserRepositoryImpl,
	addressRepo repositories.AddressRepositoryImpl,
	blobStore services.BlobStore,
	validate *validator.Validate,
) *UserHandler {
	return &UserHandler{
		render:      r,
		userRepo:    userRepo,
		addressRepo: addressRepo,
		blobStore:   blobStore,
		validator:   validate,
	}
}

// ProfileResponse is the sanitized account view returned to the client.
type ProfileResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phone_number"`
	RoleID      uint    `json:"role_id"`
	Status      string  `json:"status"`
	Photo       *string `json:"photo,omitempty"`
	Verified    bool    `json:"verified"`
}

func toProfileResponse(user *models.User) ProfileResponse {
	return ProfileResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		PhoneNumber: user.Phone,
		RoleID:      user.RoleID,
		Status:      user.Status,
		Photo:       user.Photo,
		Verified:    user.IsVerified(),
	}
}

type UpdateProfileRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=100"`
	PhoneNumber string `json:"phone_number" validate:"required,min=7,max=20"`
}

func (h *UserHandler) currentUser(r *http.Request) (*models.User, error) {
	userID, ok := middlewares.UserIDFromContext(r.Context())
	if !ok {
		return nil, apperror.ErrInvalidCredentials
	}
	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}
	return user, nil
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "", toProfileResponse(user))
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(h.render, w, "Invalid request body")
		return
	}
	defer r.Body.Close()
	if err := h.validator.Struct(req); err != nil {
		writeError(h.render, w, err)
		return
	}

	if err := h.userRepo.UpdateProfile(r.Context(), user.ID, req.Username, req.PhoneNumber); err != nil {
		writeError(h.render, w, err)
		return
	}

	user.Username = req.Username
	user.Phone = req.PhoneNumber
	writeSuccess(h.render, w, "Profile updated successfully", toProfileResponse(user))
}

// UploadPhoto stores the multipart "photo" part in blob storage and records
// the public URL on the account.
func (h *UserHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	if h.blobStore == nil {
		writeError(h.render, w, apperror.New(http.StatusServiceUnavailable, "Photo storage is not configured"))
		return
	}

	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		writeBadRequest(h.render, w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeBadRequest(h.render, w, "Missing photo file")
		return
	}
	defer file.Close()

	body, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("users/%s%s", user.ID, ext)
	url, err := h.blobStore.Upload(r.Context(), "", key, body, contentType)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	if err := h.userRepo.UpdatePhoto(r.Context(), user.ID, url); err != nil {
		writeError(h.render, w, err)
		return
	}

	writeSuccess(h.render, w, "Photo uploaded successfully", map[string]string{"photo": url})
}

type AddressRequest struct {
	AddressLine1 string `json:"address_line1" validate:"required,min=3,max=255"`
	AddressLine2 string `json:"address_line2" validate:"max=255"`
	City         string `json:"city" validate:"required,min=2,max=100"`
	State        string `json:"state" validate:"required,min=2,max=100"`
	PostalCode   string `json:"postal_code" validate:"required,min=3,max=20"`
	Country      string `json:"country" validate:"required,min=2,max=100"`
}

func (h *UserHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	addresses, err := h.addressRepo.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "", addresses)
}

func (h *UserHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	var req AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(h.render, w, "Invalid request body")
		return
	}
	defer r.Body.Close()
	if err := h.validator.Struct(req); err != nil {
		writeError(h.render, w, err)
		return
	}

	address := &models.Address{
		UserID:       user.ID,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
	}
	if err := h.addressRepo.Create(r.Context(), address); err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "Address added successfully", address)
}

func (h *UserHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	address, err := h.addressRepo.FindByIDForUser(r.Context(), mux.Vars(r)["id"], user.ID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if address == nil {
		writeError(h.render, w, apperror.New(http.StatusNotFound, "Address not found"))
		return
	}

	if err := h.addressRepo.Delete(r.Context(), address.ID); err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "Address removed successfully", nil)
}
