package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"

	"github.com/fnbapp/backend/app/apperror"
	"github.com/fnbapp/backend/app/helpers"
	"github.com/fnbapp/backend/app/models"
	"github.com/fnbapp/backend/app/repositories"
	"github.com/fnbapp/backend/app/services"
)

// AdminHandler covers account administration and catalog reference data,
// admin tier only.
type AdminHandler struct {
	render       *render.Render
	userRepo     repositories.UserRepositoryImpl
	brandRepo    repositories.BrandRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	mailer       services.MailSender
	hasher       helpers.Hasher
	validator    *validator.Validate
}

func NewAdminHandler(
	r *render.Render,
	userRepo repositories.UserRepositoryImpl,
	brandRepo repositories.BrandRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
	mailer services.MailSender,
	hasher helpers.Hasher,
	validate *validator.Validate,
) *AdminHandler {
	return &AdminHandler{
		render:       r,
		userRepo:     userRepo,
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
		mailer:       mailer,
		hasher:       hasher,
		validator:    validate,
	}
}

type AdminCreateUserRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	PhoneNumber string `json:"phone_number" validate:"required,min=7,max=20"`
	RoleID      uint   `json:"role_id" validate:"required,oneof=1 2 3"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended removed"`
}

type NameRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description"`
}

func (h *AdminHandler) decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.New(http.StatusBadRequest, "Invalid request body")
	}
	defer r.Body.Close()
	return h.validator.Struct(dst)
}

// CreateUser is the internal sign-up path where the caller picks the role.
// The verification flow is the same as the public one.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req AdminCreateUserRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(h.render, w, err)
		return
	}

	existing, err := h.userRepo.FindByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if existing != nil {
		writeError(h.render, w, apperror.ErrDuplicateIdentity)
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	code := services.GenerateNumericCode(6)
	user := &models.User{
		Username:         req.Username,
		Email:            req.Email,
		Phone:            req.PhoneNumber,
		PasswordHash:     hash,
		RoleID:           req.RoleID,
		VerificationCode: &code,
	}

	if err := h.userRepo.Create(r.Context(), user); err != nil {
		writeError(h.render, w, err)
		return
	}

	if err := h.mailer.SendVerificationCode(user.Email, code); err != nil {
		logrus.WithField("email", user.Email).Errorf("failed to send verification email: %v", err)
	}

	writeSuccess(h.render, w, "User created successfully. Please check your email for verification code.", nil)
}

type userListResult struct {
	Users []ProfileResponse `json:"users"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset, page := paginationParams(r)

	users, total, err := h.userRepo.ListPaginated(r.Context(), limit, offset)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	profiles := make([]ProfileResponse, 0, len(users))
	for i := range users {
		profiles = append(profiles, toProfileResponse(&users[i]))
	}

	writeSuccess(h.render, w, "", userListResult{
		Users: profiles,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (h *AdminHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if user == nil {
		writeError(h.render, w, apperror.New(http.StatusNotFound, "User not found"))
		return
	}

	var req UpdateStatusRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(h.render, w, err)
		return
	}

	if err := h.userRepo.UpdateStatus(r.Context(), userID, req.Status); err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "User status updated successfully", nil)
}

func (h *AdminHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req NameRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(h.render, w, err)
		return
	}

	brand := &models.Brand{Name: req.Name}
	if err := h.brandRepo.Create(r.Context(), brand); err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "Brand created successfully", brand)
}

func (h *AdminHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.brandRepo.List(r.Context())
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "", brands)
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req NameRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(h.render, w, err)
		return
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        helpers.GenerateSlug(req.Name),
		Description: req.Description,
	}
	if err := h.categoryRepo.Create(r.Context(), category); err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "Category created successfully", category)
}

func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.List(r.Context())
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "", categories)
}
