package routes

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
	"gorm.io/gorm"

	"github.com/fnbapp/backend/app/configs"
	"github.com/fnbapp/backend/app/handlers"
	"github.com/fnbapp/backend/app/helpers"
	"github.com/fnbapp/backend/app/middlewares"
	"github.com/fnbapp/backend/app/models"
	"github.com/fnbapp/backend/app/repositories"
	"github.com/fnbapp/backend/app/services"
)

// NewRouter wires repositories, services and handlers onto the HTTP surface.
// Optional integrations (blob storage, payment gateway) degrade to nil when
// their configuration is absent; handlers treat nil as "not configured".
func NewRouter(env configs.ENV, db *gorm.DB) (*mux.Router, error) {
	renderer := render.New()
	validate := validator.New()
	hasher := helpers.NewBcryptHasher()

	userRepo := repositories.NewUserRepository(db)
	addressRepo := repositories.NewAddressRepository(db)
	productRepo := repositories.NewProductRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	brandRepo := repositories.NewBrandRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	promoRepo := repositories.NewPromotionRepository(db)

	tokens, err := services.NewTokenService(
		env.JWTSecret,
		env.JWTAlgorithm,
		env.AccessTokenTTL(),
		env.RefreshTokenTTL(),
	)
	if err != nil {
		return nil, err
	}

	mailer := services.NewMailer(services.MailConfig{
		Host:     env.EmailHost,
		Port:     env.EmailPort,
		Username: env.EmailUsername,
		Password: env.EmailPassword,
		From:     env.EmailFrom,
	})

	var blobStore services.BlobStore
	if env.S3Bucket != "" {
		store, err := services.NewS3Store(context.Background(), services.S3Config{
			Region:        env.S3Region,
			AccessKey:     env.S3AccessKey,
			SecretKey:     env.S3SecretKey,
			DefaultBucket: env.S3Bucket,
			PublicBaseURL: env.S3PublicBaseURL,
		})
		if err != nil {
			return nil, err
		}
		blobStore = store
	} else {
		logrus.Warn("blob storage not configured, photo upload disabled")
	}

	var gateway services.PaymentGateway
	if env.MidtransServerKey != "" {
		gateway = services.NewMidtransGateway(env.MidtransServerKey, env.AppEnv == "production")
	} else {
		logrus.Warn("payment gateway not configured, orders are created without payment links")
	}

	cartSvc := services.NewCartService(cartRepo, cartItemRepo, productRepo)
	orderSvc := services.NewOrderService(db, cartRepo, productRepo, orderRepo, userRepo, gateway, mailer)

	authHandler := handlers.NewAuthHandler(renderer, userRepo, tokens, mailer, hasher, validate, env.ResetTokenTTL())
	userHandler := handlers.NewUserHandler(renderer, userRepo, addressRepo, blobStore, validate)
	productHandler := handlers.NewProductHandler(renderer, productRepo)
	cartHandler := handlers.NewCartHandler(renderer, cartSvc, validate)
	orderHandler := handlers.NewOrderHandler(renderer, orderSvc)
	staffHandler := handlers.NewStaffHandler(renderer, productRepo, promoRepo, validate)
	adminHandler := handlers.NewAdminHandler(renderer, userRepo, brandRepo, categoryRepo, mailer, hasher, validate)

	router := mux.NewRouter()

	router.HandleFunc("/create_user", authHandler.CreateUser).Methods("POST")
	router.HandleFunc("/verify_code", authHandler.VerifyCode).Methods("POST")
	router.HandleFunc("/sign_in", authHandler.SignIn).Methods("POST")
	router.HandleFunc("/refresh_token", authHandler.RefreshToken).Methods("POST")
	router.HandleFunc("/forgot_password", authHandler.ForgotPassword).Methods("POST")
	router.HandleFunc("/reset_password", authHandler.ResetPassword).Methods("POST")

	router.HandleFunc("/products", productHandler.List).Methods("GET")
	router.HandleFunc("/products/{slug}", productHandler.Detail).Methods("GET")

	authenticated := router.NewRoute().Subrouter()
	authenticated.Use(middlewares.Authenticate(tokens))
	authenticated.Use(middlewares.RequireRole(userRepo, models.RoleUser))

	authenticated.HandleFunc("/protected", authHandler.Protected).Methods("GET")
	authenticated.HandleFunc("/user/profile", userHandler.Profile).Methods("GET")
	authenticated.HandleFunc("/user/profile", userHandler.UpdateProfile).Methods("PUT")
	authenticated.HandleFunc("/user/photo", userHandler.UploadPhoto).Methods("POST")
	authenticated.HandleFunc("/user/addresses", userHandler.ListAddresses).Methods("GET")
	authenticated.HandleFunc("/user/addresses", userHandler.CreateAddress).Methods("POST")
	authenticated.HandleFunc("/user/addresses/{id}", userHandler.DeleteAddress).Methods("DELETE")
	authenticated.HandleFunc("/cart", cartHandler.GetCart).Methods("GET")
	authenticated.HandleFunc("/cart/items", cartHandler.AddItem).Methods("POST")
	authenticated.HandleFunc("/cart/items/{id}", cartHandler.RemoveItem).Methods("DELETE")
	authenticated.HandleFunc("/orders", orderHandler.PlaceOrder).Methods("POST")
	authenticated.HandleFunc("/orders", orderHandler.ListOrders).Methods("GET")
	authenticated.HandleFunc("/orders/{id}", orderHandler.GetOrder).Methods("GET")

	staff := router.PathPrefix("/staff").Subrouter()
	staff.Use(middlewares.Authenticate(tokens))
	staff.Use(middlewares.RequireRole(userRepo, models.RoleStaff))

	staff.HandleFunc("/products", staffHandler.CreateProduct).Methods("POST")
	staff.HandleFunc("/products/{id}", staffHandler.UpdateProduct).Methods("PUT")
	staff.HandleFunc("/products/{id}", staffHandler.DeleteProduct).Methods("DELETE")
	staff.HandleFunc("/promotions", staffHandler.CreatePromotion).Methods("POST")
	staff.HandleFunc("/promotions", staffHandler.ListPromotions).Methods("GET")

	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middlewares.Authenticate(tokens))
	admin.Use(middlewares.RequireRole(userRepo, models.RoleAdmin))

	admin.HandleFunc("/create_user", adminHandler.CreateUser).Methods("POST")
	admin.HandleFunc("/users", adminHandler.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id}/status", adminHandler.UpdateUserStatus).Methods("PUT")
	admin.HandleFunc("/brands", adminHandler.CreateBrand).Methods("POST")
	admin.HandleFunc("/brands", adminHandler.ListBrands).Methods("GET")
	admin.HandleFunc("/categories", adminHandler.CreateCategory).Methods("POST")
	admin.HandleFunc("/categories", adminHandler.ListCategories).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = renderer.JSON(w, http.StatusNotFound, handlers.Response{
			Code:    http.StatusNotFound,
			Status:  "Error",
			Message: "Resource not found",
		})
	})

	return router, nil
}
