package main

import (
	"os"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/payment"
	infraRepo "app/internal/infra/repository"
	"app/internal/logging"
	"app/internal/server"
	"app/internal/upload"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.New("info").Error("config load failed", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Error("db connect failed", "error", err)
		os.Exit(1)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		logger.Error("migrate failed", "error", err)
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)

	//外部協調相手
	storage := upload.NewDiskStorage(cfg.UploadDir, cfg.BaseURL)
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)

	//Usecase生成
	userUC := usecase.NewUserUsecase(userRepo, cfg.JWTSecret)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo)
	orderUC := usecase.NewOrderUsecase(orderRepo, orderItemRepo, productRepo, userRepo)
	checkoutUC := usecase.NewCheckoutUsecase(productRepo, gateway)

	//Handler生成
	handlers := server.Handlers{
		Products:   handler.NewProductHandler(productUC, storage),
		Categories: handler.NewCategoryHandler(categoryUC),
		Users:      handler.NewUserHandler(userUC),
		Orders:     handler.NewOrderHandler(orderUC),
		Checkout:   handler.NewCheckoutHandler(checkoutUC),
	}

	//Server起動
	e := server.New(cfg, logger, handlers)
	logger.Info("listening", "port", cfg.Port)
	if err := server.Start(e, cfg); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
