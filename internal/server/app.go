package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"biobag/internal/config"
	"biobag/internal/handler"
	"biobag/internal/infra/db"
	"biobag/internal/infra/docstore"
	infraRepo "biobag/internal/infra/repository"
	"biobag/internal/infra/token"
	"biobag/internal/usecase"
	auth "biobag/internal/usecase/auth_usecase"
	"biobag/internal/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
)

const bcryptCost = 12

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// 組み立て済みのecho と後片付け
type App struct {
	Echo  *echo.Echo
	mongo *mongo.Client
}

// MongoDBを開いていれば切断する
func (a *App) Close(ctx context.Context) error {
	if a.mongo == nil {
		return nil
	}
	return a.mongo.Disconnect(ctx)
}

// DB接続 → migrate → repo → usecase → handler → echo
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	//Repository（GORM実装）
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	contactRepo := infraRepo.NewContactGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	idGen := &uuidGenerator{}
	clock := &realClock{}
	v := validator.New()

	//初期管理者
	if cfg.AdminEmail != "" {
		bootstrapUC := auth.NewBootstrapAdminUsecase(userRepo, auth.NewBcryptPasswordHasher(bcryptCost), idGen, clock)
		created, err := bootstrapUC.Execute(ctx, auth.BootstrapAdminInput{
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("bootstrap admin: %w", err)
		}
		if created {
			logger.Info("admin user created", "email", cfg.AdminEmail)
		}
	}

	//Usecase
	productUC := usecase.NewProductUsecase(txm, productRepo, v, idGen, clock)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, orderItemRepo, v, idGen, clock, cfg.TrackingRequireEmail)
	adminOrderUC := usecase.NewAdminOrderUsecase(txm, orderRepo, orderItemRepo, clock)
	contactUC := usecase.NewContactUsecase(contactRepo, v, idGen, clock)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)
	loginUC := auth.NewLoginUsecase(userRepo, auth.NewBcryptPasswordVerifier(), token.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL), clock)
	revokeUC := auth.NewRevokeSessionsUsecase(userRepo)

	h := Handlers{
		Health:       handler.NewHealthHandler(),
		Product:      handler.NewProductHandler(productUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		Order:        handler.NewOrderHandler(orderUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		Contact:      handler.NewContactHandler(contactUC),
		Auth:         handler.NewAuthHandler(loginUC, revokeUC),
		AuditLog:     handler.NewAuditLogHandler(auditUC),
	}

	app := &App{}

	//MONGODB_URIがあるときだけドキュメントAPIを有効にする
	if cfg.MongoURI != "" {
		client, err := docstore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		mdb := client.Database(cfg.MongoDatabase)
		if err := docstore.EnsureIndexes(ctx, mdb); err != nil {
			return nil, errors.Join(err, client.Disconnect(ctx))
		}
		docUC := usecase.NewDocumentUsecase(docstore.NewProductStore(mdb), docstore.NewOrderStore(mdb), v, v, idGen, clock)
		h.Document = handler.NewDocumentHandler(docUC)
		app.mongo = client
	}

	app.Echo = New(cfg, logger, h, userRepo)
	return app, nil
}
