package main

import (
	"log"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRedis "app/internal/infra/redis"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, tokenVersion int, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"tv":   tokenVersion,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envはローカル用。無くても環境変数があれば動く。
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.AuditLog{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Redis（未設定ならレート制限なしで続行）
	redisClient := infraRedis.Connect(cfg.RedisAddr)

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: time.Hour,
	}

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, issuer, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	profileUC := usecase.NewProfileUsecase(userRepo, hasher, verifier)
	productUC := usecase.NewProductUsecase(productRepo, userRepo)
	cartUC := usecase.NewCartUsecase(userRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo)
	adminProductUC := usecase.NewAdminProductUsecase(productRepo, userRepo, auditRepo)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo, productRepo, orderRepo, auditRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, orderRepo, auditRepo)
	adminMetricsUC := usecase.NewAdminMetricsUsecase(userRepo, productRepo, orderRepo)
	adminAuditUC := usecase.NewAdminAuditLogUsecase(auditRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(registerUC, loginUC),
		Profile:      handler.NewProfileHandler(profileUC),
		Product:      handler.NewProductHandler(productUC),
		Cart:         handler.NewCartHandler(cartUC),
		Order:        handler.NewOrderHandler(orderUC),
		Upload:       handler.NewUploadHandler(cfg),
		AdminProduct: handler.NewAdminProductHandler(adminProductUC),
		AdminUser:    handler.NewAdminUserHandler(adminUserUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		AdminMetrics: handler.NewAdminMetricsHandler(adminMetricsUC),
		AdminAudit:   handler.NewAdminAuditLogHandler(adminAuditUC),
	}

	//Server起動
	e := server.New(cfg, handlers, userRepo, redisClient)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}
	if err := e.Start(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
