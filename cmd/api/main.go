package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	httpadp "github.com/ranjithui/rental-loan-calculator/internal/adapter/http"
	"github.com/ranjithui/rental-loan-calculator/internal/adapter/middleware"
	sqlrepo "github.com/ranjithui/rental-loan-calculator/internal/adapter/repository/sql"
	"github.com/ranjithui/rental-loan-calculator/internal/config"
	"github.com/ranjithui/rental-loan-calculator/internal/domain/calculation"
	"github.com/ranjithui/rental-loan-calculator/internal/infrastructure/cache"
	"github.com/ranjithui/rental-loan-calculator/internal/infrastructure/db"
	"github.com/ranjithui/rental-loan-calculator/internal/reference"
	calcuc "github.com/ranjithui/rental-loan-calculator/internal/usecase/calculation"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	var (
		gdb *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case "mysql":
		gdb, err = db.OpenMySQL(cfg.MySQLDSN())
	default:
		gdb, err = db.OpenSQLite(cfg.SQLitePath)
	}
	if err != nil {
		log.Fatalf("open %s: %v", cfg.DBDriver, err)
	}
	if err := gdb.AutoMigrate(&calculation.Calculation{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	repo := sqlrepo.NewCalculationRepository(gdb)
	uc := calcuc.NewUsecase(repo)
	ref := reference.Defaults()

	h := httpadp.NewHandler()
	ch := httpadp.NewCalculationHandler(uc, ref)
	rh := httpadp.NewReferenceHandler(ref)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	if cfg.RedisAddr != "" {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.Printf("redis unavailable, replay cache disabled: %v", err)
		} else {
			e.Use(middleware.ResultReplay(rdb, time.Duration(cfg.ReplayTTLSecs)*time.Second))
		}
	}

	// routes
	e.GET("/health", h.Health)
	e.POST("/v1/calculations", ch.CreateCalculation)
	e.GET("/v1/calculations", ch.ListCalculations)
	e.GET("/v1/calculations/:calculation_id", ch.GetCalculation)
	e.GET("/v1/segments", rh.ListSegments)
	e.GET("/v1/currencies", rh.ListCurrencies)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
