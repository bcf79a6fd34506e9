package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	agentapp "github.com/wyfcoding/claimsmanagement/internal/agent/application"
	agentdomain "github.com/wyfcoding/claimsmanagement/internal/agent/domain"
	agentmysql "github.com/wyfcoding/claimsmanagement/internal/agent/infrastructure/persistence/mysql"
	agenthttp "github.com/wyfcoding/claimsmanagement/internal/agent/interfaces/http"
	claimapp "github.com/wyfcoding/claimsmanagement/internal/claim/application"
	claimdomain "github.com/wyfcoding/claimsmanagement/internal/claim/domain"
	"github.com/wyfcoding/claimsmanagement/internal/claim/infrastructure/messaging"
	"github.com/wyfcoding/claimsmanagement/internal/claim/infrastructure/persistence"
	claimmysql "github.com/wyfcoding/claimsmanagement/internal/claim/infrastructure/persistence/mysql"
	claimredis "github.com/wyfcoding/claimsmanagement/internal/claim/infrastructure/persistence/redis"
	claimhttp "github.com/wyfcoding/claimsmanagement/internal/claim/interfaces/http"
	officerapp "github.com/wyfcoding/claimsmanagement/internal/claimofficer/application"
	officerdomain "github.com/wyfcoding/claimsmanagement/internal/claimofficer/domain"
	officermysql "github.com/wyfcoding/claimsmanagement/internal/claimofficer/infrastructure/persistence/mysql"
	officerhttp "github.com/wyfcoding/claimsmanagement/internal/claimofficer/interfaces/http"
	customerapp "github.com/wyfcoding/claimsmanagement/internal/customer/application"
	customerdomain "github.com/wyfcoding/claimsmanagement/internal/customer/domain"
	customermysql "github.com/wyfcoding/claimsmanagement/internal/customer/infrastructure/persistence/mysql"
	customerhttp "github.com/wyfcoding/claimsmanagement/internal/customer/interfaces/http"
	"github.com/wyfcoding/claimsmanagement/pkg/cache"
	"github.com/wyfcoding/claimsmanagement/pkg/config"
	"github.com/wyfcoding/claimsmanagement/pkg/db"
	"github.com/wyfcoding/claimsmanagement/pkg/logger"
	"github.com/wyfcoding/claimsmanagement/pkg/metrics"
	"github.com/wyfcoding/claimsmanagement/pkg/middleware"
	"github.com/wyfcoding/claimsmanagement/pkg/mq"
)

var configPath = flag.String("config", "configs/claims/config.toml", "config file path")

func main() {
	flag.Parse()

	// 1. 初始化配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. 初始化日志
	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	ctx := context.Background()

	// 3. 初始化指标
	metricsImpl := metrics.New(cfg.ServiceName)
	if cfg.Metrics.Enabled {
		go metricsImpl.ExposeHTTP(cfg.Metrics.Port)
	}

	// 4. 初始化数据库
	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to connect database", "error", err)
	}
	defer database.Close()

	// Auto Migrate (仅用于开发方便)
	if cfg.Environment == "dev" {
		if err := database.AutoMigrate(
			&claimmysql.ClaimModel{},
			&customerdomain.Customer{},
			&agentdomain.Agent{},
			&officerdomain.ClaimOfficer{},
		); err != nil {
			logger.Error(ctx, "failed to migrate database", "error", err)
		}
	}

	// 5. 初始化仓储
	var claimCache *claimredis.ClaimCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.New(cache.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			MaxPoolSize:  cfg.Redis.MaxPoolSize,
			ConnTimeout:  cfg.Redis.ConnTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			logger.Error(ctx, "failed to init redis, claim cache disabled", "error", err)
		} else {
			claimCache = claimredis.NewClaimCache(redisCache, time.Duration(cfg.Redis.CacheTTL)*time.Second)
		}
	}

	claimRepo := persistence.NewCompositeClaimRepository(claimmysql.NewClaimRepository(database.DB), claimCache)
	customerRepo := customermysql.NewCustomerRepository(database.DB)
	agentRepo := agentmysql.NewAgentRepository(database.DB)
	officerRepo := officermysql.NewClaimOfficerRepository(database.DB)

	// 6. 初始化事件发布者
	var eventPublisher claimdomain.EventPublisher = messaging.NoopEventPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Error(ctx, "failed to init kafka producer, events disabled", "error", err)
		} else {
			defer producer.Close()
			eventPublisher = messaging.NewKafkaEventPublisher(producer, cfg.Kafka.Topic)
		}
	}

	// 7. 初始化访问策略与应用服务
	policy := claimdomain.NewAccessPolicy(cfg.Policy.Strict())
	if !policy.Strict() {
		logger.Warn(ctx, "access policy running in permissive mode; role checks are DISABLED (deprecated, do not use in production)")
	}

	claimService := claimapp.NewClaimService(claimRepo, policy, eventPublisher, metricsImpl)
	customerService := customerapp.NewCustomerService(customerRepo)
	agentService := agentapp.NewAgentService(agentRepo)
	officerService := officerapp.NewClaimOfficerService(officerRepo)

	// 8. 初始化接口层
	gin.SetMode(gin.ReleaseMode)
	if cfg.Environment == "dev" {
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(middleware.GinRecoveryMiddleware())
	r.Use(middleware.GinLoggingMiddleware())
	r.Use(middleware.GinCORSMiddleware())
	r.Use(metricsImpl.GinMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Claims Service",
			"status":  "Running",
			"version": cfg.Version,
		})
	})

	api := r.Group("/api")
	claimhttp.NewClaimHandler(claimService).RegisterRoutes(api)
	customerhttp.NewCustomerHandler(customerService).RegisterRoutes(api)
	agenthttp.NewAgentHandler(agentService).RegisterRoutes(api)
	officerhttp.NewClaimOfficerHandler(officerService).RegisterRoutes(api)

	// 9. 启动服务与优雅关闭
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info(ctx, "HTTP server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			logger.Info(ctx, "shutting down server...")
		case <-gctx.Done():
			logger.Info(ctx, "context cancelled, shutting down...")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error(ctx, "server exited with error", "error", err)
	}
}
