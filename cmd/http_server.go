package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/access"
	accessPostgres "github.com/silcast/crane-admin/internal/access/postgres"
	"github.com/silcast/crane-admin/internal/auth"
	authPostgres "github.com/silcast/crane-admin/internal/auth/postgres"
	authRedis "github.com/silcast/crane-admin/internal/auth/redis"
	"github.com/silcast/crane-admin/internal/client"
	clientPostgres "github.com/silcast/crane-admin/internal/client/postgres"
	"github.com/silcast/crane-admin/internal/contact"
	"github.com/silcast/crane-admin/internal/core/common/reference"
	"github.com/silcast/crane-admin/internal/core/events"
	"github.com/silcast/crane-admin/internal/crane"
	cranePostgres "github.com/silcast/crane-admin/internal/crane/postgres"
	"github.com/silcast/crane-admin/internal/employee"
	employeePostgres "github.com/silcast/crane-admin/internal/employee/postgres"
	"github.com/silcast/crane-admin/internal/inventory"
	inventoryPostgres "github.com/silcast/crane-admin/internal/inventory/postgres"
	"github.com/silcast/crane-admin/internal/lookup"
	lookupPostgres "github.com/silcast/crane-admin/internal/lookup/postgres"
	"github.com/silcast/crane-admin/internal/movement"
	movementPostgres "github.com/silcast/crane-admin/internal/movement/postgres"
	"github.com/silcast/crane-admin/internal/servicereport"
	servicereportPostgres "github.com/silcast/crane-admin/internal/servicereport/postgres"
	"github.com/silcast/crane-admin/internal/supplier"
	supplierPostgres "github.com/silcast/crane-admin/internal/supplier/postgres"
	"github.com/silcast/crane-admin/internal/transport"
	"github.com/silcast/crane-admin/internal/transport/rest"
	"github.com/silcast/crane-admin/internal/transport/swagger"
	"github.com/silcast/crane-admin/internal/user"
	userPostgres "github.com/silcast/crane-admin/internal/user/postgres"
	"github.com/silcast/crane-admin/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startHTTPServer()
	},
}

// Database is one postgres pool seen through both gorm and sqlx.
type Database struct {
	SQL  *sqlx.DB
	Gorm *gorm.DB
}

func (d *Database) Close() error {
	return d.SQL.Close()
}

type Dependencies struct {
	Config *internal.Config
	DB     *Database
	Redis  *goredis.Client
	Router *chi.Mux
	Logger *slog.Logger
}

func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error("redis close error", "error", err)
		}
	}
	if err := d.DB.Close(); err != nil {
		d.Logger.Error("database close error", "error", err)
	}
}

func startHTTPServer() error {
	deps, err := initializeDependencies(context.Background())
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close()

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr, "session_driver", deps.Config.Session.Driver)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	deps.Logger.Info("server stopped")
	return nil
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	initLogger(cfg)
	lg := logger.LoggerWrapper()

	loc, err := cfg.App.Location()
	if err != nil {
		return nil, err
	}

	db, err := openDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps := &Dependencies{Config: cfg, DB: db, Logger: lg}

	tokens, err := deps.tokenStore(ctx)
	if err != nil {
		deps.Close()
		return nil, err
	}

	var doc *swagger.Document
	if cfg.Server.OpenAPIPath != "" {
		doc, err = swagger.Load(ctx, cfg.Server.OpenAPIPath)
		if err != nil {
			lg.Error("openapi document not served", "error", err)
			doc = nil
		}
	}

	deps.Router = rest.NewRouter(rest.Options{
		DB:             db.SQL.DB,
		Redis:          deps.Redis,
		OpenAPI:        doc,
		AllowedOrigins: cfg.Server.Origins(),
		Logger:         lg,
	}, buildHandlers(cfg, db, tokens, loc, lg))

	return deps, nil
}

// tokenStore picks the session backend named by session.driver.
func (d *Dependencies) tokenStore(ctx context.Context) (auth.TokenStore, error) {
	switch d.Config.Session.Driver {
	case internal.SessionDriverRedis:
		rc := d.Config.Session.Redis
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		d.Redis = rdb
		return authRedis.NewTokenStore(rdb, rc.KeyPrefix), nil
	default:
		store := authPostgres.NewTokenStore(d.DB.Gorm)
		purged, err := store.PurgeExpired(ctx)
		if err != nil {
			d.Logger.Warn("failed to purge expired sessions", "error", err)
		} else if purged > 0 {
			d.Logger.Info("expired sessions purged", "count", purged)
		}
		return store, nil
	}
}

func buildHandlers(cfg *internal.Config, db *Database, tokens auth.TokenStore, loc *time.Location, lg *slog.Logger) rest.Handlers {
	base := transport.NewBaseHandler(lg)
	bus := events.NewAuditBus(lg)
	refs := reference.NewGormChecker(db.Gorm)
	hasher := auth.BcryptHasher{Cost: cfg.Security.BCryptCost}

	authService := auth.NewService(
		authPostgres.NewRepository(db.Gorm),
		tokens,
		auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.AccessTokenDuration),
		lg,
	)

	contactService := contact.NewService(contact.NewSMTPMailer(cfg.Mail), contact.Settings{
		Recipient: cfg.Mail.OperationsMailbox,
		Subject:   cfg.Mail.ContactSubject,
		AppName:   cfg.Mail.AppName,
	}, lg)

	return rest.Handlers{
		Auth: auth.NewHandler(base, authService),
		RBAC: auth.NewRBACAuthorization(lg),
		Employee: employee.NewHandler(base,
			employee.NewService(employeePostgres.NewEmployeeRepository(db.Gorm), refs, hasher, bus, lg)),
		Crane: crane.NewHandler(base,
			crane.NewService(cranePostgres.NewCraneRepository(db.Gorm), refs, bus, lg)),
		Movement: movement.NewHandler(base,
			movement.NewService(movementPostgres.NewMovementRepository(db.Gorm), refs, bus, lg, loc)),
		Supplier: supplier.NewHandler(base,
			supplier.NewService(supplierPostgres.NewSupplierRepository(db.Gorm), bus, lg)),
		Client: client.NewHandler(base,
			client.NewService(clientPostgres.NewClientRepository(db.Gorm), bus, lg)),
		Inventory: inventory.NewHandler(base,
			inventory.NewService(inventoryPostgres.NewInventoryRepository(db.Gorm), refs, bus, lg)),
		ServiceReport: servicereport.NewHandler(base,
			servicereport.NewService(servicereportPostgres.NewReportRepository(db.Gorm), refs, bus, lg)),
		Access: access.NewHandler(base,
			access.NewService(accessPostgres.NewAccessRepository(db.Gorm), refs, bus, lg, loc)),
		User: user.NewHandler(base,
			user.NewService(userPostgres.NewUserRepository(db.Gorm), refs, hasher, bus, lg)),
		Lookup: lookup.NewHandler(base,
			lookup.NewService(lookupPostgres.NewLookupRepository(db.SQL), lg)),
		Contact: contact.NewHandler(base, contactService),
	}
}

// openDatabase opens one pgx pool and hands the same *sql.DB to gorm.
func openDatabase(cfg internal.DatabaseConfig) (*Database, error) {
	const driver = "pgx"

	sqlDB, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to open gorm on the pool: %w", err)
	}

	return &Database{SQL: sqlDB, Gorm: gormDB}, nil
}
