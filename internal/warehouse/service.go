// Package warehouse wraps the Snowflake connection used to run composed
// report queries. The connection handling follows database/sql with the
// gosnowflake driver; queries execute once, synchronously, with no retries.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/snowflakedb/gosnowflake"

	"snowreport/internal/query"
	"snowreport/internal/table"
	"snowreport/pkg/errors"
)

// Service provides Snowflake query execution
type Service struct {
	db        *sql.DB
	config    Config
	connected bool
}

// Config holds Snowflake connection configuration
type Config struct {
	Account   string
	Username  string
	Password  string
	Database  string
	Schema    string
	Warehouse string
	Role      string
	Timeout   time.Duration
}

// NewService creates a new warehouse service
func NewService(config Config) *Service {
	return &Service{config: config}
}

// NewServiceWithDB creates a service over an existing connection. Tests use
// it with sqlmock.
func NewServiceWithDB(db *sql.DB) *Service {
	return &Service{db: db, connected: true}
}

// Connect establishes a connection to Snowflake
func (s *Service) Connect() error {
	if s.connected {
		return nil
	}

	dsn := fmt.Sprintf("%s:%s@%s/%s/%s?warehouse=%s&role=%s",
		s.config.Username,
		s.config.Password,
		s.config.Account,
		s.config.Database,
		s.config.Schema,
		s.config.Warehouse,
		s.config.Role,
	)

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return errors.ConnectionError("Failed to open Snowflake connection", err).
			WithContext("account", s.config.Account).
			WithContext("warehouse", s.config.Warehouse)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(10 * time.Minute)

	ctx, cancel := s.getContext()
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()

		if strings.Contains(err.Error(), "authentication") {
			return errors.New(errors.ErrCodeAuthenticationFailed, "Authentication failed").
				WithContext("user", s.config.Username).
				WithSuggestions(
					"Verify your username and password",
					"Check if your account is locked",
				)
		}

		return errors.ConnectionError("Failed to connect to Snowflake", err).
			WithContext("account", s.config.Account)
	}

	s.db = db
	s.connected = true
	return nil
}

// Close closes the database connection
func (s *Service) Close() error {
	if !s.connected {
		return nil
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}

	s.connected = false
	return nil
}

// Ping verifies the connection is alive
func (s *Service) Ping() error {
	if !s.connected {
		if err := s.Connect(); err != nil {
			return err
		}
	}

	ctx, cancel := s.getContext()
	defer cancel()

	return s.db.PingContext(ctx)
}

// Query executes a single SQL statement and scans the result into a table.
func (s *Service) Query(ctx context.Context, sqlText string) (*table.Table, error) {
	if !s.connected {
		return nil, errors.New(errors.ErrCodeConnectionFailed, "Not connected to warehouse").
			WithSuggestions("Call Connect() before executing queries")
	}

	queryCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(queryCtx, sqlText)
	if err != nil {
		return nil, errors.ExecutionError("Query execution failed", sqlText, err)
	}
	defer rows.Close()

	return table.Scan(rows)
}

// QueryPlan composes a plan and executes the resulting statement.
func (s *Service) QueryPlan(ctx context.Context, plan query.Plan) (*table.Table, error) {
	sqlText, err := plan.SQL()
	if err != nil {
		return nil, err
	}
	return s.Query(ctx, sqlText)
}

// FetchPlan composes and executes a plan, reporting any failure through
// report and substituting an empty table so rendering can continue. An
// empty result is reported as a warning, not a failure.
func (s *Service) FetchPlan(ctx context.Context, plan query.Plan, report func(error)) *table.Table {
	t, err := s.QueryPlan(ctx, plan)
	if err != nil {
		if report != nil {
			report(err)
		}
		return &table.Table{}
	}

	if t.Empty() {
		if report != nil {
			sqlText, _ := plan.SQL()
			report(errors.EmptyResult(sqlText))
		}
	}

	return t
}

func (s *Service) getContext() (context.Context, context.CancelFunc) {
	return s.withTimeout(context.Background())
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// ValidateConfig validates the warehouse configuration
func ValidateConfig(config Config) error {
	if config.Account == "" {
		return fmt.Errorf("account is required")
	}
	if config.Username == "" {
		return fmt.Errorf("username is required")
	}
	if config.Password == "" {
		return fmt.Errorf("password is required")
	}
	if config.Warehouse == "" {
		return fmt.Errorf("warehouse is required")
	}
	return nil
}
