package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedEnv = []string{
	"RENTDESK_APP_NAME",
	"RENTDESK_APP_ENV",
	"RENTDESK_APP_PORT",
	"RENTDESK_DATABASE_HOST",
	"RENTDESK_DATABASE_PORT",
	"RENTDESK_DATABASE_USER",
	"RENTDESK_DATABASE_PASSWORD",
	"RENTDESK_DATABASE_DBNAME",
	"RENTDESK_DATABASE_SSLMODE",
	"RENTDESK_DATABASE_MAX_OPEN_CONNS",
	"RENTDESK_DATABASE_MAX_IDLE_CONNS",
	"RENTDESK_REDIS_HOST",
	"RENTDESK_REDIS_DASHBOARD_TTL",
	"RENTDESK_HTTP_CORS_ALLOW_ORIGINS",
	"RENTDESK_STORAGE_ENABLED",
	"RENTDESK_STORAGE_ACCESS_KEY",
	"RENTDESK_STORAGE_SECRET_KEY",
	"RENTDESK_PRINTING_PAPER_SIZE",
	"RENTDESK_PROFILING_ENABLED",
	"RENTDESK_PROFILING_SERVER_ADDRESS",
	"RENTDESK_BILLING_CURRENCY",
	"RENTDESK_BILLING_LEASE_EXPIRY_DAYS",
	"RENTDESK_TELEMETRY_SAMPLING_RATIO",
	"RENTDESK_TELEMETRY_DB_LOG_FULL_SQL",
	"RENTDESK_SWAGGER_ENABLED",
	"RENTDESK_SWAGGER_ALLOWED_IPS",
}

// clearEnv blanks every variable the tests touch; viper ignores empty values.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range managedEnv {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "rentdesk-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "rentdesk", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Empty(t, cfg.Redis.Host)
		assert.Equal(t, 5*time.Minute, cfg.Redis.DashboardTTL)
		assert.Equal(t, "0 2 * * *", cfg.Scheduler.ReconcileSchedule)
		assert.Equal(t, 15*time.Minute, cfg.Storage.PresignExpiration)
		assert.Equal(t, "A5", cfg.Printing.PaperSize)
		assert.Equal(t, "KES", cfg.Printing.Currency)
		assert.Equal(t, 30, cfg.Billing.LeaseExpiryDays)
		assert.Equal(t, "rentdesk-backend", cfg.Telemetry.ServiceName)
		assert.Contains(t, cfg.HTTP.CORSAllowHeaders, "X-Business-ID")
		assert.True(t, cfg.Swagger.Enabled)
		assert.Empty(t, cfg.Swagger.AllowedIPs)
	})

	t.Run("loads values from environment variables with RENTDESK prefix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RENTDESK_APP_NAME", "test-app")
		t.Setenv("RENTDESK_APP_ENV", "testing")
		t.Setenv("RENTDESK_APP_PORT", "9000")
		t.Setenv("RENTDESK_DATABASE_HOST", "testdb.local")
		t.Setenv("RENTDESK_DATABASE_PORT", "5433")
		t.Setenv("RENTDESK_DATABASE_USER", "testuser")
		t.Setenv("RENTDESK_DATABASE_PASSWORD", "testpass")
		t.Setenv("RENTDESK_DATABASE_DBNAME", "testdb")
		t.Setenv("RENTDESK_DATABASE_SSLMODE", "require")
		t.Setenv("RENTDESK_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("RENTDESK_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("RENTDESK_REDIS_HOST", "cache.local")
		t.Setenv("RENTDESK_REDIS_DASHBOARD_TTL", "90s")
		t.Setenv("RENTDESK_BILLING_CURRENCY", "UGX")
		t.Setenv("RENTDESK_BILLING_LEASE_EXPIRY_DAYS", "45")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, "cache.local", cfg.Redis.Host)
		assert.Equal(t, 90*time.Second, cfg.Redis.DashboardTTL)
		assert.Equal(t, "UGX", cfg.Billing.Currency)
		assert.Equal(t, "UGX", cfg.Printing.Currency)
		assert.Equal(t, 45, cfg.Billing.LeaseExpiryDays)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RENTDESK_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("RENTDESK_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RENTDESK_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})

	t.Run("storage needs credentials when enabled", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RENTDESK_STORAGE_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.access_key")

		t.Setenv("RENTDESK_STORAGE_ACCESS_KEY", "key")
		t.Setenv("RENTDESK_STORAGE_SECRET_KEY", "secret")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Storage.Enabled)
	})

	t.Run("profiling needs a server address", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RENTDESK_PROFILING_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "profiling.server_address")
	})

	t.Run("swagger can be switched off outside production", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RENTDESK_SWAGGER_ENABLED", "false")

		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.Swagger.Enabled)
	})

	t.Run("rejects sampling ratio above one", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RENTDESK_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RENTDESK_APP_ENV", "production")
		t.Setenv("RENTDESK_DATABASE_PASSWORD", "secure-password")
		t.Setenv("RENTDESK_DATABASE_SSLMODE", "require")
	}

	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "requires database.password",
			env:     map[string]string{"RENTDESK_DATABASE_PASSWORD": ""},
			wantErr: "database.password is required in production",
		},
		{
			name:    "requires SSL",
			env:     map[string]string{"RENTDESK_DATABASE_SSLMODE": "disable"},
			wantErr: "database.sslmode cannot be 'disable' in production",
		},
		{
			name:    "rejects wildcard CORS",
			env:     map[string]string{"RENTDESK_HTTP_CORS_ALLOW_ORIGINS": "*"},
			wantErr: "cors_allow_origins cannot be '*'",
		},
		{
			name:    "rejects full SQL in traces",
			env:     map[string]string{"RENTDESK_TELEMETRY_DB_LOG_FULL_SQL": "true"},
			wantErr: "db_log_full_sql must be false",
		},
		{
			name:    "rejects open swagger",
			env:     map[string]string{"RENTDESK_SWAGGER_ENABLED": "true"},
			wantErr: "swagger endpoint must be disabled or have IP restriction",
		},
		{
			name: "swagger restricted to an office network",
			env:  map[string]string{"RENTDESK_SWAGGER_ENABLED": "true", "RENTDESK_SWAGGER_ALLOWED_IPS": "10.0.0.0/8"},
		},
		{
			name: "valid production config",
			env:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setValidProductionBase(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, cfg.App.IsProduction())
			if _, set := tt.env["RENTDESK_SWAGGER_ENABLED"]; !set {
				assert.False(t, cfg.Swagger.Enabled, "docs stay off in production unless enabled")
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}
