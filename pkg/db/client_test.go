package db

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/sandwichpos/pos-backend/pkg/config"
	"github.com/sandwichpos/pos-backend/pkg/db/models"
	"github.com/sandwichpos/pos-backend/pkg/logger"
)

func openTestClient(t *testing.T, cfg config.DBConfig, logg *logger.Logger) *Client {
	t.Helper()
	dsn := "file:db_" + uuid.NewString() + "?mode=memory&cache=shared"
	client, err := open(context.Background(), sqlite.Open(dsn), cfg, logg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewRequiresDSN(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{}, nil)
	require.Error(t, err)
}

func TestOpenAppliesPoolSettings(t *testing.T) {
	client := openTestClient(t, config.DBConfig{MaxOpenConns: 3, MaxIdleConns: 1}, nil)

	sqlDB, err := client.DB().DB()
	require.NoError(t, err)
	assert.Equal(t, 3, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, client.Ping(context.Background()))
}

func TestOpenLogsConnectionAndSlowQueries(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Output: &buf})
	client := openTestClient(t, config.DBConfig{SlowQueryThreshold: time.Nanosecond}, logg)

	require.NoError(t, client.DB().AutoMigrate(&models.Sale{}, &models.SaleItem{}))
	var count int64
	require.NoError(t, client.DB().Model(&models.Sale{}).Count(&count).Error)

	out := buf.String()
	assert.Contains(t, out, `"message":"db.connected"`)
	assert.Contains(t, out, `"dialect":"sqlite"`)
	assert.Contains(t, out, `"message":"db.gorm"`)
	assert.Contains(t, out, "SLOW SQL")
}

func TestCloseReleasesPool(t *testing.T) {
	client := openTestClient(t, config.DBConfig{}, nil)
	require.NoError(t, client.Close())
	assert.Error(t, client.Ping(context.Background()))
}
