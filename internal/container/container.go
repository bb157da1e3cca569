package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/identity-service/config"
	"github.com/oksasatya/identity-service/pkg/helpers"
)

// Container holds the process-wide infrastructure handles. It is built once
// in main and passed down explicitly; nothing in here is a package-level
// singleton.
type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	PG     *pgxpool.Pool
	Redis  *redis.Client
	ES     *elasticsearch.Client // nil when search is disabled
	Rabbit *helpers.RabbitPublisher
	JWT    *helpers.JWTManager
}

// Close releases the connections the container owns. Safe on a partially
// built container.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.Rabbit != nil {
		c.Rabbit.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PG != nil {
		c.PG.Close()
	}
}
