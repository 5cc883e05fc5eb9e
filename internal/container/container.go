package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/digital-user-report/config"
	"github.com/oksasatya/digital-user-report/pkg/helpers"
)

// Process-wide components built by cmd/main and read by the router when it
// wires modules. Postgres, Redis, config and logger are always set; the
// photo store, reason events, search index and operator auth stay nil
// unless configured.
type components struct {
	cfg    *config.Config
	logger *logrus.Logger
	pg     *pgxpool.Pool
	redis  *redis.Client

	gcs       *storage.Client
	jwt       *helpers.JWTManager
	rabbitPub *helpers.RabbitPublisher
	es        *elasticsearch.Client
}

var app components

func SetConfig(c *config.Config) { app.cfg = c }
func GetConfig() *config.Config  { return app.cfg }
func SetLogger(l *logrus.Logger) { app.logger = l }
func GetLogger() *logrus.Logger  { return app.logger }
func SetPGPool(p *pgxpool.Pool)  { app.pg = p }
func GetPGPool() *pgxpool.Pool   { return app.pg }
func SetRedis(r *redis.Client)   { app.redis = r }
func GetRedis() *redis.Client    { return app.redis }

func SetGCS(s *storage.Client)                { app.gcs = s }
func GetGCS() *storage.Client                 { return app.gcs }
func SetJWT(m *helpers.JWTManager)            { app.jwt = m }
func GetJWT() *helpers.JWTManager             { return app.jwt }
func SetRabbitPub(p *helpers.RabbitPublisher) { app.rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return app.rabbitPub }
func SetES(c *elasticsearch.Client)           { app.es = c }
func GetES() *elasticsearch.Client            { return app.es }

// Integrations reports which optional components are wired
func Integrations() logrus.Fields {
	return logrus.Fields{
		"photo_store":   app.gcs != nil,
		"reason_events": app.rabbitPub != nil,
		"reason_search": app.es != nil,
		"operator_auth": app.jwt != nil,
	}
}

// Reset clears every component. Tests use it between cases.
func Reset() { app = components{} }
