package svc

import (
	"time"

	"FashionDeck/app/api/query/internal/config"
	"FashionDeck/app/api/query/internal/marketplace"
	"FashionDeck/app/api/query/internal/middleware"
	"FashionDeck/app/api/query/internal/model"
	"FashionDeck/app/api/query/internal/outfit"
	"FashionDeck/app/dal/querylog"

	"github.com/hibiken/asynq"
	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/rest"
)

type ServiceContext struct {
	Config config.Config

	Redis       *redis.Redis
	Marketplace *marketplace.Aggregator
	Model       *model.Client
	Outfits     *outfit.Assembler

	QueryLogs querylog.QueryLogsModel

	AsynqClient *asynq.Client
	KafkaWriter *kafka.Writer

	RateLimit rest.Middleware
}

func NewServiceContext(c config.Config) *ServiceContext {
	logx.MustSetup(c.LogConf)

	rds := redis.MustNewRedis(c.RedisConf)

	adapters := []marketplace.Adapter{
		marketplace.NewAmazon(c.Amazon),
		marketplace.NewFlipkart(c.Flipkart),
	}
	aggregator := marketplace.NewAggregator(adapters, rds, c.CacheTTL.MarketplaceSeconds)

	ml := model.NewClient(c.ModelService)

	var logs querylog.QueryLogsModel
	if c.MysqlConf.DataSource != "" {
		logs = querylog.NewQueryLogsModel(sqlx.NewMysql(c.MysqlConf.DataSource))
	}

	var asynqClient *asynq.Client
	if c.AsynqConf.Addr != "" {
		asynqClient = asynq.NewClient(asynq.RedisClientOpt{Addr: c.AsynqConf.Addr})
	}

	// Reusable Kafka writer to reduce per-send overhead and latency
	var kw *kafka.Writer
	if len(c.KafkaConf.Broker) > 0 && c.KafkaConf.QueryLogTopic != "" {
		kw = &kafka.Writer{
			Addr:                   kafka.TCP(c.KafkaConf.Broker...),
			Topic:                  c.KafkaConf.QueryLogTopic,
			RequiredAcks:           kafka.RequireOne,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           5 * time.Millisecond,
		}
	}

	return &ServiceContext{
		Config:      c,
		Redis:       rds,
		Marketplace: aggregator,
		Model:       ml,
		Outfits:     outfit.NewAssembler(c.Outfit, ml),
		QueryLogs:   logs,
		AsynqClient: asynqClient,
		KafkaWriter: kw,
		RateLimit:   middleware.NewRateLimitMiddleware(rds, c.RateLimit).Handle,
	}
}
