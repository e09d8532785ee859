package config

import (
	"FashionDeck/app/api/query/internal/marketplace"
	"FashionDeck/app/api/query/internal/model"
	"FashionDeck/app/api/query/internal/outfit"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"
)

type Config struct {
	rest.RestConf

	RedisConf redis.RedisConf
	MysqlConf MysqlConf `json:",optional"`

	ModelService model.Conf
	Amazon       marketplace.AmazonConf
	Flipkart     marketplace.FlipkartConf
	Outfit       outfit.Conf

	CacheTTL  CacheTTLConf
	RateLimit RateLimitConf

	KafkaConf KafkaConf `json:",optional"`
	AsynqConf AsynqConf `json:",optional"`

	LogConf logx.LogConf
}

type MysqlConf struct {
	DataSource string `json:",optional"`
}

type CacheTTLConf struct {
	PromptSeconds      int `json:",default=3600"`
	MarketplaceSeconds int `json:",default=1800"`
}

type RateLimitConf struct {
	WindowSeconds int `json:",default=60"`
	MaxRequests   int `json:",default=10"`
}

type KafkaConf struct {
	Broker        []string `json:",optional"`
	Group         string   `json:",optional"`
	QueryLogTopic string   `json:",optional"`
}

type AsynqConf struct {
	Addr        string `json:",optional"`
	Concurrency int    `json:",default=5"`
}
