package bootstrap

import (
	"context"
	"time"

	"FashionDeck/app/api/query/internal/mq"
	"FashionDeck/app/api/query/internal/svc"

	"github.com/hibiken/asynq"
)

// StartAudit starts the query log Kafka consumer and Asynq retry server;
// returns a stop func. Both are no-ops when their backends are not
// configured.
func StartAudit(sc *svc.ServiceContext) func() {
	var srv *asynq.Server
	if sc.Config.AsynqConf.Addr != "" {
		redisOpt := asynq.RedisClientOpt{Addr: sc.Config.AsynqConf.Addr}
		srv = asynq.NewServer(redisOpt, asynq.Config{
			Concurrency: sc.Config.AsynqConf.Concurrency,
		})
		mux := mq.NewAsynqMux(sc)
		go func() {
			if err := srv.Run(mux); err != nil {
				panic(err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := mq.StartQueryLogConsumer(ctx, sc); err != nil {
			panic(err)
		}
	}()

	return func() {
		cancel()
		if srv != nil {
			srv.Shutdown()
		}
		time.Sleep(100 * time.Millisecond)
	}
}
