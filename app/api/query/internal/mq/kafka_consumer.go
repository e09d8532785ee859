package mq

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"FashionDeck/app/api/query/internal/svc"
	"FashionDeck/app/dal/querylog"

	"github.com/hibiken/asynq"
	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/logx"
)

// StartQueryLogConsumer starts a blocking Kafka consumer loop that persists
// query log events. Insert failures are retried through asynq.
func StartQueryLogConsumer(ctx context.Context, sc *svc.ServiceContext) error {
	if len(sc.Config.KafkaConf.Broker) == 0 || sc.Config.KafkaConf.QueryLogTopic == "" || sc.Config.KafkaConf.Group == "" {
		return nil
	}
	if sc.QueryLogs == nil {
		return nil
	}
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     sc.Config.KafkaConf.Broker,
		GroupID:     sc.Config.KafkaConf.Group,
		Topic:       sc.Config.KafkaConf.QueryLogTopic,
		MinBytes:    1,
		MaxBytes:    10 << 20,
		StartOffset: kafka.FirstOffset,
	})
	defer r.Close()

	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			continue
		}
		var evt QueryLogEvent
		if err := json.Unmarshal(m.Value, &evt); err == nil {
			if err := insertQueryLog(ctx, sc, evt); err != nil {
				logx.Errorf("query log insert failed for %s, scheduling retry: %v", evt.QueryId, err)
				scheduleRetry(sc, m.Value)
			}
		}
		_ = r.CommitMessages(ctx, m)
	}
}

func insertQueryLog(ctx context.Context, sc *svc.ServiceContext, evt QueryLogEvent) error {
	success := int64(0)
	if evt.Success {
		success = 1
	}
	_, err := sc.QueryLogs.Insert(ctx, &querylog.QueryLogs{
		QueryId:        evt.QueryId,
		Prompt:         evt.Prompt,
		ParsedJson:     nullString(evt.ParsedJson),
		ResponseTimeMs: evt.ResponseTimeMs,
		NumResults:     int64(evt.NumResults),
		Success:        success,
		ErrorMessage:   nullString(evt.ErrorMessage),
		UserIp:         nullString(evt.UserIp),
	})
	return err
}

func scheduleRetry(sc *svc.ServiceContext, payload []byte) {
	if sc.AsynqClient == nil {
		return
	}
	task := asynq.NewTask(TaskInsertQueryLog, payload)
	if _, err := sc.AsynqClient.Enqueue(task, asynq.ProcessIn(30*time.Second), asynq.Queue("default")); err != nil {
		logx.Errorf("query log retry enqueue failed: %v", err)
	}
}

// NewAsynqMux registers handlers for delayed tasks.
func NewAsynqMux(sc *svc.ServiceContext) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskInsertQueryLog, func(ctx context.Context, t *asynq.Task) error {
		var evt QueryLogEvent
		if err := json.Unmarshal(t.Payload(), &evt); err != nil {
			return err
		}
		if sc.QueryLogs == nil {
			return nil
		}
		// skip if a previous attempt made it through
		if _, err := sc.QueryLogs.FindOneByQueryId(ctx, evt.QueryId); err == nil {
			return nil
		}
		return insertQueryLog(ctx, sc, evt)
	})
	return mux
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
