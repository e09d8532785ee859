package querylog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/stores/builder"
	"github.com/zeromicro/go-zero/core/stores/sqlc"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/core/stringx"
)

var (
	queryLogsFieldNames        = builder.RawFieldNames(&QueryLogs{})
	queryLogsRows              = strings.Join(queryLogsFieldNames, ",")
	queryLogsRowsExpectAutoSet = strings.Join(stringx.Remove(queryLogsFieldNames, "`id`", "`created_at`"), ",")

	ErrNotFound = sqlc.ErrNotFound
)

type (
	// QueryLogsModel is an interface to be customized, add more methods here,
	// and implement the added methods in defaultQueryLogsModel.
	QueryLogsModel interface {
		Insert(ctx context.Context, data *QueryLogs) (sql.Result, error)
		FindOneByQueryId(ctx context.Context, queryId string) (*QueryLogs, error)
	}

	defaultQueryLogsModel struct {
		conn  sqlx.SqlConn
		table string
	}

	QueryLogs struct {
		Id             int64          `db:"id"`
		QueryId        string         `db:"query_id"`
		Prompt         string         `db:"prompt"`
		ParsedJson     sql.NullString `db:"parsed_json"`
		ResponseTimeMs int64          `db:"response_time_ms"`
		NumResults     int64          `db:"num_results"`
		Success        int64          `db:"success"`
		ErrorMessage   sql.NullString `db:"error_message"`
		UserIp         sql.NullString `db:"user_ip"`
		CreatedAt      sql.NullTime   `db:"created_at"`
	}
)

// NewQueryLogsModel returns a model for the database table.
func NewQueryLogsModel(conn sqlx.SqlConn) QueryLogsModel {
	return &defaultQueryLogsModel{
		conn:  conn,
		table: "`query_logs`",
	}
}

func (m *defaultQueryLogsModel) Insert(ctx context.Context, data *QueryLogs) (sql.Result, error) {
	query := fmt.Sprintf("insert into %s (%s) values (?, ?, ?, ?, ?, ?, ?, ?)", m.table, queryLogsRowsExpectAutoSet)
	return m.conn.ExecCtx(ctx, query, data.QueryId, data.Prompt, data.ParsedJson, data.ResponseTimeMs, data.NumResults, data.Success, data.ErrorMessage, data.UserIp)
}

func (m *defaultQueryLogsModel) FindOneByQueryId(ctx context.Context, queryId string) (*QueryLogs, error) {
	query := fmt.Sprintf("select %s from %s where `query_id` = ? limit 1", queryLogsRows, m.table)
	var resp QueryLogs
	err := m.conn.QueryRowCtx(ctx, &resp, query, queryId)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}
