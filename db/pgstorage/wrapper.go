package pgstorage

import (
	"context"
	"strings"
	"time"

	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/InvArch/invarch-bridge-service/utils"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

type execQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// execQuerierWrapper adds before and after logs to every query
type execQuerierWrapper struct {
	execQuerier
}

func (w *execQuerierWrapper) Exec(ctx context.Context, sql string, arguments ...interface{}) (commandTag pgconn.CommandTag, err error) {
	logger := log.WithFields(utils.TraceID, ctx.Value(utils.CtxTraceID))
	startTime := time.Now()
	logger.Debugf("DB query begin, method[Exec], sql[%v], arguments[%v]", removeNewLine(sql), arguments)

	tag, err := w.execQuerier.Exec(ctx, sql, arguments...)

	logger.Debugf("DB query end, method[Exec], sql[%v] arguments[%v] rowsAffected[%v] err[%v] processTime[%v]",
		removeNewLine(sql), arguments, tag.RowsAffected(), err, time.Since(startTime).String())
	return tag, err
}

func (w *execQuerierWrapper) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	logger := log.WithFields(utils.TraceID, ctx.Value(utils.CtxTraceID))
	startTime := time.Now()
	logger.Debugf("DB query begin, method[Query], sql[%v], arguments[%v]", removeNewLine(sql), args)

	rows, err := w.execQuerier.Query(ctx, sql, args...)

	logger.Debugf("DB query end, method[Query], sql[%v] arguments[%v] err[%v] processTime[%v]", removeNewLine(sql), args, err, time.Since(startTime).String())
	return rows, err
}

func (w *execQuerierWrapper) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	logger := log.WithFields(utils.TraceID, ctx.Value(utils.CtxTraceID))
	startTime := time.Now()
	logger.Debugf("DB query begin, method[QueryRow], sql[%v], arguments[%v]", removeNewLine(sql), args)

	row := w.execQuerier.QueryRow(ctx, sql, args...)

	logger.Debugf("DB query end, sql[%v] arguments[%v] method[QueryRow], processTime[%v]", removeNewLine(sql), args, time.Since(startTime).String())
	return row
}

func removeNewLine(s string) string {
	return strings.Replace(s, "\n", " ", -1)
}
