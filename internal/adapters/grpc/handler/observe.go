package handler

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// RPCObserver は RPC の結果を記録します。
type RPCObserver interface {
	ObserveRPC(method, code string)
}

// ObserveUnaryInterceptor は RPC の結果コードを記録し、ログに出力します。
func ObserveUnaryInterceptor(logger *slog.Logger, observer RPCObserver) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		started := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		if observer != nil {
			observer.ObserveRPC(info.FullMethod, code.String())
		}

		attrs := []slog.Attr{
			slog.String("method", info.FullMethod),
			slog.String("code", code.String()),
			slog.Duration("elapsed", time.Since(started)),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
			logger.LogAttrs(ctx, slog.LevelWarn, "rpc failed", attrs...)
		} else {
			logger.LogAttrs(ctx, slog.LevelDebug, "rpc handled", attrs...)
		}
		return resp, err
	}
}
