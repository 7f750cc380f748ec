package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/stockintel-service/internal/dashboard"
	"github.com/fekuna/stockintel-service/internal/middleware"
	stockH "github.com/fekuna/stockintel-service/internal/stock/handler"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP dashboard and the gRPC API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.logger.Sync()
			return serve(cmd.Context(), a)
		},
	}
}

func listenAddr(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

func serve(ctx context.Context, a *app) error {
	cfg := a.cfg

	// 7. Initialize Handlers
	dashHandler := stockH.NewDashboardHandler(a.stockUC, a.logger)
	web, err := dashboard.New(a.stockUC, a.insightUC, dashboard.Settings{
		APIURL:          cfg.Upstream.URL(cfg.Upstream.ItemsPath),
		UpstreamTimeout: cfg.Upstream.Timeout,
		CriticalRule:    a.rule.Name(),
		RiskThresholds:  a.thresholds,
		CatalogSource:   cfg.Catalog.Path,
		Environment:     cfg.Server.AppEnv,
		Version:         version,
		CORSOrigins:     cfg.CORS.Origins,
	}, a.logger)
	if err != nil {
		return err
	}

	// 8. Start gRPC Server
	grpcAddr := listenAddr(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return err
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.ContextInterceptor(),
			middleware.LoggingInterceptor(a.logger),
		),
	)

	// Register Services
	stockH.RegisterDashboardServiceServer(grpcServer, dashHandler)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// Register Reflection
	reflection.Register(grpcServer)

	// 9. Start HTTP Server
	httpServer := &http.Server{
		Addr:         listenAddr(cfg.Server.HTTPPort),
		Handler:      web.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("Starting gRPC server", zap.String("port", grpcAddr))
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		a.logger.Info("Starting HTTP server", zap.String("port", httpServer.Addr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutting down server...")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		grpcServer.GracefulStop()
		return err
	})

	if err := g.Wait(); err != nil {
		a.logger.Error("Server stopped with error", zap.Error(err))
		return err
	}
	a.logger.Info("Server stopped")
	return nil
}
