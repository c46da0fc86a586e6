package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-platform/backend/internal/audit"
	auditrepo "blog-platform/backend/internal/audit/repository"
	authservice "blog-platform/backend/internal/auth/service"
	"blog-platform/backend/internal/auth/session"
	"blog-platform/backend/internal/config"
	"blog-platform/backend/internal/db"
	"blog-platform/backend/internal/profile"
	rolerepo "blog-platform/backend/internal/role/repository"
	"blog-platform/backend/internal/security"
	"blog-platform/backend/internal/server"
	"blog-platform/backend/internal/server/interceptors"
	userrepo "blog-platform/backend/internal/user/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	tokens, err := security.NewTokenProvider(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTTL(), cfg.RefreshTTL())
	if err != nil {
		log.Fatalf("tokens: %v", err)
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	users := userrepo.NewPostgresRepository(conn)
	roles := rolerepo.NewPostgresRepository(conn)
	auditLogs := auditrepo.NewPostgresRepository(conn)
	hasher := security.NewHasher(cfg.BcryptSaltRounds)
	issuer := session.NewIssuer(tokens, hasher, users, cfg.JWTRefreshExpiresDays)
	auditor := audit.NewLogger(auditLogs, interceptors.ClientIP)
	profiles := profile.NewService(users)

	auth, err := authservice.NewAuthService(users, roles, issuer, hasher, tokens, profiles, auditor)
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}

	s, hs, err := server.New(server.Deps{
		Tokens:    tokens,
		Auth:      auth,
		Auditor:   auditor,
		AuditLogs: audit.NewService(auditLogs),
	})
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go server.WatchReadiness(ctx, hs, conn, 10*time.Second)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	defer lis.Close()

	go func() {
		log.Printf("gRPC server listening on %s", cfg.GRPCAddr)
		if err := s.Serve(lis); err != nil {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down gRPC server...")
	stop()
	s.GracefulStop()
	log.Println("gRPC server stopped")
}
