package main

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	storage "github.com/quintafc/team-sync/repos/storage"
	updatesrepo "github.com/quintafc/team-sync/repos/updates"

	"github.com/quintafc/team-sync/pkg/auth"
	"github.com/quintafc/team-sync/pkg/config"
	"github.com/quintafc/team-sync/pkg/log"

	admin "github.com/quintafc/team-sync/services/admin"
	dashboard "github.com/quintafc/team-sync/services/dashboard"
	draw "github.com/quintafc/team-sync/services/draw"
	updates "github.com/quintafc/team-sync/services/updates"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()
	log.EnsureLogger()

	cfg, err := config.ParseEnv()
	if err != nil {
		log.Logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// The remote updates backend is optional: without credentials the feature
	// degrades to an inert mock.
	var firestoreClient *firestore.Client
	if cfg.FirestoreProjectID != "" && cfg.FirestoreCredsJSON != "" {
		credentialsOption := option.WithCredentialsJSON([]byte(cfg.FirestoreCredsJSON))
		firestoreClient, err = firestore.NewClient(ctx, cfg.FirestoreProjectID, credentialsOption)
		if err != nil {
			log.Logger.Fatal("failed to create Firestore client", zap.Error(err))
		}
		defer firestoreClient.Close()
	} else {
		log.Logger.Warn("Firestore credentials missing, updates feature runs as a mock")
	}

	store := storage.NewStore(cfg.DataDir)
	broadcaster := storage.NewBroadcaster(store, cfg.PollInterval, cfg.FreshnessWindow)
	if err := broadcaster.Start(); err != nil {
		log.Logger.Fatal("failed to start broadcaster", zap.Error(err))
	}
	defer broadcaster.Stop()

	session := dashboard.NewSession(store, broadcaster, cfg.SaveDebounce)
	session.Start()
	defer session.Stop()

	registry := auth.NewRegistry()

	updatesRepo := updatesrepo.NewService(firestoreClient, cfg.ResendKey, cfg.HostURL, cfg.TeamMailList)

	adminService := admin.NewAdminService(cfg.AdminPassword, registry, session)
	drawService := draw.NewService(session)
	updatesService := updates.NewService(updatesRepo, session)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSHosts, ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}

	router := gin.Default()
	router.Use(cors.New(corsConfig))

	adminRouter := router.Group("/admin/v1")
	adminProtected := router.Group("/admin/v1")
	adminProtected.Use(auth.AuthMiddleware(registry))

	dashboardRouter := router.Group("/dashboard/v1")
	dashboardProtected := router.Group("/dashboard/v1")
	dashboardProtected.Use(auth.AuthMiddleware(registry))

	drawRouter := router.Group("/draw/v1")
	updatesRouter := router.Group("/updates/v1")

	admin.NewHTTPHandler(admin.HTTPOptions{
		Service:     adminService,
		Router:      adminRouter,
		AdminRouter: adminProtected,
	})

	dashboard.NewHTTPHandler(dashboard.HTTPOptions{
		Service:     session,
		Router:      dashboardRouter,
		AdminRouter: dashboardProtected,
	})

	draw.NewHTTPHandler(draw.HTTPOptions{
		Service: drawService,
		Router:  drawRouter,
	})

	updates.NewHTTPHandler(updates.HTTPOptions{
		Service: updatesService,
		Router:  updatesRouter,
	})

	log.Logger.Info("listening", zap.String("port", cfg.Port))
	log.Logger.Fatal("server stopped", zap.Error(router.Run(":"+cfg.Port)))
}
