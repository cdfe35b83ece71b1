package main

import (
	"context"
	"net/http"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"

	cloudinary "github.com/minifoot/minifoot-api/repos/cloudinary"
	resend "github.com/minifoot/minifoot-api/repos/resend"
	store "github.com/minifoot/minifoot-api/repos/store"

	auth "github.com/minifoot/minifoot-api/pkg/auth"
	config "github.com/minifoot/minifoot-api/pkg/config"
	logger "github.com/minifoot/minifoot-api/pkg/logger"
	metrics "github.com/minifoot/minifoot-api/pkg/metrics"

	matches "github.com/minifoot/minifoot-api/services/matches"
	players "github.com/minifoot/minifoot-api/services/players"
	stats "github.com/minifoot/minifoot-api/services/stats"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.New("info", false).Fatal().Err(err).Msg("Failed to load config")
	}
	log := logger.New(cfg.LogLevel, cfg.ConsoleLog)

	var credentialOptions []option.ClientOption
	if cfg.FirebaseCredentialsJSON != "" {
		credentialOptions = append(credentialOptions, option.WithCredentialsJSON([]byte(cfg.FirebaseCredentialsJSON)))
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProjectID, credentialOptions...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Firestore client")
	}
	defer firestoreClient.Close()

	firebaseApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, credentialOptions...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Firebase app")
	}

	storeService := store.NewService(firestoreClient, log)
	cloudinaryService := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryUploadPreset, log)
	resendService := resend.NewService(cfg.ResendKey, cfg.ReportFrom, log)
	m := metrics.New()

	playersService := players.NewPlayersService(storeService, cloudinaryService, m, log)
	matchesService := matches.NewMatchesService(storeService, resendService, m, matches.Policy{
		MinRosterSize:  cfg.MinRosterSize,
		SameTeamAssist: cfg.SameTeamAssist,
	}, log)
	statsService := stats.NewStatsService(storeService, log)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSHosts, ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Access-Control-Allow-Origin"}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.CORSHosts != "" {
		router.Use(cors.New(corsConfig))
	}

	playersRouter := router.Group("/players/v1")
	playersRouter.Use(auth.Middleware(firebaseApp))

	matchesRouter := router.Group("/matches/v1")
	matchesRouter.Use(auth.Middleware(firebaseApp))

	// Stats are public, read-only.
	statsRouter := router.Group("/stats/v1")

	players.NewHTTPHandler(players.HTTPOptions{
		Service: playersService,
		Router:  playersRouter,
	})

	matches.NewHTTPHandler(matches.HTTPOptions{
		Service: matchesService,
		Router:  matchesRouter,
	})

	stats.NewHTTPHandler(stats.HTTPOptions{
		Service: statsService,
		Router:  statsRouter,
	})

	router.GET("/metrics", m.Handler())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Info().Str("port", cfg.Port).Msg("Listening")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
