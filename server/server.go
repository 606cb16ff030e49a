package server

import (
	"log"
	"time"

	"irrigation-server/auth"
	"irrigation-server/confs"
	"irrigation-server/db"
	"irrigation-server/handlers"
	httpHandler "irrigation-server/handlers/http"
	"irrigation-server/repositories"
	"irrigation-server/services"
	"irrigation-server/usecases"
	"irrigation-server/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	app *gin.Engine
	cfg *confs.Config
	db  db.Database
}

func NewServer(cfg *confs.Config, database db.Database) *Server {
	return &Server{
		app: gin.Default(),
		cfg: cfg,
		db:  database,
	}
}

func (s *Server) Start() {
	// Setup CORS middleware; credentials are needed for the session cookie
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Requested-With"}
	corsConfig.AllowCredentials = true
	s.app.Use(cors.New(corsConfig))

	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	loc, err := time.LoadLocation(s.cfg.IrrigationTZ)
	if err != nil {
		log.Printf("unknown time zone %q, falling back to UTC", s.cfg.IrrigationTZ)
		loc = time.UTC
	}

	// Initialize repositories
	zoneRepo := repositories.NewZonePgRepository(s.db)
	subZoneRepo := repositories.NewSubZonePgRepository(s.db)
	readingRepo := repositories.NewReadingPgRepository(s.db)
	irrigationRepo := repositories.NewIrrigationPgRepository(s.db)
	plantTypeRepo := repositories.NewPlantTypePgRepository(s.db)
	soilTypeRepo := repositories.NewSoilTypePgRepository(s.db)
	userRepo := repositories.NewUserPgRepository(s.db)
	downtimeRepo := repositories.NewDowntimePgRepository(s.db)

	// Live reading feed
	manager := ws.NewManager()
	wsHandler := handlers.NewWSHandler(manager)

	// Initialize use cases
	ingestUseCase := usecases.NewIngestUseCase(s.db, loc, wsHandler)
	zoneUseCase := usecases.NewZoneUseCase(zoneRepo, downtimeRepo)
	subZoneUseCase := usecases.NewSubZoneUseCase(subZoneRepo, readingRepo, irrigationRepo, plantTypeRepo, soilTypeRepo, loc)
	referenceUseCase := usecases.NewReferenceUseCase(plantTypeRepo, soilTypeRepo)
	userUseCase := usecases.NewUserUseCase(userRepo)

	// Sessions and capability gate
	sessions := auth.NewSessionStore(s.cfg.SessionTTL)
	sessions.StartJanitor(time.Hour)
	gate := httpHandler.NewAuthMiddleware(sessions)

	// Background downtime sweep
	monitor := services.NewDowntimeMonitor(zoneRepo, readingRepo, downtimeRepo, s.cfg.DowntimeAfter, s.cfg.DowntimeCheckInterval, loc)
	monitor.Start()

	// Initialize handlers
	zoneHandler := httpHandler.NewZoneHandler(zoneUseCase, ingestUseCase)
	subZoneHandler := httpHandler.NewSubZoneHandler(subZoneUseCase)
	plantTypeHandler := httpHandler.NewPlantTypeHandler(referenceUseCase)
	soilTypeHandler := httpHandler.NewSoilTypeHandler(referenceUseCase)
	userHandler := httpHandler.NewUserHandler(userUseCase)
	loginHandler := httpHandler.NewLoginHandler(userUseCase, sessions)

	s.app.POST("/login", loginHandler.Login)
	s.app.POST("/logout", loginHandler.Logout)

	api := s.app.Group("/api")
	{
		api.GET("/current-user", gate.RequireSession(), loginHandler.CurrentUser)

		zones := api.Group("/zones")
		{
			// Controller endpoint; the device account holds the ingest capability
			zones.POST("/readings", gate.RequireCapability(auth.CapIngest), zoneHandler.ReceiveSensorData)

			zones.GET("", gate.RequireCapability(auth.CapRead), zoneHandler.ListZones)
			zones.GET("/:id", gate.RequireCapability(auth.CapRead), zoneHandler.GetZone)
			zones.PUT("/:id", gate.RequireCapability(auth.CapWrite), zoneHandler.UpdateZone)
			zones.DELETE("/:id", gate.RequireCapability(auth.CapWrite), zoneHandler.DeleteZone)
			zones.GET("/:id/downtimes", gate.RequireCapability(auth.CapRead), zoneHandler.GetDowntimes)

			zones.GET("/:id/subzones/:id2", gate.RequireCapability(auth.CapRead), withSubZoneID(subZoneHandler.GetSubZone))
			zones.PUT("/:id/subzones/:id2", gate.RequireCapability(auth.CapWrite), withSubZoneID(subZoneHandler.UpdateSubZone))
			zones.GET("/:id/subzones/:id2/soil-readings", gate.RequireCapability(auth.CapRead), withSubZoneID(subZoneHandler.SoilReadings))
			zones.PUT("/:id/subzones/:id2/fix-issue", gate.RequireCapability(auth.CapWrite), withSubZoneID(subZoneHandler.FixIssue))
			zones.POST("/:id/subzones/:id2/manual-irrigation", gate.RequireCapability(auth.CapWrite), withSubZoneID(subZoneHandler.ManualIrrigation))
		}

		subZones := api.Group("/subzones")
		{
			subZones.GET("/:id", gate.RequireCapability(auth.CapRead), subZoneHandler.GetSubZone)
			subZones.GET("/:id/moisture-history", gate.RequireCapability(auth.CapRead), subZoneHandler.MoistureHistory)
			subZones.POST("/:id/irrigate", gate.RequireCapability(auth.CapWrite), subZoneHandler.Irrigate)
		}

		plantTypes := api.Group("/plant-types")
		{
			plantTypes.GET("", gate.RequireCapability(auth.CapRead), plantTypeHandler.List)
			plantTypes.GET("/:id", gate.RequireCapability(auth.CapRead), plantTypeHandler.Get)
			plantTypes.POST("", gate.RequireCapability(auth.CapWrite), plantTypeHandler.Create)
			plantTypes.PUT("/:id", gate.RequireCapability(auth.CapWrite), plantTypeHandler.Update)
			plantTypes.DELETE("/:id", gate.RequireCapability(auth.CapWrite), plantTypeHandler.Delete)
		}

		soilTypes := api.Group("/soil-types")
		{
			soilTypes.GET("", gate.RequireCapability(auth.CapRead), soilTypeHandler.List)
			soilTypes.GET("/:id", gate.RequireCapability(auth.CapRead), soilTypeHandler.Get)
			soilTypes.POST("", gate.RequireCapability(auth.CapWrite), soilTypeHandler.Create)
			soilTypes.PUT("/:id", gate.RequireCapability(auth.CapWrite), soilTypeHandler.Update)
			soilTypes.DELETE("/:id", gate.RequireCapability(auth.CapWrite), soilTypeHandler.Delete)
		}

		users := api.Group("/users", gate.RequireCapability(auth.CapManageUsers))
		{
			users.GET("", userHandler.List)
			users.GET("/:id", userHandler.Get)
			users.POST("", userHandler.Create)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Delete)
		}

		api.GET("/roles", gate.RequireCapability(auth.CapRead), userHandler.Roles)
	}

	s.app.GET("/ws", wsHandler.HandleReadingsWS)

	if err := s.app.Run("0.0.0.0:" + s.cfg.ServerPort); err != nil {
		panic(err)
	}
}

// withSubZoneID rewrites the nested route's second parameter to the
// "id" name the subzone handlers read. The zone id segment is not
// needed past routing; subzone ids are globally unique.
func withSubZoneID(handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		subZoneID := c.Param("id2")
		for i := range c.Params {
			if c.Params[i].Key == "id" {
				c.Params[i].Value = subZoneID
			}
		}
		handler(c)
	}
}
