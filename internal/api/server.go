package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	v1 "github.com/Demianms/MuseosApp/internal/api/handler/v1"
	"github.com/Demianms/MuseosApp/internal/api/middleware"
	"github.com/Demianms/MuseosApp/internal/config"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

// Services are the use cases the HTTP API exposes.
type Services struct {
	Museums    v1.MuseumService
	Weather    v1.WeatherService
	Quotations v1.QuotationService
}

func NewServer(conf *config.AppConfig, svcs Services) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()
	s.MountHandlers(
		v1.NewMuseumHandler(svcs.Museums),
		v1.NewWeatherHandler(svcs.Weather),
		v1.NewQuotationHandler(svcs.Quotations),
	)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(museumHandler *v1.MuseumHandler, weatherHandler *v1.WeatherHandler, quotationHandler *v1.QuotationHandler) {
	const basePath = "/api/v1"

	museums := s.Router.Group(basePath)
	{
		museums.GET("/museums", museumHandler.HandleListMuseums)
		museums.GET("/museums/:museumID", museumHandler.HandleGetMuseum)
		museums.GET("/museums/:museumID/rooms/:roomID", museumHandler.HandleGetRoom)
		museums.GET("/categories", museumHandler.HandleListCategories)
		museums.GET("/discounts", museumHandler.HandleListDiscounts)
	}

	weather := s.Router.Group(basePath)
	{
		weather.GET("/weather", weatherHandler.HandleGetWeather)
	}

	quotations := s.Router.Group(basePath + "/quotations")
	{
		quotations.POST("/drafts", quotationHandler.HandleCreateDraft)
		quotations.GET("/drafts/:draftID", quotationHandler.HandleGetDraft)
		quotations.DELETE("/drafts/:draftID", quotationHandler.HandleDeleteDraft)
		quotations.PUT("/drafts/:draftID/museum", quotationHandler.HandleSelectMuseum)
		quotations.PUT("/drafts/:draftID/schedule", quotationHandler.HandleSetSchedule)
		quotations.PUT("/drafts/:draftID/counts", quotationHandler.HandleSetCounts)
		quotations.POST("/drafts/:draftID/groups", quotationHandler.HandleAddGroup)
		quotations.PUT("/drafts/:draftID/groups/:groupID", quotationHandler.HandleUpdateGroup)
		quotations.DELETE("/drafts/:draftID/groups/:groupID", quotationHandler.HandleRemoveGroup)
		quotations.POST("/drafts/:draftID/submit", quotationHandler.HandleSubmit)
		quotations.POST("/drafts/:draftID/clear", quotationHandler.HandleClearDraft)
		quotations.GET("/history", quotationHandler.HandleListHistory)
		quotations.GET("/:uniqueID", quotationHandler.HandleSearchQuotation)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
}
