package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/betterfund/betterfund-api/docs"
	v1 "github.com/betterfund/betterfund-api/internal/api/handler/v1"
	"github.com/betterfund/betterfund-api/internal/api/middleware"
	"github.com/betterfund/betterfund-api/internal/cache"
	"github.com/betterfund/betterfund-api/internal/config"
	"github.com/betterfund/betterfund-api/internal/repository"
	"github.com/betterfund/betterfund-api/internal/repository/dao"
	"github.com/betterfund/betterfund-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	c := cache.New(conf.Redis)

	authHandler := s.initAuthHandler(db)
	campaignHandler := s.initCampaignHandler(db, c)
	donationHandler := s.initDonationHandler(db, c)
	storyHandler := s.initStoryHandler(db)
	commentHandler := s.initCommentHandler(db)
	s.MountHandlers(authHandler, campaignHandler, donationHandler, storyHandler, commentHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	uSvc := service.NewUserService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc, uSvc)

	return handler
}

func (s *Server) initCampaignHandler(db *gorm.DB, c *cache.Cache) *v1.CampaignHandler {
	campaignDAO := dao.NewCampaignDAO(db)
	repo := repository.NewCampaignRepository(campaignDAO)
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewCampaignService(repo, userRepo, c)
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewCampaignHandler(svc, uSvc)

	return handler
}

func (s *Server) initDonationHandler(db *gorm.DB, c *cache.Cache) *v1.DonationHandler {
	donationDAO := dao.NewDonationDAO(db)
	repo := repository.NewDonationRepository(donationDAO)
	campaignRepo := repository.NewCampaignRepository(dao.NewCampaignDAO(db))
	svc := service.NewDonationService(repo, campaignRepo, c, s.Config.Stripe)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewDonationHandler(svc, uSvc)

	return handler
}

func (s *Server) initStoryHandler(db *gorm.DB) *v1.StoryHandler {
	storyDAO := dao.NewStoryDAO(db)
	repo := repository.NewStoryRepository(storyDAO)
	donationRepo := repository.NewDonationRepository(dao.NewDonationDAO(db))
	campaignRepo := repository.NewCampaignRepository(dao.NewCampaignDAO(db))
	svc := service.NewStoryService(repo, donationRepo, campaignRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewStoryHandler(svc, uSvc)

	return handler
}

func (s *Server) initCommentHandler(db *gorm.DB) *v1.CommentHandler {
	commentDAO := dao.NewCommentDAO(db)
	repo := repository.NewCommentRepository(commentDAO)
	campaignRepo := repository.NewCampaignRepository(dao.NewCampaignDAO(db))
	svc := service.NewCommentService(repo, campaignRepo)
	handler := v1.NewCommentHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(middleware.Metrics())
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, campaignHandler *v1.CampaignHandler, donationHandler *v1.DonationHandler, storyHandler *v1.StoryHandler, commentHandler *v1.CommentHandler) {
	const basePath = "/api"

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/register", authHandler.HandleRegister)
		auth.POST("/auth/login", authHandler.HandleLogin)
		auth.POST("/auth/admin/changerole", verifyJWT, authHandler.HandleChangeRole)
	}

	campaigns := s.Router.Group(basePath)
	{
		campaigns.GET("/campaigns/active", campaignHandler.HandleListActive)
		campaigns.GET("/campaigns/:campaignID", campaignHandler.HandleGetCampaign)
		campaigns.GET("/campaigns/:campaignID/document", campaignHandler.HandleGetDocument)
		campaigns.GET("/campaigns/:campaignID/donations", donationHandler.HandleListDonations)

		campaigns.POST("/campaigns/create", verifyJWT, campaignHandler.HandleCreateCampaign)
		campaigns.POST("/campaigns/:campaignID/donate", verifyJWT, donationHandler.HandleDonate)

		campaigns.GET("/campaigns/admin/pending-campaigns", verifyJWT, campaignHandler.HandleListPending)
		campaigns.GET("/campaigns/admin/dashboard-stats", verifyJWT, campaignHandler.HandleDashboardStats)
		campaigns.POST("/campaigns/admin/:campaignID/approve", verifyJWT, campaignHandler.HandleApprove)
		campaigns.POST("/campaigns/admin/:campaignID/reject", verifyJWT, campaignHandler.HandleReject)
	}

	stories := s.Router.Group(basePath)
	{
		stories.GET("/successstories", storyHandler.HandleListStories)
		stories.GET("/successstories/completed", verifyJWT, storyHandler.HandleListEligibleCampaigns)
		stories.GET("/successstories/image/:storyID", storyHandler.HandleGetStoryImage)
		stories.GET("/successstories/:storyID", storyHandler.HandleGetStory)
		stories.POST("/successstories", verifyJWT, storyHandler.HandleCreateStory)
		stories.DELETE("/successstories/:storyID", verifyJWT, storyHandler.HandleDeleteStory)
	}

	comments := s.Router.Group(basePath)
	{
		comments.GET("/comments", commentHandler.HandleListComments)
		comments.POST("/comments", commentHandler.HandleCreateComment)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", middleware.MetricsHandler())

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "BetterFund API"
	docs.SwaggerInfo.Description = "Crowdfunding platform backend."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
