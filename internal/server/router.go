package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/legalease/backend/internal/handlers"
)

type RouterConfig struct {
	ContractHandler *handlers.ContractHandler
	AnalysisHandler *handlers.AnalysisHandler
	DatasetHandler  *handlers.DatasetHandler
	CORSOrigins     []string
	ServiceVersion  string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/health", handlers.HealthCheck)
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "LegalEase Contract Analyzer",
			"version": cfg.ServiceVersion,
			"status":  "running",
			"health":  "/health",
		})
	})

	api := router.Group("/api/v1")
	{
		contracts := api.Group("/contracts")
		{
			contracts.POST("/upload", cfg.ContractHandler.Upload)
			contracts.GET("/list", cfg.ContractHandler.List)
			contracts.GET("/:id", cfg.ContractHandler.Get)
			contracts.DELETE("/:id", cfg.ContractHandler.Delete)
		}

		analysis := api.Group("/analysis")
		{
			analysis.POST("/analyze", cfg.AnalysisHandler.Analyze)
			analysis.GET("/risk-levels", cfg.AnalysisHandler.RiskLevels)
			analysis.GET("/clause-types", cfg.AnalysisHandler.ClauseTypes)
			analysis.GET("/contract/:id/analysis", cfg.AnalysisHandler.GetContractAnalysis)
		}

		dataset := api.Group("/dataset")
		{
			dataset.GET("/clauses", cfg.DatasetHandler.ListClauses)
			dataset.GET("/clauses/types/list", cfg.DatasetHandler.ClauseTypes)
			dataset.GET("/clauses/risk-levels/list", cfg.DatasetHandler.RiskLevels)
			dataset.GET("/clauses/:id", cfg.DatasetHandler.GetClause)
			dataset.GET("/dataset/stats", cfg.DatasetHandler.Stats)
			dataset.POST("/dataset/reload", cfg.DatasetHandler.Reload)
		}
	}

	return router
}
