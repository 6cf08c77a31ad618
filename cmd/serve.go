package cmd

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"taxo/internal/apihandlers"
)

var (
	serveAddr string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run taxo as an HTTP API server",
	Long: `Starts an HTTP server exposing categorization and taxonomy maintenance
via a RESTful API. Allows interaction from other tools or UIs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		if !cmd.Flags().Changed("addr") && appInstance.Config.Serve.Address != "" {
			serveAddr = appInstance.Config.Serve.Address
		}
		if !cmd.Flags().Changed("port") && appInstance.Config.Serve.Port != "" {
			servePort = appInstance.Config.Serve.Port
		}

		router := gin.Default()

		apiHandler := apihandlers.NewAPIHandler(appInstance)

		v1 := router.Group("/api/v1")
		{
			categorizeGroup := v1.Group("/categorize")
			{
				categorizeGroup.POST("", apiHandler.CategorizeHandler)
				categorizeGroup.POST("/batches", apiHandler.EnqueueCategorizeHandler)
			}

			categoryGroup := v1.Group("/categories")
			{
				categoryGroup.POST("", apiHandler.CreateCategoryHandler)
				categoryGroup.GET("", apiHandler.ListCategoriesHandler)
				categoryGroup.DELETE("/:id", apiHandler.DeleteCategoryHandler)
				categoryGroup.POST("/:id/subcategories", apiHandler.CreateSubcategoryHandler)
				categoryGroup.GET("/:id/subcategories", apiHandler.ListSubcategoriesHandler)
			}

			v1.DELETE("/subcategories/:id", apiHandler.DeleteSubcategoryHandler)

			productGroup := v1.Group("/products")
			{
				productGroup.POST("", apiHandler.CreateProductHandler)
				productGroup.GET("", apiHandler.ListProductsHandler)
			}
		}

		router.GET("/health", func(c *gin.Context) {
			if err := appInstance.TaxonomyStore.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		listenAddr := fmt.Sprintf("%s:%s", serveAddr, servePort)
		log.Infof("Starting taxo API server on http://%s", listenAddr)

		if err := router.Run(listenAddr); err != nil {
			return fmt.Errorf("failed to run API server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost", "Address to listen on (e.g., '0.0.0.0' for all interfaces)")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")
}
