package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sfbridge/mcp/pkg/client"
	"github.com/sfbridge/mcp/pkg/config"
	"github.com/sfbridge/mcp/pkg/mcp"
	mcp_server "github.com/sfbridge/mcp/pkg/server"
)

var cfgPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "sfbridge",
		Short: "MCP server exposing Salesforce report tools",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a config file (settings also read from SF_* env vars)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	sfClient := client.NewSalesforceClient(cfg.InstanceURL, cfg.APIVersion)
	toolBus := mcp_server.NewToolBusService(sfClient, logger)
	mcpHandler := mcp_server.NewHandler(toolBus, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"server": mcp_server.ServerName,
		})
	})

	// MCP Endpoint (Model Context Protocol, JSON-RPC 2.0 over HTTP).
	// The session token comes from the request's Bearer header when present,
	// else from configuration, and rides the request context into the tools.
	router.POST("/mcp", func(c *gin.Context) {
		token := cfg.SessionToken
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}

		ctx := context.WithValue(c.Request.Context(), mcp.ContextKeySessionToken, token)
		c.Request = c.Request.WithContext(ctx)

		mcpHandler.ServeHTTP(c.Writer, c.Request)
	})

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Str("instance", cfg.InstanceURL).Msg("sfbridge listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
