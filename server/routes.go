// routes.go - Router-Aufbau des Batch-Servers
// Enthaelt: Server, GenerateRoutes()

package server

import (
	"net"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/7blacky7/calibprep/calib"
	"github.com/7blacky7/calibprep/envconfig"
	"github.com/7blacky7/calibprep/version"
)

// Server liefert Kalibrierungs-Batches ueber HTTP aus
type Server struct {
	addr net.Addr
	it   *calib.Iterator
}

// GenerateRoutes erstellt und konfiguriert den HTTP-Router
func (s *Server) GenerateRoutes() (http.Handler, error) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowWildcard = true
	corsConfig.AllowBrowserExtensions = true
	corsConfig.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"User-Agent",
		"Accept",
		"X-Requested-With",
	}
	corsConfig.AllowOrigins = envconfig.AllowedOrigins()

	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.Use(
		cors.New(corsConfig),
		allowedHostsMiddleware(s.addr),
	)

	// General
	r.HEAD("/", func(c *gin.Context) { c.String(http.StatusOK, "calibprep is running") })
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "calibprep is running") })
	r.HEAD("/api/version", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"version": version.Version}) })
	r.GET("/api/version", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"version": version.Version}) })

	// Batches
	r.GET("/api/info", s.InfoHandler)
	r.GET("/api/batch/:iter", s.BatchHandler)
	r.GET("/api/batch/:iter/stats", s.BatchStatsHandler)

	return r, nil
}
