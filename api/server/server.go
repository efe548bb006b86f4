package server

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/photon-storage/go-common/log"

	"github.com/bounties-network/bounties-indexer/api/service"
)

// Server defines an instance of a server that handles operational
// status requests against the indexer database.
type Server struct {
	port   int
	engine *gin.Engine
}

// New returns a new instance of the server.
func New(port int, service *service.Service) *Server {
	server := &Server{
		port:   port,
		engine: gin.Default(),
	}

	server.registerRouter(service)
	return server
}

func (s *Server) registerRouter(svc *service.Service) {
	g := s.engine.Group("bounties/v1")

	g.GET("ping", handle(svc.Ping))
	g.GET("chain-status", handle(svc.ChainStatus))
	g.GET("stats", handle(svc.Stats))
}

// Run the server
func (s *Server) Run() {
	if err := s.engine.Run(fmt.Sprintf(":%d", s.port)); err != nil {
		log.Error("run the server failed", "error", err)
		os.Exit(1)
	}
}

type handleFunc func(c *gin.Context) (interface{}, error)

func handle(fn handleFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := fn(c)
		if err != nil {
			code, ok := service.ErrorCode[errors.Cause(err)]
			if !ok {
				code = http.StatusInternalServerError
			}

			c.JSON(http.StatusOK, gin.H{
				"code": code,
				"msg":  err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"code": http.StatusOK,
			"data": data,
		})
	}
}
