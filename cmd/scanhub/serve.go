package main

import (
	scangin "github.com/fwojciec/scanhub/gin"
	"github.com/gin-gonic/gin"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	gin.SetMode(gin.ReleaseMode)
	srv := scangin.NewServer(deps.Aggregator, deps.Frontpages, deps.Health, deps.Proxy,
		scangin.WithLogger(deps.Logger),
	)
	return srv.ListenAndServe(deps.Ctx, c.Addr)
}
