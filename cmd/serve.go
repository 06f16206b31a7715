package cmd

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/curricula/internal/overview"
	"github.com/abhisek/curricula/internal/pipeline"
	"github.com/abhisek/curricula/internal/schedule"
	"github.com/abhisek/curricula/internal/server"
	"github.com/abhisek/curricula/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rt, err := openRuntime(cmd, true)
		if err != nil {
			return err
		}
		defer rt.Close()

		addr := rt.cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}
		if rt.cfg.Log.Mode == "production" || rt.cfg.Log.Mode == "prod" {
			gin.SetMode(gin.ReleaseMode)
		}

		var artifacts store.ArtifactRepo
		if rt.cfg.Redis.Addr != "" {
			redisRepo, err := store.OpenRedis(ctx, rt.cfg.Redis.Addr, rt.cfg.Redis.TTL)
			if err != nil {
				return err
			}
			defer redisRepo.Close()
			artifacts = redisRepo
			rt.log.Info("session artifacts in redis", "addr", rt.cfg.Redis.Addr, "ttl", rt.cfg.Redis.TTL)
		} else {
			sqlRepo := rt.store.ArtifactRepo()
			n, err := sqlRepo.Prune(ctx, time.Now().Add(-rt.cfg.Redis.TTL))
			if err != nil {
				rt.log.Warn("failed to prune old artifacts", "error", err)
			} else if n > 0 {
				rt.log.Info("pruned old artifacts", "count", n)
			}
			artifacts = sqlRepo
		}

		srv := server.New(server.Deps{
			Pipeline:     pipeline.New(rt.provider, rt.cfg.PipelineConfig(), artifacts, rt.log),
			Overview:     overview.NewService(rt.provider, rt.log),
			Schedule:     schedule.NewService(rt.provider, schedule.DefaultConfig(), rt.log),
			Provider:     rt.provider,
			ProviderName: rt.providerName,
			Log:          rt.log,
		})
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":5000", "Listen address (overrides server.addr)")
}
