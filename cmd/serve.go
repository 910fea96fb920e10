package cmd

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"employee-datahub/api"
	_ "employee-datahub/docs"
	"employee-datahub/service"
	"employee-datahub/service/rate_limiter"

	daprd "github.com/dapr/go-sdk/service/http"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		file string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "加载清洗结果并启动HTTP查询服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := root.cfg
			if port > 0 {
				cfg.Server.Port = port
			}

			// 指标注册到默认注册器，由/metrics暴露
			app, err := service.NewApp(ctx, cfg, service.WithRegisterer(prometheus.DefaultRegisterer))
			if err != nil {
				return err
			}
			defer app.Close()

			an, err := app.LoadAnalyzer(ctx, valueOr(file, cfg.Cleaning.CleanedDataFile))
			if err != nil {
				return err
			}

			deps := api.Dependencies{Analyzer: an, Metrics: app.Metrics}
			if store, err := app.RunStore(); err == nil {
				deps.Runs = store
			}
			if cfg.Server.RateLimitRedisAddr != "" {
				limiter, err := rate_limiter.NewRedisRateLimiter(ctx, cfg.Server.RateLimitRedisAddr, time.Minute, cfg.Server.RateLimitPerMinute)
				if err != nil {
					return err
				}
				defer limiter.Close()
				deps.Limiter = limiter
			}

			s := daprd.NewServiceWithMux(":"+strconv.Itoa(cfg.Server.Port), newRouter(cfg.Server.BaseContext, deps))
			go func() {
				<-ctx.Done()
				if err := s.GracefulStop(); err != nil {
					slog.Error("停止HTTP服务失败", "error", err)
				}
			}()

			slog.Info("HTTP服务启动", "port", cfg.Server.Port, "base_context", cfg.Server.BaseContext)
			if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "清洗结果文件 (默认读取CLEANED_DATA_FILE)")
	cmd.Flags().IntVar(&port, "port", 0, "监听端口 (默认读取LISTEN_PORT)")
	return cmd
}

// newRouter 创建路由，BASE_CONTEXT非空时所有路由挂载在该路径下
func newRouter(baseContext string, deps api.Dependencies) *chi.Mux {
	mux := chi.NewRouter()

	mount := func(r *chi.Mux) {
		api.InitRoute(r, deps)
		r.Handle("/metrics", promhttp.Handler())
		r.Handle("/swagger*", httpSwagger.WrapHandler)
	}

	if baseContext != "" {
		mux.Route(baseContext, func(r chi.Router) {
			mount(r.(*chi.Mux))
		})
	} else {
		mount(mux)
	}
	return mux
}
