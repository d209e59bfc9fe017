package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/inhies/go-bytesize"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"urpaint/pkg/server"
)

var listen = flag.String("listen", ":8080", "listen addr")
var maxUpload = flag.String("max-upload", server.DefaultMaxUpload.String(), "max upload size")
var origins = flag.String("origins", "http://localhost:5173", "allowed CORS origins, comma separated")
var mode = flag.String("mode", "coloring", "default filter: coloring, sketch or none")
var debug = flag.Bool("debug", false, "set debug")

func serve(srv *http.Server, s *server.Server, logger *zap.Logger, lifecycle fx.Lifecycle) {
	srv.Handler = s.Handler()

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != http.ErrServerClosed {
					logger.With(zap.Error(err)).Fatal("serve failed")
				}
			}()
			logger.With(zap.String("addr", srv.Addr)).Info("convert-serving")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func main() {
	_ = godotenv.Load()
	flag.Parse()

	fx.New(
		fx.Provide(
			func() (*zap.Logger, error) {
				if *debug {
					return zap.NewDevelopment()
				}
				return zap.NewProduction()
			},
			func() *http.Server {
				return &http.Server{Addr: *listen}
			},
			func(logger *zap.Logger) (*server.Server, error) {
				limit, err := bytesize.Parse(*maxUpload)
				if err != nil {
					return nil, err
				}
				return server.New(logger,
					server.WithMaxUpload(limit),
					server.WithOrigins(strings.Split(*origins, ",")...),
					server.WithMode(*mode),
				), nil
			},
		),
		fx.Invoke(
			serve,
		),
	).Run()
}
