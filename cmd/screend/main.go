package main

import (
	"context"
	"net/http"

	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"urpaint/pkg/device/inch35"
	"urpaint/pkg/device/remote"
	"urpaint/pkg/proto"
)

var serial = flag.String("serial", "ttyACM0", "serial name")
var listen = flag.String("listen", ":9123", "listen addr")
var debug = flag.Bool("debug", false, "set debug")

func main() {
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
			func(logger *zap.Logger, lifecycle fx.Lifecycle) (proto.Screen, error) {
				dev, err := inch35.Open(*serial, logger)
				if err != nil {
					return nil, err
				}
				lifecycle.Append(fx.Hook{
					OnStop: func(context.Context) error {
						return dev.Close()
					},
				})
				return dev, nil
			},
		),
		fx.Invoke(
			remote.Proxy,
		),
	).Run()
}
