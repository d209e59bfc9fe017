package remote

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/rpc"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"urpaint/pkg/proto"
)

// Handler exposes dev over net/rpc on rpc.DefaultRPCPath.
func Handler(dev proto.Screen) (http.Handler, error) {
	srv := rpc.NewServer()
	if err := srv.Register(&Service{dev: dev}); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(rpc.DefaultRPCPath, srv)
	return mux, nil
}

// Proxy serves dev with srv for the lifetime of the fx application.
func Proxy(dev proto.Screen, srv *http.Server, logger *zap.Logger, lifecycle fx.Lifecycle) error {
	h, err := Handler(dev)
	if err != nil {
		return err
	}
	srv.Handler = h

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != http.ErrServerClosed {
					logger.With(zap.Error(err)).Fatal("serve failed")
				}
			}()
			logger.With(zap.String("addr", srv.Addr)).Info("screen-serving")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return nil
}

type Service struct {
	dev proto.Screen
}

func (s *Service) Command(name string, _ *EmptyResponse) error {
	switch name {
	case "startup":
		return s.dev.Startup()
	case "shutdown":
		return s.dev.Shutdown()
	}

	return errors.New("unknown command")
}

func (s *Service) SetLight(light uint8, _ *EmptyResponse) error {
	return s.dev.SetLight(light)
}

func (s *Service) SetRotate(req SetRotateRequest, _ *EmptyResponse) error {
	return s.dev.SetRotate(req.Landscape, req.Invert)
}

func (s *Service) Size(_ struct{}, resp *SizeResponse) error {
	size := s.dev.Size()
	resp.Width, resp.Height = size.X, size.Y
	return nil
}

func (s *Service) DrawBitmap(req *DrawBitmapRequest, _ *EmptyResponse) error {
	img, err := png.Decode(bytes.NewReader(req.Image))
	if err != nil {
		return err
	}

	return s.dev.DrawBitmap(image.Pt(req.X, req.Y), img)
}
