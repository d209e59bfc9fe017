package remote

import (
	"bytes"
	"image"
	"image/png"
	"net/rpc"

	"urpaint/pkg/proto"
)

// Dial connects to a screen served by Handler.
func Dial(addr string) (*Client, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, err
	}

	c := &Client{rpc: client}
	if err := c.refreshSize(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return c, nil
}

var _ proto.Screen = (*Client)(nil)

type Client struct {
	rpc  *rpc.Client
	size image.Point
}

func (c *Client) refreshSize() error {
	var resp SizeResponse
	if err := c.rpc.Call("Service.Size", struct{}{}, &resp); err != nil {
		return err
	}
	c.size = image.Pt(resp.Width, resp.Height)
	return nil
}

func (c *Client) Startup() error {
	return c.rpc.Call("Service.Command", "startup", &EmptyResponse{})
}

func (c *Client) Shutdown() error {
	return c.rpc.Call("Service.Command", "shutdown", &EmptyResponse{})
}

func (c *Client) SetLight(light uint8) error {
	return c.rpc.Call("Service.SetLight", light, &EmptyResponse{})
}

func (c *Client) SetRotate(landscape bool, invert bool) error {
	if err := c.rpc.Call("Service.SetRotate", SetRotateRequest{
		Landscape: landscape,
		Invert:    invert,
	}, &EmptyResponse{}); err != nil {
		return err
	}
	return c.refreshSize()
}

func (c *Client) Size() image.Point {
	return c.size
}

func (c *Client) DrawBitmap(at image.Point, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	return c.rpc.Call("Service.DrawBitmap", &DrawBitmapRequest{
		X:     at.X,
		Y:     at.Y,
		Image: buf.Bytes(),
	}, &EmptyResponse{})
}

func (c *Client) Close() error {
	return c.rpc.Close()
}
