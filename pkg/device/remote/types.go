package remote

type EmptyResponse struct {
}

type SetRotateRequest struct {
	Landscape bool
	Invert    bool
}

type SizeResponse struct {
	Width  int
	Height int
}

type DrawBitmapRequest struct {
	X     int
	Y     int
	Image []byte
}
