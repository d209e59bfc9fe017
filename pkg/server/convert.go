package server

import (
	"bytes"
	"io"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"urpaint/pkg/filter"
)

// room for multipart headers around the file itself
const formOverhead = 64 << 10

var accepted = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

func (s *Server) convert(w http.ResponseWriter, r *http.Request) {
	limit := int64(s.maxUpload)
	if r.ContentLength > limit+formOverhead {
		respondError(w, http.StatusRequestEntityTooLarge, "file too large, max "+s.maxUpload.String())
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit+formOverhead)

	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "file too large, max "+s.maxUpload.String())
			return
		}
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if header.Size == 0 {
		respondError(w, http.StatusBadRequest, "file is empty")
		return
	}
	if header.Size > limit {
		respondError(w, http.StatusRequestEntityTooLarge, "file too large, max "+s.maxUpload.String())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	if kind := http.DetectContentType(data); !accepted[kind] {
		respondError(w, http.StatusBadRequest, "unsupported file type "+kind)
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = s.mode
	}
	stage, err := filter.ByName(mode)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to decode image")
		return
	}

	out := stage.Apply(img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		s.log.With(zap.Error(err)).Warn("encode-failed")
		respondError(w, http.StatusInternalServerError, "failed to encode image")
		return
	}

	s.log.With(
		zap.String("file", header.Filename),
		zap.String("mode", mode),
		zap.Stringer("size", out.Bounds().Size()),
	).Info("converted")

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
