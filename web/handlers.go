package web

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mogaika/meshcat_client/command"
	"github.com/mogaika/meshcat_client/scene"
	"github.com/mogaika/meshcat_client/transport"
	"github.com/mogaika/meshcat_client/webutils"
)

// Dispatcher is implemented by transport.Worker.
type Dispatcher interface {
	Do(ctx context.Context, cmd command.Command) (string, error)
}

type textRequest struct {
	Text     string `json:"text"`
	FontSize uint32 `json:"font_size"`
	FontFace string `json:"font_face"`
}

type objectRequest struct {
	Geometries []map[string]interface{} `json:"geometries"`
	Material   map[string]interface{}   `json:"material"`
	Text       *textRequest             `json:"text"`
	Pose       *poseRequest             `json:"pose"`
	ObjectType string                   `json:"object_type"`
}

type propertyRequest struct {
	Property string      `json:"property"`
	Value    interface{} `json:"value"`
}

type ackResponse struct {
	Ack string `json:"ack"`
}

// statusFor separates errors worth retrying from bad requests.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	case errors.Is(err, transport.ErrRequestPending):
		return http.StatusConflict
	case errors.Is(err, transport.ErrTransportFailure),
		errors.Is(err, transport.ErrConnectionFailure),
		errors.Is(err, transport.ErrClosed):
		return http.StatusBadGateway
	}
	return http.StatusBadRequest
}

func scenePath(r *http.Request) string {
	return "/" + mux.Vars(r)["path"]
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, cmd command.Command) {
	ack, err := s.dispatcher.Do(r.Context(), cmd)
	if err != nil {
		webutils.WriteError(w, statusFor(err), err)
		return
	}
	webutils.WriteJson(w, http.StatusOK, ackResponse{Ack: ack})
}

func (s *Server) HandlerSetObject(w http.ResponseWriter, r *http.Request) {
	var req objectRequest
	if err := webutils.ReadJson(r, &req); err != nil {
		webutils.WriteError(w, http.StatusBadRequest, err)
		return
	}
	lo, err := req.build()
	if err != nil {
		webutils.WriteError(w, statusFor(err), err)
		return
	}
	s.dispatch(w, r, command.NewSetObject(scenePath(r), lo))
}

func (req objectRequest) build() (*scene.LumpedObject, error) {
	pose, err := req.Pose.matrix()
	if err != nil {
		return nil, errors.Wrapf(err, "Pose")
	}
	kind := scene.MeshObject
	if req.ObjectType != "" {
		var ok bool
		if kind, ok = scene.ParseObjectKind(req.ObjectType); !ok {
			return nil, errors.Errorf("Unknown object type %q", req.ObjectType)
		}
	}

	b := scene.NewBuilder().Object(scene.NewObject(pose, kind))
	for i, fields := range req.Geometries {
		g, err := decodeGeometry(fields)
		if err != nil {
			return nil, errors.Wrapf(err, "Geometry %d", i)
		}
		b.Geometry(g)
	}

	if req.Material != nil {
		m, err := decodeMaterial(req.Material)
		if err != nil {
			return nil, err
		}
		b.Material(m)
	} else if req.Text != nil {
		b.Material(scene.NewMaterial(scene.MeshPhongMaterial, scene.WithTransparent(true)))
	}

	if req.Text != nil {
		t := *req.Text
		if t.FontSize == 0 {
			t.FontSize = 100
		}
		if t.FontFace == "" {
			t.FontFace = "sans-serif"
		}
		b.Texture(scene.NewTextTexture(t.Text, t.FontSize, t.FontFace))
		if len(req.Geometries) == 0 {
			b.Geometry(scene.NewGeometry(scene.Plane{Width: 10, Height: 10, WidthSegments: 1, HeightSegments: 1}))
		}
	}

	return b.Build()
}

func (s *Server) HandlerSetTransform(w http.ResponseWriter, r *http.Request) {
	var req poseRequest
	if err := webutils.ReadJson(r, &req); err != nil {
		webutils.WriteError(w, http.StatusBadRequest, err)
		return
	}
	m, err := req.matrix()
	if err != nil {
		webutils.WriteError(w, http.StatusBadRequest, err)
		return
	}
	s.dispatch(w, r, command.NewSetTransform(scenePath(r), m))
}

func (s *Server) HandlerSetProperty(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := webutils.ReadJson(r, &req); err != nil {
		webutils.WriteError(w, http.StatusBadRequest, err)
		return
	}
	p, err := command.ParseProperty(req.Property, req.Value)
	if err != nil {
		webutils.WriteError(w, http.StatusBadRequest, err)
		return
	}
	s.dispatch(w, r, command.NewSetProperty(scenePath(r), p))
}

func (s *Server) HandlerDelete(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, command.NewDelete(scenePath(r)))
}
