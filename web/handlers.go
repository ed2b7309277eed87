package web

import (
	"bytes"
	"net/http"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mogaika/orrery/scene"
	"github.com/mogaika/orrery/scenefile"
	"github.com/mogaika/orrery/scenegraph"
	"github.com/mogaika/orrery/utils"
	"github.com/mogaika/orrery/utils/fbxbuilder"
	"github.com/mogaika/orrery/utils/gltfutils"
	"github.com/mogaika/orrery/webutils"
)

type NodeView struct {
	ID       uuid.UUID   `json:"id"`
	Name     string      `json:"name"`
	Drawable bool        `json:"drawable"`
	Position mgl32.Vec3  `json:"position"`
	Scale    mgl32.Vec3  `json:"scale"`
	Euler    mgl32.Vec3  `json:"euler"`
	Rotation mgl32.Mat4  `json:"rotation"`
	Local    mgl32.Mat4  `json:"local"`
	World    mgl32.Vec3  `json:"world"`
	Children []*NodeView `json:"children,omitempty"`
}

func viewNode(n *scenegraph.Node, world mgl32.Mat4, recursive bool) *NodeView {
	world = world.Mul4(n.LocalTransform())
	v := &NodeView{
		ID:       n.ID,
		Name:     n.Name,
		Drawable: n.HasPayload(),
		Position: n.Position(),
		Scale:    n.Scale(),
		Euler:    utils.RotationToEulerDegrees(n.Rotation()),
		Rotation: n.Rotation(),
		Local:    n.LocalTransform(),
		World:    world.Col(3).Vec3(),
	}
	if recursive {
		for _, c := range n.Children() {
			v.Children = append(v.Children, viewNode(c, world, true))
		}
	}
	return v
}

func parentWorld(n *scenegraph.Node) mgl32.Mat4 {
	if p := n.Parent(); p != nil {
		return p.WorldTransform()
	}
	return mgl32.Ident4()
}

type SceneView struct {
	Name   string    `json:"name"`
	Frames int       `json:"frames"`
	Steps  int       `json:"steps"`
	Keys   []string  `json:"keys"`
	Root   *NodeView `json:"root"`
}

func (s *Server) HandlerJsonScene(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	webutils.WriteJson(w, &SceneView{
		Name:   s.scene.Name,
		Frames: s.scene.Frames(),
		Steps:  s.scene.Steps(),
		Keys:   s.scene.Keys(),
		Root:   viewNode(s.scene.Root, mgl32.Ident4(), true),
	})
}

func (s *Server) HandlerJsonKeys(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	webutils.WriteJson(w, s.scene.Keys())
}

// HandlerJsonNode looks the node up by uuid, falling back to its name.
func (s *Server) HandlerJsonNode(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()

	var n *scenegraph.Node
	if uid, err := uuid.Parse(id); err == nil {
		n = s.scene.Root.FindID(uid)
	} else {
		n, _ = s.scene.Node(id)
	}
	if n == nil {
		webutils.WriteErrorCode(w, http.StatusNotFound, errors.Wrapf(scene.ErrUnknownNode, "%q", id))
		return
	}
	webutils.WriteJson(w, viewNode(n, parentWorld(n), false))
}

func (s *Server) HandlerJsonFrame(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	webutils.WriteJson(w, s.frameLocked())
}

func (s *Server) HandlerActionKey(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.scene.HandleKey(key); err != nil {
		code := http.StatusBadRequest
		if errors.Cause(err) == scene.ErrUnknownKey {
			code = http.StatusNotFound
		}
		webutils.WriteErrorCode(w, code, err)
		return
	}
	webutils.WriteJson(w, s.frameLocked())
}

func (s *Server) HandlerActionStep(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.scene.Step(); err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteJson(w, s.frameLocked())
}

// HandlerActionNode applies a one-off mutation, given as a JSON binding
// without key, to the named node.
func (s *Server) HandlerActionNode(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req scenefile.Binding
	if err := webutils.ReadJson(r, &req); err != nil {
		webutils.WriteError(w, err)
		return
	}
	req.Node = name
	b, err := req.Action()
	if err != nil {
		webutils.WriteError(w, errors.Wrapf(err, "node %q", name))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.scene.Apply(b); err != nil {
		code := http.StatusBadRequest
		if errors.Cause(err) == scene.ErrUnknownNode {
			code = http.StatusNotFound
		}
		webutils.WriteErrorCode(w, code, err)
		return
	}
	n, _ := s.scene.Node(name)
	if n == nil {
		// camera ops do not need a node
		webutils.WriteJson(w, s.frameLocked())
		return
	}
	webutils.WriteJson(w, viewNode(n, parentWorld(n), false))
}

func (s *Server) HandlerExportGltf(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc, err := gltfutils.ExportScene(s.scene.Root)
	name := s.scene.Name
	s.mu.Unlock()
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	var buf bytes.Buffer
	if r.URL.Query().Get("format") == "json" {
		err = gltfutils.ExportJSON(&buf, doc)
		name += ".gltf"
	} else {
		err = gltfutils.ExportBinary(&buf, doc)
		name += ".glb"
	}
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, &buf, name)
}

func (s *Server) HandlerExportFbx(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	name := s.scene.Name + ".fbx"
	f := fbxbuilder.ExportScene(s.scene.Root, name)
	s.mu.Unlock()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, &buf, name)
}

func (s *Server) HandlerExportScene(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	f := scenefile.Describe(s.scene)
	s.mu.Unlock()

	data, err := f.Marshal()
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, bytes.NewReader(data), f.Name+".yaml")
}
