package fbxbuilder

import (
	"bytes"
	"testing"

	"github.com/mogaika/fbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogaika/orrery/scenegraph"
)

func TestExportScene(t *testing.T) {
	root := scenegraph.NewNode("root", nil)
	arm := root.MustAddChild(scenegraph.NewNode("arm", nil).SetPosition(1, 2, 3))
	arm.MustAddChild(scenegraph.NewNode("", nil).SetScale(2, 2, 2))

	f := ExportScene(root, "test.fbx")
	assert.Len(t, f.objects.Nodes, 6)
	assert.Len(t, f.connections.Nodes, 6)

	models := 0
	for _, o := range f.objects.Nodes {
		if o.Name == "Model" {
			models++
		}
	}
	assert.Equal(t, 3, models)

	// first model hangs off the document root
	rootModel := f.objects.Nodes[0].Properties[0].(int64)
	link := f.connections.Nodes[1].Properties
	assert.Equal(t, rootModel, link[1])
	assert.Equal(t, int64(0), link[2])

	var out bytes.Buffer
	require.NoError(t, f.Write(&out))
	assert.NotZero(t, out.Len())
}

func TestModelTemplateCarriesTransformOnly(t *testing.T) {
	f := NewFBXBuilder("template.fbx")
	var model *fbx.Node
	for _, ot := range f.Root().GetNode("Definitions").GetNodes("ObjectType") {
		if ot.Properties[0] == "Model" {
			model = ot
		}
	}
	require.NotNil(t, model)

	var names []interface{}
	for _, p := range model.GetNode("PropertyTemplate").GetNode("Properties70").Nodes {
		names = append(names, p.Properties[0])
	}
	assert.Equal(t, []interface{}{"Lcl Translation", "Lcl Rotation", "Lcl Scaling"}, names)
}

func TestExportEmpty(t *testing.T) {
	f := ExportScene(nil, "empty.fbx")
	assert.Empty(t, f.objects.Nodes)
}
