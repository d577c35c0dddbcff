// Package export writes vertex lists out as glTF binary (.glb) files.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"

	"mini-voxel/internal/geometry"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrNoGeometry is returned when there is nothing to export.
var ErrNoGeometry = errors.New("no vertices to export")

// Document builds a single-mesh glTF document from a triangle list.
func Document(name string, vertices []geometry.Vertex) (*gltf.Document, error) {
	if len(vertices) == 0 {
		return nil, ErrNoGeometry
	}

	positions := make([][3]float32, len(vertices))
	normals := make([][3]float32, len(vertices))
	texCoords := make([][2]float32, len(vertices))
	indices := make([]uint32, len(vertices))
	for i, v := range vertices {
		positions[i] = v.Position
		normals[i] = v.Normal
		texCoords[i] = v.TexCoord
		indices[i] = uint32(i)
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "mini-voxel"

	posAccessor := modeler.WritePosition(doc, positions)
	normalAccessor := modeler.WriteNormal(doc, normals)
	uvAccessor := modeler.WriteTextureCoord(doc, texCoords)
	indicesAccessor := modeler.WriteIndices(doc, indices)

	prim := &gltf.Primitive{
		Attributes: map[string]uint32{
			gltf.POSITION:   uint32(posAccessor),
			gltf.NORMAL:     uint32(normalAccessor),
			gltf.TEXCOORD_0: uint32(uvAccessor),
		},
		Indices: gltf.Index(uint32(indicesAccessor)),
	}

	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &[4]float32{1, 1, 1, 1},
		MetallicFactor:  gltf.Float(0),
		RoughnessFactor: gltf.Float(1),
	}
	doc.Materials = []*gltf.Material{{PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}}
	prim.Material = gltf.Index(0)

	doc.Meshes = []*gltf.Mesh{{Name: name, Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(0))
	return doc, nil
}

// WriteGLB encodes vertices as a binary glTF to w.
func WriteGLB(w io.Writer, name string, vertices []geometry.Vertex) error {
	doc, err := Document(name, vertices)
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode glb: %w", err)
	}
	return nil
}

// SaveGLB writes vertices to a .glb file at path.
func SaveGLB(path, name string, vertices []geometry.Vertex) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return WriteGLB(f, name, vertices)
}
