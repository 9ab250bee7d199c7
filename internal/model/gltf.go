package model

import (
	"bytes"
	"fmt"
	"path/filepath"

	"glview/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"
)

// LoadGLTF opens a .gltf or .glb file and flattens its default scene into
// submeshes, one per triangle primitive, with node transforms baked in.
// Meshes that no node references are added untransformed.
func LoadGLTF(path string, log *zap.Logger) (*Data, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	l := &gltfLoader{doc: doc, path: path, dir: filepath.Dir(path), log: log}
	for _, root := range l.roots() {
		if err := l.walk(root, mgl32.Ident4()); err != nil {
			return nil, fmt.Errorf("gltf %q: %w", path, err)
		}
	}

	referenced := make([]bool, len(doc.Meshes))
	for _, n := range doc.Nodes {
		if n.Mesh != nil && *n.Mesh >= 0 && *n.Mesh < len(referenced) {
			referenced[*n.Mesh] = true
		}
	}
	for mi, ok := range referenced {
		if ok {
			continue
		}
		if err := l.addMesh(mi, mgl32.Ident4()); err != nil {
			return nil, fmt.Errorf("gltf %q: %w", path, err)
		}
	}

	return &Data{Path: path, Meshes: l.meshes}, nil
}

type gltfLoader struct {
	doc    *gltf.Document
	path   string
	dir    string
	log    *zap.Logger
	meshes []MeshData
}

func (l *gltfLoader) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(l.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	acc := l.doc.Accessors[idx]
	if acc.BufferView != nil {
		bv := *acc.BufferView
		if bv < 0 || bv >= len(l.doc.BufferViews) {
			return nil, fmt.Errorf("accessor %d: buffer view %d out of range", idx, bv)
		}
		if b := l.doc.BufferViews[bv].Buffer; b < 0 || b >= len(l.doc.Buffers) {
			return nil, fmt.Errorf("accessor %d: buffer %d out of range", idx, b)
		}
	}
	return acc, nil
}

func (l *gltfLoader) roots() []int {
	if l.doc.Scene != nil && *l.doc.Scene >= 0 && *l.doc.Scene < len(l.doc.Scenes) {
		return l.doc.Scenes[*l.doc.Scene].Nodes
	}
	hasParent := make([]bool, len(l.doc.Nodes))
	for _, n := range l.doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range l.doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func (l *gltfLoader) walk(nodeIdx int, parent mgl32.Mat4) error {
	if nodeIdx < 0 || nodeIdx >= len(l.doc.Nodes) {
		return fmt.Errorf("node %d out of range", nodeIdx)
	}
	node := l.doc.Nodes[nodeIdx]
	world := parent.Mul4(nodeMatrix(node))

	if node.Mesh != nil {
		if err := l.addMesh(*node.Mesh, world); err != nil {
			return err
		}
	}
	for _, c := range node.Children {
		if err := l.walk(c, world); err != nil {
			return err
		}
	}
	return nil
}

var identity64 = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func nodeMatrix(n *gltf.Node) mgl32.Mat4 {
	if n.Matrix != identity64 && n.Matrix != [16]float64{} {
		var m mgl32.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return m
	}

	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}

	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func (l *gltfLoader) addMesh(meshIdx int, world mgl32.Mat4) error {
	if meshIdx < 0 || meshIdx >= len(l.doc.Meshes) {
		return fmt.Errorf("mesh %d out of range", meshIdx)
	}
	gm := l.doc.Meshes[meshIdx]
	normalMat := world.Mat3().Inv().Transpose()

	for pi, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			l.log.Warn("gltf: skipping non-triangle primitive",
				zap.String("path", l.path), zap.String("mesh", gm.Name), zap.Int("primitive", pi))
			continue
		}
		mesh, err := l.readPrimitive(prim, world, normalMat)
		if err != nil {
			return fmt.Errorf("mesh %d primitive %d: %w", meshIdx, pi, err)
		}
		mesh.Name = gm.Name
		if mesh.Name == "" {
			mesh.Name = fmt.Sprintf("mesh_%d", meshIdx)
		}
		l.meshes = append(l.meshes, mesh)
	}
	return nil
}

func (l *gltfLoader) readPrimitive(prim *gltf.Primitive, world mgl32.Mat4, normalMat mgl32.Mat3) (MeshData, error) {
	var mesh MeshData

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return mesh, fmt.Errorf("no POSITION attribute")
	}
	acc, err := l.accessor(posIdx)
	if err != nil {
		return mesh, fmt.Errorf("positions: %w", err)
	}
	positions, err := modeler.ReadPosition(l.doc, acc, nil)
	if err != nil {
		return mesh, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		if acc, err = l.accessor(idx); err != nil {
			return mesh, fmt.Errorf("normals: %w", err)
		}
		if normals, err = modeler.ReadNormal(l.doc, acc, nil); err != nil {
			return mesh, fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if acc, err = l.accessor(idx); err != nil {
			return mesh, fmt.Errorf("texcoords: %w", err)
		}
		if uvs, err = modeler.ReadTextureCoord(l.doc, acc, nil); err != nil {
			return mesh, fmt.Errorf("texcoords: %w", err)
		}
	}

	mesh.Vertices = make([]float32, 0, len(positions)*vertexStride)
	for i, p := range positions {
		wp := world.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})
		var n mgl32.Vec3
		if i < len(normals) {
			n = normalMat.Mul3x1(mgl32.Vec3{normals[i][0], normals[i][1], normals[i][2]})
			if n.Len() > 0 {
				n = n.Normalize()
			}
		}
		var uv [2]float32
		if i < len(uvs) {
			// images are flipped on load, glTF's v axis points down
			uv = [2]float32{uvs[i][0], 1 - uvs[i][1]}
		}
		mesh.Vertices = append(mesh.Vertices, wp[0], wp[1], wp[2], n[0], n[1], n[2], uv[0], uv[1])
	}

	if prim.Indices != nil {
		if acc, err = l.accessor(*prim.Indices); err != nil {
			return mesh, fmt.Errorf("indices: %w", err)
		}
		mesh.Indices, err = modeler.ReadIndices(l.doc, acc, nil)
		if err != nil {
			return mesh, fmt.Errorf("indices: %w", err)
		}
		for _, i := range mesh.Indices {
			if int(i) >= len(positions) {
				return mesh, fmt.Errorf("index %d out of range for %d vertices", i, len(positions))
			}
		}
	} else {
		mesh.Indices = make([]uint32, len(positions))
		for i := range mesh.Indices {
			mesh.Indices[i] = uint32(i)
		}
	}

	if prim.Material != nil && *prim.Material >= 0 && *prim.Material < len(l.doc.Materials) {
		mesh.Textures = l.readMaterial(l.doc.Materials[*prim.Material])
	}
	return mesh, nil
}

// readMaterial maps metallic-roughness onto the Phong texture slots
func (l *gltfLoader) readMaterial(mat *gltf.Material) []TextureRef {
	var refs []TextureRef

	if pbr := mat.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorTexture != nil {
			if ref, ok := l.textureRef(pbr.BaseColorTexture.Index, TextureDiffuse); ok {
				refs = append(refs, ref)
			}
		}
		if pbr.MetallicRoughnessTexture != nil {
			if ref, ok := l.textureRef(pbr.MetallicRoughnessTexture.Index, TextureSpecular); ok {
				refs = append(refs, ref)
			}
		}
	}
	if mat.NormalTexture != nil && mat.NormalTexture.Index != nil {
		if ref, ok := l.textureRef(*mat.NormalTexture.Index, TextureNormal); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// textureRef resolves a glTF texture to a file path or a decoded embedded image.
// Failures are logged and the texture is left out.
func (l *gltfLoader) textureRef(texIdx int, kind TextureKind) (TextureRef, bool) {
	if texIdx < 0 || texIdx >= len(l.doc.Textures) || l.doc.Textures[texIdx].Source == nil {
		return TextureRef{}, false
	}
	imgIdx := *l.doc.Textures[texIdx].Source
	if imgIdx < 0 || imgIdx >= len(l.doc.Images) {
		return TextureRef{}, false
	}
	img := l.doc.Images[imgIdx]
	ref := TextureRef{Kind: kind}

	var raw []byte
	var err error
	switch {
	case img.BufferView != nil:
		bv := *img.BufferView
		if bv < 0 || bv >= len(l.doc.BufferViews) {
			err = fmt.Errorf("buffer view %d out of range", bv)
			break
		}
		raw, err = modeler.ReadBufferView(l.doc, l.doc.BufferViews[bv])
	case img.IsEmbeddedResource():
		raw, err = img.MarshalData()
	case img.URI != "":
		ref.Path = filepath.Join(l.dir, filepath.FromSlash(img.URI))
		ref.Key = ref.Path
		return ref, true
	default:
		return TextureRef{}, false
	}
	if err == nil {
		ref.Image, err = graphics.DecodeImage(bytes.NewReader(raw))
	}
	if err != nil {
		l.log.Warn("gltf: skipping texture", zap.String("path", l.path), zap.Int("image", imgIdx), zap.Error(err))
		return TextureRef{}, false
	}
	ref.Key = fmt.Sprintf("%s#image%d", l.path, imgIdx)
	return ref, true
}
