package model

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/g3n/engine/loader/obj"
	"go.uber.org/zap"
)

// objRef is one face corner: 0-based position / uv / normal indices, -1 when absent
type objRef [3]int

// LoadOBJ decodes a Wavefront .obj file together with the .mtl of the same
// base name next to it. Each object and each material switch inside an
// object becomes its own submesh.
func LoadOBJ(path string, log *zap.Logger) (*Data, error) {
	mtlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl"
	dec, err := obj.Decode(path, mtlPath)
	if err != nil {
		return nil, fmt.Errorf("decode obj %q: %w", path, err)
	}
	for _, w := range dec.Warnings {
		log.Warn("obj: decoder warning", zap.String("path", path), zap.String("warning", w))
	}

	meshes, err := meshesFromOBJ(dec, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("obj %q: %w", path, err)
	}
	return &Data{Path: path, Meshes: meshes}, nil
}

// meshesFromOBJ flattens decoded objects into interleaved submeshes.
// Polygons are fan-triangulated and corners sharing the same reference triple
// share a vertex. Texture paths resolve against dir.
func meshesFromOBJ(dec *obj.Decoder, dir string) ([]MeshData, error) {
	nv := len(dec.Vertices) / 3
	nt := len(dec.Uvs) / 2
	nn := len(dec.Normals) / 3

	var meshes []MeshData
	for oi := range dec.Objects {
		o := &dec.Objects[oi]
		name := o.Name
		if name == "" {
			name = fmt.Sprintf("object_%d", oi)
		}

		var mesh *MeshData
		var seen map[objRef]uint32
		material := ""
		for fi := range o.Faces {
			f := &o.Faces[fi]
			if len(f.Vertices) < 3 {
				continue
			}
			if mesh == nil || f.Material != material {
				if mesh != nil && len(mesh.Indices) > 0 {
					meshes = append(meshes, *mesh)
				}
				material = f.Material
				mesh = &MeshData{Name: name, Textures: objTextures(dec.Materials[material], dir)}
				seen = make(map[objRef]uint32)
			}

			refs := make([]objRef, len(f.Vertices))
			for i, v := range f.Vertices {
				if v < 0 || v >= nv {
					return nil, fmt.Errorf("object %q face %d: position index %d out of range", name, fi, v)
				}
				refs[i] = objRef{v, optionalIndex(f.Uvs, i, nt), optionalIndex(f.Normals, i, nn)}
			}

			// fan triangulation
			for i := 1; i+1 < len(refs); i++ {
				for _, ref := range [3]objRef{refs[0], refs[i], refs[i+1]} {
					mesh.Indices = append(mesh.Indices, objVertex(dec, mesh, seen, ref))
				}
			}
		}
		if mesh != nil && len(mesh.Indices) > 0 {
			meshes = append(meshes, *mesh)
		}
	}
	return meshes, nil
}

// optionalIndex returns idx[i], or -1 when the corner has no such attribute
func optionalIndex(idx []int, i, count int) int {
	if i >= len(idx) || idx[i] < 0 || idx[i] >= count {
		return -1
	}
	return idx[i]
}

func objVertex(dec *obj.Decoder, mesh *MeshData, seen map[objRef]uint32, ref objRef) uint32 {
	if idx, ok := seen[ref]; ok {
		return idx
	}
	idx := uint32(mesh.VertexCount())
	seen[ref] = idx

	p := dec.Vertices[ref[0]*3 : ref[0]*3+3]
	var n [3]float32
	var uv [2]float32
	if ref[2] >= 0 {
		copy(n[:], dec.Normals[ref[2]*3:ref[2]*3+3])
	}
	if ref[1] >= 0 {
		copy(uv[:], dec.Uvs[ref[1]*2:ref[1]*2+2])
	}
	mesh.Vertices = append(mesh.Vertices, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	return idx
}

// objTextures maps map_Kd and map_Ks onto the diffuse and specular slots
func objTextures(mat *obj.Material, dir string) []TextureRef {
	if mat == nil {
		return nil
	}
	var refs []TextureRef
	for _, t := range []struct {
		kind TextureKind
		file string
	}{
		{TextureDiffuse, mat.MapKd},
		{TextureSpecular, mat.MapKs},
	} {
		if t.file == "" {
			continue
		}
		p := filepath.Join(dir, filepath.FromSlash(strings.ReplaceAll(t.file, "\\", "/")))
		refs = append(refs, TextureRef{Kind: t.kind, Path: p, Key: p})
	}
	return refs
}
