package model

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/g3n/engine/loader/obj"
	"go.uber.org/zap"
)

const quadOBJ = `# quad split into two materials
o front
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl painted
f 1/1/1 2/2/1 3/3/1 4/4/1
usemtl bare
f 1/1/1 3/3/1 4/4/1
`

const quadMTL = `newmtl painted
Ns 32
map_Kd diffuse.png
map_Ks specular.jpg

newmtl bare
Kd 1 1 1
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// quadDecoder is a decoded unit quad in the z=0 plane, split across two materials
func quadDecoder() *obj.Decoder {
	return &obj.Decoder{
		Objects: []obj.Object{{
			Name: "front",
			Faces: []obj.Face{
				{Vertices: []int{0, 1, 2, 3}, Uvs: []int{0, 1, 2, 3}, Normals: []int{0, 0, 0, 0}, Material: "painted"},
				{Vertices: []int{0, 2, 3}, Uvs: []int{0, 2, 3}, Normals: []int{0, 0, 0}, Material: "bare"},
			},
		}},
		Materials: map[string]*obj.Material{
			"painted": {MapKd: `textures\diffuse.png`, MapKs: "specular.jpg"},
			"bare":    {},
		},
		Vertices: []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
		Uvs:      []float32{0, 0, 1, 0, 1, 1, 0, 1},
		Normals:  []float32{0, 0, 1},
	}
}

func TestMeshesFromOBJSplitsByMaterial(t *testing.T) {
	dir := filepath.Join("assets", "quad")
	meshes, err := meshesFromOBJ(quadDecoder(), dir)
	if err != nil {
		t.Fatalf("Failed to convert: %v", err)
	}
	if len(meshes) != 2 {
		t.Fatalf("Expected 2 meshes (one per material), got %d", len(meshes))
	}

	painted := meshes[0]
	if painted.Name != "front" {
		t.Errorf("Expected mesh name 'front', got %q", painted.Name)
	}
	// quad fan-triangulated: 2 triangles over 4 unique corners
	if want := []uint32{0, 1, 2, 0, 2, 3}; !reflect.DeepEqual(painted.Indices, want) {
		t.Errorf("Indices = %v, want %v", painted.Indices, want)
	}
	if got := painted.VertexCount(); got != 4 {
		t.Errorf("Expected 4 deduplicated vertices, got %d", got)
	}
	if got, want := painted.Vertices[8:16], []float32{1, 0, 0, 0, 0, 1, 1, 0}; !reflect.DeepEqual(got, want) {
		t.Errorf("Second vertex = %v, want %v", got, want)
	}

	wantTex := []TextureRef{
		{Kind: TextureDiffuse, Path: filepath.Join(dir, "textures", "diffuse.png")},
		{Kind: TextureSpecular, Path: filepath.Join(dir, "specular.jpg")},
	}
	if len(painted.Textures) != len(wantTex) {
		t.Fatalf("Expected %d textures, got %d", len(wantTex), len(painted.Textures))
	}
	for i, want := range wantTex {
		got := painted.Textures[i]
		if got.Kind != want.Kind || got.Path != want.Path || got.Key != want.Path {
			t.Errorf("Texture %d = %+v, want %+v", i, got, want)
		}
	}

	bare := meshes[1]
	if len(bare.Textures) != 0 {
		t.Errorf("Expected no textures on 'bare', got %d", len(bare.Textures))
	}
	if bare.Name != "front" {
		t.Errorf("Material switch should keep the object name, got %q", bare.Name)
	}
	// each submesh numbers its own vertices
	if want := []uint32{0, 1, 2}; !reflect.DeepEqual(bare.Indices, want) {
		t.Errorf("Indices = %v, want %v", bare.Indices, want)
	}
}

func TestMeshesFromOBJMissingAttributes(t *testing.T) {
	dec := &obj.Decoder{
		Objects: []obj.Object{{Faces: []obj.Face{
			{Vertices: []int{0, 1, 2}, Uvs: []int{-1, -1, -1}},
			{Vertices: []int{0, 1}},
		}}},
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
	}
	meshes, err := meshesFromOBJ(dec, ".")
	if err != nil {
		t.Fatal(err)
	}
	if len(meshes) != 1 {
		t.Fatalf("Expected 1 mesh, got %d", len(meshes))
	}
	if meshes[0].Name != "object_0" {
		t.Errorf("Expected fallback name 'object_0', got %q", meshes[0].Name)
	}
	if got := len(meshes[0].Indices); got != 3 {
		t.Errorf("Degenerate face should be skipped, got %d indices", got)
	}
	for i := 0; i < meshes[0].VertexCount(); i++ {
		v := meshes[0].Vertices[i*8 : i*8+8]
		for _, f := range v[3:] {
			if f != 0 {
				t.Errorf("Expected zero normal/uv for vertex %d, got %v", i, v)
			}
		}
	}
}

func TestMeshesFromOBJPositionOutOfRange(t *testing.T) {
	dec := &obj.Decoder{
		Objects:  []obj.Object{{Name: "bad", Faces: []obj.Face{{Vertices: []int{0, 1, 9}}}}},
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
	}
	if _, err := meshesFromOBJ(dec, "."); err == nil {
		t.Errorf("Expected out-of-range position index to fail")
	}
}

func TestLoadOBJWithMaterials(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "quad.obj"), quadOBJ)
	writeFile(t, filepath.Join(dir, "quad.mtl"), quadMTL)

	data, err := Load(filepath.Join(dir, "quad.obj"), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to load model: %v", err)
	}
	if len(data.Meshes) != 2 {
		t.Fatalf("Expected 2 meshes (one per material), got %d", len(data.Meshes))
	}

	painted := data.Meshes[0]
	if got := len(painted.Indices); got != 6 {
		t.Errorf("Expected 6 indices, got %d", got)
	}
	if len(painted.Textures) != 2 {
		t.Fatalf("Expected diffuse and specular textures, got %d", len(painted.Textures))
	}
	if got, want := painted.Textures[0].Path, filepath.Join(dir, "diffuse.png"); got != want {
		t.Errorf("Diffuse path = %q, want %q", got, want)
	}
	if got := painted.Textures[1].Kind; got != TextureSpecular {
		t.Errorf("Second texture kind = %q, want specular", got)
	}
}

func TestLoadUnknownFormat(t *testing.T) {
	if _, err := Load("model.fbx", zap.NewNop()); err == nil {
		t.Errorf("Expected error for unsupported extension")
	}
}

func TestSamplerNames(t *testing.T) {
	refs := []TextureRef{
		{Kind: TextureDiffuse},
		{Kind: TextureSpecular},
		{Kind: TextureDiffuse},
		{Kind: TextureNormal},
	}
	want := []string{
		"material.texture_diffuse1",
		"material.texture_specular1",
		"material.texture_diffuse2",
		"material.texture_normal1",
	}
	if got := samplerNames(refs); !reflect.DeepEqual(got, want) {
		t.Errorf("samplerNames() = %v, want %v", got, want)
	}
}
