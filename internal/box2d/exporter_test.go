package box2d

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"box2d-shapes/internal/editor"
	"box2d-shapes/internal/logger"
	"box2d-shapes/internal/scene"
	"box2d-shapes/internal/shapes"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}
}

// newTestEditor returns an initialized editor with project and scene dirs under a temp dir and
// the plugin loaded with stable ids.
func newTestEditor(t *testing.T, opts ...editor.Option) (*editor.Editor, *Instance) {
	t.Helper()
	dir := t.TempDir()
	return openEditor(t, filepath.Join(dir, "project"), filepath.Join(dir, "scene"), opts...)
}

func openEditor(t *testing.T, projectDir, sceneDir string, opts ...editor.Option) (*editor.Editor, *Instance) {
	t.Helper()
	e := editor.New(opts...)
	e.SetProjectDir(projectDir)
	e.SetSceneDir(sceneDir)
	var inst *Instance
	err := e.LoadPlugin(Name, func(e *editor.Editor) editor.Plugin {
		inst = Attach(e, shapes.WithIDGenerator(sequentialIDs()))
		return inst.Plugin()
	})
	if err != nil {
		t.Fatalf("load plugin: %v", err)
	}
	if err := e.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	return e, inst
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

func readManifest(t *testing.T, projectDir string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(projectDir, DirName, ManifestFileName))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var files []string
	if err := json.Unmarshal(data, &files); err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	return files
}

func consoleErrors(e *editor.Editor) []string {
	var out []string
	for _, entry := range e.Console().Entries(logger.LevelError) {
		out = append(out, entry.Text)
	}
	return out
}

func TestSaveWritesDescriptorsAndManifest(t *testing.T) {
	e, inst := newTestEditor(t)
	wall := inst.Shapes.AddCube("Wall")
	wall.Position = scene.Vector3{X: 1}
	inst.Shapes.AddSphere("Ball")

	if err := inst.Exporter.Save(e.ProjectDir()); err != nil {
		t.Fatalf("save: %v", err)
	}

	manifest := readManifest(t, e.ProjectDir())
	want := []string{"Wall-id1.json", "Ball-id2.json"}
	if strings.Join(manifest, ",") != strings.Join(want, ",") {
		t.Fatalf("manifest = %v, want %v", manifest, want)
	}

	data, err := os.ReadFile(filepath.Join(e.ProjectDir(), DirName, "Wall-id1.json"))
	if err != nil {
		t.Fatalf("read descriptor: %v", err)
	}
	wantJSON := "{\n\t\"name\": \"Wall\",\n\t\"id\": \"id1\",\n\t\"type\": \"cube\",\n" +
		"\t\"position\": [\n\t\t1,\n\t\t0,\n\t\t0\n\t],\n" +
		"\t\"rotation\": [\n\t\t0,\n\t\t0,\n\t\t0\n\t],\n" +
		"\t\"scaling\": [\n\t\t1,\n\t\t1,\n\t\t1\n\t]\n}\n"
	if string(data) != wantJSON {
		t.Fatalf("descriptor file:\n%s\nwant:\n%s", data, wantJSON)
	}

	msgs := e.Messages()
	if len(msgs) == 0 || msgs[len(msgs)-1] != "Box2D configuration successfully saved." {
		t.Fatalf("unexpected messages %v", msgs)
	}
}

func TestSaveFileNamesUniqueForSameName(t *testing.T) {
	e, inst := newTestEditor(t)
	inst.Shapes.AddCube("Crate")
	inst.Shapes.AddCube("Crate")

	if err := inst.Exporter.Save(e.ProjectDir()); err != nil {
		t.Fatalf("save: %v", err)
	}
	manifest := readManifest(t, e.ProjectDir())
	if len(manifest) != 2 || manifest[0] == manifest[1] {
		t.Fatalf("expected two distinct files, got %v", manifest)
	}
}

func TestShapeFileNameSanitizes(t *testing.T) {
	for _, tc := range []struct {
		name, id string
	}{
		{"a/b", "x"},
		{"../up", "y"},
		{`c:\d?*`, "z"},
		{"", "w"},
	} {
		n := &scene.Node{Name: tc.name, ID: tc.id}
		got := ShapeFileName(n)
		if strings.ContainsAny(got, `/\`) {
			t.Errorf("%q: file name %q contains a separator", tc.name, got)
		}
		if !strings.HasSuffix(got, "-"+tc.id+".json") {
			t.Errorf("%q: file name %q does not end with the id", tc.name, got)
		}
		if filepath.Base(got) != got {
			t.Errorf("%q: file name %q escapes the directory", tc.name, got)
		}
	}
}

func TestSaveRemovesStaleFiles(t *testing.T) {
	e, inst := newTestEditor(t)
	inst.Shapes.AddCube("Keep")
	dir := filepath.Join(e.ProjectDir(), DirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Old-1.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := inst.Exporter.Save(e.ProjectDir()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := listDir(t, dir)
	want := []string{"Keep-id1.json", ManifestFileName}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("dir = %v, want %v", got, want)
	}
}

func TestSaveManifestMatchesDirectory(t *testing.T) {
	e, inst := newTestEditor(t)
	inst.Shapes.AddCube("A")
	b := inst.Shapes.AddSphere("B")
	if err := inst.Exporter.Save(e.ProjectDir()); err != nil {
		t.Fatalf("save: %v", err)
	}

	e.Scene().Remove(b)
	if err := inst.Exporter.Save(e.ProjectDir()); err != nil {
		t.Fatalf("second save: %v", err)
	}

	manifest := readManifest(t, e.ProjectDir())
	files := listDir(t, filepath.Join(e.ProjectDir(), DirName))
	want := append([]string{ManifestFileName}, manifest...)
	sort.Strings(want)
	if strings.Join(files, ",") != strings.Join(want, ",") {
		t.Fatalf("dir = %v, manifest = %v", files, manifest)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	e, inst := newTestEditor(t)
	inst.Shapes.AddCube("Wall").Rotation = scene.Vector3{Z: 0.5}
	inst.Shapes.AddSphere("Ball")

	snapshot := func() map[string][]byte {
		dir := filepath.Join(e.ProjectDir(), DirName)
		out := make(map[string][]byte)
		for _, name := range listDir(t, dir) {
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				t.Fatal(err)
			}
			out[name] = data
		}
		return out
	}

	if err := inst.Exporter.Save(e.ProjectDir()); err != nil {
		t.Fatalf("save: %v", err)
	}
	first := snapshot()
	if err := inst.Exporter.Save(e.ProjectDir()); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := snapshot()

	if len(first) != len(second) {
		t.Fatalf("file sets differ: %d vs %d", len(first), len(second))
	}
	for name, data := range first {
		if !bytes.Equal(data, second[name]) {
			t.Errorf("%s changed between saves", name)
		}
	}
}

func TestSaveExcludesFailedFile(t *testing.T) {
	e, inst := newTestEditor(t)
	inst.Shapes.AddCube("Wall")
	inst.Shapes.AddCube("Floor")

	// A directory in place of the first descriptor makes its write fail.
	blocked := filepath.Join(e.ProjectDir(), DirName, "Wall-id1.json")
	if err := os.MkdirAll(blocked, 0755); err != nil {
		t.Fatal(err)
	}

	if err := inst.Exporter.Save(e.ProjectDir()); err != nil {
		t.Fatalf("save: %v", err)
	}
	manifest := readManifest(t, e.ProjectDir())
	if len(manifest) != 1 || manifest[0] != "Floor-id2.json" {
		t.Fatalf("manifest = %v", manifest)
	}
	errs := consoleErrors(e)
	want := `Failed to save box2d shape at path: "Wall-id1.json"`
	if len(errs) != 1 || errs[0] != want {
		t.Fatalf("console errors = %v", errs)
	}
}

func TestSaveAfterProjectSaved(t *testing.T) {
	e, inst := newTestEditor(t)
	inst.Shapes.AddCube("Wall")

	if err := e.SaveProject(true); err != nil {
		t.Fatalf("save project: %v", err)
	}
	if got := readManifest(t, e.ProjectDir()); len(got) != 1 {
		t.Fatalf("manifest = %v", got)
	}
	if _, err := os.Stat(filepath.Join(e.SceneDir(), GeneratedFileName)); !os.IsNotExist(err) {
		t.Fatalf("expected no generated file when generation is skipped, got %v", err)
	}
}

func TestGenerateWritesAllDescriptors(t *testing.T) {
	e, inst := newTestEditor(t)
	inst.Shapes.AddCube("Wall")
	inst.Shapes.AddSphere("Ball")

	if err := e.ExportFinalScene(); err != nil {
		t.Fatalf("export scene: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(e.SceneDir(), GeneratedFileName))
	if err != nil {
		t.Fatalf("read generated: %v", err)
	}
	if bytes.Contains(bytes.TrimSuffix(data, []byte("\n")), []byte("\n")) {
		t.Fatalf("expected compact JSON, got %s", data)
	}
	var got []shapes.Descriptor
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("parse generated: %v", err)
	}
	if len(got) != 2 || got[0].Type != shapes.Cube || got[1].Type != shapes.Sphere {
		t.Fatalf("generated = %+v", got)
	}
	msgs := e.Messages()
	if msgs[len(msgs)-1] != "Box2D configuration successfully generated." {
		t.Fatalf("unexpected messages %v", msgs)
	}
}

func TestGenerateEmptyScene(t *testing.T) {
	e, inst := newTestEditor(t)
	if err := inst.Exporter.Generate(e.SceneDir()); err != nil {
		t.Fatalf("generate: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(e.SceneDir(), GeneratedFileName))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]\n" {
		t.Fatalf("generated = %q", data)
	}
}

func TestSaveDisposeReload(t *testing.T) {
	dir := t.TempDir()
	projectDir := filepath.Join(dir, "project")
	sceneDir := filepath.Join(dir, "scene")

	e, inst := openEditor(t, projectDir, sceneDir)
	wall := inst.Shapes.AddCube("Wall")
	wall.Position = scene.Vector3{X: 1}
	id := wall.ID
	if err := e.SaveProject(true); err != nil {
		t.Fatalf("save project: %v", err)
	}

	if err := e.UnloadPlugin(Name); err != nil {
		t.Fatalf("unload: %v", err)
	}
	if e.Scene().Len() != 0 {
		t.Fatalf("expected dispose to empty the scene, got %d nodes", e.Scene().Len())
	}
	if got := readManifest(t, projectDir); len(got) != 1 {
		t.Fatalf("dispose must not touch the files, manifest = %v", got)
	}

	e2, inst2 := openEditor(t, projectDir, sceneDir)
	got := inst2.Shapes.Shapes()
	if len(got) != 1 {
		t.Fatalf("expected one shape after reload, got %d", len(got))
	}
	n := got[0]
	if n.Name != "Wall" || n.ID != id || n.Position != (scene.Vector3{X: 1}) {
		t.Fatalf("reloaded %+v", n)
	}
	if meta, _ := inst2.Shapes.Metadata(n); meta.ShapeType != shapes.Cube {
		t.Fatalf("reloaded type %q", meta.ShapeType)
	}
	if n.Material != inst2.Shapes.Material() {
		t.Fatalf("reloaded shape does not use the marker material")
	}
	msgs := e2.Messages()
	if len(msgs) == 0 || msgs[len(msgs)-1] != "Box2D configuration successfully loaded" {
		t.Fatalf("unexpected messages %v", msgs)
	}
}

func TestLoadSkipsUnknownType(t *testing.T) {
	dir := t.TempDir()
	box2dDir := filepath.Join(dir, DirName)
	if err := os.MkdirAll(box2dDir, 0755); err != nil {
		t.Fatal(err)
	}
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(box2dDir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write(ManifestFileName, `["a-1.json","c-2.json"]`)
	write("a-1.json", `{"name":"a","id":"1","type":"cube","position":[0,0,0],"rotation":[0,0,0],"scaling":[1,1,1]}`)
	write("c-2.json", `{"name":"c","id":"2","type":"cylinder","position":[0,0,0],"rotation":[0,0,0],"scaling":[1,1,1]}`)

	e, inst := newTestEditor(t)
	var added []*scene.Node
	e.AddedNode.Add(func(n *scene.Node) { added = append(added, n) })

	if err := inst.Exporter.Load(dir); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := len(inst.Shapes.Shapes()); got != 1 {
		t.Fatalf("expected 1 shape, got %d", got)
	}
	if len(added) != 1 || added[0].ID != "1" {
		t.Fatalf("added = %v", added)
	}
	if errs := consoleErrors(e); len(errs) != 0 {
		t.Fatalf("unknown type must not be reported, got %v", errs)
	}
}

func TestLoadNoOp(t *testing.T) {
	e, inst := newTestEditor(t)
	refreshes := e.Graph().Refreshes()

	if err := inst.Exporter.Load(""); err != nil {
		t.Fatalf("empty dir: %v", err)
	}
	if err := inst.Exporter.Load(t.TempDir()); err != nil {
		t.Fatalf("no plugin dir: %v", err)
	}
	if e.Graph().Refreshes() != refreshes {
		t.Fatalf("no-op load refreshed the graph")
	}
	if len(inst.Shapes.Shapes()) != 0 {
		t.Fatalf("no-op load created shapes")
	}
}

func TestLoadErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		files map[string]string
		want  string
	}{
		{"missing manifest", map[string]string{}, "read manifest"},
		{"corrupt manifest", map[string]string{ManifestFileName: "{"}, "read manifest"},
		{"missing shape", map[string]string{ManifestFileName: `["a-1.json"]`}, "read shape"},
		{"corrupt shape", map[string]string{
			ManifestFileName: `["ok-1.json","bad-2.json"]`,
			"ok-1.json":      `{"name":"ok","id":"1","type":"cube","position":[0,0,0],"rotation":[0,0,0],"scaling":[1,1,1]}`,
			"bad-2.json":     `{"name":`,
		}, "read shape"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			box2dDir := filepath.Join(dir, DirName)
			if err := os.MkdirAll(box2dDir, 0755); err != nil {
				t.Fatal(err)
			}
			for name, body := range tc.files {
				if err := os.WriteFile(filepath.Join(box2dDir, name), []byte(body), 0644); err != nil {
					t.Fatal(err)
				}
			}
			_, inst := newTestEditor(t)

			err := inst.Exporter.Load(dir)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
			if n := len(inst.Shapes.Shapes()); n != 0 {
				t.Fatalf("failed load created %d shapes", n)
			}
		})
	}
}

func TestLoadErrorReportedOnInit(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, DirName), 0755); err != nil {
		t.Fatal(err)
	}
	e, _ := openEditor(t, dir, filepath.Join(dir, "scene"))
	errs := consoleErrors(e)
	if len(errs) != 1 || !strings.Contains(errs[0], "read manifest") {
		t.Fatalf("console errors = %v", errs)
	}
}

func TestInitLoadsWhenEditorAlreadyInitialized(t *testing.T) {
	dir := t.TempDir()
	src, inst := openEditor(t, dir, filepath.Join(dir, "scene"))
	inst.Shapes.AddCube("Wall")
	if err := inst.Exporter.Save(src.ProjectDir()); err != nil {
		t.Fatalf("save: %v", err)
	}

	e := editor.New()
	e.SetProjectDir(dir)
	if err := e.Init(); err != nil {
		t.Fatal(err)
	}
	late := Attach(e)
	if got := len(late.Shapes.Shapes()); got != 1 {
		t.Fatalf("expected immediate load, got %d shapes", got)
	}
}

func TestInitWaitsForEditor(t *testing.T) {
	dir := t.TempDir()
	src, inst := openEditor(t, dir, filepath.Join(dir, "scene"))
	inst.Shapes.AddCube("Wall")
	if err := inst.Exporter.Save(src.ProjectDir()); err != nil {
		t.Fatalf("save: %v", err)
	}

	e := editor.New()
	e.SetProjectDir(dir)
	early := Attach(e)
	if got := len(early.Shapes.Shapes()); got != 0 {
		t.Fatalf("loaded before init: %d shapes", got)
	}
	if err := e.Init(); err != nil {
		t.Fatal(err)
	}
	if got := len(early.Shapes.Shapes()); got != 1 {
		t.Fatalf("expected load on init, got %d shapes", got)
	}
}

func TestDisposeUnsubscribes(t *testing.T) {
	e, inst := newTestEditor(t)
	inst.Shapes.AddCube("Wall")
	e.Scene().CreateBox("ground", 10)

	inst.Exporter.Dispose()
	if e.Scene().Len() != 1 {
		t.Fatalf("dispose removed non-shape nodes: %d left", e.Scene().Len())
	}
	if e.AfterSaveProject.HasObservers() || e.AfterGenerateScene.HasObservers() {
		t.Fatalf("dispose left observers subscribed")
	}
	if err := e.SaveProject(false); err != nil {
		t.Fatalf("save project: %v", err)
	}
	if _, err := os.Stat(filepath.Join(e.ProjectDir(), DirName)); !os.IsNotExist(err) {
		t.Fatalf("disposed exporter still saved: %v", err)
	}
}

func TestShapeFileNameKeepsID(t *testing.T) {
	a := ShapeFileName(&scene.Node{Name: "n", ID: "a/b"})
	b := ShapeFileName(&scene.Node{Name: "n", ID: "a!b"})
	if a == b {
		t.Fatalf("distinct ids share file name %q", a)
	}
	if a != "n-ab.json" || b != "n-a!b.json" {
		t.Fatalf("file names = %q, %q", a, b)
	}
}

func TestSaveSkipsCollidingFileName(t *testing.T) {
	e, inst := newTestEditor(t)
	first := inst.Shapes.AddCube("Crate")
	first.ID = "a/b"
	second := inst.Shapes.AddCube("Crate")
	second.ID = "ab"

	if err := inst.Exporter.Save(e.ProjectDir()); err != nil {
		t.Fatalf("save: %v", err)
	}
	manifest := readManifest(t, e.ProjectDir())
	if len(manifest) != 1 || manifest[0] != "Crate-ab.json" {
		t.Fatalf("manifest = %v", manifest)
	}
	data, err := os.ReadFile(filepath.Join(e.ProjectDir(), DirName, "Crate-ab.json"))
	if err != nil {
		t.Fatal(err)
	}
	var d shapes.Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		t.Fatal(err)
	}
	if d.ID != "a/b" {
		t.Fatalf("later shape overwrote the file, id = %q", d.ID)
	}
	if errs := consoleErrors(e); len(errs) != 1 || !strings.Contains(errs[0], "Crate-ab.json") {
		t.Fatalf("console errors = %v", errs)
	}
}

func TestLoadSkipsRepeatedEntries(t *testing.T) {
	const cube = `{"name":"a","id":"1","type":"cube","position":[0,0,0],"rotation":[0,0,0],"scaling":[1,1,1]}`
	for _, tc := range []struct {
		name  string
		files map[string]string
	}{
		{"repeated manifest entry", map[string]string{
			ManifestFileName: `["a-1.json","a-1.json"]`,
			"a-1.json":       cube,
		}},
		{"repeated id", map[string]string{
			ManifestFileName: `["a-1.json","copy-1.json"]`,
			"a-1.json":       cube,
			"copy-1.json":    cube,
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			box2dDir := filepath.Join(dir, DirName)
			if err := os.MkdirAll(box2dDir, 0755); err != nil {
				t.Fatal(err)
			}
			for name, body := range tc.files {
				if err := os.WriteFile(filepath.Join(box2dDir, name), []byte(body), 0644); err != nil {
					t.Fatal(err)
				}
			}

			e, inst := openEditor(t, dir, filepath.Join(dir, "scene"))
			if got := len(inst.Shapes.Shapes()); got != 1 {
				t.Fatalf("expected 1 shape, got %d", got)
			}
			if err := inst.Exporter.Save(e.ProjectDir()); err != nil {
				t.Fatalf("save: %v", err)
			}
			if got := readManifest(t, dir); len(got) != 1 || got[0] != "a-1.json" {
				t.Fatalf("manifest after save = %v", got)
			}
		})
	}
}

func TestDisposeRemovesMaterial(t *testing.T) {
	e, inst := newTestEditor(t)
	inst.Shapes.AddCube("Wall")
	if got := len(e.Scene().Materials()); got != 1 {
		t.Fatalf("expected the marker material, got %d materials", got)
	}
	if err := e.UnloadPlugin(Name); err != nil {
		t.Fatalf("unload: %v", err)
	}
	if got := len(e.Scene().Materials()); got != 0 {
		t.Fatalf("marker material left after dispose: %d", got)
	}
}
