package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/capture"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/config"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/rendering"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

const sampleBlob = `{
  "fullName": "Asha Rao",
  "title": "Platform Engineer",
  "skills": "Go, PostgreSQL",
  "experience": ["Led the ledger rewrite"],
  "sectionOrder": ["experience", "experience"]
}`

// resetFlags puts every flag back to its default so tests do not leak state
// through the package-level flag variables.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the CLI in-process and returns what it wrote.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// fakeCapturer stands in for Chrome.
type fakeCapturer struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeCapturer) PDF(_ context.Context, markup string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return []byte("%PDF-1.7 " + markup[:10]), nil
}

func TestTemplatesCommand(t *testing.T) {
	out, _, err := execute(t, "", "templates")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	assert.True(t, strings.HasPrefix(lines[0], "classic"))
	assert.Contains(t, lines[0], "(default)")
}

func TestTemplatesCommand_JSON(t *testing.T) {
	out, _, err := execute(t, "", "templates", "--json")
	require.NoError(t, err)

	var infos []rendering.TemplateInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 9)
	assert.Equal(t, "classic", infos[0].ID)
	assert.True(t, infos[0].Default)
}

func TestTemplatesCommand_Verbose(t *testing.T) {
	out, _, err := execute(t, "", "templates", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "TEMPLATES (9)")
}

func TestNormalizeCommand_Candidate(t *testing.T) {
	path := writeFile(t, "candidate.json", `{
		"fullName": "  Asha Rao ",
		"skills": "Go; SQL\nKubernetes",
		"experience": [{"title": "Engineer", "company": "Acme"}],
		"education": null,
		"email": 42
	}`)

	out, _, err := execute(t, "", "normalize", path)
	require.NoError(t, err)

	var doc types.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Asha Rao", doc.FullName)
	assert.Equal(t, []string{"Go", "SQL", "Kubernetes"}, doc.Skills)
	assert.Len(t, doc.Experience, 1)
	assert.Empty(t, doc.Education)
	assert.Empty(t, doc.Email)
	assert.Equal(t, types.BuiltinSectionIDs(), doc.SectionOrder)
}

func TestNormalizeCommand_Blob(t *testing.T) {
	out, stderr, err := execute(t, sampleBlob, "normalize", "--blob", "-v", "-")
	require.NoError(t, err)

	var doc types.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []string{"experience", "summary", "skills", "education"}, doc.SectionOrder)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, doc.Skills)
	assert.Contains(t, stderr, "NORMALIZED DOCUMENT")
}

func TestNormalizeCommand_OutFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "doc.json")
	out, _, err := execute(t, sampleBlob, "normalize", "--blob", "-o", dest, "-")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"fullName": "Asha Rao"`)
}

func TestNormalizeCommand_NotAnObject(t *testing.T) {
	_, _, err := execute(t, `["Asha"]`, "normalize", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a JSON object")

	_, _, err = execute(t, `"Asha"`, "normalize", "--blob", "-")
	require.Error(t, err)
}

func TestRenderCommand_Stdout(t *testing.T) {
	path := writeFile(t, "doc.json", sampleBlob)

	out, _, err := execute(t, "", "render", path, "--template", "modern")
	require.NoError(t, err)
	assert.Contains(t, out, "@page { size: A4")
	assert.Contains(t, out, "Asha Rao")
	assert.Contains(t, out, "Led the ledger rewrite")
}

func TestRenderCommand_DocumentDesignTemplate(t *testing.T) {
	dir := t.TempDir()
	blob := `{"fullName": "Asha Rao", "design": {"template": "rounded-sections"}}`

	out, stderr, err := execute(t, blob, "render", "-", "-o", dir)
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Equal(t, filepath.Join(dir, "rounded-sections.html"), strings.TrimSpace(out))

	out, _, err = execute(t, blob, "render", "-", "-o", dir, "-t", "minimal")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "minimal.html"), strings.TrimSpace(out), "flag overrides the document")

	out, _, err = execute(t, `{"fullName": "Asha Rao"}`, "render", "-", "-o", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "classic.html"), strings.TrimSpace(out))
}

func TestRenderCommand_UnknownTemplate(t *testing.T) {
	out, stderr, err := execute(t, sampleBlob, "render", "-", "-t", "retro", "-f", "tree")
	require.NoError(t, err)
	assert.Contains(t, stderr, `unknown template "retro", using "classic"`)

	var tree rendering.Node
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.NotEmpty(t, tree.Children)
}

func TestRenderCommand_AllTrees(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path := writeFile(t, "doc.json", sampleBlob)

	out, _, err := execute(t, "", "render", path, "--all", "--format", "tree", "--out", dir)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 9)

	for _, info := range rendering.DefaultRegistry().List() {
		data, err := os.ReadFile(filepath.Join(dir, info.ID+".json"))
		require.NoError(t, err, info.ID)
		var tree rendering.Node
		require.NoError(t, json.Unmarshal(data, &tree), info.ID)
	}
}

func TestRenderCommand_PDF(t *testing.T) {
	fake := &fakeCapturer{}
	orig := newCapturer
	newCapturer = func(config.Config) capture.Capturer { return fake }
	t.Cleanup(func() { newCapturer = orig })

	dir := t.TempDir()
	out, _, err := execute(t, sampleBlob, "render", "-", "--all", "-f", "pdf", "-o", dir, "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "RENDERED")
	assert.Contains(t, out, "9 file(s)")
	assert.Equal(t, 9, fake.calls)

	data, err := os.ReadFile(filepath.Join(dir, "classic.pdf"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-1.7"))
}

func TestRenderCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, "atsresume.yaml", "template: minimal\nformat: tree\noutput_dir: "+dir+"\n")

	_, _, err := execute(t, sampleBlob, "render", "-", "--config", cfgPath)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "minimal.json"))
	assert.NoError(t, err)

	// Flags win over the file.
	_, _, err = execute(t, sampleBlob, "render", "-", "--config", cfgPath, "-t", "dense-ux")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "dense-ux.json"))
	assert.NoError(t, err)
}

func TestRenderCommand_Errors(t *testing.T) {
	_, _, err := execute(t, sampleBlob, "render", "-", "-f", "docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'format' must be one of")

	_, _, err = execute(t, "", "render", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")

	_, _, err = execute(t, "", "render")
	require.Error(t, err)

	cfgPath := writeFile(t, "bad.json", `{"format": "gif"}`)
	_, _, err = execute(t, sampleBlob, "render", "-", "--config", cfgPath)
	require.Error(t, err)
}

func TestVerifyCommand_BuiltInDocuments(t *testing.T) {
	out, _, err := execute(t, "", "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "9 templates verified against 2 document(s)")
}

func TestVerifyCommand_Files(t *testing.T) {
	path := writeFile(t, "doc.json", sampleBlob)

	out, _, err := execute(t, "", "verify", "-v", path)
	require.NoError(t, err)
	assert.Contains(t, out, "9 TEMPLATES EQUIVALENT")

	bad := writeFile(t, "bad.json", `[1, 2]`)
	_, _, err = execute(t, "", "verify", bad)
	require.Error(t, err)
}

func TestSampleDocuments(t *testing.T) {
	docs := sampleDocuments()
	require.Len(t, docs, 2)

	rich := docs[0]
	assert.Len(t, rich.CustomSections, 2)
	assert.Len(t, rich.SectionOrder, 6)
	assert.Equal(t, "custom-1", rich.SectionOrder[1])
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"https://a.example", "http://localhost:5173"}, splitList(" https://a.example, ,http://localhost:5173 "))
	assert.Nil(t, splitList(""))
}
