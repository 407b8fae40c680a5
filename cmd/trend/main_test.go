package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hashtrend/internal/discovery"
	"hashtrend/internal/pipeline"
	"hashtrend/internal/series"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI in-process with a config path that does not exist,
// so defaults apply.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	full := append([]string{args[0], "--config", filepath.Join(t.TempDir(), "none.yaml")}, args[1:]...)
	root.SetArgs(expandListFlags(full))
	err := root.Execute()
	return out.String(), err
}

func writeSnapshot(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPlotCmd_WritesDerivedFilename(t *testing.T) {
	in := t.TempDir()
	outDir := t.TempDir()
	a := writeSnapshot(t, in, "01-15-24.json", `{"#test": {"a": 3, "b": 2}}`)
	b := writeSnapshot(t, in, "01-16-24.json", `{"#test": {"a": 3, "b": 2}}`)

	out, err := execute(t, "plot",
		"--hashtags", "#test!",
		"--output_dir", outDir,
		"--input_paths", a, b)
	require.NoError(t, err)

	want := filepath.Join(outDir, "hashtag_trend_test.png")
	assert.FileExists(t, want)
	assert.Contains(t, out, "Plot saved as "+want)
	assert.Contains(t, out, "Extracted Data")
}

func TestPlotCmd_MultiValueFlags(t *testing.T) {
	in := t.TempDir()
	a := writeSnapshot(t, in, "03-01-20.json", `{"#coronavirus": {"en": 4}, "#flu": {"en": 1}}`)
	b := writeSnapshot(t, in, "03-02-20.json", `{"#coronavirus": {"en": 6}}`)

	orders := map[string][]string{
		"hashtags first": {"plot", "--hashtags", "#coronavirus", "#flu", "--input_paths", a, b},
		"paths first":    {"plot", "--input_paths", a, b, "--hashtags", "#coronavirus", "#flu"},
	}
	for name, args := range orders {
		t.Run(name, func(t *testing.T) {
			outDir := t.TempDir()
			out, err := execute(t, append(args, "--output_dir", outDir)...)
			require.NoError(t, err)

			assert.FileExists(t, filepath.Join(outDir, "hashtag_trend_coronavirus_flu.png"))
			assert.Contains(t, out, "[4, 6]")
			assert.Contains(t, out, "[1, 0]")
			assert.NotContains(t, out, "Skipped Inputs")
		})
	}
}

func TestExportCmd_MultiValueFlags(t *testing.T) {
	in := t.TempDir()
	a := writeSnapshot(t, in, "01-15-24.json", `{"#a": {"x": 1}, "#b": {"x": 2}}`)
	b := writeSnapshot(t, in, "01-16-24.json", `{"#a": {"x": 3}}`)

	out, err := execute(t, "export", "--input_paths", a, b, "--hashtags", "#a", "#b", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "date,#a,#b\n01-15-24,1,2\n01-16-24,3,0\n", out)
}

func TestFolderCmd_DatedWithoutHashtagNotice(t *testing.T) {
	in := t.TempDir()
	writeSnapshot(t, in, "geoTwitter20-03-01.lang", `{"#other": {"en": 1}}`)
	outPath := filepath.Join(t.TempDir(), "trend.png")

	out, err := execute(t, "folder", "--input_folder", in, "--hashtags", "#h", "--output_path", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No data found")
	assert.NoFileExists(t, outPath)
}

func TestWriteExport(t *testing.T) {
	in := t.TempDir()
	a := writeSnapshot(t, in, "01-15-24.json", `{"#a": {"x": 1}}`)
	res, err := pipeline.Run(context.Background(), pipeline.Request{
		Source:   discovery.Paths([]string{a}),
		Hashtags: []string{"#a"},
		Policy:   pipeline.PolicySilent,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "a.csv")
	require.NoError(t, writeExport(path, res.Series, series.FormatCSV))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "date,#a\n01-15-24,1\n", string(data))

	err = writeExport(filepath.Join(t.TempDir(), "missing", "a.csv"), res.Series, series.FormatCSV)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPlotCmd_Quiet(t *testing.T) {
	in := t.TempDir()
	a := writeSnapshot(t, in, "01-15-24.json", `{"#test": {"a": 1}}`)

	out, err := execute(t, "plot", "-q", "--hashtags", "#test", "--output_dir", t.TempDir(), "--input_paths", a)
	require.NoError(t, err)
	assert.NotContains(t, out, "Extracted Data")
}

func TestPlotCmd_RequiredFlags(t *testing.T) {
	_, err := execute(t, "plot", "--hashtags", "#x")
	assert.Error(t, err)
}

func TestFolderCmd_NoDataNotice(t *testing.T) {
	in := t.TempDir()
	writeSnapshot(t, in, "undated.lang", `{"#h": {"x": 1}}`)
	outPath := filepath.Join(t.TempDir(), "trend.png")

	out, err := execute(t, "folder", "--hashtags", "#h", "--input_folder", in, "--output_path", outPath)
	require.NoError(t, err)

	assert.Contains(t, out, "No data found")
	assert.NoFileExists(t, outPath)
}

func TestFolderCmd_WritesChart(t *testing.T) {
	in := t.TempDir()
	writeSnapshot(t, in, "geoTwitter20-03-01.zip.lang", `{"#coronavirus": {"en": 10, "es": 4}}`)
	writeSnapshot(t, in, "geoTwitter20-03-02.zip.lang", `{"#coronavirus": {"en": 12}}`)
	writeSnapshot(t, in, "geoTwitter20-03-02.zip.country", `{"#coronavirus": {"US": 99}}`)
	outPath := filepath.Join(t.TempDir(), "charts", "covid.png")

	out, err := execute(t, "folder", "--hashtags", "#coronavirus", "--input_folder", in, "--output_path", outPath)
	require.NoError(t, err)
	assert.FileExists(t, outPath)
	assert.Contains(t, out, "[14, 12]")
}

func TestFolderCmd_ErrorPolicy(t *testing.T) {
	in := t.TempDir()
	writeSnapshot(t, in, "undated.lang", `{}`)
	t.Setenv("HASHTREND_EMPTY_POLICY", "error")

	_, err := execute(t, "folder", "--hashtags", "#h", "--input_folder", in, "--output_path", filepath.Join(t.TempDir(), "x.png"))
	assert.ErrorIs(t, err, pipeline.ErrNoData)
}

func TestExportCmd_JSONToStdout(t *testing.T) {
	in := t.TempDir()
	a := writeSnapshot(t, in, "01-15-24.json", `{"#test": {"a": 3, "b": 2}}`)
	b := writeSnapshot(t, in, "01-16-24.json", `{"#test": {"a": 1}}`)

	out, err := execute(t, "export", "--hashtags", "#test", "--hashtags", "#none", "--input_paths", a, b)
	require.NoError(t, err)

	var doc struct {
		Dates  []string `json:"dates"`
		Series []struct {
			Hashtag string  `json:"hashtag"`
			Counts  []int64 `json:"counts"`
		} `json:"series"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc), "stdout must hold only the export: %s", out)
	assert.Equal(t, []string{"01-15-24", "01-16-24"}, doc.Dates)
	require.Len(t, doc.Series, 2)
	assert.Equal(t, []int64{5, 1}, doc.Series[0].Counts)
	assert.Equal(t, []int64{0, 0}, doc.Series[1].Counts)
}

func TestExportCmd_CSVFileWithPatternOverride(t *testing.T) {
	in := t.TempDir()
	writeSnapshot(t, in, "geoTwitter20-03-01.lang", `{"#h": {"x": 2}}`)
	outPath := filepath.Join(t.TempDir(), "h.csv")

	_, err := execute(t, "export", "--hashtags", "#h", "--input_folder", in,
		"--date_pattern", "generic", "--format", "csv", "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	// The generic pattern reads "20-03-01" as MM-DD-YY.
	assert.Equal(t, "date,#h\n20-03-01,2\n", string(data))
}

func TestExportCmd_Validation(t *testing.T) {
	_, err := execute(t, "export", "--hashtags", "#h")
	assert.Error(t, err)

	_, err = execute(t, "export", "--hashtags", "#h", "--input_folder", t.TempDir(), "--format", "xml")
	assert.Error(t, err)

	_, err = execute(t, "export", "--hashtags", "#h", "--input_folder", t.TempDir(), "--date_pattern", "iso")
	assert.Error(t, err)
}

func TestRoot_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("empty_policy: loud\n"), 0644))

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"folder", "--config", path, "--hashtags", "#h", "--input_folder", t.TempDir()})
	err := root.Execute()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "empty_policy"))
}
