package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serr "trail-recommender/internal/errors"
	"trail-recommender/internal/recommend"
)

const catalog = `[
  {"trail_id": "a", "trail_name": "Senaru", "mountain_id": "m1", "mountain_name": "Rinjani"},
  {"trail_id": "b", "trail_name": "Ranu Pani", "mountain_id": "m2", "mountain_name": "Semeru",
   "safety": 9, "incident_safety": 9, "scenic_beauty": 9},
  {"trail_id": "c", "trail_name": "Cemoro Kandang", "mountain_id": "m3", "mountain_name": "Lawu", "difficulty": 8},
  {"trail_name": "missing id"}
]`

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeCommandStreams(t, args...)
	return out, err
}

func executeCommandStreams(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := Execute(root)
	return out.String(), errOut.String(), err
}

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trails.json")
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0o600))
	return path
}

func jsonSource(t *testing.T) []string {
	return []string{"--source", "json", "--trails-path", writeCatalog(t), "--log-level", "error"}
}

func TestRecommendJSON(t *testing.T) {
	args := append([]string{"recommend"}, jsonSource(t)...)
	out, err := executeCommand(t, args...)
	require.NoError(t, err)

	var rep recommend.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.MountainTable, 3)
	assert.Equal(t, "Semeru", rep.MountainTable[0].MountainName)
	assert.InDelta(t, 66.132453612, rep.MountainTable[0].MaxScore, 1e-6)
	assert.Equal(t, 3, rep.Metadata.TotalTrails)
	assert.Equal(t, "json", rep.Metadata.Engine.Source)
	assert.NotEmpty(t, rep.Metadata.RunID)
}

func TestRecommendWithPreferencesAndTop(t *testing.T) {
	args := append([]string{"recommend", `{"min_scenic": 8}`, "--top", "1"}, jsonSource(t)...)
	out, err := executeCommand(t, args...)
	require.NoError(t, err)

	var rep recommend.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.TrailTable, 1)
	assert.Equal(t, "b", rep.TrailTable[0].TrailID)
	assert.Equal(t, []string{"scenic_beauty >= 8"}, rep.Metadata.PreferencesApplied)
}

func TestRecommendTable(t *testing.T) {
	args := append([]string{"recommend", "--preset", "general", "--format", "table"}, jsonSource(t)...)
	out, err := executeCommand(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "Semeru")
	assert.Contains(t, out, "Ranu Pani")
}

func TestRecommendInvalidPreferencesEmitsErrorReport(t *testing.T) {
	args := append([]string{"recommend", `{"min_safety": "high"}`}, jsonSource(t)...)
	out, err := executeCommand(t, args...)
	require.Error(t, err)
	assert.Equal(t, serr.CodeInvalidPreference, serr.CodeOf(err))

	var rep recommend.ErrorReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.True(t, rep.Error)
	assert.Equal(t, serr.CodeInvalidPreference, rep.Code)
	assert.Empty(t, rep.MountainTable)
}

func TestRecommendMissingCatalog(t *testing.T) {
	out, err := executeCommand(t, "recommend", "--source", "json", "--trails-path", filepath.Join(t.TempDir(), "none.json"), "--log-level", "error")
	require.Error(t, err)
	assert.Equal(t, serr.CodeDataUnavailable, serr.CodeOf(err))
	assert.Contains(t, out, `"DATA_UNAVAILABLE"`)
}

func TestSimulate(t *testing.T) {
	args := append([]string{"simulate"}, jsonSource(t)...)
	out, err := executeCommand(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "catalog: 3 trails from json")
	assert.Contains(t, out, "== beginner")
	assert.Contains(t, out, "no mountain satisfies this preset")
	assert.Contains(t, out, "== experienced")
	assert.Contains(t, out, "== general")
}

func TestEvaluate(t *testing.T) {
	truth := filepath.Join(t.TempDir(), "truth.csv")
	require.NoError(t, os.WriteFile(truth, []byte("trail_id,label\na,0\nb,1\nghost,1\n"), 0o600))

	args := append([]string{"evaluate", "--truth", truth}, jsonSource(t)...)
	out, err := executeCommand(t, args...)
	require.NoError(t, err)

	var ev recommend.Evaluation
	require.NoError(t, json.Unmarshal([]byte(out), &ev))
	assert.Equal(t, 2, ev.Evaluated)
	assert.Equal(t, 1, ev.Skipped)
	assert.Equal(t, 1.0, ev.Accuracy)
	assert.Equal(t, recommend.ConfusionMatrix{TruePositive: 1, TrueNegative: 1}, ev.Confusion)

	_, err = executeCommand(t, append([]string{"evaluate"}, jsonSource(t)...)...)
	assert.Error(t, err)
}

func TestFailuresAreReportedOnStderr(t *testing.T) {
	out, errOut, err := executeCommandStreams(t, append([]string{"evaluate"}, jsonSource(t)...)...)
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "Error: --truth is required\n", errOut)

	_, errOut, err = executeCommandStreams(t, append([]string{"evaluate", "--truth", filepath.Join(t.TempDir(), "none.csv")}, jsonSource(t)...)...)
	require.Error(t, err)
	assert.Contains(t, errOut, "none.csv")
}

func TestRecommendUnknownFormatEmitsErrorReport(t *testing.T) {
	args := append([]string{"recommend", "--format", "xml"}, jsonSource(t)...)
	out, errOut, err := executeCommandStreams(t, args...)
	require.Error(t, err)
	assert.Equal(t, serr.CodeInvalidInput, serr.CodeOf(err))
	assert.Contains(t, errOut, `unknown format "xml"`)

	var rep recommend.ErrorReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.True(t, rep.Error)
	assert.Equal(t, serr.CodeInvalidInput, rep.Code)
}

func TestSimulateTopBounds(t *testing.T) {
	for _, top := range []string{"0", "-1"} {
		args := append([]string{"simulate", "--top", top}, jsonSource(t)...)
		out, err := executeCommand(t, args...)
		require.NoError(t, err, top)
		assert.Contains(t, out, "Rinjani", top)
		assert.Contains(t, out, "Lawu", top)
	}

	args := append([]string{"simulate", "--top", "1"}, jsonSource(t)...)
	out, err := executeCommand(t, args...)
	require.NoError(t, err)
	general := out[strings.Index(out, "== general"):]
	assert.Contains(t, general, "Semeru")
	assert.NotContains(t, general, "Lawu")
}

func TestParseTruth(t *testing.T) {
	truth, err := parseTruth(strings.NewReader("x, 1\ny,0\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 1, "y": 0}, truth)

	_, err = parseTruth(strings.NewReader("trail_id,label\nx,yes\n"))
	assert.Error(t, err)
	_, err = parseTruth(strings.NewReader("x\n"))
	assert.Error(t, err)
}

func TestImportThenRecommendFromSQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "trails.db")
	out, err := executeCommand(t, "import", "--from", writeCatalog(t), "--into", db)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 3 trails (1 skipped), catalog now holds 3")

	out, err = executeCommand(t, "recommend", "--source", "sqlite", "--sqlite-path", db, "--log-level", "error")
	require.NoError(t, err)
	var rep recommend.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.MountainTable, 3)
	assert.Equal(t, "Semeru", rep.MountainTable[0].MountainName)
	assert.Equal(t, "sqlite", rep.Metadata.Engine.Source)
}

func TestRulesExportAndCheck(t *testing.T) {
	out, err := executeCommand(t, "rules", "export")
	require.NoError(t, err)
	assert.Contains(t, out, "midband_fallback")

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o600))
	out, err = executeCommand(t, "rules", "check", path)
	require.NoError(t, err)
	assert.Equal(t, "ok: 19 rules\n", out)
}

func TestVersion(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "trail-recommender "))
}
