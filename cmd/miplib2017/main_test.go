package main_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/miplib"
	main "github.com/fwojciec/miplib/cmd/miplib2017"
	"github.com/fwojciec/miplib/csv"
	"github.com/fwojciec/miplib/json"
	"github.com/fwojciec/miplib/markdown"
	"github.com/fwojciec/miplib/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// detailsPage renders a minimal instance details page.
func detailsPage(name, status, objective string, tags ...string) string {
	var b strings.Builder
	b.WriteString("<html><body><h3>")
	for _, tag := range tags {
		fmt.Fprintf(&b, `<a href="tag_%s.html">%s</a> `, tag, tag)
	}
	b.WriteString("</h3>")
	fmt.Fprintf(&b, `<div><table><tbody><tr><td>%s</td><td></td><td></td><td></td><td>%s</td><td></td><td>%s</td><td><a href="WebData/instances/%s.mps.gz">%s.mps.gz</a></td></tr></tbody></table></div>`,
		name, status, objective, name, name)
	b.WriteString(`<div id="instance-statistics"><div>`)
	b.WriteString(`<div><table><tbody><tr><td>Variables</td><td>10</td><td>8</td></tr><tr><td>Nonzero density</td><td>0.5</td><td>0.25</td></tr></tbody></table></div>`)
	b.WriteString(`<div><table><tbody><tr><td>Set partitioning</td><td>4</td><td>3</td></tr></tbody></table></div>`)
	b.WriteString("</div></div></body></html>")
	return b.String()
}

// site serves details pages and instance files; anything else is 404.
type site struct {
	pages map[string]string
	files map[string]string
}

func (s site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	if name, ok := strings.CutPrefix(path, "instance_details_"); ok {
		if body, ok := s.pages[strings.TrimSuffix(name, ".html")]; ok {
			fmt.Fprint(w, body)
			return
		}
	}
	if name, ok := strings.CutPrefix(path, "WebData/instances/"); ok {
		if body, ok := s.files[strings.TrimSuffix(name, ".mps.gz")]; ok {
			fmt.Fprint(w, body)
			return
		}
	}
	http.NotFound(w, r)
}

func defaultSite() site {
	return site{
		pages: map[string]string{
			"air05":    detailsPage("air05", "easy", "26374*", "benchmark", "binary"),
			"bnatt500": detailsPage("bnatt500", "easy", "Infeasible", "benchmark", "infeasible"),
		},
		files: map[string]string{
			"air05":    "air05 contents",
			"bnatt500": "bnatt500 contents",
		},
	}
}

// setup starts a server for s and writes a config pointing at it.
func setup(t *testing.T, s site) (configPath, dir string) {
	t.Helper()

	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	dir = t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.txt")
	require.NoError(t, os.WriteFile(catalogPath, []byte("air05\nbnatt500\n"), 0644))

	configPath = filepath.Join(dir, "config.yaml")
	config := fmt.Sprintf("base_url: %s/\ncatalog: %s\nconcurrency: 2\ntimeout: 5s\n", srv.URL, catalogPath)
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0644))

	return configPath, dir
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = main.NewMain().Run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}

// Story: CLI Help and Version
//
// Users discover the available flags through help output and can check
// which version they are running without touching the network.

func TestCLI_ShowsHelpWhenAsked(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, "--help")

	require.NoError(t, err)
	assert.Contains(t, stdout, "miplib2017")
	assert.Contains(t, stdout, "--download")
	assert.Contains(t, stdout, "--csv-only")
}

func TestCLI_PrintsVersion(t *testing.T) {
	t.Parallel()

	for _, flag := range []string{"--version", "-v"} {
		stdout, _, err := run(t, flag)

		require.NoError(t, err, flag)
		assert.Equal(t, "dev\n", stdout, flag)
	}
}

func TestCLI_RejectsConflictingFormatFlags(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, "--csv-only", "--json-only")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv-only")
}

func TestCLI_FailsOnMissingExplicitConfig(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Equal(t, miplib.ENOTFOUND, miplib.ErrorCode(err))
}

// Story: Exporting the Catalog
//
// A run fetches every catalog instance, then writes the JSON and CSV
// exports. Optional formats are added on request and a single failed
// page means nothing is exported at all.

func TestCLI_ExportsJSONAndCSV(t *testing.T) {
	t.Parallel()

	configPath, dir := setup(t, defaultSite())
	outDir := filepath.Join(dir, "out")

	stdout, _, err := run(t, "--config", configPath, "-o", outDir)

	require.NoError(t, err)
	assert.Contains(t, stdout, "Getting instance data... 2 of 2 (100.00%)")
	assert.Contains(t, stdout, "Getting instance data... Done!")
	assert.Contains(t, stdout, "Exporting data to JSON... Done!")
	assert.Contains(t, stdout, "Exporting data to CSV... Done!")

	f, err := os.Open(filepath.Join(outDir, json.FileName))
	require.NoError(t, err)
	defer f.Close()
	instances, err := json.Import(f)
	require.NoError(t, err)
	require.Len(t, instances, 2)
	assert.Equal(t, "air05", instances[0].Name)
	require.NotNil(t, instances[0].Objective)
	assert.Equal(t, 26374.0, *instances[0].Objective)
	assert.True(t, instances[0].IsOptimal)
	assert.Equal(t, "bnatt500", instances[1].Name)
	assert.True(t, instances[1].IsInfeasible)
	assert.Nil(t, instances[1].Objective)

	data, err := os.ReadFile(filepath.Join(outDir, csv.FileName))
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(csv.Header(), ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `"air05",easy,26374,`))

	assert.NoFileExists(t, filepath.Join(outDir, markdown.FileName))
	assert.NoFileExists(t, filepath.Join(outDir, sqlite.FileName))
}

func TestCLI_SuppressesJSONWithCSVOnly(t *testing.T) {
	t.Parallel()

	configPath, dir := setup(t, defaultSite())

	stdout, _, err := run(t, "--config", configPath, "-o", dir, "--csv-only")

	require.NoError(t, err)
	assert.NotContains(t, stdout, "JSON")
	assert.FileExists(t, filepath.Join(dir, csv.FileName))
	assert.NoFileExists(t, filepath.Join(dir, json.FileName))
}

func TestCLI_SuppressesCSVWithJSONOnly(t *testing.T) {
	t.Parallel()

	configPath, dir := setup(t, defaultSite())

	_, _, err := run(t, "--config", configPath, "-o", dir, "--json-only")

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, json.FileName))
	assert.NoFileExists(t, filepath.Join(dir, csv.FileName))
}

func TestCLI_WritesMarkdownAndSQLiteOnRequest(t *testing.T) {
	t.Parallel()

	configPath, dir := setup(t, defaultSite())

	stdout, _, err := run(t, "--config", configPath, "-o", dir, "--markdown", "--sqlite")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Exporting data to Markdown... Done!")
	assert.Contains(t, stdout, "Saving snapshot to SQLite... Done!")

	report, err := os.ReadFile(filepath.Join(dir, markdown.FileName))
	require.NoError(t, err)
	assert.Contains(t, string(report), "air05")
	assert.Contains(t, string(report), "bnatt500")

	db := sqlite.NewDB(filepath.Join(dir, sqlite.FileName))
	require.NoError(t, db.Open())
	defer db.Close()
	svc := sqlite.NewInstanceService(db)
	export, err := svc.LatestExport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, export.Count)
	assert.Contains(t, stdout, export.ID)
}

func TestCLI_WritesNothingWhenAnInstanceFails(t *testing.T) {
	t.Parallel()

	s := defaultSite()
	delete(s.pages, "bnatt500")
	configPath, dir := setup(t, s)
	outDir := filepath.Join(dir, "out")

	_, stderr, err := run(t, "--config", configPath, "-o", outDir, "--markdown", "--sqlite")

	require.Error(t, err)
	assert.Equal(t, miplib.ETRANSPORT, miplib.ErrorCode(err))
	assert.Contains(t, err.Error(), `instance "bnatt500"`)
	assert.Contains(t, stderr, `Failed to get information from instance "bnatt500".`)
	assert.NoDirExists(t, outDir)
}

// Story: Downloading Instance Files
//
// With --download every instance file is streamed into the folder. Each
// failed download is reported while the others complete.

func TestCLI_DownloadsInstanceFiles(t *testing.T) {
	t.Parallel()

	configPath, dir := setup(t, defaultSite())
	downloadDir := filepath.Join(dir, "files", "nested")

	stdout, _, err := run(t, "--config", configPath, "-o", dir, "--download", downloadDir)

	require.NoError(t, err)
	assert.Contains(t, stdout, "Downloading instance files... Done!")
	assert.Contains(t, stdout, "Downloaded 2 instance files (31 B).")

	data, err := os.ReadFile(filepath.Join(downloadDir, "air05.mps.gz"))
	require.NoError(t, err)
	assert.Equal(t, "air05 contents", string(data))
	assert.FileExists(t, filepath.Join(downloadDir, "bnatt500.mps.gz"))
}

func TestCLI_ReportsEachFailedDownload(t *testing.T) {
	t.Parallel()

	s := defaultSite()
	delete(s.files, "air05")
	configPath, dir := setup(t, s)
	downloadDir := filepath.Join(dir, "files")

	stdout, stderr, err := run(t, "--config", configPath, "-o", dir, "--download", downloadDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 downloads failed")
	assert.Contains(t, stderr, `Failed to download instance "air05".`)
	assert.Contains(t, stdout, "Downloaded 1 of 2 instance files")
	assert.NoFileExists(t, filepath.Join(downloadDir, "air05.mps.gz"))
	assert.FileExists(t, filepath.Join(downloadDir, "bnatt500.mps.gz"))
	assert.FileExists(t, filepath.Join(dir, json.FileName))
	assert.FileExists(t, filepath.Join(dir, csv.FileName))
}
