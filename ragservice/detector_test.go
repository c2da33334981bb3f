package ragservice

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"temponews/report"
)

const testAppName = "com.example.test-rag"

// writeWorkspace lays out a SyftBox-style workspace in a temp dir and
// returns the config path. Marker contents may be empty to omit them.
func writeWorkspace(t *testing.T, port, pid string) string {
	t.Helper()
	dir := t.TempDir()

	cfg, err := json.Marshal(map[string]string{"data_dir": dir})
	require.NoError(t, err)
	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, cfg, 0o644))

	dataDir := filepath.Join(dir, "apps", testAppName, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	if port != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, "app.port"), []byte(port+"\n"), 0o644))
	}
	if pid != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, "app.pid"), []byte(pid+"\n"), 0o644))
	}
	return configPath
}

func TestDetectFindsRunningService(t *testing.T) {
	configPath := writeWorkspace(t, "8123", "4242")

	d := NewDetector(configPath, report.NewQuiet())
	disc := d.Detect(context.Background(), testAppName)

	require.True(t, disc.Found)
	assert.Equal(t, "http://localhost:8123", disc.URL)
	assert.Equal(t, "8123", disc.Port)
	assert.Equal(t, "4242", disc.PID)
}

func TestDetectMissingConfigReportsNotFound(t *testing.T) {
	d := NewDetector(filepath.Join(t.TempDir(), "nope.json"), report.NewQuiet())
	d.SetMaxWait(100 * time.Millisecond)

	start := time.Now()
	disc := d.Detect(context.Background(), testAppName)
	assert.False(t, disc.Found)
	// A missing config fails fast, before any polling
	assert.Less(t, time.Since(start), time.Second)
}

func TestDetectMissingAppDirReportsNotFound(t *testing.T) {
	dir := t.TempDir()
	cfg, _ := json.Marshal(map[string]string{"data_dir": dir})
	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, cfg, 0o644))

	d := NewDetector(configPath, report.NewQuiet())
	disc := d.Detect(context.Background(), testAppName)
	assert.False(t, disc.Found)
}

func TestDetectTimesOutWithinBound(t *testing.T) {
	// App dir exists but the service never writes its marker files
	configPath := writeWorkspace(t, "", "")

	d := NewDetector(configPath, report.NewQuiet())
	d.SetMaxWait(200 * time.Millisecond)

	start := time.Now()
	disc := d.Detect(context.Background(), testAppName)
	elapsed := time.Since(start)

	assert.False(t, disc.Found)
	assert.GreaterOrEqual(t, elapsed, 150*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestDetectPicksUpMarkersWrittenLater(t *testing.T) {
	configPath := writeWorkspace(t, "", "")
	dataDir := filepath.Join(filepath.Dir(configPath), "apps", testAppName, "data")

	go func() {
		time.Sleep(300 * time.Millisecond)
		os.WriteFile(filepath.Join(dataDir, "app.port"), []byte("9000"), 0o644)
		os.WriteFile(filepath.Join(dataDir, "app.pid"), []byte("1"), 0o644)
	}()

	d := NewDetector(configPath, report.NewQuiet())
	d.SetMaxWait(5 * time.Second)

	disc := d.Detect(context.Background(), testAppName)
	require.True(t, disc.Found)
	assert.Equal(t, "http://localhost:9000", disc.URL)
}

func TestDetectRespectsContextCancellation(t *testing.T) {
	configPath := writeWorkspace(t, "", "")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	d := NewDetector(configPath, report.NewQuiet())
	d.SetMaxWait(10 * time.Second)

	start := time.Now()
	disc := d.Detect(ctx, testAppName)
	assert.False(t, disc.Found)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestReadMarkersRequiresBothFiles(t *testing.T) {
	dir := t.TempDir()
	portFile := filepath.Join(dir, "app.port")
	pidFile := filepath.Join(dir, "app.pid")

	_, ok := readMarkers(portFile, pidFile)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(portFile, []byte("8000"), 0o644))
	_, ok = readMarkers(portFile, pidFile)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(pidFile, []byte("123"), 0o644))
	disc, ok := readMarkers(portFile, pidFile)
	require.True(t, ok)
	assert.Equal(t, "8000", disc.Port)
}
