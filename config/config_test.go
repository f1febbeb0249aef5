package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleYAML = `
simulation:
  duration_seconds: 3600
  time_factor: 1
vessels:
  - mmsi: 367001234
    name: TEST SHIP
    callsign: TEST1
    class: A
    ship_type: 70
    position: { lat: 50.1, lon: -4.1 }
    initial_speed: 10
    initial_heading: 90
    movement: { pattern: linear }
sentences:
  - type: GGA
    talker_id: GP
    rate_hz: 1
    enabled: true
outputs:
  - type: file
    path: out.log
    rotation_size_mb: 10
    max_files: 4
`

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadParsesAllSections(t *testing.T) {
	path := writeTempConfig(t, sampleYAML)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3600.0, cfg.Simulation.DurationSeconds)
	require.Len(t, cfg.Vessels, 1)
	require.Equal(t, uint32(367001234), cfg.Vessels[0].MMSI)
	require.Equal(t, "linear", cfg.Vessels[0].Movement.Pattern)
	require.Len(t, cfg.Sentences, 1)
	require.Len(t, cfg.Outputs, 1)
	require.Equal(t, "file", cfg.Outputs[0].Type)
}

func TestLoadRejectsDuplicateMMSI(t *testing.T) {
	path := writeTempConfig(t, `
vessels:
  - mmsi: 367001234
    name: FIRST
    class: A
    position: { lat: 0, lon: 0 }
    movement: { pattern: linear }
  - mmsi: 367001234
    name: DUPLICATE
    class: B
    position: { lat: 1, lon: 1 }
    movement: { pattern: linear }
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsUnknownTemplate(t *testing.T) {
	path := writeTempConfig(t, `
vessels:
  - mmsi: 1
    name: X
    class: A
    template: not_a_real_template
    position: { lat: 0, lon: 0 }
    movement: { pattern: linear }
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsUnknownOutputType(t *testing.T) {
	path := writeTempConfig(t, `
outputs:
  - type: carrier_pigeon
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/scenario.yaml")
	require.Error(t, err)
}
