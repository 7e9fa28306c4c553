// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
tables:
  - name: clicks
    kind: kafka
    fields:
      - name: user_id
        type: int64
      - name: url
        type: utf8
    config:
      topic: clicks
      max_attempts: 5
  - name: sink_out
    kind: filesystem
    fields:
      - name: s
        type: float64
    config:
      path: /tmp/out
`

func writeCatalog(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0600))
	return path
}

func TestLoadCatalogResolvesConnectorTable(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir)

	cat, err := Load(path, filepath.Join(dir, "connections.db"))
	require.NoError(t, err)
	defer cat.Close()

	tbl, ok := cat.GetTable("clicks")
	require.True(t, ok)

	ct, ok := tbl.(*ConnectorTable)
	require.True(t, ok)
	assert.Equal(t, "kafka", ct.Kind)
	assert.Equal(t, 5, MaxConnectAttempts(ct.Config))

	source, err := ct.AsSQLSource()
	require.NoError(t, err)
	assert.Equal(t, "kafka", source.Connector.Kind)
	// _timestamp must be auto-appended since the table definition omitted it.
	found := false
	for i := 0; i < source.Schema.NumFields(); i++ {
		if source.Schema.Field(i).Name == "_timestamp" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestLoadCatalogMissingTable(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir)

	cat, err := Load(path, filepath.Join(dir, "connections.db"))
	require.NoError(t, err)
	defer cat.Close()

	_, ok := cat.GetTable("missing")
	assert.False(t, ok)
}

func TestBindConnectionIsStableAcrossCalls(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir)

	cat, err := Load(path, filepath.Join(dir, "connections.db"))
	require.NoError(t, err)
	defer cat.Close()

	first, err := cat.BindConnection("clicks")
	require.NoError(t, err)
	second, err := cat.BindConnection("clicks")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := cat.BindConnection("sink_out")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestBindConnectionSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir)
	registryPath := filepath.Join(dir, "connections.db")

	cat, err := Load(path, registryPath)
	require.NoError(t, err)
	id, err := cat.BindConnection("clicks")
	require.NoError(t, err)
	require.NoError(t, cat.Close())

	reopened, err := Load(path, registryPath)
	require.NoError(t, err)
	defer reopened.Close()

	reboundID, err := reopened.BindConnection("clicks")
	require.NoError(t, err)
	assert.Equal(t, id, reboundID)
}

func TestConnectBackoffMonotonicallyIncreasesWithAttempt(t *testing.T) {
	prev := ConnectBackoff(1)
	for attempt := 2; attempt <= 8; attempt++ {
		cur := ConnectBackoff(attempt)
		assert.GreaterOrEqual(t, cur, prev, "backoff must never shrink as attempt increases")
		prev = cur
	}
	assert.LessOrEqual(t, ConnectBackoff(100), 5*time.Second)
}

func TestMaxConnectAttemptsDefault(t *testing.T) {
	assert.Equal(t, 20, MaxConnectAttempts(map[string]any{}))
	assert.Equal(t, 20, MaxConnectAttempts(map[string]any{"max_attempts": "not-a-number"}))
	assert.Equal(t, 3, MaxConnectAttempts(map[string]any{"max_attempts": 3}))
}
