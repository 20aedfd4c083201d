package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const validSnapshotYAML = `benchmarks:
  - name: average
  - name: dicarlo.Majaj2015.IT-pls
    parent: IT
    ceiling: 0.82
scores:
  - model: alexnet
    benchmark: average
    score_ceiled: 0.41
  - model: alexnet
    benchmark: dicarlo.Majaj2015.IT-pls
    score_raw: 0.49
    score_ceiled: 0.6
    layer: features.12
references:
  - model: alexnet
    short_reference: Krizhevsky et al. 2012
    link: https://papers.nips.cc/paper/4824
meta:
  - model: alexnet
    key: IT-layer
    value: features.12
`

const invalidSnapshotYAML = `benchmarks:
  - parent: IT
scores:
  - model: alexnet
    benchmark: average
    score_ceiled: high
`

func TestValidateSnapshotBytes_Valid(t *testing.T) {
	errs := ValidateSnapshotBytes([]byte(validSnapshotYAML))
	require.Empty(t, errs, "valid snapshot should have no errors")
}

func TestValidateSnapshotBytes_JSON(t *testing.T) {
	errs := ValidateSnapshotBytes([]byte(`{"benchmarks": [{"name": "average", "parent": null}], "scores": []}`))
	require.Empty(t, errs)
}

func TestValidateSnapshotBytes_Invalid(t *testing.T) {
	errs := ValidateSnapshotBytes([]byte(invalidSnapshotYAML))
	require.NotEmpty(t, errs, "invalid snapshot should have errors")

	joined := joinErrs(errs)
	require.Contains(t, joined, "/benchmarks/0")
	require.Contains(t, joined, "/scores/0/score_ceiled")
}

func TestValidateSnapshotBytes_MissingScores(t *testing.T) {
	errs := ValidateSnapshotBytes([]byte("benchmarks: []\n"))
	require.NotEmpty(t, errs)
	require.Contains(t, joinErrs(errs), "scores")
}

func TestValidateSnapshotBytes_BadYAML(t *testing.T) {
	errs := ValidateSnapshotBytes([]byte("benchmarks: [\n"))
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "YAML parse error")
}

func TestValidateSnapshotFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validSnapshotYAML), 0o644))

	errs, err := ValidateSnapshotFile(path)
	require.NoError(t, err)
	require.Empty(t, errs)

	_, err = ValidateSnapshotFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func joinErrs(errs []string) string {
	return strings.Join(errs, "\n")
}
