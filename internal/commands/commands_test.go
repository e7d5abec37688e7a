package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "finance-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "finance")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/finance")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runFinance(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// initDir creates an initialized data dir for a test.
func initDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := runFinance(t, "init", dir)
	require.NoError(t, err, out)
	return dir
}

// stageExport copies the bank fixture into <dir>/import/.
func stageExport(t *testing.T, dir string) {
	t.Helper()
	data, err := os.ReadFile("../../testdata/bank_export.csv")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "export.csv"), data, 0o644))
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := initDir(t)

	expectedDirs := []string{
		"import",
		filepath.Join("import", "processed"),
		"logs",
	}
	for _, d := range expectedDirs {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	_, err := os.Stat(filepath.Join(dir, ".git"))
	assert.NoError(t, err, "init should create a git repo")
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	out, err := runFinance(t, "init", dir, "--currency", "EUR")
	require.NoError(t, err, out)

	data, err := os.ReadFile(filepath.Join(dir, "finance.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "currency: EUR")
	assert.Contains(t, contents, "min_months: 3")
}

func TestLoad_ClassifiesAgainstLearnedKeywords(t *testing.T) {
	dir := initDir(t)
	stageExport(t, dir)

	out, err := runFinance(t, "--dir", dir, "category", "learn", "Subscriptions", "NETFLIX.COM")
	require.NoError(t, err, out)

	out, err = runFinance(t, "--dir", dir, "load")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Subscriptions")
	assert.Contains(t, out, "Expense summary:")
	assert.Contains(t, out, "Total payments: 2450.00")
}

func TestLoad_BadFileAbortsWhole(t *testing.T) {
	dir := initDir(t)
	bad := "a,b\nc,d\nTransaction Date,Description\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "bad.csv"), []byte(bad), 0o644))

	out, err := runFinance(t, "--dir", dir, "load")
	require.Error(t, err)
	assert.Contains(t, out, "missing column")
}

func TestCategory_LearnIsIdempotent(t *testing.T) {
	dir := initDir(t)

	out, err := runFinance(t, "--dir", dir, "category", "learn", "Groceries", "Metro #123")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Learned")

	out, err = runFinance(t, "--dir", dir, "category", "learn", "Groceries", "Metro #123")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Not applied")
}

func TestCategory_LearnWritesAuditLog(t *testing.T) {
	dir := initDir(t)

	out, err := runFinance(t, "--dir", dir, "category", "learn", "Groceries", "Metro #123")
	require.NoError(t, err, out)

	data, err := os.ReadFile(filepath.Join(dir, "logs", "audit-log.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "keyword-learned")
	assert.Contains(t, string(data), "Metro #123")
}

func TestBudget_SetStatusClear(t *testing.T) {
	dir := initDir(t)
	stageExport(t, dir)

	out, err := runFinance(t, "--dir", dir, "category", "learn", "Groceries", "METRO")
	require.NoError(t, err, out)

	out, err = runFinance(t, "--dir", dir, "budget", "set", "Groceries", "100.00")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Budget saved")

	// Metro debits total 149.55 against a 100.00 cap.
	out, err = runFinance(t, "--dir", dir, "budget", "status")
	require.NoError(t, err, out)
	assert.Contains(t, out, "over by 49.55")

	out, err = runFinance(t, "--dir", dir, "budget", "clear", "Groceries")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Budget cleared")

	out, err = runFinance(t, "--dir", dir, "budget", "status")
	require.NoError(t, err, out)
	assert.Contains(t, out, "no budget set")
}

func TestBudget_NegativeRejected(t *testing.T) {
	dir := initDir(t)

	out, err := runFinance(t, "--dir", dir, "budget", "set", "Groceries", "-5.00")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Not applied")
}

func TestRecurring_DetectFlow(t *testing.T) {
	dir := initDir(t)
	stageExport(t, dir)

	out, err := runFinance(t, "--dir", dir, "recurring", "add", "netflix")
	require.NoError(t, err, out)

	out, err = runFinance(t, "--dir", dir, "recurring", "list")
	require.NoError(t, err, out)
	assert.Contains(t, out, "netflix")

	out, err = runFinance(t, "--dir", dir, "recurring", "detect")
	require.NoError(t, err, out)
	assert.Contains(t, out, "NETFLIX.COM")
	assert.Contains(t, out, "MONTHLY ESTIMATE")

	out, err = runFinance(t, "--dir", dir, "recurring", "remove", "netflix")
	require.NoError(t, err, out)

	out, err = runFinance(t, "--dir", dir, "recurring", "list")
	require.NoError(t, err, out)
	assert.NotContains(t, out, "netflix")
}

func TestRecurring_Candidates(t *testing.T) {
	dir := initDir(t)
	stageExport(t, dir)

	// METRO and NETFLIX both appear in 2 distinct months.
	out, err := runFinance(t, "--dir", dir, "recurring", "candidates", "--min-months", "2")
	require.NoError(t, err, out)
	assert.Contains(t, out, "METRO #123 TORONTO")
	assert.Contains(t, out, "NETFLIX.COM")

	out, err = runFinance(t, "--dir", dir, "recurring", "candidates", "--min-months", "3")
	require.NoError(t, err, out)
	assert.Contains(t, out, "0 candidate(s)")
}
