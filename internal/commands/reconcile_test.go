package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yqhr/mfrecon/internal/matchlog"
	"github.com/yqhr/mfrecon/internal/table"
)

const mfHeader = "計算対象,日付,内容,金額（円）,保有金融機関,大項目,中項目,メモ,振替,ID"

const sampleCSV = mfHeader + "\n" +
	`1,2024/01/10,Coffee Shop,-3000,Sample Bank,食費,カフェ,,0,E1` + "\n" +
	`1,2024/01/12,Coffee Shop Refund,3000,Sample Bank,収入,その他,,0,R1` + "\n" +
	`1,2024/01/10,Grocery,-4500,Sample Bank,食費,食料品,,0,E2` + "\n" +
	`1,2024/02/10,Grocery,4500,Sample Bank,収入,その他,,0,R2` + "\n"

func setupProject(t *testing.T, csvData string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, runInit(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "202401.csv"), []byte(csvData), 0o644))
	return dir
}

func readSet(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	txns, err := table.ReadTransactions(f)
	require.NoError(t, err)

	var ids []string
	for _, tx := range txns {
		ids = append(ids, tx.ID)
	}
	return ids
}

func TestRunReconcile_EndToEnd(t *testing.T) {
	dir := setupProject(t, sampleCSV)

	require.NoError(t, runReconcile(dir, ""))

	// E1/R1 matched and removed; the Grocery pair is 31 days apart and
	// survives on both sides.
	expenseIDs := readSet(t, filepath.Join(dir, "output", "expenses.csv"))
	assert.Equal(t, []string{"E2"}, expenseIDs)

	refundIDs := readSet(t, filepath.Join(dir, "output", "refunds.csv"))
	assert.Equal(t, []string{"R2"}, refundIDs)

	entries, err := matchlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "E1", entries[0].ExpenseID)
	assert.Equal(t, "R1", entries[0].RefundID)
	assert.GreaterOrEqual(t, entries[0].Score, 0.8)
	assert.Equal(t, "token_set", entries[0].Scorer)
	assert.NotEmpty(t, entries[0].RunID)

	// Input file moved to processed.
	_, err = os.Stat(filepath.Join(dir, "import", "202401.csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "202401.csv"))
	assert.NoError(t, err)
}

func TestRunReconcile_NoInputFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir))
	require.NoError(t, runReconcile(dir, ""))

	_, err := os.Stat(filepath.Join(dir, "output", "expenses.csv"))
	assert.True(t, os.IsNotExist(err), "nothing written when import/ is empty")
}

func TestRunReconcile_DuplicateIDFatal(t *testing.T) {
	data := mfHeader + "\n" +
		`1,2024/01/10,Coffee Shop,-3000,Bank,食費,,,0,X1` + "\n" +
		`1,2024/01/12,Coffee Shop,3000,Bank,収入,,,0,X1` + "\n"
	dir := setupProject(t, data)

	err := runReconcile(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input validation failed")

	// Nothing moved or written on a fatal contract violation.
	_, statErr := os.Stat(filepath.Join(dir, "import", "202401.csv"))
	assert.NoError(t, statErr)
}

func TestRunReconcile_FallbackIDs(t *testing.T) {
	data := mfHeader + "\n" +
		`1,2024/01/10,Coffee Shop,-3000,Bank,食費,,,0,` + "\n" +
		`1,2024/03/01,Book Store,-1500,Bank,教養,,,0,` + "\n"
	dir := setupProject(t, data)

	require.NoError(t, runReconcile(dir, ""))

	ids := readSet(t, filepath.Join(dir, "output", "expenses.csv"))
	require.Len(t, ids, 2)
	assert.Equal(t, "mf_202401.csv_0001_CoffeeShop", ids[0])
	assert.Equal(t, "mf_202401.csv_0002_BookStore", ids[1])
}

func TestRunReconcile_UnknownFormat(t *testing.T) {
	dir := setupProject(t, sampleCSV)
	err := runReconcile(dir, "chase")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown import format")
}

func TestRunSummary_AfterReconcile(t *testing.T) {
	dir := setupProject(t, sampleCSV)
	require.NoError(t, runReconcile(dir, ""))

	assert.NoError(t, runSummary(dir, "month"))
	assert.NoError(t, runSummary(dir, "year"))

	err := runSummary(dir, "week")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown period")
}

func TestRunSummary_MissingOutput(t *testing.T) {
	err := runSummary(t.TempDir(), "month")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run reconcile first")
}
