package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCategoryLog(t *testing.T, dir string, category Category) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*_"+string(category)+".log"))
	require.NoError(t, err)
	require.Len(t, matches, 1, "expected one log file for %s", category)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	return string(data)
}

func TestInitialize_DebugModeWritesCategoryFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Options{Dir: dir, DebugMode: true, Level: "debug", Format: "json"}))
	t.Cleanup(func() { _ = Initialize(Options{}) })

	Genetics("offspring produced: genes=%d", 3)
	GeneticsDebug("mutation events=%d", 2)
	Codec("decoded genome")
	Pool("stored %s", "abc")
	CloseAll()

	content := readCategoryLog(t, dir, CategoryGenetics)
	assert.Contains(t, content, "offspring produced: genes=3")
	assert.Contains(t, content, "mutation events=2")
	assert.Contains(t, content, `"category":"genetics"`)

	assert.Contains(t, readCategoryLog(t, dir, CategoryCodec), "decoded genome")
	assert.Contains(t, readCategoryLog(t, dir, CategoryPool), "stored abc")
	assert.Contains(t, readCategoryLog(t, dir, CategoryBoot), "logging initialized")
}

func TestInitialize_LevelFiltersDebug(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Options{Dir: dir, DebugMode: true, Level: "info", Format: "console"}))
	t.Cleanup(func() { _ = Initialize(Options{}) })

	GeneticsDebug("hidden detail")
	Genetics("visible summary")
	CloseAll()

	content := readCategoryLog(t, dir, CategoryGenetics)
	assert.NotContains(t, content, "hidden detail")
	assert.Contains(t, content, "visible summary")
}

func TestInitialize_ProductionModeIsSilent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Initialize(Options{Dir: dir}))

	assert.False(t, IsDebugMode())
	Genetics("should not be written")
	CloseAll()

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "logs directory should not be created")
}

func TestInitialize_Errors(t *testing.T) {
	t.Cleanup(func() { _ = Initialize(Options{}) })

	err := Initialize(Options{DebugMode: true})
	assert.Error(t, err)

	err = Initialize(Options{DebugMode: true, Dir: t.TempDir(), Level: "loud"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid log level"))
}

func TestIsCategoryEnabled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Options{
		Dir:        dir,
		DebugMode:  true,
		Categories: map[string]bool{"pool": false, "codec": true},
	}))
	t.Cleanup(func() { _ = Initialize(Options{}) })

	assert.True(t, IsCategoryEnabled(CategoryCodec))
	assert.False(t, IsCategoryEnabled(CategoryPool))
	assert.True(t, IsCategoryEnabled(CategoryGenetics), "unlisted categories default to enabled")

	Pool("dropped")
	CloseAll()
	matches, _ := filepath.Glob(filepath.Join(dir, "*_pool.log"))
	assert.Empty(t, matches)
}

func TestGet_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Options{Dir: dir, DebugMode: true}))
	t.Cleanup(func() { _ = Initialize(Options{}) })

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			Get(CategoryGenetics).With("worker", i).Info("tick %d", i)
		}(i)
	}
	wg.Wait()
	CloseAll()

	content := readCategoryLog(t, dir, CategoryGenetics)
	assert.Equal(t, 16, strings.Count(content, "tick"))
}

func TestDebugEnabled(t *testing.T) {
	t.Cleanup(func() { _ = Initialize(Options{}) })

	require.NoError(t, Initialize(Options{}))
	assert.False(t, DebugEnabled(CategoryGenetics), "production mode")

	require.NoError(t, Initialize(Options{Dir: t.TempDir(), DebugMode: true, Level: "info"}))
	assert.False(t, DebugEnabled(CategoryGenetics), "info level")

	require.NoError(t, Initialize(Options{
		Dir:        t.TempDir(),
		DebugMode:  true,
		Level:      "debug",
		Categories: map[string]bool{"pool": false},
	}))
	assert.True(t, DebugEnabled(CategoryGenetics))
	assert.False(t, DebugEnabled(CategoryPool))
}
