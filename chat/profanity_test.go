package chat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pickupsports/game-chat-api/config"
)

func newTestFilter(words ...string) *ProfanityFilter {
	return NewProfanityFilter(&config.Config{
		ProfanityEnabled: true,
		ProfanityWords:   words,
	})
}

func TestContainsMatchesWholeWordsCaseInsensitive(t *testing.T) {
	f := newTestFilter("darn", "heck")

	assert.True(t, f.Contains("well darn it"))
	assert.True(t, f.Contains("DARN!"))
	assert.False(t, f.Contains("darning a sock"))
	assert.False(t, f.Contains("a perfectly clean sentence"))
	assert.False(t, f.Contains(""))
}

func TestSanitizeMasksEveryMatch(t *testing.T) {
	f := newTestFilter("darn", "heck")

	assert.Equal(t, "**** it, what the ****", f.Sanitize("darn it, what the HECK"))
	assert.Equal(t, "untouched", f.Sanitize("untouched"))
}

func TestFilterDisabledPassesEverything(t *testing.T) {
	f := NewProfanityFilter(&config.Config{
		ProfanityEnabled: false,
		ProfanityWords:   []string{"darn"},
	})

	assert.False(t, f.Enabled())
	assert.False(t, f.Contains("darn"))
	assert.Equal(t, "darn", f.Sanitize("darn"))
}

func TestEmptyDictionaryIsDisabled(t *testing.T) {
	f := NewProfanityFilter(&config.Config{ProfanityEnabled: true})

	assert.False(t, f.Enabled())
	assert.False(t, f.Contains("anything"))
}

func TestAddAndRemoveRecompile(t *testing.T) {
	f := newTestFilter("darn")

	f.Add("  HECK ")
	assert.True(t, f.Contains("heck"))
	assert.ElementsMatch(t, []string{"darn", "heck"}, f.Words())

	f.Remove("darn")
	assert.False(t, f.Contains("darn"))
	assert.ElementsMatch(t, []string{"heck"}, f.Words())
}

func TestReplaceAllSwapsDictionary(t *testing.T) {
	f := newTestFilter("darn")

	f.ReplaceAll([]string{"Foo", "bar", " "})

	assert.ElementsMatch(t, []string{"foo", "bar"}, f.Words())
	assert.False(t, f.Contains("darn"))
	assert.True(t, f.Contains("FOO"))
}

func TestSetEnabledAndSetReject(t *testing.T) {
	f := newTestFilter("darn")
	assert.False(t, f.ShouldReject())

	f.SetReject(true)
	assert.True(t, f.ShouldReject())

	f.SetEnabled(false)
	assert.False(t, f.Enabled())
}

func TestDictionaryFileMergesWithInlineWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "heck\n# a comment\n\n  Frick  \n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	f := NewProfanityFilter(&config.Config{
		ProfanityEnabled: true,
		ProfanityWords:   []string{"darn"},
		DictionaryPath:   path,
	})

	assert.ElementsMatch(t, []string{"darn", "heck", "frick"}, f.Words())
	assert.True(t, f.Contains("frick"))
}

func TestMissingDictionaryFileOnlyLogs(t *testing.T) {
	f := NewProfanityFilter(&config.Config{
		ProfanityEnabled: true,
		ProfanityWords:   []string{"darn"},
		DictionaryPath:   "/nonexistent/words.txt",
	})

	assert.True(t, f.Contains("darn"))
}

func TestReloadRestoresConfiguredSources(t *testing.T) {
	f := newTestFilter("darn")

	f.ReplaceAll([]string{"other"})
	assert.False(t, f.Contains("darn"))

	f.Reload()
	assert.True(t, f.Contains("darn"))
	assert.False(t, f.Contains("other"))
}
