package content

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhasha-shikkha/coach-api/internal/domain"
)

// fakeFS drives the service's stat/read hooks from in-memory files.
type fakeFS struct {
	files  map[string]string
	mtimes map[string]time.Time
	reads  int
}

func newFakeFS() *fakeFS {
	return &fakeFS{
		files:  make(map[string]string),
		mtimes: make(map[string]time.Time),
	}
}

func (f *fakeFS) set(path, content string, mtime time.Time) {
	f.files[path] = content
	f.mtimes[path] = mtime
}

func (f *fakeFS) remove(path string) {
	delete(f.files, path)
	delete(f.mtimes, path)
}

func (f *fakeFS) stat(path string) (time.Time, error) {
	mtime, ok := f.mtimes[path]
	if !ok {
		return time.Time{}, os.ErrNotExist
	}
	return mtime, nil
}

func (f *fakeFS) read(path string) ([]byte, error) {
	content, ok := f.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	f.reads++
	return []byte(content), nil
}

const vocabJSON = `{
	"french": {
		"fruits": [{"word": "pomme", "english": "apple", "bengali": "আপেল"}]
	},
	"spanish": {
		"fruits": [{"word": "manzana", "english": "apple"}]
	}
}`

const sentencesJSON = `{
	"french": [{"text": "Je mange une pomme.", "source": "sample"}]
}`

func newTestService(fs *fakeFS) *Service {
	return NewService("vocab.json", "sentences.json", nil,
		WithStat(fs.stat), WithRead(fs.read))
}

func TestGetLoadsVocabularyAndSentences(t *testing.T) {
	t.Parallel()
	fs := newFakeFS()
	fs.set("vocab.json", vocabJSON, time.Unix(100, 0))
	fs.set("sentences.json", sentencesJSON, time.Unix(100, 0))
	svc := newTestService(fs)

	snap := svc.Get()
	require.NotNil(t, snap)

	fr := snap.Dictionary(domain.LanguageFrench)
	require.NotNil(t, fr)
	require.Len(t, fr.Categories, 1)
	assert.Equal(t, "fruits", fr.Categories[0].ID)
	assert.Equal(t, "pomme", fr.Categories[0].Entries[0].Word)

	es := snap.Dictionary(domain.LanguageSpanish)
	require.NotNil(t, es)
	assert.Equal(t, "manzana", es.Categories[0].Entries[0].Word)

	corpus := snap.Corpus(domain.LanguageFrench)
	require.Len(t, corpus, 1)
	assert.Equal(t, "Je mange une pomme.", corpus[0].Text)
	assert.Empty(t, snap.Corpus(domain.LanguageSpanish))
}

func TestGetCachesUntilMtimeChanges(t *testing.T) {
	t.Parallel()
	fs := newFakeFS()
	fs.set("vocab.json", vocabJSON, time.Unix(100, 0))
	fs.set("sentences.json", sentencesJSON, time.Unix(100, 0))
	svc := newTestService(fs)

	first := svc.Get()
	readsAfterFirst := fs.reads
	second := svc.Get()
	assert.Same(t, first, second)
	assert.Equal(t, readsAfterFirst, fs.reads, "unchanged files are not re-read")

	// Touch the vocabulary file with new content.
	fs.set("vocab.json", `{"french": {"fruits": [{"word": "poire", "english": "pear"}]}}`, time.Unix(200, 0))
	third := svc.Get()
	require.NotSame(t, first, third)
	assert.Equal(t, "poire", third.Dictionary(domain.LanguageFrench).Categories[0].Entries[0].Word)
	assert.Nil(t, third.Dictionary(domain.LanguageSpanish))
}

func TestGetMissingFilesYieldEmptySnapshot(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeFS())

	snap := svc.Get()
	require.NotNil(t, snap)
	assert.Nil(t, snap.Dictionary(domain.LanguageFrench))
	assert.Empty(t, snap.Corpus(domain.LanguageFrench))
}

func TestGetParseFailureKeepsPreviousData(t *testing.T) {
	t.Parallel()
	fs := newFakeFS()
	fs.set("vocab.json", vocabJSON, time.Unix(100, 0))
	fs.set("sentences.json", sentencesJSON, time.Unix(100, 0))
	svc := newTestService(fs)

	good := svc.Get()
	require.NotNil(t, good.Dictionary(domain.LanguageFrench))

	fs.set("vocab.json", `{broken`, time.Unix(200, 0))
	after := svc.Get()
	require.NotNil(t, after)
	assert.Equal(t, good.Vocabulary, after.Vocabulary, "broken file keeps last good vocabulary")
	assert.Len(t, after.Corpus(domain.LanguageFrench), 1)
}

func TestGetFileRemovalClearsData(t *testing.T) {
	t.Parallel()
	fs := newFakeFS()
	fs.set("vocab.json", vocabJSON, time.Unix(100, 0))
	fs.set("sentences.json", sentencesJSON, time.Unix(100, 0))
	svc := newTestService(fs)

	require.NotNil(t, svc.Get().Dictionary(domain.LanguageFrench))

	fs.remove("vocab.json")
	snap := svc.Get()
	assert.Nil(t, snap.Dictionary(domain.LanguageFrench), "removed file behaves as empty content")
	assert.Len(t, snap.Corpus(domain.LanguageFrench), 1)
}

func TestSnapshotNilReceivers(t *testing.T) {
	t.Parallel()
	var snap *Snapshot

	assert.Nil(t, snap.Dictionary(domain.LanguageFrench))
	assert.Nil(t, snap.Corpus(domain.LanguageFrench))
}
