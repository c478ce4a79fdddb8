package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalyst/internal/config"
)

func names(sources []config.SourceSpec) []string {
	var out []string
	for _, s := range sources {
		out = append(out, s.Name)
	}
	return out
}

func testRegistry() *Registry {
	return New([]config.SourceSpec{
		{Name: "apps", Key: "a"},
		{Name: "pass", Key: "p"},
		{Name: "everything"},
	})
}

func TestResolveKeyPrefix(t *testing.T) {
	r := testRegistry()

	targets, effective := r.Resolve("p foo")
	assert.Equal(t, []string{"pass"}, names(targets))
	assert.Equal(t, "foo", effective)
}

func TestResolveBareKey(t *testing.T) {
	r := testRegistry()

	targets, effective := r.Resolve("p")
	assert.Equal(t, []string{"pass"}, names(targets))
	assert.Equal(t, "", effective)

	targets, effective = r.Resolve("  a  ")
	assert.Equal(t, []string{"apps"}, names(targets))
	assert.Equal(t, "", effective)
}

func TestResolveNoKeyRoutesToAll(t *testing.T) {
	r := testRegistry()

	targets, effective := r.Resolve("xyz")
	assert.Equal(t, []string{"apps", "pass", "everything"}, names(targets))
	assert.Equal(t, "xyz", effective)
}

func TestResolveKeyNeedsSeparator(t *testing.T) {
	r := testRegistry()

	// "pass" starts with the key "p" but has no whitespace after it
	targets, effective := r.Resolve("pass")
	assert.Len(t, targets, 3)
	assert.Equal(t, "pass", effective)
}

func TestResolveKeepsRawQueryWithoutKey(t *testing.T) {
	r := testRegistry()

	_, effective := r.Resolve(" two words ")
	assert.Equal(t, " two words ", effective)
}

func TestResolveStripsAllSeparatingWhitespace(t *testing.T) {
	r := testRegistry()

	targets, effective := r.Resolve("a \t firefox nightly")
	require.Len(t, targets, 1)
	assert.Equal(t, "apps", targets[0].Name)
	assert.Equal(t, "firefox nightly", effective)
}

func TestResolveFirstConfiguredKeyWins(t *testing.T) {
	r := New([]config.SourceSpec{
		{Name: "first", Key: "x"},
		{Name: "second", Key: "x"},
	})

	targets, effective := r.Resolve("x query")
	assert.Equal(t, []string{"first"}, names(targets))
	assert.Equal(t, "query", effective)
}

func TestResolveMultiCharacterKey(t *testing.T) {
	r := New([]config.SourceSpec{
		{Name: "web", Key: "ddg"},
		{Name: "other"},
	})

	targets, effective := r.Resolve("ddg golang generics")
	assert.Equal(t, []string{"web"}, names(targets))
	assert.Equal(t, "golang generics", effective)

	targets, _ = r.Resolve("ddgx")
	assert.Len(t, targets, 2)
}

func TestNewCopiesSources(t *testing.T) {
	sources := []config.SourceSpec{{Name: "apps", Key: "a"}}
	r := New(sources)
	sources[0].Name = "changed"

	assert.Equal(t, "apps", r.Sources()[0].Name)
}

func TestFromConfigKeepsDuplicates(t *testing.T) {
	cfg := &config.Config{Sources: []config.SourceSpec{
		{Name: "first", Key: "x"},
		{Name: "second", Key: "x"},
	}}

	r := FromConfig(cfg)
	assert.Len(t, r.Sources(), 2)
	targets, _ := r.Resolve("x")
	assert.Equal(t, []string{"first"}, names(targets))
}
