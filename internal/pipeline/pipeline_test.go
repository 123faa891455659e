package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdtd-tools/localedump/internal/config"
	"github.com/sdtd-tools/localedump/internal/locale"
	"github.com/sdtd-tools/localedump/internal/logging"
)

// --- Discover tests ---

func TestDiscover_ExactNameOnly(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Localization.txt", "Key,english\n")
	write(t, dir, "localization.txt", "Key,english\n")
	write(t, dir, "Localization.txt.bak", "Key,english\n")
	write(t, dir, "Localization.csv", "Key,english\n")

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "Localization.txt")}, files)
}

func TestDiscover_Recursive(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "ModA", "Config"), "Localization.txt", "")
	write(t, filepath.Join(dir, "ModB", "Config", "Deep", "Deeper"), "Localization.txt", "")
	write(t, filepath.Join(dir, "ModC"), "readme.txt", "")

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "ModA", "Config", "Localization.txt"),
		filepath.Join(dir, "ModB", "Config", "Deep", "Deeper", "Localization.txt"),
	}, files)
}

func TestDiscover_EmptyDir(t *testing.T) {
	files, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "Mods"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDiscover_UnreadableSubdirAborts(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read any directory")
	}
	dir := t.TempDir()
	write(t, filepath.Join(dir, "ModA"), "Localization.txt", "")
	locked := filepath.Join(dir, "ModB")
	write(t, locked, "Localization.txt", "")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	files, err := Discover(dir)
	assert.Error(t, err)
	assert.Nil(t, files)
}

func TestDiscover_FollowsSymlinkedDir(t *testing.T) {
	dir := t.TempDir()
	mods := filepath.Join(dir, "Mods")
	write(t, filepath.Join(mods, "Local", "Config"), "Localization.txt", "")
	write(t, filepath.Join(dir, "elsewhere", "MyMod", "Config"), "Localization.txt", "")
	symlink(t, filepath.Join("..", "elsewhere", "MyMod"), filepath.Join(mods, "MyMod"))

	files, err := Discover(mods)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(mods, "Local", "Config", "Localization.txt"),
		filepath.Join(mods, "MyMod", "Config", "Localization.txt"),
	}, files)
}

func TestDiscover_SymlinkedRoot(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "real", "ModA"), "Localization.txt", "")
	link := filepath.Join(dir, "Mods")
	symlink(t, "real", link)

	files, err := Discover(link)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(link, "ModA", "Localization.txt")}, files)
}

func TestDiscover_SymlinkCyclesAndDuplicates(t *testing.T) {
	dir := t.TempDir()
	mods := filepath.Join(dir, "Mods")
	write(t, filepath.Join(mods, "ModA"), "Localization.txt", "")
	write(t, filepath.Join(dir, "shared"), "Localization.txt", "")
	symlink(t, "..", filepath.Join(mods, "ModA", "up"))
	symlink(t, ".", filepath.Join(mods, "ModA", "self"))
	symlink(t, filepath.Join("..", "shared"), filepath.Join(mods, "LinkOne"))
	symlink(t, filepath.Join("..", "shared"), filepath.Join(mods, "LinkTwo"))
	symlink(t, filepath.Join("..", "missing"), filepath.Join(mods, "Dangling"))

	files, err := Discover(mods)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(mods, "LinkOne", "Localization.txt"),
		filepath.Join(mods, "ModA", "Localization.txt"),
	}, files)
}

func TestDiscover_SymlinkedFile(t *testing.T) {
	dir := t.TempDir()
	mods := filepath.Join(dir, "Mods")
	require.NoError(t, os.MkdirAll(filepath.Join(mods, "ModA"), 0o755))
	write(t, dir, "source.txt", "Key,english\n")
	symlink(t, filepath.Join("..", "..", "source.txt"), filepath.Join(mods, "ModA", "Localization.txt"))

	files, err := Discover(mods)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(mods, "ModA", "Localization.txt")}, files)
}

// --- Run tests ---

func TestRun_MainMenuExample(t *testing.T) {
	env := newRunEnv(t)
	env.mod("A", "Key,english\nApple,Fruit\n")
	env.mod("B", "Key,english,UsedInMainMenu\nBanana,Fruit2,x\n")

	stats, err := env.run(nil)
	require.NoError(t, err)

	assert.Equal(t, "Key,english\nApple,\"Fruit\"", env.dump())
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Contributed)
	assert.Equal(t, 1, stats.Rows)
	assert.Empty(t, stats.Ignored)
	assert.Equal(t, []string{env.path("B")}, stats.Errored)
	assert.Contains(t, env.out.String(), env.path("B"))
}

func TestRun_GoogleTranslate(t *testing.T) {
	env := newRunEnv(t)
	env.mod("A", "Key,english,spanish\ngreeting,\"Hello \"\"World\"\"\",\n")

	_, err := env.run(func(c *config.Config) {
		c.GoogleTranslate = true
		c.TargetLanguage = "spanish"
	})
	require.NoError(t, err)

	assert.Equal(t,
		"Keyºspanish\ngreetingº=GOOGLETRANSLATE(\"Hello World\"; \"en-US\"; \"es-ES\" )",
		env.dump())
}

func TestRun_IgnoredFilesListedSeparately(t *testing.T) {
	env := newRunEnv(t)
	env.mod("A", "Key,english,german\nk1,One,\nk2,Two,Zwei\n")
	env.mod("B", "Key,english,german\nk3,Three,\n")
	env.mod("C", "Key,german\nk4,Vier\n")

	stats, err := env.run(func(c *config.Config) { c.IgnoreLanguage = "German" })
	require.NoError(t, err)

	assert.Equal(t, "Key,english\nk3,\"Three\"", env.dump())
	assert.Equal(t, []string{env.path("A")}, stats.Ignored)
	assert.Equal(t, []string{env.path("C")}, stats.Errored)
	assert.Contains(t, env.log.String(), "Files ignored because of the ignored language (German)")
	assert.Contains(t, env.log.String(), "Files with errors")
}

func TestRun_SortedStableWithExtras(t *testing.T) {
	env := newRunEnv(t)
	env.mod("A", "Key,File,english\nzeta,a,Z\ndup,a,first\n")
	env.mod("B", "key,FILE,English,Type\nalpha,b,A,Item\ndup,b,second,Item\n")

	stats, err := env.run(func(c *config.Config) { c.ExtraKeys = []string{"file", "type"} })
	require.NoError(t, err)

	want := strings.Join([]string{
		"Key,file,type,english",
		"alpha,b,Item,\"A\"",
		"dup,a,,\"first\"",
		"dup,b,Item,\"second\"",
		"zeta,a,,\"Z\"",
	}, "\n")
	assert.Equal(t, want, env.dump())
	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, 1, stats.DuplicateKeys)
	assert.Contains(t, env.log.String(), "1 keys are defined by more than one file")
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	env := newRunEnv(t)
	for _, m := range []string{"A", "B", "C", "D", "E", "F"} {
		env.mod(m, "Key,english\nk"+m+",v"+m+"\nshared,"+m+"\n")
	}
	env.mod("G", "Key,german\nx,y\n")

	_, err := env.run(nil)
	require.NoError(t, err)
	sequential := env.dump()

	stats, err := env.run(func(c *config.Config) { c.Jobs = 4 })
	require.NoError(t, err)
	assert.Equal(t, sequential, env.dump())
	assert.Equal(t, []string{env.path("G")}, stats.Errored)
}

func TestRun_HeaderOnlyWhenNothingContributes(t *testing.T) {
	env := newRunEnv(t)
	env.mod("A", "Key,german\nk,v\n")

	stats, err := env.run(func(c *config.Config) { c.ExtraKeys = []string{"file"} })
	require.NoError(t, err)
	assert.Equal(t, "Key,file,english", env.dump())
	assert.Zero(t, stats.Rows)
}

func TestRun_XLSX(t *testing.T) {
	env := newRunEnv(t)
	env.mod("A", "Key,english\nApple,Fruit\n")
	xlsx := filepath.Join(env.root, "dump.xlsx")

	_, err := env.run(func(c *config.Config) { c.XLSXFile = xlsx })
	require.NoError(t, err)
	fi, err := os.Stat(xlsx)
	require.NoError(t, err)
	assert.Positive(t, fi.Size())
}

func TestRun_NoFilesWritesNothing(t *testing.T) {
	env := newRunEnv(t)

	_, err := env.run(nil)
	assert.ErrorIs(t, err, ErrNoFiles)
	_, statErr := os.Stat(env.output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_MissingModsDir(t *testing.T) {
	env := newRunEnv(t)
	require.NoError(t, os.RemoveAll(env.mods))

	_, err := env.run(nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_CancelledWritesNothing(t *testing.T) {
	env := newRunEnv(t)
	env.mod("A", "Key,english\nApple,Fruit\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := env.config(nil)
	_, err := Run(ctx, &cfg, logging.NewWriterLogger(&env.log, false), NewReporter(&env.out, &env.out, logging.NewWriterLogger(&env.log, false), false))
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(env.output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReporter_ProgressCountsEveryFile(t *testing.T) {
	env := newRunEnv(t)
	env.mod("A", "Key,english\nApple,Fruit\n")
	env.mod("B", "Key,german\nk,v\n")
	env.mod("C", "Key,english,french\nk,v,w\n")

	cfg := env.config(func(c *config.Config) { c.IgnoreLanguage = "french" })
	log := logging.NewWriterLogger(&env.log, true)
	rep := NewReporter(&env.out, &env.out, log, true)
	_, err := Run(context.Background(), &cfg, log, rep)
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Completed())
	assert.Contains(t, env.log.String(), "[DEBUG]")
}

func TestRun_DuplicatesListedWhenVerbose(t *testing.T) {
	env := newRunEnv(t)
	env.mod("A", "Key,english\nshared,one\n")
	env.mod("B", "Key,english\nshared,two\n")

	cfg := env.config(nil)
	log := logging.NewWriterLogger(&env.log, true)
	stats, err := Run(context.Background(), &cfg, log, NewReporter(&env.out, &env.out, log, false))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DuplicateKeys)
	assert.NotContains(t, env.log.String(), "use --verbose")
	assert.Contains(t, env.log.String(), "shared: ["+env.path("A")+" "+env.path("B")+"]")
}

func TestExtractOptions_CanonicalTags(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Language = "Schinese"
	cfg.TargetLanguage = "brazilian"
	cfg.GoogleTranslate = true
	require.NoError(t, cfg.Validate())

	opts, err := ExtractOptions(&cfg)
	require.NoError(t, err)
	assert.Equal(t, "schinese", opts.Language)
	assert.Equal(t, "zh-CN", opts.SourceTag)
	assert.Equal(t, "pt-BR", opts.TargetTag)
}

func TestFormulaTag(t *testing.T) {
	tag, err := formulaTag(locale.Language{Name: "custom", Tag: "EN-us"})
	require.NoError(t, err)
	assert.Equal(t, "en-US", tag)

	_, err = formulaTag(locale.Language{Name: "broken", Tag: "not a tag"})
	assert.ErrorContains(t, err, "language broken: bad locale tag")
}

func TestDisplayPath(t *testing.T) {
	sep := string(filepath.Separator)
	assert.Equal(t, "."+sep+"Localization-DUMP.txt", displayPath("Localization-DUMP.txt"))
	assert.Equal(t, "./x.txt", displayPath("./x.txt"))
	abs := filepath.Join(sep, "tmp", "x.txt")
	assert.Equal(t, abs, displayPath(abs))
}

// --- helpers ---

type runEnv struct {
	t      *testing.T
	root   string
	mods   string
	output string
	out    bytes.Buffer
	log    bytes.Buffer
}

func newRunEnv(t *testing.T) *runEnv {
	t.Helper()
	root := t.TempDir()
	mods := filepath.Join(root, "Mods")
	require.NoError(t, os.MkdirAll(mods, 0o755))
	return &runEnv{t: t, root: root, mods: mods, output: filepath.Join(root, "Localization-DUMP.txt")}
}

// mod writes Mods/<name>/Config/Localization.txt.
func (e *runEnv) mod(name, content string) {
	e.t.Helper()
	write(e.t, filepath.Join(e.mods, name, "Config"), "Localization.txt", content)
}

func (e *runEnv) path(name string) string {
	return filepath.Join(e.mods, name, "Config", "Localization.txt")
}

func (e *runEnv) config(mutate func(*config.Config)) config.Config {
	e.t.Helper()
	cfg := config.DefaultConfig()
	cfg.ModsDir = e.mods
	cfg.OutputFile = e.output
	cfg.NoProgress = true
	if mutate != nil {
		mutate(&cfg)
	}
	require.NoError(e.t, cfg.Validate())
	return cfg
}

func (e *runEnv) run(mutate func(*config.Config)) (RunStats, error) {
	e.t.Helper()
	cfg := e.config(mutate)
	log := logging.NewWriterLogger(&e.log, false)
	return Run(context.Background(), &cfg, log, NewReporter(&e.out, &e.out, log, false))
}

func (e *runEnv) dump() string {
	e.t.Helper()
	b, err := os.ReadFile(e.output)
	require.NoError(e.t, err)
	return string(b)
}

// symlink creates link pointing at target, skipping the test where the
// platform refuses symlinks.
func symlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
