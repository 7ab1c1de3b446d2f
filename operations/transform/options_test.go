package transform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/go-sif/reduce/accumulators"
	"github.com/go-sif/reduce/reducers"
	"github.com/stretchr/testify/require"
)

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reduce.yaml")
	conf := []byte("num_workers: 4\nbatch_size: 16\nignore_key_errors: true\nlog_level: debug\n")
	require.Nil(t, os.WriteFile(path, conf, 0644))
	opts, err := LoadOptions(path)
	require.Nil(t, err)
	require.Equal(t, &Options{NumWorkers: 4, BatchSize: 16, IgnoreKeyErrors: true, LogLevel: "debug", Codec: "lz4"}, opts)
}

func TestLoadOptionsEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reduce.yaml")
	require.Nil(t, os.WriteFile(path, []byte("num_workers: 4\n"), 0644))
	t.Setenv("REDUCE_NUM_WORKERS", "2")
	t.Setenv("REDUCE_IGNORE_KEY_ERRORS", "TRUE")
	opts, err := LoadOptions(path)
	require.Nil(t, err)
	require.Equal(t, 2, opts.NumWorkers)
	require.True(t, opts.IgnoreKeyErrors)

	t.Setenv("REDUCE_BATCH_SIZE", "many")
	_, err = LoadOptions(path)
	require.NotNil(t, err)
}

func TestLoadOptionsDefaults(t *testing.T) {
	opts, err := LoadOptions("")
	require.Nil(t, err)
	require.Equal(t, runtime.GOMAXPROCS(0), opts.NumWorkers)
	require.Equal(t, defaultBatchSize, opts.BatchSize)
	require.False(t, opts.IgnoreKeyErrors)
	require.Equal(t, "INFO", opts.LogLevel)
	require.Equal(t, "lz4", opts.Codec)
}

func TestLoadOptionsCodec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reduce.yaml")
	require.Nil(t, os.WriteFile(path, []byte("codec: zstd\n"), 0644))
	opts, err := LoadOptions(path)
	require.Nil(t, err)
	conf, err := opts.AccumulatorConf(reducers.Of(reducers.IntSum), 1)
	require.Nil(t, err)
	require.Equal(t, accumulators.Zstd, conf.Codec)
	require.Equal(t, []int{1}, conf.Columns)

	t.Setenv("REDUCE_CODEC", "snappy")
	opts, err = LoadOptions(path)
	require.Nil(t, err)
	require.Equal(t, "snappy", opts.Codec)

	t.Setenv("REDUCE_CODEC", "brotli")
	_, err = LoadOptions(path)
	require.NotNil(t, err)
	_, err = (&Options{Codec: "brotli"}).AccumulatorConf(reducers.Of(reducers.Max))
	require.NotNil(t, err)
}

func TestLoadOptionsInvalid(t *testing.T) {
	dir := t.TempDir()
	badLevel := filepath.Join(dir, "level.yaml")
	require.Nil(t, os.WriteFile(badLevel, []byte("log_level: loud\n"), 0644))
	_, err := LoadOptions(badLevel)
	require.NotNil(t, err)

	badBatch := filepath.Join(dir, "batch.yaml")
	require.Nil(t, os.WriteFile(badBatch, []byte("batch_size: 1\n"), 0644))
	_, err = LoadOptions(badBatch)
	require.NotNil(t, err)

	notYaml := filepath.Join(dir, "broken.yaml")
	require.Nil(t, os.WriteFile(notYaml, []byte("num_workers: [\n"), 0644))
	_, err = LoadOptions(notYaml)
	require.NotNil(t, err)

	_, err = LoadOptions(filepath.Join(dir, "missing.yaml"))
	require.NotNil(t, err)
}

func TestCloneOptions(t *testing.T) {
	opts := &Options{NumWorkers: 1, BatchSize: 8, LogLevel: "warn", Codec: "none"}
	clone := CloneOptions(opts)
	require.Equal(t, opts, clone)
	clone.NumWorkers = 5
	require.Equal(t, 1, opts.NumWorkers)
}
