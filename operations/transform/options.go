package transform

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-sif/reduce/accumulators"
	"github.com/go-sif/reduce/logging"
	"github.com/go-sif/reduce/reducers"
	"gopkg.in/yaml.v3"
)

// Options configures a reduction run
type Options struct {
	NumWorkers      int    `yaml:"num_workers"`       // the number of groups reduced concurrently. Defaults to GOMAXPROCS.
	BatchSize       int    `yaml:"batch_size"`        // the number of partial states combined at once within a group
	IgnoreKeyErrors bool   `yaml:"ignore_key_errors"` // iff true, log failed groups and keep reducing the others instead of aborting
	LogLevel        string `yaml:"log_level"`         // minimum level of logged messages, e.g. "info"
	Codec           string `yaml:"codec"`             // compression of serialized Accumulators: lz4, snappy, zstd or none
}

// CloneOptions makes a copy of Options
func CloneOptions(opts *Options) *Options {
	return &Options{
		NumWorkers:      opts.NumWorkers,
		BatchSize:       opts.BatchSize,
		IgnoreKeyErrors: opts.IgnoreKeyErrors,
		LogLevel:        opts.LogLevel,
		Codec:           opts.Codec,
	}
}

const defaultBatchSize = 1024

func ensureDefaultOptionsValues(opts *Options) {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = runtime.GOMAXPROCS(0)
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if len(opts.LogLevel) == 0 {
		opts.LogLevel = logging.LogLevelToString(logging.InfoLevel)
	}
	if len(opts.Codec) == 0 {
		opts.Codec = accumulators.LZ4.String()
	}
}

// LoadOptions reads Options from a YAML file, then applies REDUCE_* environment
// overrides and defaults. An empty path skips the file.
func LoadOptions(path string) (*Options, error) {
	opts := &Options{}
	if len(path) > 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read options file: %w", err)
		}
		if err := yaml.Unmarshal(data, opts); err != nil {
			return nil, fmt.Errorf("failed to parse options file: %w", err)
		}
	}
	if err := opts.LoadFromEnv(); err != nil {
		return nil, err
	}
	ensureDefaultOptionsValues(opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// LoadFromEnv overrides Options with REDUCE_* environment variables
func (opts *Options) LoadFromEnv() error {
	if workers := os.Getenv("REDUCE_NUM_WORKERS"); workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil {
			return fmt.Errorf("invalid REDUCE_NUM_WORKERS: %w", err)
		}
		opts.NumWorkers = n
	}
	if batch := os.Getenv("REDUCE_BATCH_SIZE"); batch != "" {
		n, err := strconv.Atoi(batch)
		if err != nil {
			return fmt.Errorf("invalid REDUCE_BATCH_SIZE: %w", err)
		}
		opts.BatchSize = n
	}
	if ignore := os.Getenv("REDUCE_IGNORE_KEY_ERRORS"); ignore != "" {
		opts.IgnoreKeyErrors = strings.ToLower(ignore) == "true"
	}
	if level := os.Getenv("REDUCE_LOG_LEVEL"); level != "" {
		opts.LogLevel = level
	}
	if codec := os.Getenv("REDUCE_CODEC"); codec != "" {
		opts.Codec = codec
	}
	return nil
}

// Validate checks Options for values which cannot be defaulted
func (opts *Options) Validate() error {
	if _, err := logging.ParseLogLevel(opts.LogLevel); err != nil {
		return err
	}
	if opts.BatchSize == 1 {
		return fmt.Errorf("batch_size must be at least 2")
	}
	if _, err := accumulators.ParseCodec(opts.Codec); err != nil {
		return err
	}
	return nil
}

// AccumulatorConf configures Accumulators which apply r to columns and
// serialize with the configured Codec
func (opts *Options) AccumulatorConf(r reducers.Reducer, columns ...int) (*accumulators.Conf, error) {
	codec, err := accumulators.ParseCodec(opts.Codec)
	if err != nil {
		return nil, err
	}
	return &accumulators.Conf{Reducer: r, Columns: columns, Codec: codec}, nil
}

func (opts *Options) logger() *logging.Logger {
	level, err := logging.ParseLogLevel(opts.LogLevel)
	if err != nil {
		level = logging.InfoLevel
	}
	return logging.NewLogger("reduce", level, log.Default())
}
