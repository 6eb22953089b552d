package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/karyoviz/karyoplot/pkg/cache"
	"github.com/karyoviz/karyoplot/pkg/pipeline"
)

// cacheFlags holds the cache-related flags shared by parse and render.
type cacheFlags struct {
	dir     string // cache directory override
	noCache bool   // disable caching entirely
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dir, "cache-dir", "", "cache directory (defaults to the user cache dir)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the feature and artifact cache")
}

// newRunner builds a pipeline runner honoring the cache flags.
func (f *cacheFlags) newRunner() (*pipeline.Runner, error) {
	if f.noCache {
		return pipeline.NewRunner(cache.NewNullCache(), nil, nil), nil
	}
	dir := f.dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			printWarning("Caching disabled: %v", err)
			return pipeline.NewRunner(cache.NewNullCache(), nil, nil), nil
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return pipeline.NewRunner(fc, nil, nil), nil
}

// cacheDir returns the default cache directory for karyoplot.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "karyoplot"), nil
}

// newCacheCmd creates the cache management command.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the feature and artifact cache",
	}

	cmd.AddCommand(newCacheStatsCmd())
	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePathCmd())

	return cmd
}

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache size and entry count",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			stats, err := fc.Stats()
			if err != nil {
				return err
			}

			printKeyValue("Directory", stats.Dir)
			printKeyValue("Entries", fmt.Sprintf("%d", stats.Entries))
			printKeyValue("Size", fmt.Sprintf("%.1f KiB", float64(stats.Bytes)/1024))
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached features and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			stats, err := fc.Stats()
			if err != nil {
				return err
			}
			if err := fc.Purge(); err != nil {
				return err
			}

			printSuccess("Cleared %d cached entries", stats.Entries)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
