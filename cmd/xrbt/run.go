package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xrbt/lib/infra"
	"github.com/benz9527/xrbt/lib/tree"
	"github.com/benz9527/xrbt/observability"
	"github.com/benz9527/xrbt/xlog"
)

type runConfig struct {
	inserts    []int64
	deletes    []int64
	order      tree.RBTraverseOrder
	stats      observability.MetricsExporterType
	invert     bool
	validate   bool
	desc       bool
	borrowPred bool
}

var traverseOrders = map[string]tree.RBTraverseOrder{
	"in":    tree.InOrder,
	"pre":   tree.PreOrder,
	"post":  tree.PostOrder,
	"level": tree.LevelOrder,
}

func newRunCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "insert and delete keys, then print the traversal",
		Example: `  xrbt run --insert 50,20,35,75,62,98,10,66,1 --delete 66,50,62 --order level
  XRBT_INSERT=3,1,2 xrbt run --invert`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := parseRunConfig(v)
			if err != nil {
				return err
			}
			logger := xlog.NewXLogger(
				xlog.WithXLoggerWriter(cmd.ErrOrStderr()),
				xlog.WithXLoggerEncoder(xlog.PlainText),
				xlog.WithXLoggerStrLevel(v.GetString("log-level")),
			)
			defer func() {
				_ = logger.Sync()
			}()
			return runTree(cmd.Context(), cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().String("insert", "", "keys to insert in order, comma separated")
	cmd.Flags().String("delete", "", "keys to delete in order after the inserts, comma separated")
	cmd.Flags().String("order", "in", "traversal order: in, pre, post or level")
	cmd.Flags().Bool("invert", false, "print the traversal of the inverted tree")
	cmd.Flags().Bool("validate", false, "validate the red-black rules before printing")
	cmd.Flags().Bool("desc", false, "order the keys descending")
	cmd.Flags().Bool("borrow-pred", false, "delete a node with two children by its predecessor")
	cmd.Flags().String("stats", "", "export the tree metrics to stderr: console or prometheus")
	return cmd
}

func parseRunConfig(v *viper.Viper) (*runConfig, error) {
	cfg := &runConfig{
		invert:     v.GetBool("invert"),
		validate:   v.GetBool("validate"),
		desc:       v.GetBool("desc"),
		borrowPred: v.GetBool("borrow-pred"),
		stats:      observability.MetricsExporterType(strings.ToLower(strings.TrimSpace(v.GetString("stats")))),
	}
	var err error
	if cfg.inserts, err = parseKeys(v.GetStringSlice("insert")); err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "invalid insert keys")
	}
	if cfg.deletes, err = parseKeys(v.GetStringSlice("delete")); err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "invalid delete keys")
	}
	order, ok := traverseOrders[strings.ToLower(strings.TrimSpace(v.GetString("order")))]
	if !ok {
		return nil, infra.NewErrorStack("unknown traversal order " + strconv.Quote(v.GetString("order")))
	}
	cfg.order = order
	if !cfg.stats.Valid() {
		return nil, infra.NewErrorStack("unknown stats exporter " + strconv.Quote(string(cfg.stats)))
	}
	return cfg, nil
}

// The keys are accepted as "1,2,3", "1 2 3" or a list from the config file.
// Each key follows the cast integer syntax, so 0x and 0o prefixes work.
func parseKeys(parts []string) ([]int64, error) {
	keys := make([]int64, 0, len(parts))
	for _, part := range parts {
		for _, field := range strings.FieldsFunc(part, func(r rune) bool {
			return r == ',' || r == ' ' || r == '[' || r == ']'
		}) {
			key, err := cast.ToInt64E(field)
			if err != nil {
				return nil, err
			}
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func runTree(ctx context.Context, cfg *runConfig, logger xlog.XLogger, out, statsOut io.Writer) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := []tree.RBTreeOpt[int64]{
		tree.WithRBTreeLogger[int64](logger),
	}
	if cfg.desc {
		opts = append(opts, tree.WithRBTreeDesc[int64]())
	}
	if cfg.borrowPred {
		opts = append(opts, tree.WithRBTreeRemoveBorrowPred[int64]())
	}
	if cfg.stats != observability.NoneExporter {
		flush, err := setupStats(ctx, cfg.stats, logger, statsOut)
		if err != nil {
			return err
		}
		defer func() {
			if flushErr := flush(ctx); flushErr != nil {
				logger.Error(flushErr, "failed to export stats")
			}
		}()
		opts = append(opts, tree.WithRBTreeStats[int64]("cli"))
	}

	t := tree.NewRBTree[int64](opts...)
	defer t.Release()

	for _, key := range cfg.inserts {
		if err = t.Insert(key); errors.Is(err, tree.ErrRBTreeKeyExists) {
			logger.Warn("duplicate key ignored", zap.Int64("key", key))
		} else if err != nil {
			return err
		}
	}
	for _, key := range cfg.deletes {
		if _, err = t.Remove(key); errors.Is(err, tree.ErrRBTreeKeyNotFound) || errors.Is(err, tree.ErrRBTreeEmpty) {
			logger.Warn("absent key ignored", zap.Int64("key", key))
		} else if err != nil {
			return err
		}
	}
	logger.Info("tree built",
		zap.Int64("size", t.Len()),
		zap.Int64("height", t.Height()),
	)

	if cfg.validate {
		if err = tree.Validate[int64](t); err != nil {
			logger.ErrorStack(err, "red-black rules violated")
			return err
		}
	}

	var keys []int64
	if cfg.invert {
		inv := t.Invert()
		keys = inv.Keys(cfg.order)
		inv.Release()
	} else {
		keys = t.Keys(cfg.order)
	}
	_, err = fmt.Fprintln(out, strings.Join(lo.Map(keys, func(key int64, _ int) string {
		return strconv.FormatInt(key, 10)
	}), " "))
	return err
}

// setupStats installs the global meter provider and returns the
// callback to export the metrics into w.
func setupStats(
	ctx context.Context,
	typ observability.MetricsExporterType,
	logger xlog.XLogger,
	w io.Writer,
) (func(ctx context.Context) error, error) {
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Logf(zapcore.DebugLevel, format, args...)
	}))

	switch typ {
	case observability.ConsoleExporter:
		shutdown, err := observability.NewConsoleMetricsExporter(w, time.Minute, 5*time.Second)
		if err != nil {
			return nil, err
		}
		observability.InitAppStats(ctx, "xrbt", nil)
		return shutdown, nil
	case observability.PrometheusExporter:
		reg := promclient.NewRegistry()
		shutdown, err := observability.NewPrometheusMetricsExporter(reg)
		if err != nil {
			return nil, err
		}
		observability.InitAppStats(ctx, "xrbt", nil)
		return func(ctx context.Context) error {
			if err := observability.WritePrometheusText(w, reg); err != nil {
				return err
			}
			return shutdown(ctx)
		}, nil
	default:
	}
	return nil, infra.NewErrorStack("unknown stats exporter " + strconv.Quote(string(typ)))
}
