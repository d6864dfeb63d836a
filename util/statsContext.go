package util

import (
	"context"
	"time"

	"github.com/ordishs/gocore"
)

type statsKey struct{}

// NewStatFromContext starts a child stat named key under the stat carried by
// ctx, or under defaultParent when ctx carries none. It returns the start
// time in nanoseconds, the new stat and a context carrying it.
func NewStatFromContext(ctx context.Context, key string, defaultParent *gocore.Stat, options ...bool) (int64, *gocore.Stat, context.Context) {
	parentStat, ok := ctx.Value(statsKey{}).(*gocore.Stat)
	if !ok {
		parentStat = defaultParent
	}

	ignoreChildren := true
	if len(options) > 0 {
		ignoreChildren = options[0]
	}

	stat := parentStat.NewStat(key, ignoreChildren)

	return gocore.CurrentTime().UnixNano(), stat, context.WithValue(ctx, statsKey{}, stat)
}

// TimeSince returns the seconds elapsed since a start time taken from
// NewStatFromContext, for prometheus histograms.
func TimeSince(start int64) float64 {
	return time.Duration(gocore.CurrentTime().UnixNano() - start).Seconds()
}
