package observability

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/benz9527/xtree/lib/tree"
)

const (
	avlMapRotationsMetric = "avl_map.rotations"
	avlMapLenMetric       = "avl_map.len"
	avlMapNameAttr        = "map"
	avlMapRotationAttr    = "kind"
)

var avlRotations = []tree.AVLRotation{
	tree.RightRotation,
	tree.LeftRotation,
	tree.LeftRightRotation,
	tree.RightLeftRotation,
}

type avlMapStats struct {
	ctx         context.Context
	rotations   metric.Int64Counter
	length      metric.Int64UpDownCounter
	lenAttrs    metric.AddOption
	rotateAttrs map[tree.AVLRotation]metric.AddOption
}

var _ tree.AVLMapStats = (*avlMapStats)(nil)

func (stats *avlMapStats) RecordRotation(kind tree.AVLRotation) {
	opt, ok := stats.rotateAttrs[kind]
	if !ok {
		return
	}
	stats.rotations.Add(stats.ctx, 1, opt)
}

func (stats *avlMapStats) RecordLen(delta int64) {
	if delta == 0 {
		return
	}
	stats.length.Add(stats.ctx, delta, stats.lenAttrs)
}

func avlMapMeterName(name string) string {
	builder := &strings.Builder{}
	builder.WriteString("xtree/avl-map")
	builder.WriteString("/")
	if len(strings.TrimSpace(name)) > 0 {
		builder.WriteString(name)
	} else {
		builder.WriteString("default")
	}
	return builder.String()
}

// NewAVLMapStats records the rotations and the length of a map into the
// otel instruments. The global meter provider is used if mp is nil.
func NewAVLMapStats(mp metric.MeterProvider, name string) (tree.AVLMapStats, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	if len(strings.TrimSpace(name)) <= 0 {
		name = "default"
	}
	meter := mp.Meter(avlMapMeterName(name))

	rotations, err := meter.Int64Counter(
		avlMapRotationsMetric,
		metric.WithDescription(`The rotations applied to rebalance the avl map.`),
	)
	if err != nil {
		return nil, err
	}
	length, err := meter.Int64UpDownCounter(
		avlMapLenMetric,
		metric.WithDescription(`The number of entries in the avl map.`),
	)
	if err != nil {
		return nil, err
	}

	mapAttr := attribute.String(avlMapNameAttr, name)
	stats := &avlMapStats{
		ctx:         context.Background(),
		rotations:   rotations,
		length:      length,
		lenAttrs:    metric.WithAttributeSet(attribute.NewSet(mapAttr)),
		rotateAttrs: make(map[tree.AVLRotation]metric.AddOption, len(avlRotations)),
	}
	for _, kind := range avlRotations {
		stats.rotateAttrs[kind] = metric.WithAttributeSet(attribute.NewSet(
			mapAttr,
			attribute.String(avlMapRotationAttr, kind.String()),
		))
	}
	return stats, nil
}

func MustNewAVLMapStats(mp metric.MeterProvider, name string) tree.AVLMapStats {
	return lo.Must[tree.AVLMapStats](NewAVLMapStats(mp, name))
}
