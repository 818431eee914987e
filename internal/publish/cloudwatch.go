package publish

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/aws/aws-sdk-go/service/cloudwatch/cloudwatchiface"
	"github.com/cwbudde/linefit/internal/fit"
)

// MetricsPublisher reports run outcomes as CloudWatch custom metrics.
type MetricsPublisher struct {
	client    cloudwatchiface.CloudWatchAPI
	namespace string
	now       func() time.Time
}

// NewMetricsPublisher creates a publisher writing to namespace.
func NewMetricsPublisher(cfg client.ConfigProvider, namespace string) *MetricsPublisher {
	return newMetricsPublisher(cloudwatch.New(cfg), namespace)
}

func newMetricsPublisher(client cloudwatchiface.CloudWatchAPI, namespace string) *MetricsPublisher {
	return &MetricsPublisher{
		client:    client,
		namespace: namespace,
		now:       time.Now,
	}
}

// PublishRun sends the final cost, iteration count, learned parameters and R².
// Non-finite values are skipped since CloudWatch rejects them.
func (m *MetricsPublisher) PublishRun(ctx context.Context, res *fit.Result, rSquared float64) error {
	ts := m.now()
	candidates := []struct {
		name  string
		value float64
		unit  string
	}{
		{"FinalCost", res.FinalCost(), cloudwatch.StandardUnitNone},
		{"Iterations", float64(res.Iterations), cloudwatch.StandardUnitCount},
		{"Slope", res.Params.W, cloudwatch.StandardUnitNone},
		{"Intercept", res.Params.B, cloudwatch.StandardUnitNone},
		{"RSquared", rSquared, cloudwatch.StandardUnitNone},
	}

	var data []*cloudwatch.MetricDatum
	for _, c := range candidates {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			slog.Warn("Skipping non-finite metric", "metric", c.name, "value", c.value)
			continue
		}
		data = append(data, &cloudwatch.MetricDatum{
			MetricName: aws.String(c.name),
			Value:      aws.Float64(c.value),
			Unit:       aws.String(c.unit),
			Timestamp:  aws.Time(ts),
		})
	}
	if len(data) == 0 {
		return nil
	}

	_, err := m.client.PutMetricDataWithContext(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	})
	if err != nil {
		return fmt.Errorf("could not put metric data to %s: %w", m.namespace, err)
	}

	slog.Info("Published metrics", "namespace", m.namespace, "count", len(data))
	return nil
}
