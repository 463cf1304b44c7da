package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics publishes operation counters to CloudWatch. Emission is
// fire-and-forget: a metric failure must never delay or fail a request.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
	logger    *zap.Logger
}

// NewMetrics creates a metrics publisher under the given namespace.
func NewMetrics(namespace string, client *cloudwatch.Client, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// IncrementCounter publishes a count-of-one metric asynchronously.
// Safe to call on a nil receiver; metrics are then disabled.
func (m *Metrics) IncrementCounter(name string) {
	if m == nil || m.client == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace: aws.String(m.namespace),
			MetricData: []types.MetricDatum{
				{
					MetricName: aws.String(name),
					Value:      aws.Float64(1),
					Unit:       types.StandardUnitCount,
					Timestamp:  aws.Time(time.Now()),
				},
			},
		})
		if err != nil && m.logger != nil {
			m.logger.Warn("Failed to publish metric",
				zap.String("metric", name),
				zap.Error(err),
			)
		}
	}()
}
