package e2e

import (
	"context"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
)

// InfluxClient wraps the InfluxDB v2 client for reading back what the
// service wrote during a run.
type InfluxClient struct {
	client influxdb2.Client
	query  api.QueryAPI
}

// NewInfluxClient creates a client for an already running server.
func NewInfluxClient(url, org, token string) *InfluxClient {
	c := influxdb2.NewClient(url, token)
	return &InfluxClient{client: c, query: c.QueryAPI(org)}
}

// LastValue returns the most recent value of field for a plant in the
// plant_emissions measurement. ok is false when no point matched.
func (c *InfluxClient) LastValue(ctx context.Context, bucket, plant, field string) (v float64, ok bool, err error) {
	flux := `from(bucket: "` + bucket + `")
  |> range(start: -10m)
  |> filter(fn: (r) => r._measurement == "plant_emissions" and r.plant == "` + plant + `" and r._field == "` + field + `")
  |> last()`
	res, err := c.query.Query(ctx, flux)
	if err != nil {
		return 0, false, err
	}
	defer res.Close()
	for res.Next() {
		if f, isFloat := res.Record().Value().(float64); isFloat {
			v, ok = f, true
		}
	}
	return v, ok, res.Err()
}

// Close releases the underlying client resources.
func (c *InfluxClient) Close() { c.client.Close() }
