//go:build integration

package mqtt

import (
	"context"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	json "github.com/goccy/go-json"

	"github.com/kilianp07/co2dash/internal/testutil"
)

func TestSnapshotPublisher_Mosquitto(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	broker, cleanup, err := testutil.StartMosquitto(ctx)
	if err != nil {
		t.Skipf("mosquitto unavailable: %v", err)
	}
	defer cleanup()

	received := make(chan []byte, 1)
	sub := paho.NewClient(paho.NewClientOptions().AddBroker(broker).SetClientID("sub"))
	if tok := sub.Connect(); tok.Wait() && tok.Error() != nil {
		t.Fatalf("subscriber connect: %v", tok.Error())
	}
	defer sub.Disconnect(100)
	if tok := sub.Subscribe("co2dash/+/emissions", 1, func(_ paho.Client, m paho.Message) {
		received <- m.Payload()
	}); tok.Wait() && tok.Error() != nil {
		t.Fatalf("subscribe: %v", tok.Error())
	}

	pub, err := NewSnapshotPublisher(Config{Broker: broker, QoS: 1})
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	defer func() { _ = pub.Close() }()
	if err := pub.RecordEstimate(estimate()); err != nil {
		t.Fatalf("record: %v", err)
	}

	select {
	case payload := <-received:
		var msg SnapshotMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if msg.Plant != "Alpha Steel" {
			t.Fatalf("unexpected plant %q", msg.Plant)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("snapshot not received")
	}
}
