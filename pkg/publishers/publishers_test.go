package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: kafka1
    type: KAFKA
    kafka:
      brokers: ["broker-1:9092, broker-2:9092"]
  - id: sqs1
    type: sqs
    sqs:
      uri: https://sqs.eu-west-2.amazonaws.com/1/events
      region: eu-west-2
      access_key_id: AKIA
      secret_access_key: secret
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 2 || enabled[0].ID != "kafka1" || enabled[1].ID != "sqs1" {
		t.Fatalf("expected kafka1 and sqs1 enabled, got %#v", enabled)
	}

	kafkaCfg, ok := reg.ByID("kafka1")
	if !ok || kafkaCfg.Type != TypeKafka {
		t.Fatalf("ByID(kafka1) = %#v, %v", kafkaCfg, ok)
	}
	if len(kafkaCfg.Kafka.Brokers) != 2 || kafkaCfg.Kafka.RequiredAcks != "all" || kafkaCfg.Kafka.WriteTimeoutSeconds != kafkaDefaultWriteSeconds {
		t.Fatalf("kafka defaults not applied: %#v", kafkaCfg.Kafka)
	}
	sqsCfg, _ := reg.ByID("sqs1")
	if sqsCfg.SQS.Region != "eu-west-2" || sqsCfg.SQS.AccessKeyID != "AKIA" {
		t.Fatalf("inline aws config not decoded: %#v", sqsCfg.SQS)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publishers.json")
	raw := `{"publishers":[{"id":"r","type":"redis","redis":{"addr":"localhost:6379","channel_prefix":"ctp."}}]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if cfg, ok := reg.ByID("r"); !ok || cfg.Redis.ChannelPrefix != "ctp." {
		t.Fatalf("ByID(r) = %#v", cfg)
	}
}

func TestLoadRegistryRejectsDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publishers.yaml")
	raw := `
publishers:
  - id: a
    type: http
    http: {url: https://example.com}
  - id: a
    type: http
    http: {url: https://example.com/2}
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestValidatePublisherConfigRejectsMissingBlocks(t *testing.T) {
	for _, typ := range []string{TypeHTTP, TypeSQS, TypeSNS, TypePubSub, TypeKafka, TypeRedis} {
		if err := validatePublisherConfig(PublisherConfig{ID: "p", Type: typ}); err == nil {
			t.Fatalf("expected validation error for missing %s block", typ)
		}
	}
	err := validatePublisherConfig(PublisherConfig{
		ID:    "k",
		Type:  TypeKafka,
		Kafka: &KafkaPublisherConfig{Brokers: []string{"b:9092"}, RequiredAcks: "most"},
	})
	if err == nil {
		t.Fatalf("expected invalid required_acks error")
	}
}
