package graph

import (
	"strings"
	"testing"

	"github.com/lex00/wetwire-stacks-go/components/storage"
	"github.com/lex00/wetwire-stacks-go/stack"
)

func dataStack(t *testing.T) *stack.Stack {
	t.Helper()
	s := stack.New("test")
	if _, err := storage.New(s, "Data", storage.Config{BucketName: "graph-test-data"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestGenerator_Generate_DOT(t *testing.T) {
	gen := &Generator{}
	var sb strings.Builder
	if err := gen.Generate(dataStack(t), &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := sb.String()

	if !strings.Contains(output, "digraph") {
		t.Error("expected digraph declaration")
	}
	if !strings.Contains(output, "DataBucket") {
		t.Error("expected DataBucket node")
	}
	if !strings.Contains(output, "DataBucketPolicy") {
		t.Error("expected DataBucketPolicy node")
	}
	if !strings.Contains(output, "AWS::S3::Bucket") {
		t.Error("expected resource type in node label")
	}
}

func TestGenerator_Generate_Mermaid(t *testing.T) {
	gen := &Generator{Format: FormatMermaid}
	var sb strings.Builder
	if err := gen.Generate(dataStack(t), &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := sb.String()

	if !strings.Contains(output, "graph TB") {
		t.Error("expected Mermaid top-to-bottom graph")
	}
	if !strings.Contains(output, "DataBucket") {
		t.Error("expected DataBucket node")
	}
}

func TestGenerator_Generate_Clustered(t *testing.T) {
	gen := &Generator{ClusterByService: true}
	var sb strings.Builder
	if err := gen.Generate(dataStack(t), &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := sb.String()

	// Two S3 resources should land in one S3 cluster.
	if !strings.Contains(output, "cluster_S3") {
		t.Error("expected S3 cluster")
	}
}

func TestGenerator_GenerateString_Deterministic(t *testing.T) {
	s := dataStack(t)
	gen := &Generator{}

	first, err := gen.GenerateString(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		out, err := gen.GenerateString(s)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != first {
			t.Error("expected identical output across runs")
		}
	}
}

func TestExtractService(t *testing.T) {
	tests := []struct {
		cfType string
		want   string
	}{
		{"AWS::EC2::VPC", "EC2"},
		{"AWS::S3::Bucket", "S3"},
		{"NotAType", "Other"},
	}
	for _, tt := range tests {
		if got := extractService(tt.cfType); got != tt.want {
			t.Errorf("extractService(%q) = %q, want %q", tt.cfType, got, tt.want)
		}
	}
}
