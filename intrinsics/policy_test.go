package intrinsics

import (
	"encoding/json"
	"testing"
)

func marshalJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	return string(data)
}

func TestServicePrincipalMarshal(t *testing.T) {
	got := marshalJSON(t, ServicePrincipal{"lambda.amazonaws.com"})
	want := `{"Service":"lambda.amazonaws.com"}`
	if got != want {
		t.Errorf("single service = %s, want %s", got, want)
	}

	got = marshalJSON(t, ServicePrincipal{"ec2.amazonaws.com", "lambda.amazonaws.com"})
	want = `{"Service":["ec2.amazonaws.com","lambda.amazonaws.com"]}`
	if got != want {
		t.Errorf("multiple services = %s, want %s", got, want)
	}
}

func TestAWSPrincipalMarshal(t *testing.T) {
	got := marshalJSON(t, AWSPrincipal{"arn:aws:iam::123456789012:root"})
	want := `{"AWS":"arn:aws:iam::123456789012:root"}`
	if got != want {
		t.Errorf("AWSPrincipal = %s, want %s", got, want)
	}
}

func TestPolicyDocumentMarshal(t *testing.T) {
	doc := NewPolicyDocument(PolicyStatement{
		Effect:    "Allow",
		Principal: ServicePrincipal{"lambda.amazonaws.com"},
		Action:    "sts:AssumeRole",
	})

	got := marshalJSON(t, doc)
	want := `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"Service":"lambda.amazonaws.com"},"Action":"sts:AssumeRole"}]}`
	if got != want {
		t.Errorf("PolicyDocument = %s, want %s", got, want)
	}
}

func TestPolicyStatementCondition(t *testing.T) {
	stmt := PolicyStatement{
		Effect:   "Deny",
		Action:   "s3:*",
		Resource: "*",
		Condition: Json{
			Bool: Json{"aws:SecureTransport": "false"},
		},
	}

	got := marshalJSON(t, stmt)
	want := `{"Effect":"Deny","Action":"s3:*","Resource":"*","Condition":{"Bool":{"aws:SecureTransport":"false"}}}`
	if got != want {
		t.Errorf("statement = %s, want %s", got, want)
	}
}
