// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package inference

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/go-a2a/vertexops/endpoint"
	"github.com/go-a2a/vertexops/model"
	"github.com/go-a2a/vertexops/types"
)

const testParent = "projects/p/locations/us-central1"

// recordingService records the instances it receives and replies with a fixed payload.
type recordingService struct {
	endpoint  string
	instances []*structpb.Value
	reply     []*structpb.Value
	err       error
}

func (s *recordingService) Predict(ctx context.Context, endpoint string, instances []*structpb.Value) ([]*structpb.Value, error) {
	s.endpoint = endpoint
	s.instances = instances
	return s.reply, s.err
}

func newTestClient(t *testing.T, predictions types.PredictionService, endpointNames ...string) (*Client, map[string]*types.Endpoint) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	lc := endpoint.NewLifecycle(endpoint.NewInMemoryService(testParent), model.NewInMemoryService(testParent), endpoint.WithLogger(logger))

	eps := make(map[string]*types.Endpoint, len(endpointNames))
	for _, name := range endpointNames {
		ep, err := lc.CreateEndpoint(t.Context(), name)
		if err != nil {
			t.Fatal(err)
		}
		eps[name] = ep
	}
	return NewClient(predictions, lc, WithLogger(logger)), eps
}

func mustValue(t *testing.T, v any) *structpb.Value {
	t.Helper()
	sv, err := structpb.NewValue(v)
	if err != nil {
		t.Fatal(err)
	}
	return sv
}

func TestChatCompletionEcho(t *testing.T) {
	c, _ := newTestClient(t, EchoService{}, "llm")

	got, err := c.ChatCompletion(t.Context(), []Message{
		{Role: RoleSystem, Content: "be brief"},
		{Role: RoleUser, Content: "hello"},
	}, "llm", DefaultChatSampling())
	if err != nil {
		t.Fatalf("ChatCompletion() error = %v", err)
	}
	if want := "echo: hello"; got != want {
		t.Errorf("ChatCompletion() = %q, want %q", got, want)
	}
}

func TestChatCompletionRequest(t *testing.T) {
	rec := &recordingService{}
	nested, err := NewChoicePrediction("ok")
	if err != nil {
		t.Fatal(err)
	}
	rec.reply = []*structpb.Value{nested}
	c, eps := newTestClient(t, rec, "llm")

	messages := []Message{{Role: RoleUser, Content: "hi"}}
	s := Sampling{MaxTokens: 64, Temperature: 0.5, TopP: 0.8}
	if _, err := c.ChatCompletion(t.Context(), messages, "llm", s); err != nil {
		t.Fatalf("ChatCompletion() error = %v", err)
	}

	if rec.endpoint != eps["llm"].Name {
		t.Errorf("Predict endpoint = %q, want %q", rec.endpoint, eps["llm"].Name)
	}
	if len(rec.instances) != 1 {
		t.Fatalf("Predict got %d instances, want 1", len(rec.instances))
	}
	got, err := decodeInstance(rec.instances[0])
	if err != nil {
		t.Fatal(err)
	}
	want := &chatRequest{
		RequestFormat: "chatCompletions",
		Messages:      messages,
		MaxTokens:     64,
		Temperature:   0.5,
		TopP:          0.8,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("instance mismatch (-want +got):\n%s", diff)
	}

	fields := rec.instances[0].GetStructValue().GetFields()
	if got := fields["@requestFormat"].GetStringValue(); got != RequestFormat {
		t.Errorf("@requestFormat = %q, want %q", got, RequestFormat)
	}
}

func TestChatCompletionEndpointNotFound(t *testing.T) {
	rec := &recordingService{}
	c, _ := newTestClient(t, rec)

	got, err := c.ChatCompletion(t.Context(), []Message{{Role: RoleUser, Content: "hi"}}, "missing", DefaultChatSampling())
	var nf *types.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("ChatCompletion() error = %v, want *types.NotFoundError", err)
	}
	if nf.Kind != "endpoint" || nf.Name != "missing" {
		t.Errorf("NotFoundError = %+v", nf)
	}
	if got != "" {
		t.Errorf("ChatCompletion() = %q, want empty", got)
	}
	if rec.instances != nil {
		t.Error("Predict called for a missing endpoint")
	}
}

func TestChatCompletionInvalidInput(t *testing.T) {
	c, _ := newTestClient(t, EchoService{}, "llm")
	msgs := []Message{{Role: RoleUser, Content: "hi"}}

	tests := []struct {
		name     string
		messages []Message
		sampling Sampling
		field    string
	}{
		{name: "no messages", sampling: DefaultChatSampling(), field: "messages"},
		{name: "zero max tokens", messages: msgs, sampling: Sampling{TopP: 0.9}, field: "max_tokens"},
		{name: "negative temperature", messages: msgs, sampling: Sampling{MaxTokens: 1, Temperature: -1, TopP: 0.9}, field: "temperature"},
		{name: "top p above one", messages: msgs, sampling: Sampling{MaxTokens: 1, TopP: 1.5}, field: "top_p"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.ChatCompletion(t.Context(), tt.messages, "llm", tt.sampling)
			var ia *types.InvalidArgumentError
			if !errors.As(err, &ia) {
				t.Fatalf("ChatCompletion() error = %v, want *types.InvalidArgumentError", err)
			}
			if ia.Field != tt.field {
				t.Errorf("Field = %q, want %q", ia.Field, tt.field)
			}
		})
	}
}

func TestChatCompletionPredictError(t *testing.T) {
	boom := errors.New("unavailable")
	c, _ := newTestClient(t, &recordingService{err: boom}, "llm")

	_, err := c.ChatCompletion(t.Context(), []Message{{Role: RoleUser, Content: "hi"}}, "llm", DefaultChatSampling())
	if !errors.Is(err, boom) {
		t.Errorf("ChatCompletion() error = %v, want %v", err, boom)
	}
}

func TestPredictText(t *testing.T) {
	c, _ := newTestClient(t, EchoService{}, "llm")

	got, err := c.PredictText(t.Context(), "what is 2+2?", "llm", DefaultTextSampling())
	if err != nil {
		t.Fatalf("PredictText() error = %v", err)
	}
	if want := "echo: what is 2+2?"; got != want {
		t.Errorf("PredictText() = %q, want %q", got, want)
	}

	if _, err := c.PredictText(t.Context(), " ", "llm", DefaultTextSampling()); err == nil {
		t.Error("PredictText() with blank prompt succeeded")
	}
}
