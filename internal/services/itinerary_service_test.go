package services

import (
	"context"
	"testing"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
)

type fakeChatClient struct {
	content string
	err     error
	lastReq ChatCompletionRequest
}

func (f *fakeChatClient) Complete(ctx context.Context, req ChatCompletionRequest) (ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return ChatCompletionResponse{}, f.err
	}
	return ChatCompletionResponse{Content: f.content}, nil
}

func TestBaselineCost(t *testing.T) {
	cases := []struct {
		budget string
		days   int
		want   int
	}{
		{models.BudgetEconomy, 5, 500},
		{models.BudgetStandard, 5, 1250},
		{models.BudgetLuxury, 3, 1500},
		{"Mystery", 4, 800},
	}
	for _, c := range cases {
		t.Run(c.budget, func(t *testing.T) {
			if got := BaselineCost(c.budget, c.days); got != c.want {
				t.Errorf("BaselineCost(%q, %d) = %d, want %d", c.budget, c.days, got, c.want)
			}
		})
	}
}

func TestGenerateWithoutClient(t *testing.T) {
	svc := NewItineraryService(nil, "", nil)
	payload, cost := svc.Generate(context.Background(), "Paris", 5, models.BudgetStandard, "Food")
	if payload != "" {
		t.Errorf("payload = %q, want empty", payload)
	}
	if cost != 1250 {
		t.Errorf("cost = %d, want baseline 1250", cost)
	}
}

func TestGenerateParsesFencedResponse(t *testing.T) {
	client := &fakeChatClient{content: "```json\n{\"estimated_cost\": \"$1,200 approx\", \"currency\": \"USD\", \"days\": [{\"day\": 1, \"title\": \"Arrival\", \"activities\": []}]}\n```"}
	svc := NewItineraryService(client, "", nil)

	payload, cost := svc.Generate(context.Background(), "Paris", 5, models.BudgetStandard, "Food")
	if cost != 1200 {
		t.Errorf("cost = %d, want 1200 from model estimate", cost)
	}

	plan := models.ParseItinerary(payload)
	if plan == nil {
		t.Fatal("stored payload did not parse back")
	}
	if len(plan.Days) != 1 || plan.Days[0].Title != "Arrival" {
		t.Errorf("unexpected plan: %+v", plan)
	}

	if client.lastReq.Model != itineraryModel {
		t.Errorf("model = %q, want %q", client.lastReq.Model, itineraryModel)
	}
	if !client.lastReq.JSONResponse {
		t.Error("JSON response format not requested")
	}
	if len(client.lastReq.Messages) != 2 || client.lastReq.Messages[0].Content != "You are a JSON generator." {
		t.Errorf("unexpected messages: %+v", client.lastReq.Messages)
	}
}

func TestGenerateKeepsBaselineOnBadEstimates(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"negative", `{"estimated_cost": -5, "days": []}`},
		{"zero", `{"estimated_cost": 0, "days": []}`},
		{"garbage", `{"estimated_cost": "abc", "days": []}`},
		{"missing", `{"days": []}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc := NewItineraryService(&fakeChatClient{content: c.content}, "", nil)
			payload, cost := svc.Generate(context.Background(), "Rome", 2, models.BudgetEconomy, "Art")
			if cost != 200 {
				t.Errorf("cost = %d, want baseline 200", cost)
			}
			if payload == "" {
				t.Error("payload should still be stored when the JSON is valid")
			}
		})
	}
}

func TestGenerateDegradesOnFailure(t *testing.T) {
	t.Run("client error", func(t *testing.T) {
		svc := NewItineraryService(&fakeChatClient{err: context.DeadlineExceeded}, "", nil)
		payload, cost := svc.Generate(context.Background(), "Rome", 3, models.BudgetLuxury, "Art")
		if payload != "" || cost != 1500 {
			t.Errorf("got (%q, %d), want empty payload and baseline 1500", payload, cost)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		svc := NewItineraryService(&fakeChatClient{content: "Sure! Here is your plan:"}, "", nil)
		payload, cost := svc.Generate(context.Background(), "Rome", 3, models.BudgetLuxury, "Art")
		if payload != "" || cost != 1500 {
			t.Errorf("got (%q, %d), want empty payload and baseline 1500", payload, cost)
		}
	})
}

func TestReconcileCost(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		want   int
		wantOK bool
	}{
		{"plain number", `800`, 800, true},
		{"quoted number", `"950"`, 950, true},
		{"currency text", `"$1,200 approx"`, 1200, true},
		{"range collapses", `"$1,200-$1,500"`, 12001500, true},
		{"negative", `-5`, 0, false},
		{"zero", `0`, 0, false},
		{"letters", `"abc"`, 0, false},
		{"null", `null`, 0, false},
		{"empty", ``, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := reconcileCost([]byte(c.raw))
			if got != c.want || ok != c.wantOK {
				t.Errorf("reconcileCost(%q) = (%d, %v), want (%d, %v)", c.raw, got, ok, c.want, c.wantOK)
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
	}
	for _, c := range cases {
		if got := stripCodeFences(c.in); got != c.want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
