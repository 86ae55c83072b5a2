package feast

import (
	"context"
	"errors"
	"testing"
)

type stubClient struct {
	resp *GetOnlineFeaturesResponse
	err  error

	gotReq *GetOnlineFeaturesRequest
}

func (s *stubClient) GetOnlineFeatures(_ context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error) {
	s.gotReq = req
	return s.resp, s.err
}

func (s *stubClient) Close() error { return nil }

func TestProductFeatureProvider(t *testing.T) {
	client := &stubClient{
		resp: &GetOnlineFeaturesResponse{
			FeatureVectors: []FeatureVector{
				{Values: map[string]interface{}{"ctr_7d": 0.25, "title": "not numeric"}},
				{Values: map[string]interface{}{"ctr_7d": int64(3)}},
			},
		},
	}

	p := NewProductFeatureProvider(client, "")
	got, err := p.ProductFeatures(context.Background(), []int64{10, 20}, []string{"ctr_7d", "title"})
	if err != nil {
		t.Fatalf("ProductFeatures() error = %v", err)
	}

	// default entity key applied to every entity row
	if client.gotReq.EntityRows[0]["product_id"] != int64(10) {
		t.Errorf("entity row = %v, want product_id=10", client.gotReq.EntityRows[0])
	}

	if got[10]["ctr_7d"] != 0.25 {
		t.Errorf("got[10][ctr_7d] = %v, want 0.25", got[10]["ctr_7d"])
	}
	// non-numeric feature values are dropped, not zeroed
	if _, ok := got[10]["title"]; ok {
		t.Error("non-numeric value should be skipped")
	}
	if got[20]["ctr_7d"] != 3.0 {
		t.Errorf("got[20][ctr_7d] = %v, want 3", got[20]["ctr_7d"])
	}
}

func TestProductFeatureProvider_ErrorAndEmptyInputs(t *testing.T) {
	p := NewProductFeatureProvider(&stubClient{err: errors.New("unavailable")}, "product_id")
	if _, err := p.ProductFeatures(context.Background(), []int64{1}, []string{"f"}); err == nil {
		t.Error("client error should propagate")
	}

	// missing client or empty inputs are a silent no-op
	quiet := NewProductFeatureProvider(nil, "")
	if got, err := quiet.ProductFeatures(context.Background(), []int64{1}, []string{"f"}); got != nil || err != nil {
		t.Errorf("nil client: got (%v, %v), want (nil, nil)", got, err)
	}
	p2 := NewProductFeatureProvider(&stubClient{}, "")
	if got, _ := p2.ProductFeatures(context.Background(), nil, []string{"f"}); got != nil {
		t.Errorf("no ids: got %v, want nil", got)
	}
}
