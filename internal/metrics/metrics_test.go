// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/recommendations", "200"))
	RecordAPIRequest("GET", "/api/recommendations", 200, 25*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/recommendations", "200"))
	if after != before+1 {
		t.Errorf("api_requests_total = %f, want %f", after, before+1)
	}
}

func TestRecordFit(t *testing.T) {
	RecordFit(100*time.Millisecond, 3, 1200, nil)
	if got := testutil.ToFloat64(ModelGeneration); got != 3 {
		t.Errorf("recommend_model_generation = %f, want 3", got)
	}
	if got := testutil.ToFloat64(ModelVocabularySize); got != 1200 {
		t.Errorf("recommend_vocabulary_terms = %f, want 1200", got)
	}

	errBefore := testutil.ToFloat64(ModelFitsTotal.WithLabelValues("error"))
	RecordFit(time.Millisecond, 0, 0, errors.New("catalog unreachable"))
	errAfter := testutil.ToFloat64(ModelFitsTotal.WithLabelValues("error"))
	if errAfter != errBefore+1 {
		t.Errorf("recommend_fits_total{outcome=error} = %f, want %f", errAfter, errBefore+1)
	}
	// A failed fit must not move the serving generation gauge.
	if got := testutil.ToFloat64(ModelGeneration); got != 3 {
		t.Errorf("recommend_model_generation after failed fit = %f, want 3", got)
	}
}

func TestRecordRecommendations(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsServed.WithLabelValues("true"))
	RecordRecommendations(5, true)
	after := testutil.ToFloat64(RecommendationsServed.WithLabelValues("true"))
	if after != before+5 {
		t.Errorf("recommendations_served_total{cold_start=true} = %f, want %f", after, before+5)
	}
}

func TestRecordInteraction(t *testing.T) {
	likeBefore := testutil.ToFloat64(InteractionsRecorded.WithLabelValues("like"))
	dedupBefore := testutil.ToFloat64(InteractionsDeduplicated)

	RecordInteraction("like", true)
	RecordInteraction("view", false)

	if got := testutil.ToFloat64(InteractionsRecorded.WithLabelValues("like")); got != likeBefore+1 {
		t.Errorf("interactions_recorded_total{type=like} = %f, want %f", got, likeBefore+1)
	}
	if got := testutil.ToFloat64(InteractionsDeduplicated); got != dedupBefore+1 {
		t.Errorf("interactions_deduplicated_total = %f, want %f", got, dedupBefore+1)
	}
}
