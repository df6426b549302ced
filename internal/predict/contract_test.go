package predict

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOracle implements the documented /predict contract with a simple
// deterministic formula: wait grows with queue size and shrinks for urgent
// symptoms, priority stays inside [1, 10]. The real model lives in a
// separate service; these tests pin the contract the admission flow relies
// on, not a particular model.
func stubOracle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symptoms  []string `json:"symptoms"`
		QueueSize int      `json:"queue_size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	urgent := 0
	for _, tag := range req.Symptoms {
		if tag == "chest_pain" || tag == "shortness_of_breath" {
			urgent++
		}
	}

	wait := float64(req.QueueSize) * 7.5
	if urgent > 0 {
		wait *= 0.5
	}
	priority := 1.0 + 3.0*float64(urgent)
	if priority > 10.0 {
		priority = 10.0
	}

	_ = json.NewEncoder(w).Encode(map[string]float64{
		"predicted_wait_minutes": wait,
		"priority_score":         priority,
	})
}

func TestOracleContractBounds(t *testing.T) {
	client, _ := newTestClient(t, stubOracle)

	estimate, err := client.Estimate(context.Background(), []string{"fever"}, 5)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, estimate.PredictedWaitMinutes, 0.0)
	assert.GreaterOrEqual(t, estimate.PriorityScore, 1.0)
	assert.LessOrEqual(t, estimate.PriorityScore, 10.0)
}

func TestOracleContractLongerQueueMeansLongerWait(t *testing.T) {
	client, _ := newTestClient(t, stubOracle)

	small, err := client.Estimate(context.Background(), []string{"fever"}, 2)
	require.NoError(t, err)
	large, err := client.Estimate(context.Background(), []string{"fever"}, 15)
	require.NoError(t, err)

	assert.Greater(t, large.PredictedWaitMinutes, small.PredictedWaitMinutes)
}

func TestOracleContractUrgentSymptomsReduceWait(t *testing.T) {
	client, _ := newTestClient(t, stubOracle)

	mild, err := client.Estimate(context.Background(), []string{"headache"}, 10)
	require.NoError(t, err)
	urgent, err := client.Estimate(context.Background(), []string{"chest_pain", "shortness_of_breath"}, 10)
	require.NoError(t, err)

	assert.Less(t, urgent.PredictedWaitMinutes, mild.PredictedWaitMinutes)
}
