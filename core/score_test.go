package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/huangsam/nestscore/internal/iostore"
	"github.com/huangsam/nestscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestScorePropertiesKeepsOrder(t *testing.T) {
	cfg := testConfig(t)
	cfg.Workers = 4
	props := make([]schema.Property, 50)
	for i := range props {
		props[i] = schema.Property{ID: int64(i + 1), Name: fmt.Sprintf("P%d", i+1)}
		if i%2 == 0 {
			props[i].Answers = strongAnswers
		}
	}

	scored := scoreProperties(context.Background(), cfg, nil, props, cfg.Catalog.DefaultWeights())
	require.Len(t, scored, len(props))
	for i, sp := range scored {
		assert.Equal(t, props[i].ID, sp.Property.ID)
		assert.Equal(t, props[i].ID, sp.Score.PropertyID)
		if i%2 == 0 {
			assert.Equal(t, 100, sp.Score.OverallScore)
		} else {
			assert.Equal(t, 0, sp.Score.OverallScore)
		}
	}
}

func TestRunScoringRecordsHistory(t *testing.T) {
	cfg := testConfig(t)
	store := iostore.NewMemoryStore()
	history := &iostore.MockHistoryStore{}
	mgr := iostore.NewStoreManager(store, history)

	props := []schema.Property{
		{ID: 1, Name: "Strong", Answers: strongAnswers},
		{ID: 2, Name: "Weak", Answers: weakAnswers},
	}

	history.On("BeginRun", mock.Anything, mock.MatchedBy(func(params map[string]any) bool {
		return params["command"] == "list" && params["workers"] == 2
	})).Return(int64(7), nil)
	history.On("RecordPropertyScore", mock.MatchedBy(func(r schema.PropertyScoreRecord) bool {
		return r.RunID == 7 && r.PropertyID == 1 && r.OverallScore == 100 && r.Label == "Excellent" &&
			r.CategoryScores["location"] == 100
	})).Return(nil).Once()
	history.On("RecordPropertyScore", mock.MatchedBy(func(r schema.PropertyScoreRecord) bool {
		return r.RunID == 7 && r.PropertyID == 2 && r.OverallScore == 36 && r.Label == "Poor"
	})).Return(errors.New("disk full")).Once()
	history.On("EndRun", int64(7), mock.Anything, 2).Return(nil)

	scored := runScoring(context.Background(), cfg, mgr, "list", props, cfg.Catalog.DefaultWeights())

	require.Len(t, scored, 2)
	assert.Equal(t, 100, scored[0].Score.OverallScore)
	history.AssertExpectations(t)
}

func TestRunScoringWithoutTracking(t *testing.T) {
	cfg := testConfig(t)
	props := []schema.Property{{ID: 1, Name: "Strong", Answers: strongAnswers}}

	t.Run("begin fails", func(t *testing.T) {
		history := &iostore.MockHistoryStore{}
		history.On("BeginRun", mock.Anything, mock.Anything).Return(int64(0), errors.New("locked"))
		mgr := iostore.NewStoreManager(iostore.NewMemoryStore(), history)

		scored := runScoring(context.Background(), cfg, mgr, "export", props, nil)
		require.Len(t, scored, 1)
		assert.Equal(t, 100, scored[0].Score.OverallScore)
		history.AssertNotCalled(t, "RecordPropertyScore", mock.Anything)
		history.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("disabled store", func(t *testing.T) {
		history := &iostore.MockHistoryStore{}
		history.On("BeginRun", mock.Anything, mock.Anything).Return(int64(0), nil)
		mgr := iostore.NewStoreManager(iostore.NewMemoryStore(), history)

		scored := runScoring(context.Background(), cfg, mgr, "compare", props, nil)
		require.Len(t, scored, 1)
		history.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no history store", func(t *testing.T) {
		_, mgr := newTestManager()
		scored := runScoring(context.Background(), cfg, mgr, "list", props, nil)
		require.Len(t, scored, 1)
	})
}
