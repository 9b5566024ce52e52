package core

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/huangsam/nestscore/core/catalog"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/internal/iostore"
	"github.com/huangsam/nestscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]schema.Category{
		{ID: "location", Name: "Location", DefaultWeight: 20, Questions: []schema.Question{
			{ID: "commute", Text: "Short commute", Type: schema.BooleanQuestion},
			{ID: "transport", Text: "Public transport", Type: schema.ChoiceQuestion, Options: []schema.QuestionOption{
				{Value: "excellent", Label: "Excellent", Score: 100},
				{Value: "fair", Label: "Fair", Score: 50},
				{Value: "poor", Label: "Poor", Score: 0},
			}},
		}},
		{ID: "safety", Name: "Safety", DefaultWeight: 15, Questions: []schema.Question{
			{ID: "crime", Text: "Crime level", Type: schema.ChoiceQuestion, Critical: true, Options: []schema.QuestionOption{
				{Value: "low", Label: "Low", Score: 100},
				{Value: "medium", Label: "Medium", Score: 50},
				{Value: "high", Label: "High", Score: 0},
			}},
		}},
		{ID: "energy", Name: "Energy", DefaultWeight: 5, Questions: []schema.Question{
			{ID: "epc_kwh", Text: "Energy use", Type: schema.NumericQuestion, Min: ptr(0.0), Max: ptr(400.0), Unit: "kWh"},
		}},
		{ID: "legal", Name: "Legal", DefaultWeight: 0, Questions: []schema.Question{
			{ID: "tenure", Text: "Freehold", Type: schema.BooleanQuestion},
		}},
	})
	require.NoError(t, err)
	return c
}

func testConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		Catalog:       testCatalog(t),
		Workers:       2,
		ResultLimit:   10,
		SortBy:        schema.SortByScore,
		Output:        schema.TextOut,
		RecordBackend: schema.MemoryBackend,
	}
}

func newTestManager() (*iostore.MemoryStore, *iostore.StoreManagerImpl) {
	store := iostore.NewMemoryStore()
	return store, iostore.NewStoreManager(store, nil)
}

// Answers used across tests. strongAnswers scores 100 overall and
// weakAnswers scores 36 with the default weights.
var (
	strongAnswers = schema.Answers{
		"commute":   schema.BoolAnswer(true),
		"transport": schema.StringAnswer("excellent"),
		"crime":     schema.StringAnswer("low"),
	}
	weakAnswers = schema.Answers{
		"commute":   schema.BoolAnswer(false),
		"transport": schema.StringAnswer("fair"),
		"crime":     schema.StringAnswer("medium"),
	}
)

func mustCreate(t *testing.T, store contract.RecordStore, p schema.Property) int64 {
	t.Helper()
	id, err := store.CreateProperty(p)
	require.NoError(t, err)
	return id
}

// fakeGeocoder resolves postcodes from a fixed table.
type fakeGeocoder struct {
	mu     sync.Mutex
	coords map[string]schema.Coordinates
	err    error
	calls  int
}

func (f *fakeGeocoder) Lookup(_ context.Context, postcode string) (schema.Coordinates, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return schema.Coordinates{}, f.err
	}
	c, ok := f.coords[contract.NormalizePostcode(postcode)]
	if !ok {
		return schema.Coordinates{}, contract.ErrPostcodeNotFound
	}
	return c, nil
}

func (f *fakeGeocoder) Validate(ctx context.Context, postcode string) (bool, error) {
	_, err := f.Lookup(ctx, postcode)
	return err == nil, nil
}

func (f *fakeGeocoder) Autocomplete(_ context.Context, partial string) ([]string, error) {
	var matches []string
	for pc := range f.coords {
		if strings.HasPrefix(pc, contract.NormalizePostcode(partial)) {
			matches = append(matches, pc)
		}
	}
	return matches, nil
}

var _ contract.Geocoder = &fakeGeocoder{}

func TestGetPropertyResults(t *testing.T) {
	cfg := testConfig(t)
	store, mgr := newTestManager()
	weak := mustCreate(t, store, schema.Property{Name: "Weak", Answers: weakAnswers})
	empty := mustCreate(t, store, schema.Property{Name: "Empty"})
	strong := mustCreate(t, store, schema.Property{Name: "Strong", Answers: strongAnswers})

	ranked, total, err := GetPropertyResults(context.Background(), cfg, mgr)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, ranked, 3)

	assert.Equal(t, strong, ranked[0].Property.ID)
	assert.Equal(t, 100, ranked[0].Score.OverallScore)
	assert.Equal(t, weak, ranked[1].Property.ID)
	assert.Equal(t, 36, ranked[1].Score.OverallScore)
	assert.Equal(t, empty, ranked[2].Property.ID)
	assert.Equal(t, 0, ranked[2].Score.OverallScore)
	assert.Equal(t, 0, ranked[2].Completion)
}

func TestGetPropertyResultsLimitAndWeights(t *testing.T) {
	cfg := testConfig(t)
	cfg.ResultLimit = 1
	// Only safety counts, so "medium" crime scores 50.
	cfg.WeightOverrides = schema.Weights{"location": 0}
	store, mgr := newTestManager()
	mustCreate(t, store, schema.Property{Name: "Weak", Answers: weakAnswers})
	mustCreate(t, store, schema.Property{Name: "Other", Answers: schema.Answers{"crime": schema.StringAnswer("high")}})

	ranked, total, err := GetPropertyResults(context.Background(), cfg, mgr)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, ranked, 1)
	assert.Equal(t, "Weak", ranked[0].Property.Name)
	assert.Equal(t, 50, ranked[0].Score.OverallScore)
}

func TestGetPropertyDetail(t *testing.T) {
	cfg := testConfig(t)
	store, mgr := newTestManager()
	id := mustCreate(t, store, schema.Property{
		Name:        "Strong",
		Postcode:    "LS1 1AA",
		Answers:     strongAnswers,
		Coordinates: &schema.Coordinates{Latitude: 53.7960, Longitude: -1.5470},
	})
	require.NoError(t, store.SaveSettings(schema.Settings{
		Weights:         cfg.Catalog.DefaultWeights(),
		WorkPostcode:    "LS2 2BB",
		WorkCoordinates: &schema.Coordinates{Latitude: 53.7960, Longitude: -1.5470},
	}))

	detail, err := GetPropertyDetail(context.Background(), cfg, mgr, nil, id)
	require.NoError(t, err)
	assert.Equal(t, 100, detail.OverallScore)
	assert.Equal(t, "Excellent", detail.OverallLabel)
	assert.Equal(t, 60, detail.Completion)
	require.Len(t, detail.Categories, 4)
	assert.Equal(t, "location", detail.Categories[0].CategoryID)
	assert.Equal(t, 2, detail.Categories[0].AnsweredCount)
	require.NotNil(t, detail.DistanceKm)
	assert.InDelta(t, 0, *detail.DistanceKm, 0.001)
	assert.Equal(t, "0m", detail.DistanceLabel)

	_, err = GetPropertyDetail(context.Background(), cfg, mgr, nil, 999)
	assert.ErrorIs(t, err, contract.ErrPropertyNotFound)
}

func TestGetComparisonResult(t *testing.T) {
	cfg := testConfig(t)
	store, mgr := newTestManager()
	weak := mustCreate(t, store, schema.Property{Name: "Weak", Answers: weakAnswers})
	strong := mustCreate(t, store, schema.Property{Name: "Strong", Answers: strongAnswers})

	result, err := GetComparisonResult(context.Background(), cfg, mgr, []int64{weak, strong})
	require.NoError(t, err)
	require.Len(t, result.Columns, 2)
	assert.Equal(t, "Weak", result.Columns[0].Name)
	require.NotNil(t, result.BestOverall)
	assert.Equal(t, strong, *result.BestOverall)

	_, err = GetComparisonResult(context.Background(), cfg, mgr, []int64{weak, 999})
	assert.ErrorIs(t, err, contract.ErrPropertyNotFound)

	_, err = GetComparisonResult(context.Background(), cfg, mgr, []int64{1, 2, 3, 4, 5})
	assert.ErrorContains(t, err, "cannot compare more than 4")
}

func TestParseIDs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []int64
		wantErr  bool
	}{
		{"separate args", []string{"1", "2"}, []int64{1, 2}, false},
		{"comma list", []string{"3,4 , 5"}, []int64{3, 4, 5}, false},
		{"trailing comma", []string{"7,"}, []int64{7}, false},
		{"not a number", []string{"abc"}, nil, true},
		{"zero", []string{"0"}, nil, true},
		{"negative", []string{"-2"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := ParseIDs(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestBuildCatalogSummary(t *testing.T) {
	c := testCatalog(t)
	rows := BuildCatalogSummary(c, schema.Weights{"location": 35})
	require.Len(t, rows, 5)

	assert.Equal(t, "commute", rows[0].QuestionID)
	assert.Equal(t, 35, rows[0].Weight)
	assert.Equal(t, "yes/no", rows[0].Choices)
	assert.Equal(t, "excellent=100 fair=50 poor=0", rows[1].Choices)

	assert.Equal(t, "crime", rows[2].QuestionID)
	assert.True(t, rows[2].Critical)
	assert.Equal(t, 15, rows[2].Weight)

	assert.Equal(t, "0..400 kWh", rows[3].Choices)
	assert.Equal(t, schema.NumericQuestion, rows[3].Type)
	assert.Equal(t, 0, rows[4].Weight)
}

func TestGetExportResults(t *testing.T) {
	cfg := testConfig(t)
	cfg.ResultLimit = 1
	store, mgr := newTestManager()
	mustCreate(t, store, schema.Property{Name: "First", Answers: weakAnswers})
	mustCreate(t, store, schema.Property{Name: "Second", Answers: strongAnswers})

	scored, err := GetExportResults(context.Background(), cfg, mgr)
	require.NoError(t, err)
	require.Len(t, scored, 2, "export ignores the result limit")
	assert.Equal(t, "Second", scored[0].Property.Name, "newest first")
	assert.Equal(t, 100, scored[0].Score.OverallScore)
}

func TestExecutorsWithSuppressedHeader(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output = schema.JSONOut
	cfg.OutputFile = t.TempDir() + "/out.json"
	store, mgr := newTestManager()
	mustCreate(t, store, schema.Property{Name: "Strong", Answers: strongAnswers})
	ctx := WithSuppressHeader(context.Background())

	executors := map[string]ExecutorFunc{
		"list":     ExecuteList,
		"catalog":  ExecuteCatalog,
		"export":   ExecuteExport,
		"weights":  ExecuteWeightsShow,
		"settings": ExecuteSettingsShow,
	}
	for name, exec := range executors {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, exec(ctx, cfg, mgr))
		})
	}
}
