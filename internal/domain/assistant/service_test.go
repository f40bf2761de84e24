package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medscience/medscience/internal/platform/completion"
	"github.com/medscience/medscience/internal/platform/telemetry"
)

type fakeCompleter struct {
	mu    sync.Mutex
	reply string
	err   error
	calls []completion.Request
}

func (f *fakeCompleter) Complete(_ context.Context, req completion.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.reply, f.err
}

func (f *fakeCompleter) last(t *testing.T) completion.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls, "completer was never called")
	return f.calls[len(f.calls)-1]
}

type observation struct {
	operation, outcome string
}

type recordingObserver struct {
	mu  sync.Mutex
	got []observation
}

func (o *recordingObserver) ObserveAIQuery(operation, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.got = append(o.got, observation{operation, outcome})
}

func newTestService(f *fakeCompleter) (*Service, *recordingObserver) {
	obs := &recordingObserver{}
	svc := NewService(f, Config{Model: "test-model"}, obs, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC) }
	return svc, obs
}

func TestChat_PrependsPersona(t *testing.T) {
	f := &fakeCompleter{reply: "  Drink water.  "}
	svc, obs := newTestService(f)

	got := svc.Chat(context.Background(), []completion.Message{{Role: completion.RoleUser, Content: "I feel dizzy"}})
	assert.Equal(t, "Drink water.", got)

	req := f.last(t)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, completion.RoleSystem, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "MedScience AI")
	assert.Equal(t, "I feel dizzy", req.Messages[1].Content)
	assert.Equal(t, "test-model", req.Model)
	assert.Equal(t, 0.5, req.Temperature)
	assert.Equal(t, 1500, req.MaxTokens)
	assert.False(t, req.JSON)
	assert.Equal(t, []observation{{OpChat, telemetry.OutcomeSuccess}}, obs.got)
}

func TestChat_Fallbacks(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		want  string
	}{
		{"transport error", "", errors.New("connection refused"), chatErrorFallback},
		{"timeout", "", context.DeadlineExceeded, chatErrorFallback},
		{"circuit open", "", completion.ErrCircuitOpen, chatErrorFallback},
		{"empty response", "", completion.ErrEmptyResponse, chatEmptyFallback},
		{"blank content", "   \n", nil, chatEmptyFallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, obs := newTestService(&fakeCompleter{reply: tt.reply, err: tt.err})
			assert.Equal(t, tt.want, svc.Chat(context.Background(), []completion.Message{{Role: "user", Content: "hi"}}))
			assert.Equal(t, []observation{{OpChat, telemetry.OutcomeFallback}}, obs.got)
		})
	}
}

func TestAnalyzeSymptoms_Success(t *testing.T) {
	f := &fakeCompleter{reply: `{
		"possibleConditions": [
			{"name": "Migraine", "probability": "high", "description": "d", "whenToSeekCare": "w", "relatedBodySystem": "Nervous System"},
			{"name": "Tension headache", "probability": " Medium ", "description": "d", "whenToSeekCare": "w", "relatedBodySystem": "Nervous System"}
		],
		"disclaimer": "Not a diagnosis.",
		"recommendations": ["Rest"]
	}`}
	svc, _ := newTestService(f)

	got := svc.AnalyzeSymptoms(context.Background(), []string{"headache", "nausea"}, nil)
	require.Len(t, got.PossibleConditions, 2)
	assert.Equal(t, "Migraine", got.PossibleConditions[0].Name)
	assert.Equal(t, ProbabilityHigh, got.PossibleConditions[0].Probability)
	assert.Equal(t, ProbabilityMedium, got.PossibleConditions[1].Probability)
	assert.Equal(t, "Not a diagnosis.", got.Disclaimer)
	assert.Equal(t, []string{"Rest"}, got.Recommendations)

	req := f.last(t)
	assert.True(t, req.JSON)
	assert.Equal(t, 0.2, req.Temperature)
	assert.Equal(t, 2000, req.MaxTokens)
	assert.Contains(t, req.Messages[1].Content, "headache, nausea")
	assert.Contains(t, req.Messages[1].Content, "No additional patient information is provided.")
}

func TestAnalyzeSymptoms_PatientSentence(t *testing.T) {
	f := &fakeCompleter{err: errors.New("down")}
	svc, _ := newTestService(f)
	age := 42

	svc.AnalyzeSymptoms(context.Background(), []string{"cough"}, &UserInfo{Age: &age, Gender: "female", MedicalHistory: []string{"asthma", "hypertension"}})
	assert.Contains(t, f.last(t).Messages[1].Content,
		"The patient is a 42 year old female with the following medical history: asthma, hypertension.")

	svc.AnalyzeSymptoms(context.Background(), []string{"cough"}, &UserInfo{})
	assert.Contains(t, f.last(t).Messages[1].Content,
		"The patient is a unknown age year old person with the following medical history: none provided.")
}

func TestAnalyzeSymptoms_FillsMissingDefaults(t *testing.T) {
	svc, _ := newTestService(&fakeCompleter{reply: `{"possibleConditions": []}`})

	got := svc.AnalyzeSymptoms(context.Background(), []string{"fatigue"}, nil)
	assert.NotNil(t, got.PossibleConditions)
	assert.Empty(t, got.PossibleConditions)
	assert.Equal(t, defaultDisclaimer, got.Disclaimer)
	assert.Equal(t, defaultRecommendations, got.Recommendations)
}

func TestAnalyzeSymptoms_Fallback(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{"provider error", "", errors.New("503")},
		{"not json", "You might have a cold.", nil},
		{"missing conditions", `{"disclaimer": "x"}`, nil},
		{"unnamed condition", `{"possibleConditions": [{"probability": "High"}]}`, nil},
		{"unknown tier", `{"possibleConditions": [{"name": "Flu", "probability": "Likely"}]}`, nil},
		{"wrong type", `{"possibleConditions": "Flu"}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, obs := newTestService(&fakeCompleter{reply: tt.reply, err: tt.err})

			got := svc.AnalyzeSymptoms(context.Background(), []string{"fever"}, nil)
			assert.NotNil(t, got.PossibleConditions)
			assert.Empty(t, got.PossibleConditions)
			assert.Equal(t, failedDisclaimer, got.Disclaimer)
			assert.Equal(t, failedRecommendations, got.Recommendations)
			assert.Equal(t, []observation{{OpSymptomAnalysis, telemetry.OutcomeFallback}}, obs.got)
		})
	}
}

func TestAnalyzeSymptoms_FallbackIsNotShared(t *testing.T) {
	svc, _ := newTestService(&fakeCompleter{err: errors.New("down")})

	first := svc.AnalyzeSymptoms(context.Background(), []string{"fever"}, nil)
	first.Recommendations[0] = "mutated"

	second := svc.AnalyzeSymptoms(context.Background(), []string{"fever"}, nil)
	assert.Equal(t, failedRecommendations[0], second.Recommendations[0])
}

func TestDiseaseInformation(t *testing.T) {
	f := &fakeCompleter{reply: "```json\n{\"overview\": \"Chronic airway disease\", \"treatments\": \"Inhalers\"}\n```"}
	svc, _ := newTestService(f)

	got := svc.DiseaseInformation(context.Background(), "Asthma")
	assert.Equal(t, "Chronic airway disease", got.Overview)
	assert.Equal(t, "Inhalers", got.Treatments)
	assert.NotNil(t, got.References)

	req := f.last(t)
	assert.Equal(t, "Please provide detailed information about Asthma.", req.Messages[1].Content)
	assert.Equal(t, 2500, req.MaxTokens)
}

func TestDiseaseInformation_Fallback(t *testing.T) {
	for _, reply := range []string{"{not json", `{"overview": "  "}`, `[]`} {
		svc, _ := newTestService(&fakeCompleter{reply: reply})

		got := svc.DiseaseInformation(context.Background(), "X")
		assert.Equal(t, "Information temporarily unavailable", got.Overview, reply)
		assert.Empty(t, got.Causes)
		assert.Empty(t, got.ResearchUpdates)
		assert.Equal(t, []string{unavailableRef}, got.References)
	}
}

func TestMedicalNews(t *testing.T) {
	item := `{"title": "New vaccine", "summary": "s", "content": "c", "source": "NEJM", "publishedDate": "2025-05-01", "category": "Research"}`
	replies := map[string]string{
		"bare array":    "[" + item + "]",
		"news wrapper":  `{"news": [` + item + `]}`,
		"items wrapper": `{"items": [` + item + `]}`,
	}
	for name, reply := range replies {
		t.Run(name, func(t *testing.T) {
			f := &fakeCompleter{reply: reply}
			svc, _ := newTestService(f)

			got := svc.MedicalNews(context.Background(), "Research")
			require.Len(t, got, 1)
			assert.Equal(t, "New vaccine", got[0].Title)
			assert.Equal(t, "2025-05-01", got[0].PublishedDate)

			req := f.last(t)
			assert.Equal(t, "Please provide the latest medical news related to Research. Today is May 10, 2025.", req.Messages[1].Content)
			assert.Equal(t, 0.3, req.Temperature)
		})
	}
}

func TestMedicalNews_Fallback(t *testing.T) {
	for _, reply := range []string{"", "nope", `{"data": []}`, `[{"summary": "untitled"}]`} {
		svc, _ := newTestService(&fakeCompleter{reply: reply})

		got := svc.MedicalNews(context.Background(), "")
		assert.NotNil(t, got, reply)
		assert.Empty(t, got, reply)
	}
}

func TestHealthcareProviders(t *testing.T) {
	f := &fakeCompleter{reply: `{"hospitals": [{"name": "AIIMS", "location": "New Delhi"}]}`}
	svc, _ := newTestService(f)

	got := svc.HealthcareProviders(context.Background(), "cardiology", "", "")
	require.Len(t, got.Hospitals, 1)
	assert.Equal(t, "AIIMS", got.Hospitals[0].Name)
	assert.NotNil(t, got.Doctors)
	assert.Equal(t, "Please provide information about cardiology healthcare providers in India.", f.last(t).Messages[1].Content)

	svc.HealthcareProviders(context.Background(), "cancer", "Mumbai", "oncology")
	assert.Equal(t, "Please provide information about cancer healthcare providers in Mumbai specializing in oncology.", f.last(t).Messages[1].Content)
}

func TestHealthcareProviders_ConfiguredRegion(t *testing.T) {
	f := &fakeCompleter{err: errors.New("down")}
	svc := NewService(f, Config{ProviderRegion: "Kenya"}, nil, zerolog.Nop())

	got := svc.HealthcareProviders(context.Background(), "pediatrics", " ", "")
	assert.Empty(t, got.Hospitals)
	assert.NotNil(t, got.Hospitals)
	assert.NotNil(t, got.Doctors)
	assert.Contains(t, f.last(t).Messages[1].Content, "in Kenya.")
}
