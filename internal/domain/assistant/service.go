// Package assistant builds prompts for the completion provider and turns its
// replies into typed results. Every operation degrades to a fixed,
// well-formed value when the provider fails or answers with something that
// does not decode.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medscience/medscience/internal/platform/completion"
	"github.com/medscience/medscience/internal/platform/telemetry"
)

// Operation names used in logs and metrics.
const (
	OpChat               = "chat"
	OpSymptomAnalysis    = "symptom_analysis"
	OpDiseaseInformation = "disease_information"
	OpNewsDigest         = "news_digest"
	OpProviderDirectory  = "provider_directory"
)

const (
	chatEmptyFallback = "I'm sorry, I couldn't generate a response. Please try again."
	chatErrorFallback = "I apologize, but I'm having trouble connecting to my knowledge base. Please try again later."

	defaultDisclaimer = "This information is not a diagnosis. Always consult a qualified healthcare professional for medical advice, diagnosis, or treatment."
	failedDisclaimer  = "Sorry, there was an error analyzing your symptoms. Please try again later or consult a healthcare professional."

	unavailableOverview = "Information temporarily unavailable"
	unavailableRef      = "Unable to load references at this time"

	defaultRegion = "India"
)

var (
	defaultRecommendations = []string{
		"Schedule an appointment with your doctor to discuss these symptoms",
		"Keep a symptom journal to track changes",
		"Follow general health guidelines including proper hydration and rest",
	}
	failedRecommendations = []string{
		"Please consult with a healthcare professional about your symptoms",
		"If symptoms are severe, seek immediate medical attention",
	}
)

type profile struct {
	temperature float64
	maxTokens   int
}

var profiles = map[string]profile{
	OpChat:               {temperature: 0.5, maxTokens: 1500},
	OpSymptomAnalysis:    {temperature: 0.2, maxTokens: 2000},
	OpDiseaseInformation: {temperature: 0.2, maxTokens: 2500},
	OpNewsDigest:         {temperature: 0.3, maxTokens: 3000},
	OpProviderDirectory:  {temperature: 0.2, maxTokens: 2000},
}

// Observer records the outcome of every provider query.
type Observer interface {
	ObserveAIQuery(operation, outcome string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveAIQuery(string, string, time.Duration) {}

// Config holds the provider-facing knobs of the service.
type Config struct {
	Model string
	// ProviderRegion is used by the provider directory when the caller
	// names no location.
	ProviderRegion string
}

type Service struct {
	completer completion.Completer
	observer  Observer
	logger    zerolog.Logger
	model     string
	region    string
	now       func() time.Time
}

func NewService(completer completion.Completer, cfg Config, observer Observer, logger zerolog.Logger) *Service {
	if observer == nil {
		observer = nopObserver{}
	}
	region := strings.TrimSpace(cfg.ProviderRegion)
	if region == "" {
		region = defaultRegion
	}
	return &Service{
		completer: completer,
		observer:  observer,
		logger:    logger.With().Str("component", "assistant").Logger(),
		model:     cfg.Model,
		region:    region,
		now:       time.Now,
	}
}

// query runs one provider call under the operation's profile and hands the
// reply to decode. The returned error is already logged and observed.
func (s *Service) query(ctx context.Context, op string, messages []completion.Message, asJSON bool, decode func(string) error) error {
	p := profiles[op]
	start := time.Now()

	raw, err := s.completer.Complete(ctx, completion.Request{
		Model:       s.model,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
		Messages:    messages,
		JSON:        asJSON,
	})
	if err == nil {
		err = decode(raw)
	}

	outcome := telemetry.OutcomeSuccess
	if err != nil {
		outcome = telemetry.OutcomeFallback
		s.logger.Warn().Err(err).Str("operation", op).Msg("ai query fell back")
	}
	s.observer.ObserveAIQuery(op, outcome, time.Since(start))
	return err
}

func system(content string) completion.Message {
	return completion.Message{Role: completion.RoleSystem, Content: content}
}

func user(content string) completion.Message {
	return completion.Message{Role: completion.RoleUser, Content: content}
}

// Chat answers a conversation in free text. It never fails: provider errors
// become an apology the chat surface can show as-is.
func (s *Service) Chat(ctx context.Context, conversation []completion.Message) string {
	messages := make([]completion.Message, 0, len(conversation)+1)
	messages = append(messages, system(chatPersona))
	messages = append(messages, conversation...)

	var reply string
	err := s.query(ctx, OpChat, messages, false, func(raw string) error {
		reply = strings.TrimSpace(raw)
		if reply == "" {
			return completion.ErrEmptyResponse
		}
		return nil
	})
	switch {
	case err == nil:
		return reply
	case errors.Is(err, completion.ErrEmptyResponse):
		return chatEmptyFallback
	default:
		return chatErrorFallback
	}
}

// AnalyzeSymptoms asks for possible conditions matching symptoms.
func (s *Service) AnalyzeSymptoms(ctx context.Context, symptoms []string, info *UserInfo) AnalysisResult {
	messages := []completion.Message{
		system(symptomAnalysisInstructions),
		user(symptomAnalysisPrompt(symptoms, info)),
	}

	var result AnalysisResult
	err := s.query(ctx, OpSymptomAnalysis, messages, true, func(raw string) (err error) {
		result, err = parseAnalysis(raw)
		return err
	})
	if err != nil {
		return AnalysisResult{
			PossibleConditions: []Condition{},
			Disclaimer:         failedDisclaimer,
			Recommendations:    append([]string(nil), failedRecommendations...),
		}
	}
	return result
}

func (s *Service) DiseaseInformation(ctx context.Context, name string) DiseaseDetail {
	messages := []completion.Message{
		system(diseaseInformationInstructions),
		user(diseaseInformationPrompt(name)),
	}

	var detail DiseaseDetail
	err := s.query(ctx, OpDiseaseInformation, messages, true, func(raw string) (err error) {
		detail, err = parseDiseaseDetail(raw)
		return err
	})
	if err != nil {
		return DiseaseDetail{
			Overview:   unavailableOverview,
			References: []string{unavailableRef},
		}
	}
	return detail
}

// MedicalNews returns a digest of recent news, optionally narrowed to one
// category. An empty slice means the provider had nothing usable.
func (s *Service) MedicalNews(ctx context.Context, category string) []NewsItem {
	today := s.now().Format("January 2, 2006")
	messages := []completion.Message{
		system(newsDigestInstructions),
		user(newsDigestPrompt(strings.TrimSpace(category), today)),
	}

	var items []NewsItem
	err := s.query(ctx, OpNewsDigest, messages, true, func(raw string) (err error) {
		items, err = parseNews(raw)
		return err
	})
	if err != nil {
		return []NewsItem{}
	}
	return items
}

// HealthcareProviders looks up hospitals and doctors. location falls back to
// the configured region.
func (s *Service) HealthcareProviders(ctx context.Context, query, location, specialty string) ProviderDirectory {
	location = strings.TrimSpace(location)
	if location == "" {
		location = s.region
	}
	messages := []completion.Message{
		system(providerDirectoryInstructions),
		user(providerDirectoryPrompt(query, location, strings.TrimSpace(specialty))),
	}

	var dir ProviderDirectory
	err := s.query(ctx, OpProviderDirectory, messages, true, func(raw string) (err error) {
		dir, err = parseProviders(raw)
		return err
	})
	if err != nil {
		return ProviderDirectory{Hospitals: []Hospital{}, Doctors: []Doctor{}}
	}
	return dir
}
