package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errMissingField = errors.New("reply is missing a required field")

// stripFences removes a markdown code fence some models wrap JSON in even
// when a JSON response format was requested.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func normalizeProbability(p string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "high":
		return ProbabilityHigh, true
	case "medium":
		return ProbabilityMedium, true
	case "low":
		return ProbabilityLow, true
	}
	return "", false
}

func parseAnalysis(raw string) (AnalysisResult, error) {
	var reply struct {
		PossibleConditions *[]Condition `json:"possibleConditions"`
		Disclaimer         string       `json:"disclaimer"`
		Recommendations    []string     `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &reply); err != nil {
		return AnalysisResult{}, fmt.Errorf("decode analysis: %w", err)
	}
	if reply.PossibleConditions == nil {
		return AnalysisResult{}, fmt.Errorf("possibleConditions: %w", errMissingField)
	}

	conditions := make([]Condition, 0, len(*reply.PossibleConditions))
	for i, c := range *reply.PossibleConditions {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			return AnalysisResult{}, fmt.Errorf("possibleConditions[%d].name: %w", i, errMissingField)
		}
		p, ok := normalizeProbability(c.Probability)
		if !ok {
			return AnalysisResult{}, fmt.Errorf("possibleConditions[%d].probability: unknown tier %q", i, c.Probability)
		}
		c.Probability = p
		conditions = append(conditions, c)
	}

	result := AnalysisResult{
		PossibleConditions: conditions,
		Disclaimer:         strings.TrimSpace(reply.Disclaimer),
		Recommendations:    reply.Recommendations,
	}
	if result.Disclaimer == "" {
		result.Disclaimer = defaultDisclaimer
	}
	if len(result.Recommendations) == 0 {
		result.Recommendations = append([]string(nil), defaultRecommendations...)
	}
	return result, nil
}

func parseDiseaseDetail(raw string) (DiseaseDetail, error) {
	var d DiseaseDetail
	if err := json.Unmarshal([]byte(stripFences(raw)), &d); err != nil {
		return DiseaseDetail{}, fmt.Errorf("decode disease detail: %w", err)
	}
	if strings.TrimSpace(d.Overview) == "" {
		return DiseaseDetail{}, fmt.Errorf("overview: %w", errMissingField)
	}
	if d.References == nil {
		d.References = []string{}
	}
	return d, nil
}

// parseNews accepts a bare array or an object wrapping the array under
// one of the keys providers commonly pick.
func parseNews(raw string) ([]NewsItem, error) {
	body := []byte(stripFences(raw))

	var items []NewsItem
	if err := json.Unmarshal(body, &items); err != nil {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("decode news: %w", err)
		}
		var list json.RawMessage
		for _, key := range []string{"news", "items", "articles"} {
			if v, ok := wrapped[key]; ok {
				list = v
				break
			}
		}
		if list == nil {
			return nil, fmt.Errorf("news: %w", errMissingField)
		}
		if err := json.Unmarshal(list, &items); err != nil {
			return nil, fmt.Errorf("decode news items: %w", err)
		}
	}

	for i := range items {
		if strings.TrimSpace(items[i].Title) == "" {
			return nil, fmt.Errorf("news[%d].title: %w", i, errMissingField)
		}
	}
	if items == nil {
		items = []NewsItem{}
	}
	return items, nil
}

func parseProviders(raw string) (ProviderDirectory, error) {
	var dir ProviderDirectory
	if err := json.Unmarshal([]byte(stripFences(raw)), &dir); err != nil {
		return ProviderDirectory{}, fmt.Errorf("decode providers: %w", err)
	}
	for i, h := range dir.Hospitals {
		if strings.TrimSpace(h.Name) == "" {
			return ProviderDirectory{}, fmt.Errorf("hospitals[%d].name: %w", i, errMissingField)
		}
	}
	for i, d := range dir.Doctors {
		if strings.TrimSpace(d.Name) == "" {
			return ProviderDirectory{}, fmt.Errorf("doctors[%d].name: %w", i, errMissingField)
		}
	}
	if dir.Hospitals == nil {
		dir.Hospitals = []Hospital{}
	}
	if dir.Doctors == nil {
		dir.Doctors = []Doctor{}
	}
	return dir, nil
}
