// Package sandbox loads the reference data set a fresh deployment starts
// with: body systems, diseases, symptoms, news articles and resources.
package sandbox

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/medscience/medscience/internal/domain/catalog"
	"github.com/medscience/medscience/internal/domain/news"
	"github.com/medscience/medscience/internal/domain/resource"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures is the YAML document the seeder reads. Diseases and symptoms name
// their body system instead of carrying an id, so the file stays valid no
// matter which ids the store hands out.
type Fixtures struct {
	BodySystems []BodySystemFixture `yaml:"bodySystems"`
	Diseases    []DiseaseFixture    `yaml:"diseases"`
	Symptoms    []SymptomFixture    `yaml:"symptoms"`
	Articles    []ArticleFixture    `yaml:"articles"`
	Resources   []ResourceFixture   `yaml:"resources"`
}

type BodySystemFixture struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	ImageURL    *string `yaml:"imageUrl"`
}

type DiseaseFixture struct {
	Name        string  `yaml:"name"`
	BodySystem  string  `yaml:"bodySystem"`
	Description string  `yaml:"description"`
	Causes      *string `yaml:"causes"`
	Symptoms    *string `yaml:"symptoms"`
	Treatments  *string `yaml:"treatments"`
	Prevention  *string `yaml:"prevention"`
	ImageURL    *string `yaml:"imageUrl"`
}

type SymptomFixture struct {
	Name        string  `yaml:"name"`
	BodySystem  string  `yaml:"bodySystem"`
	Description *string `yaml:"description"`
}

type ArticleFixture struct {
	Title       string  `yaml:"title"`
	Summary     *string `yaml:"summary"`
	Category    *string `yaml:"category"`
	Source      *string `yaml:"source"`
	ImageURL    *string `yaml:"imageUrl"`
	PublishedAt string  `yaml:"publishedAt"`
	Content     string  `yaml:"content"`
}

type ResourceFixture struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	URL         *string `yaml:"url"`
	Type        string  `yaml:"type"`
	Category    *string `yaml:"category"`
	Location    *string `yaml:"location"`
}

// DefaultFixtures parses the embedded fixture set.
func DefaultFixtures() (*Fixtures, error) {
	return ParseFixtures(defaultFixtures)
}

// ParseFixtures decodes a fixture document. Unknown keys are rejected so a
// typo in the file fails loudly instead of seeding empty fields.
func ParseFixtures(data []byte) (*Fixtures, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var fx Fixtures
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &fx, nil
}

// SeedResult summarizes a seed run.
type SeedResult struct {
	BodySystems int           `json:"bodySystems"`
	Diseases    int           `json:"diseases"`
	Symptoms    int           `json:"symptoms"`
	Articles    int           `json:"articles"`
	Resources   int           `json:"resources"`
	Skipped     bool          `json:"skipped"`
	Duration    time.Duration `json:"duration"`
}

// Total returns the number of records written.
func (r *SeedResult) Total() int {
	return r.BodySystems + r.Diseases + r.Symptoms + r.Articles + r.Resources
}

// Transactor runs fn as one unit of work. The postgres store passes
// db.WithTx; the memory store has nothing to roll back and runs fn directly.
type Transactor func(ctx context.Context, fn func(ctx context.Context) error) error

func direct(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type Seeder struct {
	fixtures  *Fixtures
	catalog   *catalog.Service
	articles  *news.Service
	resources *resource.Service
	inTx      Transactor
	logger    zerolog.Logger
}

func NewSeeder(fx *Fixtures, catalogSvc *catalog.Service, newsSvc *news.Service, resourceSvc *resource.Service, logger zerolog.Logger) *Seeder {
	return &Seeder{
		fixtures:  fx,
		catalog:   catalogSvc,
		articles:  newsSvc,
		resources: resourceSvc,
		inTx:      direct,
		logger:    logger.With().Str("component", "seeder").Logger(),
	}
}

// WithTransactor makes Seed write everything inside tx.
func (s *Seeder) WithTransactor(tx Transactor) *Seeder {
	if tx != nil {
		s.inTx = tx
	}
	return s
}

// Seed writes the fixture set unless the store already holds body systems.
func (s *Seeder) Seed(ctx context.Context) (*SeedResult, error) {
	start := time.Now()

	n, err := s.catalog.CountBodySystems(ctx)
	if err != nil {
		return nil, fmt.Errorf("count body systems: %w", err)
	}
	if n > 0 {
		s.logger.Info().Int("body_systems", n).Msg("store already seeded, skipping")
		return &SeedResult{Skipped: true, Duration: time.Since(start)}, nil
	}

	result := &SeedResult{}
	err = s.inTx(ctx, func(ctx context.Context) error {
		*result = SeedResult{}
		return s.write(ctx, result)
	})
	if err != nil {
		return nil, err
	}
	result.Duration = time.Since(start)

	s.logger.Info().
		Int("body_systems", result.BodySystems).
		Int("diseases", result.Diseases).
		Int("symptoms", result.Symptoms).
		Int("articles", result.Articles).
		Int("resources", result.Resources).
		Dur("duration", result.Duration).
		Msg("fixture data seeded")
	return result, nil
}

func (s *Seeder) write(ctx context.Context, result *SeedResult) error {
	systemIDs := make(map[string]int64, len(s.fixtures.BodySystems))
	for _, f := range s.fixtures.BodySystems {
		b := &catalog.BodySystem{Name: f.Name, Description: f.Description, ImageURL: f.ImageURL}
		if err := s.catalog.CreateBodySystem(ctx, b); err != nil {
			return fmt.Errorf("seed body system %q: %w", f.Name, err)
		}
		systemIDs[f.Name] = b.ID
		result.BodySystems++
	}

	for _, f := range s.fixtures.Diseases {
		id, ok := systemIDs[f.BodySystem]
		if !ok {
			return fmt.Errorf("seed disease %q: unknown body system %q", f.Name, f.BodySystem)
		}
		d := &catalog.Disease{
			Name:         f.Name,
			BodySystemID: id,
			Description:  f.Description,
			Causes:       f.Causes,
			Symptoms:     f.Symptoms,
			Treatments:   f.Treatments,
			Prevention:   f.Prevention,
			ImageURL:     f.ImageURL,
		}
		if err := s.catalog.CreateDisease(ctx, d); err != nil {
			return fmt.Errorf("seed disease %q: %w", f.Name, err)
		}
		result.Diseases++
	}

	for _, f := range s.fixtures.Symptoms {
		sym := &catalog.Symptom{Name: f.Name, Description: f.Description}
		if f.BodySystem != "" {
			id, ok := systemIDs[f.BodySystem]
			if !ok {
				return fmt.Errorf("seed symptom %q: unknown body system %q", f.Name, f.BodySystem)
			}
			sym.BodySystemID = &id
		}
		if err := s.catalog.CreateSymptom(ctx, sym); err != nil {
			return fmt.Errorf("seed symptom %q: %w", f.Name, err)
		}
		result.Symptoms++
	}

	for _, f := range s.fixtures.Articles {
		a := &news.Article{
			Title:    f.Title,
			Content:  f.Content,
			Summary:  f.Summary,
			ImageURL: f.ImageURL,
			Category: f.Category,
			Source:   f.Source,
		}
		if f.PublishedAt != "" {
			t, err := time.Parse(time.RFC3339, f.PublishedAt)
			if err != nil {
				return fmt.Errorf("seed article %q: publishedAt: %w", f.Title, err)
			}
			a.PublishedAt = t
		}
		if err := s.articles.CreateArticle(ctx, a); err != nil {
			return fmt.Errorf("seed article %q: %w", f.Title, err)
		}
		result.Articles++
	}

	for _, f := range s.fixtures.Resources {
		r := &resource.Resource{
			Title:       f.Title,
			Description: f.Description,
			URL:         f.URL,
			Type:        f.Type,
			Category:    f.Category,
			Location:    f.Location,
		}
		if err := s.resources.CreateResource(ctx, r); err != nil {
			return fmt.Errorf("seed resource %q: %w", f.Title, err)
		}
		result.Resources++
	}
	return nil
}
