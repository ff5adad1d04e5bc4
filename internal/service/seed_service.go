package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ec-club-bing/website/internal/docstore"
	"github.com/ec-club-bing/website/internal/models"
)

type seeder interface {
	Seed(ctx context.Context, collection string, records []map[string]interface{}) (docstore.SeedResult, error)
}

// SampleArticles are written to an empty articles collection on first deployment.
func SampleArticles() []models.Article {
	return []models.Article{
		{
			Title:       "Welcome Back: Reflecting on Our Recent GIM Sessions",
			Date:        "2024-09-25",
			Paragraph:   "The fall semester is in full swing, and we've had some amazing General Interest Meetings. Here's a quick recap of what we've covered and a look at what's to come.",
			LinkedInURL: "https://www.linkedin.com/",
			ImageURL:    "https://res.cloudinary.com/drrm2qz39/image/upload/v1721860098/ec-bing/GIM2_u8qjkg.png",
			ImageHint:   "presentation business",
		},
		{
			Title:       "Having a Great Idea Is Only Brushing the Surface",
			Date:        "2024-04-15",
			Paragraph:   "A great idea is the first step, but execution is everything. We dive into what it takes to turn your vision into a viable business.",
			LinkedInURL: "https://www.linkedin.com/",
			ImageURL:    "https://res.cloudinary.com/drrm2qz39/image/upload/v1721860099/ec-bing/klaws_y7cmzl.png",
			ImageHint:   "portrait speaker",
		},
		{
			Title:       "The Art of the Pitch: Key Takeaways from our Workshop",
			Date:        "2024-03-01",
			Paragraph:   "We recently hosted a pitch workshop to help students refine their ideas and presentation skills. Here are the key takeaways from our expert panel.",
			LinkedInURL: "https://www.linkedin.com/",
			ImageURL:    "https://res.cloudinary.com/drrm2qz39/image/upload/v1721860098/ec-bing/gim-showcase_j7xwdp.png",
			ImageHint:   "group discussion",
		},
	}
}

// SampleEvents are written to an empty events collection on first deployment.
func SampleEvents() []models.Event {
	return []models.Event{
		{
			Title:       "Fall General Interest Meeting",
			Date:        "2024-09-12",
			Time:        "7:00 PM",
			Location:    "University Union, Room 120",
			Description: "Meet the e-board, hear what the club has planned for the semester and find a project team.",
		},
		{
			Title:       "Pitch Night",
			Date:        "2024-11-14",
			Time:        "6:30 PM",
			Location:    "Innovation Hub",
			Description: "Student founders pitch their ideas to a panel of alumni judges. Everyone is welcome to watch.",
		},
		{
			Title:       "Founders Panel: From Dorm Room to Seed Round",
			Date:        "2025-02-20",
			Time:        "6:00 PM",
			Location:    "Library Tower, LT 1506",
			Description: "Alumni founders share how they validated their first product and raised their first round.",
			Link:        "https://www.linkedin.com/",
		},
	}
}

// SeedService fills empty content collections with sample records.
type SeedService struct {
	seeder  seeder
	metrics *MetricsService
	logger  *zap.Logger

	recorded sync.Map
}

func NewSeedService(seeder seeder, metrics *MetricsService, logger *zap.Logger) *SeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedService{seeder: seeder, metrics: metrics, logger: logger}
}

// EnsureSeeded seeds articles and events. Every caller, concurrent or later, observes the outcome of the
// single pass made per collection. A failed emptiness check is returned; failed inserts are not.
func (s *SeedService) EnsureSeeded(ctx context.Context) error {
	articles := SampleArticles()
	articleRecords := make([]map[string]interface{}, 0, len(articles))
	for _, a := range articles {
		articleRecords = append(articleRecords, a.Fields())
	}

	events := SampleEvents()
	eventRecords := make([]map[string]interface{}, 0, len(events))
	for _, e := range events {
		eventRecords = append(eventRecords, e.Fields())
	}

	return errors.Join(
		s.seed(ctx, models.CollectionArticles, articleRecords),
		s.seed(ctx, models.CollectionEvents, eventRecords),
	)
}

func (s *SeedService) seed(ctx context.Context, collection string, records []map[string]interface{}) error {
	result, err := s.seeder.Seed(ctx, collection, records)
	if err != nil {
		return fmt.Errorf("seed %s: %w", collection, err)
	}
	if _, seen := s.recorded.LoadOrStore(collection, struct{}{}); !seen && !result.Skipped {
		s.metrics.RecordSeed(collection, result.Inserted, result.Failed)
	}
	return nil
}
