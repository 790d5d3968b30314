package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"membership-platform/models"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// wpPost matches the WordPress REST v2 post shape (only the fields we read).
type wpPost struct {
	ID    int64  `json:"id"`
	Date  string `json:"date"`
	Link  string `json:"link"`
	Title struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Excerpt struct {
		Rendered string `json:"rendered"`
	} `json:"excerpt"`
	Embedded struct {
		FeaturedMedia []struct {
			SourceURL string `json:"source_url"`
		} `json:"wp:featuredmedia"`
	} `json:"_embedded"`
}

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// NewsSyncWorker mirrors the organization's WordPress posts into the news
// table on a schedule. Posts are upserted on wp_post_id, so re-syncing the
// same post updates it instead of duplicating.
type NewsSyncWorker struct {
	db         *gorm.DB
	baseURL    string // e.g. "https://ssdp.org"
	interval   time.Duration
	httpClient *http.Client
}

func NewNewsSyncWorker(db *gorm.DB, wpBaseURL string, interval time.Duration) *NewsSyncWorker {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &NewsSyncWorker{
		db:       db,
		baseURL:  wpBaseURL,
		interval: interval,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Start runs an initial sync, then re-syncs on the worker's interval until
// ctx is cancelled.
func (w *NewsSyncWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting News Sync Worker (wordpress → news_items)…")

	if _, err := w.SyncOnce(ctx); err != nil {
		log.Printf("⚠️ Initial news sync failed: %v", err)
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("❌ News sync scheduler init failed: %v", err)
		return
	}
	_, err = sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() {
			if _, err := w.SyncOnce(ctx); err != nil {
				log.Printf("❌ News sync failed: %v", err)
			}
		}),
	)
	if err != nil {
		log.Printf("❌ News sync job registration failed: %v", err)
		return
	}
	sched.Start()

	<-ctx.Done()
	_ = sched.Shutdown()
	log.Println("⏹️ News Sync Worker stopped")
}

// SyncOnce fetches the latest posts and upserts them. Returns how many
// posts were written.
func (w *NewsSyncWorker) SyncOnce(ctx context.Context) (int, error) {
	base, err := url.Parse(w.baseURL)
	if err != nil {
		return 0, fmt.Errorf("invalid wordpress base URL %q: %w", w.baseURL, err)
	}
	endpoint := base.JoinPath("wp-json", "wp", "v2", "posts")
	endpoint.RawQuery = "per_page=10&_embed=wp:featuredmedia"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return 0, err
	}
	resp, err := w.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch wordpress posts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("wordpress API returned %d", resp.StatusCode)
	}

	var posts []wpPost
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return 0, fmt.Errorf("decode wordpress response: %w", err)
	}

	synced := 0
	for _, post := range posts {
		item := w.toNewsItem(post)
		err := w.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "wp_post_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "slug", "excerpt", "image_url", "external_url",
				"published_at", "is_published",
			}),
		}).Create(&item).Error
		if err != nil {
			log.Printf("⚠️ [NEWS SYNC] upsert failed for wp post %d: %v", post.ID, err)
			continue
		}
		synced++
	}

	log.Printf("📰 [NEWS SYNC] synced %d/%d posts", synced, len(posts))
	return synced, nil
}

func (w *NewsSyncWorker) toNewsItem(post wpPost) models.NewsItem {
	title := stripTags(post.Title.Rendered)
	excerpt := stripTags(post.Excerpt.Rendered)

	publishedAt, err := time.Parse("2006-01-02T15:04:05", post.Date)
	if err != nil {
		publishedAt = time.Now()
	}

	item := models.NewsItem{
		ID:          uuid.NewString(),
		Title:       title,
		Slug:        slug.Make(title),
		Source:      models.NewsSourceWordPress,
		WPPostID:    &post.ID,
		IsPublished: true,
		PublishedAt: publishedAt,
	}
	if excerpt != "" {
		item.Excerpt = &excerpt
	}
	if post.Link != "" {
		link := post.Link
		item.ExternalURL = &link
	}
	if len(post.Embedded.FeaturedMedia) > 0 && post.Embedded.FeaturedMedia[0].SourceURL != "" {
		img := post.Embedded.FeaturedMedia[0].SourceURL
		item.ImageURL = &img
	}
	return item
}

func stripTags(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}
