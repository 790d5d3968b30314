package workers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"membership-platform/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.NewsItem{}))
	return db
}

func wpServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp-json/wp/v2/posts", r.URL.Path)
		require.Equal(t, "10", r.URL.Query().Get("per_page"))
		require.Equal(t, "wp:featuredmedia", r.URL.Query().Get("_embed"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
}

const wpPostsJSON = `[
	{
		"id": 101,
		"date": "2026-08-01T09:30:00",
		"link": "https://ssdp.org/2026/08/psychedelic-policy-win/",
		"title": {"rendered": "Psychedelic Policy <em>Win</em>"},
		"excerpt": {"rendered": "<p>A big step forward&hellip;</p>"},
		"_embedded": {"wp:featuredmedia": [{"source_url": "https://ssdp.org/img/win.jpg"}]}
	},
	{
		"id": 102,
		"date": "2026-07-15T12:00:00",
		"title": {"rendered": "Chapter Spotlight"},
		"excerpt": {"rendered": ""}
	}
]`

func TestSyncOnceInsertsPosts(t *testing.T) {
	db := newTestDB(t)
	server := wpServer(t, wpPostsJSON)
	defer server.Close()

	worker := NewNewsSyncWorker(db, server.URL, 0)
	synced, err := worker.SyncOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, synced)

	var items []models.NewsItem
	require.NoError(t, db.Order("published_at DESC").Find(&items).Error)
	require.Len(t, items, 2)

	first := items[0]
	require.Equal(t, "Psychedelic Policy Win", first.Title) // tags stripped
	require.Equal(t, models.NewsSourceWordPress, first.Source)
	require.NotNil(t, first.WPPostID)
	require.EqualValues(t, 101, *first.WPPostID)
	require.NotNil(t, first.ImageURL)
	require.Equal(t, "https://ssdp.org/img/win.jpg", *first.ImageURL)
	require.NotNil(t, first.ExternalURL)
	require.True(t, first.IsPublished)

	second := items[1]
	require.Nil(t, second.Excerpt)
	require.Nil(t, second.ImageURL)
}

func TestSyncOnceUpsertsOnRepeat(t *testing.T) {
	db := newTestDB(t)
	server := wpServer(t, wpPostsJSON)

	worker := NewNewsSyncWorker(db, server.URL, 0)
	_, err := worker.SyncOnce(context.Background())
	require.NoError(t, err)
	server.Close()

	// Same posts again, one title changed.
	updated := strings.Replace(wpPostsJSON, "Chapter Spotlight", "Chapter Spotlight (updated)", 1)
	server = wpServer(t, updated)
	defer server.Close()
	worker = NewNewsSyncWorker(db, server.URL, 0)

	synced, err := worker.SyncOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, synced)

	var count int64
	require.NoError(t, db.Model(&models.NewsItem{}).Count(&count).Error)
	require.EqualValues(t, 2, count)

	var item models.NewsItem
	require.NoError(t, db.First(&item, "wp_post_id = ?", 102).Error)
	require.Equal(t, "Chapter Spotlight (updated)", item.Title)
}

func TestSyncOnceUpstreamError(t *testing.T) {
	db := newTestDB(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	worker := NewNewsSyncWorker(db, server.URL, 0)
	_, err := worker.SyncOnce(context.Background())
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.NewsItem{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}
