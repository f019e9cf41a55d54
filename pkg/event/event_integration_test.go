package event_test

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/evently-app/evently/internal/middleware"
	"github.com/evently-app/evently/internal/server"
	"github.com/evently-app/evently/pkg/event"
	"github.com/evently-app/evently/pkg/health"
	"github.com/evently-app/evently/pkg/inttest"
	"github.com/evently-app/evently/pkg/model"
	"github.com/evently-app/evently/pkg/token"
	"github.com/evently-app/evently/pkg/user"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventHandler(t *testing.T) {
	t.Parallel()

	db := inttest.SetupDB(t)
	redis := inttest.SetupRedis(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepository := user.NewRepository(db)
	userService := user.NewService(logger, userRepository, nil)

	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err, "failed to generate private key")
	authentication := middleware.NewAuthentication(&privKey.PublicKey, userService)

	tokenRepository := token.NewRepository(redis)
	tokenService, err := token.NewService(logger, tokenRepository, privKey, 3600, "secret", 3600)
	require.NoError(t, err)

	eventRepository := event.NewRepository(db)
	eventService := event.NewService(eventRepository)

	client := inttest.SetupHTTPServer(t, func() *gin.Engine {
		userHandler := user.NewHandler(userService, tokenService)
		eventHandler := event.NewHandler(eventService)
		healthHandler := health.NewHandler(db)
		return server.GetEngine(logger, "", healthHandler, userHandler, eventHandler, authentication)
	})

	var user1Token, user2Token token.Tokens
	{
		t.Log("SignUpUsers")

		var user1 model.User
		client.PostJSON(t, "/users", strings.NewReader(`{
			"name":     "user one",
			"email":    "user1@evently.app",
			"password": "oneoneoneoneone1"
		}`), &user1)
		require.Equal(t, "user1@evently.app", user1.Email)
		require.Empty(t, user1.Password)

		var user2 model.User
		client.PostJSON(t, "/users", strings.NewReader(`{
			"name":     "user two",
			"email":    "user2@evently.app",
			"password": "oneoneoneoneone1"
		}`), &user2)

		client.PostJSON(t, "/tokens", nil, &user1Token, inttest.WithBasicAuth("user1@evently.app", "oneoneoneoneone1"))
		require.NotEmpty(t, user1Token.AccessToken, "should return an access token")
		client.PostJSON(t, "/tokens", nil, &user2Token, inttest.WithBasicAuth("user2@evently.app", "oneoneoneoneone1"))
		require.NotEmpty(t, user2Token.AccessToken, "should return an access token")
	}

	var jazzNight, techConference, foodFestival model.Event
	{
		t.Log("CreateEvents")

		client.PostJSON(t, "/events", strings.NewReader(`{
			"title":       "Jazz Night",
			"description": "An evening of live jazz",
			"date":        "2026-10-03",
			"time":        "19:00",
			"location":    "New York",
			"address":     "123 Jazz Street",
			"category":    "Music"
		}`), &jazzNight, inttest.WithAuthToken(user1Token.AccessToken))
		require.NotZero(t, jazzNight.ID)
		assert.True(t, strings.HasPrefix(jazzNight.Slug, "jazz-night-"))
		assert.Equal(t, model.DefaultEventImage, jazzNight.Image, "image should default when omitted")

		client.PostJSON(t, "/events", strings.NewReader(`{
			"title":       "Tech Conference",
			"description": "Talks on cloud infrastructure",
			"date":        "2026-10-01",
			"time":        "09:00",
			"location":    "San Francisco",
			"address":     "456 Tech Avenue",
			"category":    "Technology",
			"price":       49.5,
			"capacity":    300
		}`), &techConference, inttest.WithAuthToken(user1Token.AccessToken))

		client.PostJSON(t, "/events", strings.NewReader(`{
			"title":       "Food Festival",
			"description": "Street food from all over the world",
			"date":        "2026-10-02",
			"time":        "12:00",
			"location":    "new york",
			"address":     "789 Food Court",
			"category":    "Food"
		}`), &foodFestival, inttest.WithAuthToken(user2Token.AccessToken))
	}

	jazzNightID := strconv.FormatUint(uint64(jazzNight.ID), 10)

	t.Run("ListEvents", func(t *testing.T) {
		var events []model.Event
		client.GetJSON(t, "/events", &events)

		require.Len(t, events, 3)
		assert.Equal(t, "Tech Conference", events[0].Title, "events should be sorted by date ascending")
		assert.Equal(t, "Food Festival", events[1].Title)
		assert.Equal(t, "Jazz Night", events[2].Title)
		require.NotNil(t, events[0].CreatedBy)
		assert.Equal(t, "user1@evently.app", events[0].CreatedBy.Email)
	})

	t.Run("FilterEvents", func(t *testing.T) {
		var musicEvents []model.Event
		client.GetJSON(t, "/events?category=Music", &musicEvents)
		require.Len(t, musicEvents, 1)
		assert.Equal(t, "Jazz Night", musicEvents[0].Title)

		var newYorkEvents []model.Event
		client.GetJSON(t, "/events?location=YORK", &newYorkEvents)
		require.Len(t, newYorkEvents, 2, "location matching should be a case insensitive substring match")

		var searched []model.Event
		client.GetJSON(t, "/events?search=jazz", &searched)
		require.Len(t, searched, 1, "search should match title or description case insensitively")

		var foodSearched []model.Event
		client.GetJSON(t, "/events?search=food", &foodSearched)
		require.Len(t, foodSearched, 1)

		var combined []model.Event
		client.GetJSON(t, "/events?category=Music&location=york&search=jazz", &combined)
		require.Len(t, combined, 1, "filters should all apply at once")

		var none []model.Event
		client.GetJSON(t, "/events?category=Sports", &none)
		require.Len(t, none, 0)
	})

	t.Run("FindEvent", func(t *testing.T) {
		var found model.Event
		client.GetJSON(t, "/events/"+jazzNightID, &found)

		assert.Equal(t, "Jazz Night", found.Title)
		require.NotNil(t, found.CreatedBy)
		assert.Equal(t, "user1@evently.app", found.CreatedBy.Email)
		assert.Empty(t, found.CreatedBy.Password)

		client.Do(t, http.MethodGet, "/events/9999", nil, http.StatusNotFound)
	})

	t.Run("ValidationErrors", func(t *testing.T) {
		body := client.Do(t, http.MethodPost, "/events", strings.NewReader(`{
			"title":    "ab",
			"category": "Circus"
		}`), http.StatusBadRequest, inttest.WithAuthToken(user1Token.AccessToken), inttest.WithHeader("Content-Type", "application/json"))

		assert.Contains(t, string(body), "title must be at least 3 characters")
		assert.Contains(t, string(body), "category must be one of")
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		client.Do(t, http.MethodPost, "/events", strings.NewReader(`{}`), http.StatusUnauthorized, inttest.WithHeader("Content-Type", "application/json"))
		client.Do(t, http.MethodGet, "/events/user/saved", nil, http.StatusUnauthorized)
	})

	t.Run("OnlyOwnerCanModify", func(t *testing.T) {
		updateBody := `{
			"title":       "Jazz Night Late Edition",
			"description": "An evening of live jazz",
			"date":        "2026-10-03",
			"time":        "21:00",
			"location":    "New York",
			"address":     "123 Jazz Street",
			"category":    "Music"
		}`

		client.Do(t, http.MethodPut, "/events/"+jazzNightID, strings.NewReader(updateBody), http.StatusForbidden,
			inttest.WithAuthToken(user2Token.AccessToken), inttest.WithHeader("Content-Type", "application/json"))
		client.Do(t, http.MethodDelete, "/events/"+jazzNightID, nil, http.StatusForbidden, inttest.WithAuthToken(user2Token.AccessToken))

		client.Do(t, http.MethodPut, "/events/9999", strings.NewReader(updateBody), http.StatusNotFound,
			inttest.WithAuthToken(user2Token.AccessToken), inttest.WithHeader("Content-Type", "application/json"),
		)

		var updated model.Event
		client.Do(t, http.MethodPut, "/events/"+jazzNightID, strings.NewReader(updateBody), http.StatusOK,
			inttest.WithAuthToken(user1Token.AccessToken), inttest.WithHeader("Content-Type", "application/json"))
		client.GetJSON(t, "/events/"+jazzNightID, &updated)
		assert.Equal(t, "Jazz Night Late Edition", updated.Title)
		assert.Equal(t, "21:00", updated.Time)
	})

	t.Run("ToggleSave", func(t *testing.T) {
		var response event.SaveResponse
		body := client.Do(t, http.MethodPost, "/events/"+jazzNightID+"/save", nil, http.StatusOK, inttest.WithAuthToken(user2Token.AccessToken))
		require.NoError(t, json.Unmarshal(body, &response))
		assert.True(t, response.Saved)

		var saved []model.Event
		client.GetJSON(t, "/events/user/saved", &saved, inttest.WithAuthToken(user2Token.AccessToken))
		require.Len(t, saved, 1)
		assert.Equal(t, jazzNight.ID, saved[0].ID)

		body = client.Do(t, http.MethodPost, "/events/"+jazzNightID+"/save", nil, http.StatusOK, inttest.WithAuthToken(user2Token.AccessToken))
		require.NoError(t, json.Unmarshal(body, &response))
		assert.False(t, response.Saved, "a second toggle should remove the event again")

		client.GetJSON(t, "/events/user/saved", &saved, inttest.WithAuthToken(user2Token.AccessToken))
		require.Len(t, saved, 0)

		client.Do(t, http.MethodPost, "/events/9999/save", nil, http.StatusNotFound, inttest.WithAuthToken(user2Token.AccessToken))
	})

	t.Run("ListCreated", func(t *testing.T) {
		var created []model.Event
		client.GetJSON(t, "/events/user/created", &created, inttest.WithAuthToken(user1Token.AccessToken))

		require.Len(t, created, 2)
		assert.Equal(t, "Tech Conference", created[0].Title, "created events should be listed newest first")
	})

	t.Run("DeleteCascadesToSavedEvents", func(t *testing.T) {
		techConferenceID := strconv.FormatUint(uint64(techConference.ID), 10)

		var response event.SaveResponse
		body := client.Do(t, http.MethodPost, "/events/"+techConferenceID+"/save", nil, http.StatusOK, inttest.WithAuthToken(user2Token.AccessToken))
		require.NoError(t, json.Unmarshal(body, &response))
		require.True(t, response.Saved)

		client.Delete(t, "/events/"+techConferenceID, inttest.WithAuthToken(user1Token.AccessToken))

		client.Do(t, http.MethodGet, "/events/"+techConferenceID, nil, http.StatusNotFound)

		var saved []model.Event
		client.GetJSON(t, "/events/user/saved", &saved, inttest.WithAuthToken(user2Token.AccessToken))
		require.Len(t, saved, 0, "deleting an event should remove it from every user's saved events")
	})
}
