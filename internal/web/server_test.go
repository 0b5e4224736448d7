package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/example/jeeprep/internal/domain"
	"github.com/example/jeeprep/internal/kvstore"
	"github.com/example/jeeprep/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts Options) (*Server, *storage.DB) {
	t.Helper()
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewServer(db, kvstore.NewMemory(), nil, opts), db
}

func get(s *Server, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	return w
}

func postForm(s *Server, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	return w
}

func seedTopics(t *testing.T, db *storage.DB, n int) []domain.RevisionTopic {
	t.Helper()
	topics := make([]domain.RevisionTopic, 0, n)
	for i := 0; i < n; i++ {
		created, err := db.CreateTopic(domain.TopicFields{
			Subject:     domain.Physics,
			ChapterName: "Waves",
			TopicName:   "Topic " + string(rune('A'+i)),
		})
		require.NoError(t, err)
		topics = append(topics, created)
	}
	return topics
}

func TestDashboardOpenWithoutAccessKey(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	w := get(s, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Recall mastery")
}

func TestAccessKeyGatesStudentArea(t *testing.T) {
	s, _ := newTestServer(t, Options{AccessKey: "secret"})

	w := get(s, "/")
	assert.Contains(t, w.Body.String(), "Enter access key")

	w = postForm(s, "/unlock", url.Values{"key": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postForm(s, "/unlock", url.Values{"key": {"secret"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = get(s, "/", cookies[0])
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Recall mastery")
}

func TestAdminClosedWithoutKey(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	w := get(s, "/admin")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentTokenDoesNotOpenAdmin(t *testing.T) {
	s, _ := newTestServer(t, Options{AccessKey: "secret", AdminKey: "admin-secret"})

	w := postForm(s, "/unlock", url.Values{"key": {"secret"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	student := w.Result().Cookies()[0]

	// Present the student token under the admin cookie name.
	forged := &http.Cookie{Name: adminCookie, Value: student.Value}
	w = get(s, "/admin", forged)
	assert.Contains(t, w.Body.String(), "Enter admin key")
}

func TestCreateAndFilterTopics(t *testing.T) {
	s, db := newTestServer(t, Options{})

	w := postForm(s, "/topics", url.Values{
		"subject":      {"Physics"},
		"chapter_name": {"Waves"},
		"topic_name":   {"Doppler effect"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Doppler effect")

	_, err := db.CreateTopic(domain.TopicFields{
		Subject: domain.Maths, ChapterName: "Calculus", TopicName: "Limits",
	})
	require.NoError(t, err)

	w = get(s, "/topics?subject=Maths")
	body := w.Body.String()
	assert.Contains(t, body, "Limits")
	assert.NotContains(t, body, "Doppler effect")

	w = get(s, "/topics?q=doppler")
	body = w.Body.String()
	assert.Contains(t, body, "Doppler effect")
	assert.NotContains(t, body, "Limits")
}

func TestCreateTopicRejectsBadSubject(t *testing.T) {
	s, db := newTestServer(t, Options{})

	w := postForm(s, "/topics", url.Values{
		"subject":      {"Biology"},
		"chapter_name": {"Cells"},
		"topic_name":   {"Mitosis"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Check the form")

	topics, err := db.ListTopics()
	require.NoError(t, err)
	assert.Empty(t, topics)
}

func TestSessionFlow(t *testing.T) {
	s, db := newTestServer(t, Options{})
	seedTopics(t, db, 2)

	w := postForm(s, "/session/start", url.Values{"size": {"2"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1 of 2")

	w = postForm(s, "/session/hint", nil)
	assert.Contains(t, w.Body.String(), "Hide hint")

	w = postForm(s, "/session/outcome", url.Values{"outcome": {"success"}})
	body := w.Body.String()
	assert.Contains(t, body, "2 of 2")
	assert.Contains(t, body, "Show hint", "hint visibility resets on advance")

	w = postForm(s, "/session/outcome", url.Values{"outcome": {"fail"}})
	assert.Contains(t, w.Body.String(), "Session complete")
}

func TestSessionEndEarly(t *testing.T) {
	s, db := newTestServer(t, Options{})
	seedTopics(t, db, 3)

	postForm(s, "/session/start", url.Values{"size": {"3"}})
	postForm(s, "/session/outcome", url.Values{"outcome": {"success"}})

	w := postForm(s, "/session/end", nil)
	body := w.Body.String()
	assert.Contains(t, body, "Session ended")
	assert.Contains(t, body, "1 of 3")
}

func TestSessionRejectsBadSize(t *testing.T) {
	s, db := newTestServer(t, Options{})
	seedTopics(t, db, 1)

	w := postForm(s, "/session/start", url.Values{"size": {"0"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postForm(s, "/session/start", url.Values{"size": {"many"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionCardWithoutSession(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	w := get(s, "/session/card")
	assert.Contains(t, w.Body.String(), "No session in progress")
}

func TestSyllabusToggle(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	w := postForm(s, "/syllabus", url.Values{
		"key": {"Physics-Waves-Beats"}, "completed": {"true"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Physics-Waves-Beats")

	w = postForm(s, "/syllabus", url.Values{
		"key": {"Physics-Waves-Beats"}, "completed": {"false"},
	})
	assert.NotContains(t, w.Body.String(), `class="done"`)
}

func TestMoodCheckInReturnsMotivation(t *testing.T) {
	s, db := newTestServer(t, Options{})
	require.NoError(t, db.AddMessages("sad", []string{`"chin up, future engineer"`}))

	w := postForm(s, "/mood", url.Values{"mood": {"sad"}})
	assert.Contains(t, w.Body.String(), "chin up, future engineer")

	// No collection for this mood falls back to a stock line.
	w = postForm(s, "/mood", url.Values{"mood": {"confused"}})
	assert.Contains(t, w.Body.String(), "One step at a time")
}

func adminCookieFor(t *testing.T, s *Server, key string) *http.Cookie {
	t.Helper()
	w := postForm(s, "/admin/unlock", url.Values{"key": {key}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func TestAdminDoubtFlow(t *testing.T) {
	s, db := newTestServer(t, Options{AdminKey: "admin-secret"})
	admin := adminCookieFor(t, s, "admin-secret")

	d, err := db.CreateDoubt("Why is torque a vector?", domain.Physics, "")
	require.NoError(t, err)

	w := get(s, "/admin/doubts", admin)
	assert.Contains(t, w.Body.String(), "Why is torque a vector?")

	w = postForm(s, "/admin/doubts/"+d.ID+"/answer", url.Values{"answer": {"Direction matters."}}, admin)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	doubts, err := db.ListDoubtsByStatus(true)
	require.NoError(t, err)
	require.Len(t, doubts, 1)
	assert.Equal(t, "Direction matters.", doubts[0].AddressedText)
}

func TestMoodHelperUpload(t *testing.T) {
	s, db := newTestServer(t, Options{AdminKey: "admin-secret"})
	admin := adminCookieFor(t, s, "admin-secret")

	w := postForm(s, "/admin/mood-helper", url.Values{
		"collection": {"sad"},
		"messages":   {`["keep going", {"message": "one day closer"}]`},
	}, admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2 messages added to sad")

	counts, err := db.MessageCollections()
	require.NoError(t, err)
	assert.Equal(t, 2, counts["sad"])
}

func TestMoodHelperRejectsBadPayload(t *testing.T) {
	s, db := newTestServer(t, Options{AdminKey: "admin-secret"})
	admin := adminCookieFor(t, s, "admin-secret")

	w := postForm(s, "/admin/mood-helper", url.Values{
		"collection": {"sad"},
		"messages":   {`["fine", 42]`},
	}, admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "message 1")

	// All-or-nothing: the valid message must not have been stored.
	counts, err := db.MessageCollections()
	require.NoError(t, err)
	assert.Zero(t, counts["sad"])
}

func TestAdminSources(t *testing.T) {
	s, db := newTestServer(t, Options{AdminKey: "admin-secret"})
	admin := adminCookieFor(t, s, "admin-secret")

	w := postForm(s, "/admin/sources", url.Values{"path": {"https://example.com/decks.git"}}, admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "decks.git")

	sources, err := db.GetAllSources()
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "git", sources[0].Type)
}

func TestAnswerQuestionGradesAndLocks(t *testing.T) {
	s, db := newTestServer(t, Options{})

	q, err := db.CreateQuestion(domain.Question{
		Text:          "A ring rolls without slipping. What fraction of its KE is rotational?",
		AnswerType:    domain.AnswerTypeOptions,
		Options:       []string{"1/4", "1/3", "1/2"},
		CorrectAnswer: "1/2",
		Subject:       domain.Physics,
	})
	require.NoError(t, err)

	w := get(s, "/questions")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rolls without slipping")

	w = postForm(s, "/questions/"+q.ID+"/answer", url.Values{"answer": {"1/3"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect")
	assert.Contains(t, w.Body.String(), "Correct answer: 1/2")

	// A question takes exactly one attempt.
	w = postForm(s, "/questions/"+q.ID+"/answer", url.Values{"answer": {"1/2"}})
	assert.Equal(t, http.StatusConflict, w.Code)

	mistakes, err := db.QuestionMistakes()
	require.NoError(t, err)
	require.Len(t, mistakes, 1)
	assert.Equal(t, q.ID, mistakes[0].ID)
}

func TestAnswerQuestionValidation(t *testing.T) {
	s, db := newTestServer(t, Options{})

	q, err := db.CreateQuestion(domain.Question{
		Text: "v = ?", AnswerType: domain.AnswerTypeText, CorrectAnswer: "u + at", Subject: domain.Physics,
	})
	require.NoError(t, err)

	w := postForm(s, "/questions/"+q.ID+"/answer", url.Values{"answer": {"  "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postForm(s, "/questions/nope/answer", url.Values{"answer": {"u + at"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminQuestionManagement(t *testing.T) {
	s, db := newTestServer(t, Options{AdminKey: "admin-secret"})
	admin := adminCookieFor(t, s, "admin-secret")

	w := postForm(s, "/admin/questions", url.Values{
		"subject":        {"Chemistry"},
		"text":           {"Which gas is evolved when zinc reacts with dilute HCl?"},
		"answer_type":    {"options"},
		"options":        {"Hydrogen\nChlorine\nOxygen"},
		"correct_answer": {"Hydrogen"},
	}, admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "zinc reacts")

	// A multiple-choice question needs at least two options.
	w = postForm(s, "/admin/questions", url.Values{
		"subject":        {"Chemistry"},
		"text":           {"Incomplete"},
		"answer_type":    {"options"},
		"options":        {"Hydrogen"},
		"correct_answer": {"Hydrogen"},
	}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	questions, err := db.ListQuestions()
	require.NoError(t, err)
	require.Len(t, questions, 1)

	w = postForm(s, "/admin/questions/"+questions[0].ID, url.Values{}, admin)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	questions, err = db.ListQuestions()
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestDeckPracticeAndProgress(t *testing.T) {
	s, db := newTestServer(t, Options{})

	deck, err := db.CreateDeck(domain.Chemistry, "Periodic trends")
	require.NoError(t, err)
	_, err = db.AddFlashcard(deck.ID, "Most electronegative element?", "Fluorine", 0)
	require.NoError(t, err)
	_, err = db.AddFlashcard(deck.ID, "Smallest atom?", "Helium", 1)
	require.NoError(t, err)

	w := get(s, "/decks")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Periodic trends")
	assert.Contains(t, w.Body.String(), "not started")

	w = get(s, "/decks/"+deck.ID)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Most electronegative element?")

	// Completed counts above the card count clamp to it.
	w = postForm(s, "/decks/"+deck.ID+"/progress", url.Values{"completed": {"5"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Progress saved: 2 of 2 cards.")

	progress, err := db.ListDeckProgress()
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, 2, progress[0].Completed)
	assert.Equal(t, 2, progress[0].Total)

	w = get(s, "/decks")
	assert.Contains(t, w.Body.String(), "2 of 2 cards done")
}

func TestDeckNotFound(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	w := get(s, "/decks/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = postForm(s, "/decks/nope/progress", url.Values{"completed": {"1"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminDeckManagement(t *testing.T) {
	s, db := newTestServer(t, Options{AdminKey: "admin-secret"})
	admin := adminCookieFor(t, s, "admin-secret")

	w := postForm(s, "/admin/decks", url.Values{
		"action":  {"create_deck"},
		"subject": {"Maths"},
		"title":   {"Standard integrals"},
	}, admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Standard integrals")

	decks, err := db.ListDecks()
	require.NoError(t, err)
	require.Len(t, decks, 1)

	w = postForm(s, "/admin/decks", url.Values{
		"action":   {"add_card"},
		"deck_id":  {decks[0].ID},
		"question": {"Integral of sec^2 x?"},
		"answer":   {"tan x + C"},
	}, admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Integral of sec^2 x?")

	cards, err := db.ListFlashcards(decks[0].ID)
	require.NoError(t, err)
	require.Len(t, cards, 1)

	w = postForm(s, "/admin/decks/cards/"+cards[0].ID, url.Values{}, admin)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	cards, err = db.ListFlashcards(decks[0].ID)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestPyqToggle(t *testing.T) {
	s, db := newTestServer(t, Options{})

	require.NoError(t, db.SetSyllabusStatus("Physics-Waves-Doppler", true))

	w := postForm(s, "/syllabus", url.Values{
		"key":       {"Physics-Waves-Doppler"},
		"kind":      {"pyq"},
		"completed": {"true"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "PYQs &#9745;")

	statuses, err := db.ListPyqStatus()
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].Completed)
}
