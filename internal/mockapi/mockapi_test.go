package mockapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"interview-practice/internal/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := config.LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(New(c).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any, header http.Header) *http.Response {
	t.Helper()
	data, _ := json.Marshal(body)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestRegisterLoginMe(t *testing.T) {
	ts := newTestServer(t)
	creds := map[string]string{"username": "alice", "email": "alice@example.com", "password": "secret"}

	resp := postJSON(t, ts.URL+"/api/auth/register", creds, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d", resp.StatusCode)
	}
	var reg struct {
		Data user `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&reg)
	if reg.Data.ID == "" {
		t.Fatal("register returned no id")
	}

	dup := postJSON(t, ts.URL+"/api/auth/register", creds, nil)
	dup.Body.Close()
	if dup.StatusCode != http.StatusConflict {
		t.Errorf("duplicate register status = %d", dup.StatusCode)
	}

	bad := postJSON(t, ts.URL+"/api/auth/login", map[string]string{"username": "alice", "password": "nope"}, nil)
	bad.Body.Close()
	if bad.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d", bad.StatusCode)
	}

	login := postJSON(t, ts.URL+"/api/auth/login", map[string]string{"email": "ALICE@example.com", "password": "secret"}, nil)
	defer login.Body.Close()
	var u user
	json.NewDecoder(login.Body).Decode(&u)
	if login.StatusCode != http.StatusOK || u.ID != reg.Data.ID {
		t.Errorf("login status %d id %q", login.StatusCode, u.ID)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/auth/me", nil)
	req.Header.Set("Authorization", u.ID)
	me, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	me.Body.Close()
	if me.StatusCode != http.StatusOK {
		t.Errorf("me status = %d", me.StatusCode)
	}

	anon, err := http.Get(ts.URL + "/api/auth/me")
	if err != nil {
		t.Fatal(err)
	}
	anon.Body.Close()
	if anon.StatusCode != http.StatusUnauthorized {
		t.Errorf("anonymous me status = %d", anon.StatusCode)
	}

	byID, err := http.Get(ts.URL + "/api/users/" + u.ID)
	if err != nil {
		t.Fatal(err)
	}
	byID.Body.Close()
	if byID.StatusCode != http.StatusOK {
		t.Errorf("users/{id} status = %d", byID.StatusCode)
	}
}

func TestQuestions(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/interview/questions", map[string]any{
		"mode": "company", "company": "Google", "role": "Backend Engineer", "questionType": "System Design", "count": 3,
	}, nil)
	defer resp.Body.Close()

	var body struct {
		Questions []string `json:"questions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Questions) != 3 || !strings.Contains(body.Questions[0], "URL shortener") {
		t.Errorf("questions = %v", body.Questions)
	}
}

func submitForm(t *testing.T, url string, questions []string, answers map[string][]byte, order []string) *http.Response {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	q, _ := json.Marshal(questions)
	w.WriteField("questions", string(q))
	for _, name := range order {
		part, _ := w.CreateFormFile("answers", name)
		part.Write(answers[name])
	}
	w.Close()
	resp, err := http.Post(url, w.FormDataContentType(), buf)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestSubmit(t *testing.T) {
	ts := newTestServer(t)
	answers := map[string][]byte{
		"answer_0.wav": bytes.Repeat([]byte{1}, 64000),
		"answer_1.wav": bytes.Repeat([]byte{1}, 1000),
	}
	resp := submitForm(t, ts.URL+"/api/interview/submit", []string{"Q1", "Q2"}, answers, []string{"answer_0.wav", "answer_1.wav"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body struct {
		Reviews       []review `json:"reviews"`
		QuestionCount int      `json:"questionCount"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.QuestionCount != 2 || len(body.Reviews) != 2 {
		t.Fatalf("body = %+v", body)
	}
	if body.Reviews[1].Question != "Q2" || body.Reviews[1].Rating != 3 {
		t.Errorf("review = %+v", body.Reviews[1])
	}
}

func TestSubmitRejectsMismatch(t *testing.T) {
	ts := newTestServer(t)
	answers := map[string][]byte{"answer_0.wav": {1, 2, 3}}
	resp := submitForm(t, ts.URL+"/api/interview/submit", []string{"Q1", "Q2"}, answers, []string{"answer_0.wav"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
