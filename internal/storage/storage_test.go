package storage

import (
	"strings"
	"testing"
	"time"

	"interview-practice/internal/selection"
	"interview-practice/internal/session"

	"github.com/spf13/afero"
)

func sampleResult(id, user string) *InterviewResult {
	rating := 7.0
	r := NewInterviewResult(id, user,
		selection.Request{Mode: selection.ModeCompany, Company: "Google", Role: "QA Engineer", QuestionType: "HR"},
		[]string{"Q1"},
		&session.Result{Reviews: []session.Review{{Question: "Q1", Answer: "A1", Feedback: "ok"}}, QuestionCount: 1, Rating: &rating})
	return r
}

func TestSaveAndLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewStore(fs, "/data")

	if err := s.SaveResult(sampleResult("abc", "u1")); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	if ok, _ := afero.Exists(fs, "/data/results/interview_abc.json"); !ok {
		t.Fatal("result file not written")
	}

	got, err := s.LoadResult("abc")
	if err != nil {
		t.Fatalf("LoadResult: %v", err)
	}
	if got.Request.Company != "Google" || got.Reviews[0].Feedback != "ok" || *got.Rating != 7 {
		t.Errorf("loaded %+v", got)
	}
	if got.Time().IsZero() {
		t.Error("timestamp not parsed")
	}
	if res := got.Result(); res.QuestionCount != 1 {
		t.Errorf("Result() = %+v", res)
	}
}

func TestListResults(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewStore(fs, "/data")

	ids, err := s.ListResults()
	if err != nil || len(ids) != 0 {
		t.Fatalf("empty store: %v %v", ids, err)
	}

	s.SaveResult(sampleResult("one", "u1"))
	s.SaveResult(sampleResult("two", "u2"))
	afero.WriteFile(fs, "/data/results/notes.txt", []byte("x"), 0o644)
	afero.WriteFile(fs, "/data/results/interview_broken.json", []byte("{"), 0o644)

	ids, err = s.ListResults()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 3 {
		t.Errorf("ids = %v", ids)
	}

	mine, err := s.ListForUser("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].InterviewID != "one" {
		t.Errorf("ListForUser(u1) = %v", mine)
	}
}

func TestListForUserNewestFirst(t *testing.T) {
	s := NewStore(afero.NewMemMapFs(), "/data")
	old := sampleResult("old", "u1")
	old.Timestamp = time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	s.SaveResult(old)
	s.SaveResult(sampleResult("new", "u1"))

	got, err := s.ListForUser("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].InterviewID != "new" {
		t.Errorf("order = %v, %v", got[0].InterviewID, got[1].InterviewID)
	}
}

func TestSaveRejectsBadID(t *testing.T) {
	s := NewStore(afero.NewMemMapFs(), "/data")
	err := s.SaveResult(&InterviewResult{InterviewID: "../escape"})
	if err == nil || !strings.Contains(err.Error(), "invalid interview id") {
		t.Errorf("err = %v", err)
	}
}
