package services

import (
	"errors"
	"testing"
)

func sampleQuizInput() QuizInput {
	return QuizInput{
		Title:       "Capitals",
		Description: "Geography basics",
		Questions: []QuestionInput{
			{
				Text:     "Capital of France?",
				OrderNum: 0,
				Options: []OptionInput{
					{Text: "Paris", IsCorrect: true, OrderNum: 0},
					{Text: "Lyon", OrderNum: 1},
				},
			},
			{
				Text:     "Capital of Japan?",
				OrderNum: 1,
				Options: []OptionInput{
					{Text: "Osaka", OrderNum: 0},
					{Text: "Tokyo", IsCorrect: true, OrderNum: 1},
				},
			},
		},
	}
}

func TestCreateQuizNested(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	creator := createTestUser(t, db, "creator")

	quiz, err := svc.CreateQuiz(creator.ID, sampleQuizInput())
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}
	if quiz.ID == 0 {
		t.Fatalf("quiz not persisted")
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(quiz.Questions))
	}
	for _, q := range quiz.Questions {
		if q.ID == 0 || q.QuizID != quiz.ID {
			t.Fatalf("question not linked to quiz: %+v", q)
		}
		if len(q.Options) != 2 {
			t.Fatalf("options = %d, want 2", len(q.Options))
		}
	}
}

func TestListQuizzesByCreator(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	creator := createTestUser(t, db, "creator")
	other := createTestUser(t, db, "other")

	svc.CreateQuiz(creator.ID, sampleQuizInput())
	svc.CreateQuiz(other.ID, sampleQuizInput())

	summaries, err := svc.ListQuizzesByCreator(creator.ID)
	if err != nil {
		t.Fatalf("ListQuizzesByCreator failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1 (only own quizzes)", len(summaries))
	}
	if summaries[0].QuestionCount != 2 {
		t.Fatalf("question count = %d, want 2", summaries[0].QuestionCount)
	}
}

func TestGetQuizOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	creator := createTestUser(t, db, "creator")

	input := sampleQuizInput()
	// Author them out of order; reads must come back sorted by order_num.
	input.Questions[0].OrderNum = 1
	input.Questions[1].OrderNum = 0
	created, _ := svc.CreateQuiz(creator.ID, input)

	quiz, err := svc.GetQuizByID(created.ID, creator.ID)
	if err != nil {
		t.Fatalf("GetQuizByID failed: %v", err)
	}
	if quiz.Questions[0].Text != "Capital of Japan?" {
		t.Fatalf("questions not ordered by order_num: first is %q", quiz.Questions[0].Text)
	}
}

func TestGetQuizOwnershipAndSoftDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	creator := createTestUser(t, db, "creator")
	other := createTestUser(t, db, "other")

	quiz, _ := svc.CreateQuiz(creator.ID, sampleQuizInput())

	if _, err := svc.GetQuizByID(quiz.ID, other.ID); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("foreign quiz read: got %v, want ErrQuizNotFound", err)
	}

	if err := svc.DeleteQuiz(quiz.ID, other.ID); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("foreign quiz delete: got %v, want ErrQuizNotFound", err)
	}
	if err := svc.DeleteQuiz(quiz.ID, creator.ID); err != nil {
		t.Fatalf("DeleteQuiz failed: %v", err)
	}

	if _, err := svc.GetQuizByID(quiz.ID, creator.ID); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("deleted quiz read: got %v, want ErrQuizNotFound", err)
	}
	summaries, _ := svc.ListQuizzesByCreator(creator.ID)
	if len(summaries) != 0 {
		t.Fatalf("deleted quiz still listed")
	}

	if err := svc.DeleteQuiz(quiz.ID, creator.ID); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("double delete: got %v, want ErrQuizNotFound", err)
	}
}
