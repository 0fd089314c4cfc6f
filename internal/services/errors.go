package services

import "errors"

var (
	// ErrInvalidCredentials is returned when login or token validation fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrQuizNotFound covers missing, soft-deleted and not-owned quizzes.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuizHasNoQuestions is returned when hosting a quiz without questions.
	ErrQuizHasNoQuestions = errors.New("quiz must have at least one question")

	// ErrSessionNotFound covers missing sessions and join codes of finished sessions.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrNotSessionHost is returned when a control operation comes from a non-host.
	ErrNotSessionHost = errors.New("only the host may perform this action")
	// ErrSessionNotWaiting is returned when starting a session that already started.
	ErrSessionNotWaiting = errors.New("session is not in waiting status")
	// ErrSessionNotActive is returned when answering or advancing outside ACTIVE.
	ErrSessionNotActive = errors.New("session is not active")

	// ErrQuestionNotInQuiz is returned when the answered question belongs to another quiz.
	ErrQuestionNotInQuiz = errors.New("question not found in this quiz")
	// ErrOptionNotInQuestion is returned when the chosen option belongs to another question.
	ErrOptionNotInQuestion = errors.New("option not found for this question")
	// ErrAlreadyAnswered is returned on a second answer to the same question.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrCodeSpaceExhausted is returned when join-code generation keeps colliding.
	ErrCodeSpaceExhausted = errors.New("could not allocate a unique game code")
)
