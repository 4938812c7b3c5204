package services

import (
	"strconv"
	"strings"
	"testing"
)

// solve computes the answer to an issued "a + b = ?" question.
func solve(t *testing.T, question string) string {
	t.Helper()
	parts := strings.Fields(question)
	if len(parts) < 3 {
		t.Fatalf("unexpected question format %q", question)
	}
	a, err1 := strconv.Atoi(parts[0])
	b, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected question format %q", question)
	}
	return strconv.Itoa(a + b)
}

func TestCaptchaConsumeOnce(t *testing.T) {
	svc := NewCaptchaService()
	question, token := svc.Issue()

	answer := solve(t, question)
	if err := svc.Consume(token, answer); err != nil {
		t.Fatalf("correct answer rejected: %v", err)
	}
	if err := svc.Consume(token, answer); err == nil {
		t.Fatal("replayed token must be rejected")
	}
}

func TestCaptchaWrongAnswerBurnsToken(t *testing.T) {
	svc := NewCaptchaService()
	question, token := svc.Issue()

	if err := svc.Consume(token, "-1"); err == nil {
		t.Fatal("wrong answer must be rejected")
	}
	// the token is gone even though the first attempt failed
	if err := svc.Consume(token, solve(t, question)); err == nil {
		t.Fatal("token must be consumed by the failed attempt")
	}
}

func TestCaptchaUnknownToken(t *testing.T) {
	svc := NewCaptchaService()
	if err := svc.Consume("nope", "4"); err == nil {
		t.Fatal("unknown token must be rejected")
	}
	if err := svc.Consume("", "4"); err == nil {
		t.Fatal("empty token must be rejected")
	}
}
