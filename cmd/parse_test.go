package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/brunokim/polygrammar/internal/enumflag"
	"github.com/brunokim/polygrammar/internal/pglog"
)

func TestRunParseLisp(t *testing.T) {
	params := &parseParams{language: enumflag.New(langLisp, []string{langLisp, langEBNF, langABNF})}
	var stdout, stderr bytes.Buffer

	code := runParse([]string{`(grammar g (rule greeting (string "hi")))`}, params, &stdout, &stderr, pglog.NewNoOpLogger())
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "greeting") {
		t.Fatalf("expected output to mention rule 'greeting', got %q", stdout.String())
	}
}

func TestRunParseEBNF(t *testing.T) {
	params := &parseParams{language: enumflag.New(langEBNF, []string{langLisp, langEBNF, langABNF})}
	var stdout, stderr bytes.Buffer

	code := runParse([]string{`greeting = "hi";`}, params, &stdout, &stderr, pglog.NewNoOpLogger())
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "greeting") {
		t.Fatalf("expected output to mention rule 'greeting', got %q", stdout.String())
	}
}

func TestRunParseInvalidInputReturnsNonZero(t *testing.T) {
	params := &parseParams{language: enumflag.New(langABNF, []string{langLisp, langEBNF, langABNF})}
	var stdout, stderr bytes.Buffer

	code := runParse([]string{`not a valid abnf rule line`}, params, &stdout, &stderr, pglog.NewNoOpLogger())
	if code == 0 {
		t.Fatal("expected a non-zero exit code for malformed input")
	}
	if stderr.Len() == 0 {
		t.Fatal("expected an error message on stderr")
	}
}
