package infer

import (
	"errors"
	"testing"
)

func TestErrorPredicates(t *testing.T) {
	dep := ErrDependencyUnavailable("llama support not built")
	if !IsDependencyUnavailable(dep) {
		t.Fatal("dependency predicate missed its own error")
	}
	if IsInvalidArgument(dep) {
		t.Fatal("dependency error misread as invalid argument")
	}

	inv := ErrInvalidArgument("sample_len must be positive")
	if !IsInvalidArgument(inv) {
		t.Fatal("invalid-argument predicate missed its own error")
	}
	if IsDependencyUnavailable(inv) {
		t.Fatal("invalid argument misread as dependency error")
	}

	plain := errors.New("boom")
	if IsDependencyUnavailable(plain) || IsInvalidArgument(plain) {
		t.Fatal("plain error matched a typed predicate")
	}
}
