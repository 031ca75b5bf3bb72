// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package recursion

import (
	"testing"

	dioerrors "github.com/archmagece/dionysius-go/internal/errors"
	"github.com/archmagece/dionysius-go/pkg/dconfig"
)

func TestApplyDecisionTable(t *testing.T) {
	tests := []struct {
		name string
		in   dconfig.OnRecursion
		want Decision
	}{
		{"skip", dconfig.OnRecursionSkip, Decision{RegisterInParentExclude: true, CreateTask: false, Descend: false}},
		{"include", dconfig.OnRecursionInclude, Decision{RegisterInParentExclude: false, CreateTask: false, Descend: false}},
		{"standalone", dconfig.OnRecursionStandalone, Decision{RegisterInParentExclude: true, CreateTask: true, Descend: true}},
		{"double", dconfig.OnRecursionDouble, Decision{RegisterInParentExclude: false, CreateTask: true, Descend: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Apply(%s) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyInheritIsInternalInvariant(t *testing.T) {
	_, err := Apply(dconfig.OnRecursionInherit)
	if err == nil {
		t.Fatal("expected error for unresolved inherit")
	}
	if !dioerrors.Is(err, dioerrors.ErrInternalInvariant) {
		t.Errorf("expected ErrInternalInvariant, got %v", err)
	}
}
