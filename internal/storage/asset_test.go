package storage

import (
	"fmt"
	"testing"

	"github.com/pixil98/go-testutil"
)

type fakeSpec struct {
	Name string `json:"name"`
	Bad  bool   `json:"bad"`
}

func (s *fakeSpec) Validate() error {
	if s == nil {
		return fmt.Errorf("spec must be set")
	}
	if s.Bad {
		return fmt.Errorf("spec is invalid")
	}
	return nil
}

func TestAsset_Validate(t *testing.T) {
	tests := map[string]struct {
		asset  Asset[*fakeSpec]
		expErr string
	}{
		"valid asset": {
			asset: Asset[*fakeSpec]{Version: 1, Identifier: "arena-1", Spec: &fakeSpec{}},
		},
		"version not set": {
			asset:  Asset[*fakeSpec]{Identifier: "arena-1", Spec: &fakeSpec{}},
			expErr: "version must be set",
		},
		"empty identifier": {
			asset:  Asset[*fakeSpec]{Version: 1, Spec: &fakeSpec{}},
			expErr: "id must be set",
		},
		"identifier with underscore": {
			asset:  Asset[*fakeSpec]{Version: 1, Identifier: "arena_1", Spec: &fakeSpec{}},
			expErr: "id must be alphanumeric",
		},
		"missing spec": {
			asset:  Asset[*fakeSpec]{Version: 1, Identifier: "arena-1"},
			expErr: "spec must be set",
		},
		"invalid spec": {
			asset:  Asset[*fakeSpec]{Version: 1, Identifier: "arena-1", Spec: &fakeSpec{Bad: true}},
			expErr: "spec is invalid",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.asset.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}
